package messages

import (
	"nhbridge/bridgeerr"
	"nhbridge/chainregistry"
	"nhbridge/wire"
)

// tokenTransferPayloadLen is the fixed payload size per spec §4.2: 1 (sender
// length) + 32 (home address) + 1 (target chain) + 1 (target length) + 20
// (evm address) + 1 (token type) + 8 (amount) = 64 bytes.
const tokenTransferPayloadLen = 64

const (
	homeAddressLen = 32
	evmAddressLen  = 20
)

// TokenTransferPayload is the per-type payload carried by a token-transfer
// BridgeMessage. For home->EVM transfers Sender is 32 bytes and Target is 20
// bytes; for EVM->home transfers the lengths are reversed.
type TokenTransferPayload struct {
	Sender      []byte
	TargetChain chainregistry.ChainID
	Target      []byte
	TokenType   uint8
	Amount      uint64
}

// NewTokenTransferMessage constructs a token-transfer BridgeMessage.
func NewTokenTransferMessage(seqNum uint64, sourceChain chainregistry.ChainID, p TokenTransferPayload) (BridgeMessage, error) {
	payload, err := encodeTokenTransferPayload(p)
	if err != nil {
		return BridgeMessage{}, err
	}
	return BridgeMessage{
		MessageType:    MessageTypeTokenTransfer,
		MessageVersion: CurrentMessageVersion,
		SeqNum:         seqNum,
		SourceChain:    sourceChain,
		Payload:        payload,
	}, nil
}

func encodeTokenTransferPayload(p TokenTransferPayload) ([]byte, error) {
	if len(p.Sender) != homeAddressLen && len(p.Sender) != evmAddressLen {
		return nil, bridgeerr.ErrInvalidAddressLen
	}
	if len(p.Target) != homeAddressLen && len(p.Target) != evmAddressLen {
		return nil, bridgeerr.ErrInvalidAddressLen
	}
	out := make([]byte, 0, tokenTransferPayloadLen)
	out = wire.PutU8(out, uint8(len(p.Sender)))
	out = wire.PutBytes(out, p.Sender)
	out = wire.PutU8(out, uint8(p.TargetChain))
	out = wire.PutU8(out, uint8(len(p.Target)))
	out = wire.PutBytes(out, p.Target)
	out = wire.PutU8(out, p.TokenType)
	out = wire.PutU64BE(out, p.Amount)
	if len(out) != tokenTransferPayloadLen {
		return nil, bridgeerr.ErrInvalidPayloadLen
	}
	return out, nil
}

// ExtractTokenTransferPayload validates and parses the payload of a
// token-transfer message. The payload must be exactly 64 bytes.
func ExtractTokenTransferPayload(payload []byte) (TokenTransferPayload, error) {
	if len(payload) != tokenTransferPayloadLen {
		return TokenTransferPayload{}, bridgeerr.ErrInvalidPayloadLen
	}
	r := wire.NewReader(payload)
	senderLen, err := r.PeelU8()
	if err != nil {
		return TokenTransferPayload{}, err
	}
	sender, err := r.PeelBytes(int(senderLen))
	if err != nil {
		return TokenTransferPayload{}, err
	}
	targetChain, err := r.PeelU8()
	if err != nil {
		return TokenTransferPayload{}, err
	}
	targetLen, err := r.PeelU8()
	if err != nil {
		return TokenTransferPayload{}, err
	}
	target, err := r.PeelBytes(int(targetLen))
	if err != nil {
		return TokenTransferPayload{}, err
	}
	tokenType, err := r.PeelU8()
	if err != nil {
		return TokenTransferPayload{}, err
	}
	amount, err := r.PeelU64BE()
	if err != nil {
		return TokenTransferPayload{}, err
	}
	if err := r.AssertEmpty(); err != nil {
		return TokenTransferPayload{}, err
	}
	if len(sender) != homeAddressLen && len(sender) != evmAddressLen {
		return TokenTransferPayload{}, bridgeerr.ErrInvalidAddressLen
	}
	if len(target) != homeAddressLen && len(target) != evmAddressLen {
		return TokenTransferPayload{}, bridgeerr.ErrInvalidAddressLen
	}
	return TokenTransferPayload{
		Sender:      sender,
		TargetChain: chainregistry.ChainID(targetChain),
		Target:      target,
		TokenType:   tokenType,
		Amount:      amount,
	}, nil
}
