package messages

import (
	"nhbridge/chainregistry"
	"nhbridge/wire"
)

// AddTokensOnHomePayload registers a batch of new tokens. IDs, TypeNames, and
// Prices must have equal length; prices are 8-dp USD notional values.
type AddTokensOnHomePayload struct {
	Native    bool
	IDs       []byte
	TypeNames [][]byte
	Prices    []uint64
}

// NewAddTokensOnHomeMessage constructs an add-tokens-on-home BridgeMessage.
func NewAddTokensOnHomeMessage(seqNum uint64, sourceChain chainregistry.ChainID, p AddTokensOnHomePayload) BridgeMessage {
	var nativeByte uint8
	if p.Native {
		nativeByte = 1
	}
	payload := wire.PutU8(nil, nativeByte)
	payload = wire.PutVecU8(payload, p.IDs)
	payload = wire.PutVecVecU8(payload, p.TypeNames)
	payload = wire.PutVecU64(payload, p.Prices)
	return BridgeMessage{
		MessageType:    MessageTypeAddTokensOnHome,
		MessageVersion: CurrentMessageVersion,
		SeqNum:         seqNum,
		SourceChain:    sourceChain,
		Payload:        payload,
	}
}

// ExtractAddTokensOnHome parses native:u8 || BCS(vec<u8> ids) ||
// BCS(vec<vec<u8>> type_names) || BCS(vec<u64 LE> prices). The caller is
// responsible for checking that the three vectors have equal length (spec
// §4.7 — ELengthMismatch is a bridge-level, not codec-level, error).
func ExtractAddTokensOnHome(payload []byte) (AddTokensOnHomePayload, error) {
	r := wire.NewReader(payload)
	nativeByte, err := r.PeelU8()
	if err != nil {
		return AddTokensOnHomePayload{}, err
	}
	ids, err := r.PeelVecU8()
	if err != nil {
		return AddTokensOnHomePayload{}, err
	}
	typeNames, err := r.PeelVecVecU8()
	if err != nil {
		return AddTokensOnHomePayload{}, err
	}
	prices, err := r.PeelVecU64()
	if err != nil {
		return AddTokensOnHomePayload{}, err
	}
	if err := r.AssertEmpty(); err != nil {
		return AddTokensOnHomePayload{}, err
	}
	return AddTokensOnHomePayload{
		Native:    nativeByte == 1,
		IDs:       ids,
		TypeNames: typeNames,
		Prices:    prices,
	}, nil
}
