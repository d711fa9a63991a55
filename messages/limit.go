package messages

import (
	"nhbridge/chainregistry"
	"nhbridge/wire"
)

// UpdateBridgeLimitPayload carries the sending chain and new route limit. The
// message's own SourceChain field is the *receiving* chain per spec §6.1.
type UpdateBridgeLimitPayload struct {
	SendingChain chainregistry.ChainID
	NewLimit     uint64 // 8-dp USD
}

// NewUpdateBridgeLimitMessage constructs an update-bridge-limit BridgeMessage.
// receivingChain is the message's source_chain field; sendingChain identifies
// the route being capped.
func NewUpdateBridgeLimitMessage(seqNum uint64, receivingChain chainregistry.ChainID, p UpdateBridgeLimitPayload) BridgeMessage {
	payload := wire.PutU8(nil, uint8(p.SendingChain))
	payload = wire.PutU64BE(payload, p.NewLimit)
	return BridgeMessage{
		MessageType:    MessageTypeUpdateBridgeLimit,
		MessageVersion: CurrentMessageVersion,
		SeqNum:         seqNum,
		SourceChain:    receivingChain,
		Payload:        payload,
	}
}

// ExtractUpdateBridgeLimit parses sending_chain:u8 || new_limit:u64-BE.
func ExtractUpdateBridgeLimit(payload []byte) (UpdateBridgeLimitPayload, error) {
	r := wire.NewReader(payload)
	sendingChain, err := r.PeelU8()
	if err != nil {
		return UpdateBridgeLimitPayload{}, err
	}
	newLimit, err := r.PeelU64BE()
	if err != nil {
		return UpdateBridgeLimitPayload{}, err
	}
	if err := r.AssertEmpty(); err != nil {
		return UpdateBridgeLimitPayload{}, err
	}
	return UpdateBridgeLimitPayload{
		SendingChain: chainregistry.ChainID(sendingChain),
		NewLimit:     newLimit,
	}, nil
}
