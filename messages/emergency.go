package messages

import (
	"nhbridge/bridgeerr"
	"nhbridge/chainregistry"
	"nhbridge/wire"
)

// EmergencyOpType selects pause or unpause within an emergency-op message.
type EmergencyOpType uint8

const (
	EmergencyOpPause   EmergencyOpType = 0
	EmergencyOpUnpause EmergencyOpType = 1
)

// NewEmergencyOpMessage constructs an emergency-op BridgeMessage.
func NewEmergencyOpMessage(seqNum uint64, sourceChain chainregistry.ChainID, op EmergencyOpType) BridgeMessage {
	payload := wire.PutU8(nil, uint8(op))
	return BridgeMessage{
		MessageType:    MessageTypeEmergencyOp,
		MessageVersion: CurrentMessageVersion,
		SeqNum:         seqNum,
		SourceChain:    sourceChain,
		Payload:        payload,
	}
}

// ExtractEmergencyOp parses the single op_type byte.
func ExtractEmergencyOp(payload []byte) (EmergencyOpType, error) {
	r := wire.NewReader(payload)
	op, err := r.PeelU8()
	if err != nil {
		return 0, err
	}
	if err := r.AssertEmpty(); err != nil {
		return 0, err
	}
	if op != uint8(EmergencyOpPause) && op != uint8(EmergencyOpUnpause) {
		return 0, bridgeerr.ErrUnexpectedMessageType
	}
	return EmergencyOpType(op), nil
}
