// Package messages constructs and parses the six bridge-message variants
// and their domain-separated signing preimage (spec C4). Every constructor
// fixes message_version to CurrentMessageVersion; every extractor reverses
// the payload once into a forward-reading wire.Reader, peels the fields, and
// asserts the remainder is empty.
package messages

import (
	"bytes"

	"nhbridge/bridgecrypto"
	"nhbridge/bridgeerr"
	"nhbridge/chainregistry"
	"nhbridge/wire"
)

// MessageType is the wire tag identifying which of the six payload shapes a
// BridgeMessage carries. Values are part of the wire protocol.
type MessageType uint8

const (
	MessageTypeTokenTransfer     MessageType = 0
	MessageTypeCommitteeBlocklist MessageType = 1
	MessageTypeEmergencyOp       MessageType = 2
	MessageTypeUpdateBridgeLimit MessageType = 3
	MessageTypeUpdateAssetPrice  MessageType = 4
	MessageTypeAddTokensOnHome   MessageType = 5
)

// CurrentMessageVersion is the only message_version accepted in this
// revision of the protocol.
const CurrentMessageVersion uint8 = 1

const headerLen = 11 // type(1) + version(1) + seq_num(8) + source_chain(1)

// BridgeMessage is the top-level envelope shared by every message type.
type BridgeMessage struct {
	MessageType    MessageType
	MessageVersion uint8
	SeqNum         uint64
	SourceChain    chainregistry.ChainID
	Payload        []byte
}

// BridgeMessageKey uniquely identifies any message ever handled by the
// bridge.
type BridgeMessageKey struct {
	SourceChain  chainregistry.ChainID
	MessageType  MessageType
	BridgeSeqNum uint64
}

// Key derives the message's identifying key.
func (m BridgeMessage) Key() BridgeMessageKey {
	return BridgeMessageKey{
		SourceChain:  m.SourceChain,
		MessageType:  m.MessageType,
		BridgeSeqNum: m.SeqNum,
	}
}

// Serialize encodes the full wire format: byte 0 message_type, byte 1
// message_version, bytes 2..=9 seq_num big-endian, byte 10 source_chain,
// bytes 11.. payload.
func (m BridgeMessage) Serialize() []byte {
	out := make([]byte, 0, headerLen+len(m.Payload))
	out = wire.PutU8(out, uint8(m.MessageType))
	out = wire.PutU8(out, m.MessageVersion)
	out = wire.PutU64BE(out, m.SeqNum)
	out = wire.PutU8(out, uint8(m.SourceChain))
	out = wire.PutBytes(out, m.Payload)
	return out
}

// Deserialize parses the fixed-width header and captures the remaining bytes
// as the type-specific payload. It does not itself validate the payload
// shape; call the matching ExtractXxx function for that.
func Deserialize(data []byte) (BridgeMessage, error) {
	if len(data) < headerLen {
		return BridgeMessage{}, bridgeerr.ErrOutOfRange
	}
	seqNum, err := wire.DecodeU64BE(data[2:10])
	if err != nil {
		return BridgeMessage{}, err
	}
	return BridgeMessage{
		MessageType:    MessageType(data[0]),
		MessageVersion: data[1],
		SeqNum:         seqNum,
		SourceChain:    chainregistry.ChainID(data[10]),
		Payload:        append([]byte(nil), data[headerLen:]...),
	}, nil
}

// Equal reports bytewise equality of two messages, used by the orchestrator
// to compare a provided message against a stored record.
func (m BridgeMessage) Equal(other BridgeMessage) bool {
	return bytes.Equal(m.Serialize(), other.Serialize())
}

// SigningPreimage returns the domain-separated bytes fed to keccak256 before
// ECDSA recovery: DomainSeparator || serialize(message).
func SigningPreimage(m BridgeMessage) []byte {
	return bridgecrypto.PrefixedPreimage(m.Serialize())
}
