package messages

import (
	"nhbridge/bridgeerr"
	"nhbridge/chainregistry"
	"nhbridge/wire"
)

// BlocklistType selects whether the listed addresses are being added to or
// removed from the block-list. Per spec §4.6: type != 1 means "blocklist",
// type == 1 means "unblocklist".
type BlocklistType uint8

const (
	BlocklistTypeBlock   BlocklistType = 0
	BlocklistTypeUnblock BlocklistType = 1
)

// NewCommitteeBlocklistMessage constructs a block-list BridgeMessage. addrs
// must be non-empty 20-byte EVM addresses.
func NewCommitteeBlocklistMessage(seqNum uint64, sourceChain chainregistry.ChainID, listType BlocklistType, addrs [][20]byte) (BridgeMessage, error) {
	if len(addrs) == 0 {
		return BridgeMessage{}, bridgeerr.ErrEmptyList
	}
	payload := wire.PutU8(nil, uint8(listType))
	payload = wire.PutU8(payload, uint8(len(addrs)))
	for _, a := range addrs {
		payload = wire.PutBytes(payload, a[:])
	}
	return BridgeMessage{
		MessageType:    MessageTypeCommitteeBlocklist,
		MessageVersion: CurrentMessageVersion,
		SeqNum:         seqNum,
		SourceChain:    sourceChain,
		Payload:        payload,
	}, nil
}

// ExtractCommitteeBlocklist parses type:u8 || count:u8 || (address:20b){count}.
func ExtractCommitteeBlocklist(payload []byte) (BlocklistType, [][20]byte, error) {
	r := wire.NewReader(payload)
	listType, err := r.PeelU8()
	if err != nil {
		return 0, nil, err
	}
	count, err := r.PeelU8()
	if err != nil {
		return 0, nil, err
	}
	if count == 0 {
		return 0, nil, bridgeerr.ErrEmptyList
	}
	addrs := make([][20]byte, count)
	for i := 0; i < int(count); i++ {
		b, err := r.PeelBytes(evmAddressLen)
		if err != nil {
			return 0, nil, err
		}
		copy(addrs[i][:], b)
	}
	if err := r.AssertEmpty(); err != nil {
		return 0, nil, err
	}
	return BlocklistType(listType), addrs, nil
}
