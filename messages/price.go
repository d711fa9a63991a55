package messages

import (
	"nhbridge/chainregistry"
	"nhbridge/wire"
)

// UpdateAssetPricePayload carries the token id and its new 8-dp USD price.
type UpdateAssetPricePayload struct {
	TokenID  uint8
	NewPrice uint64
}

// NewUpdateAssetPriceMessage constructs an update-asset-price BridgeMessage.
func NewUpdateAssetPriceMessage(seqNum uint64, sourceChain chainregistry.ChainID, p UpdateAssetPricePayload) BridgeMessage {
	payload := wire.PutU8(nil, p.TokenID)
	payload = wire.PutU64BE(payload, p.NewPrice)
	return BridgeMessage{
		MessageType:    MessageTypeUpdateAssetPrice,
		MessageVersion: CurrentMessageVersion,
		SeqNum:         seqNum,
		SourceChain:    sourceChain,
		Payload:        payload,
	}
}

// ExtractUpdateAssetPrice parses token_id:u8 || new_price:u64-BE.
func ExtractUpdateAssetPrice(payload []byte) (UpdateAssetPricePayload, error) {
	r := wire.NewReader(payload)
	tokenID, err := r.PeelU8()
	if err != nil {
		return UpdateAssetPricePayload{}, err
	}
	newPrice, err := r.PeelU64BE()
	if err != nil {
		return UpdateAssetPricePayload{}, err
	}
	if err := r.AssertEmpty(); err != nil {
		return UpdateAssetPricePayload{}, err
	}
	return UpdateAssetPricePayload{TokenID: tokenID, NewPrice: newPrice}, nil
}
