// Package treasury implements the token-id <-> token-type registry, decimal
// multipliers, notional-USD prices, and mint/burn dispatch consumed by the
// limiter and the bridge orchestrator (spec C5).
package treasury

import (
	"nhbridge/bridgeerr"
	"nhbridge/events"
)

// Token is a tagged amount of a registered token type. The treasury never
// constructs a Token out of thin air: one is only produced by Mint, and only
// consumed by Burn.
type Token struct {
	TypeName string
	Amount   uint64
}

// MintBurnCapability is the external mint/burn authority for one token type,
// held exclusively by the treasury. This models the source's
// MintCapability<T>/BurnCapability<T> value objects: the surrounding chain
// environment owns the actual on-chain supply, the treasury only ever holds
// one capability value per type and never clones it.
type MintBurnCapability interface {
	// Mint produces amount of the token. Returns the resulting Token.
	Mint(amount uint64) (Token, error)
	// Burn consumes token, which must have been produced by this capability's
	// Mint or received from a caller burning their own balance.
	Burn(token Token) error
	// Supply reports the total circulating supply at the moment of the call.
	Supply() (uint64, error)
}

// TokenMetadata is the registered description of a supported token type.
type TokenMetadata struct {
	ID                  uint8
	DecimalMultiplier   uint64
	NotionalValueUSD8dp uint64
	NativeToken         bool
}

// waitingRoomEntry is a foreign token pending promotion to supported.
type waitingRoomEntry struct {
	typeName string
	decimals uint8
	cap      MintBurnCapability
}

// Treasury holds the three mappings described in spec §3.3: type_name ->
// metadata, id -> type_name, and a waiting room of type_name -> pending
// entry. The zero value is not usable; construct with New.
type Treasury struct {
	typeToMetadata map[string]TokenMetadata
	idToType       map[uint8]string
	waitingRoom    map[string]waitingRoomEntry
	capabilities   map[string]MintBurnCapability
	emitter        events.Emitter
}

// New constructs an empty treasury. Only the designated bridge owner should
// call this in the surrounding chain environment.
func New(emitter events.Emitter) *Treasury {
	if emitter == nil {
		emitter = events.NoopEmitter{}
	}
	return &Treasury{
		typeToMetadata: make(map[string]TokenMetadata),
		idToType:       make(map[uint8]string),
		waitingRoom:    make(map[string]waitingRoomEntry),
		capabilities:   make(map[string]MintBurnCapability),
		emitter:        emitter,
	}
}

// SetEmitter overrides the event emitter. Passing nil resets to a no-op.
func (t *Treasury) SetEmitter(emitter events.Emitter) {
	if emitter == nil {
		emitter = events.NoopEmitter{}
	}
	t.emitter = emitter
}

// RegisterForeignToken places (typeName, decimals) into the waiting room and
// stores its mint/burn capability. Fails if the token already has non-zero
// supply at the moment the capability is registered (spec §3.3 invariant).
func (t *Treasury) RegisterForeignToken(typeName string, decimals uint8, cap MintBurnCapability) error {
	supply, err := cap.Supply()
	if err != nil {
		return err
	}
	if supply != 0 {
		return bridgeerr.ErrNonZeroSupply
	}
	t.waitingRoom[typeName] = waitingRoomEntry{typeName: typeName, decimals: decimals, cap: cap}
	t.capabilities[typeName] = cap
	return nil
}

// AddNewToken promotes a waiting-room entry to supported, assigning it a
// token id and initial notional price. notionalValue must be strictly
// positive.
func (t *Treasury) AddNewToken(typeName string, tokenID uint8, notionalValue uint64) error {
	entry, ok := t.waitingRoom[typeName]
	if !ok {
		return bridgeerr.ErrTokenNotWaiting
	}
	if notionalValue == 0 {
		return bridgeerr.ErrZeroNotionalPrice
	}
	if _, exists := t.idToType[tokenID]; exists {
		return bridgeerr.ErrTokenAlreadyRegistered
	}
	multiplier := uint64(1)
	for i := uint8(0); i < entry.decimals; i++ {
		multiplier *= 10
	}
	t.typeToMetadata[typeName] = TokenMetadata{
		ID:                  tokenID,
		DecimalMultiplier:   multiplier,
		NotionalValueUSD8dp: notionalValue,
	}
	t.idToType[tokenID] = typeName
	delete(t.waitingRoom, typeName)
	t.emitter.Emit(events.NewToken{TokenID: tokenID, TypeName: typeName, NotionalValue: notionalValue})
	return nil
}

// IsWaitingToken reports whether typeName has been registered via
// RegisterForeignToken but not yet promoted via AddNewToken.
func (t *Treasury) IsWaitingToken(typeName string) bool {
	_, ok := t.waitingRoom[typeName]
	return ok
}

// TokenIDRegistered reports whether tokenID is already assigned to a
// supported token.
func (t *Treasury) TokenIDRegistered(tokenID uint8) bool {
	_, ok := t.idToType[tokenID]
	return ok
}

// Burn consumes token through the stored capability for its type.
func (t *Treasury) Burn(token Token) error {
	cap, ok := t.capabilities[token.TypeName]
	if !ok {
		return bridgeerr.ErrMissingCapability
	}
	return cap.Burn(token)
}

// Mint produces amount of typeName through its stored capability.
func (t *Treasury) Mint(typeName string, amount uint64) (Token, error) {
	cap, ok := t.capabilities[typeName]
	if !ok {
		return Token{}, bridgeerr.ErrMissingCapability
	}
	return cap.Mint(amount)
}

// UpdateAssetNotionalPrice sets a supported token's notional USD price.
// newPrice must be strictly positive.
func (t *Treasury) UpdateAssetNotionalPrice(tokenID uint8, newPrice uint64) error {
	if newPrice == 0 {
		return bridgeerr.ErrZeroNotionalPrice
	}
	typeName, ok := t.idToType[tokenID]
	if !ok {
		return bridgeerr.ErrUnsupportedTokenType
	}
	meta := t.typeToMetadata[typeName]
	meta.NotionalValueUSD8dp = newPrice
	t.typeToMetadata[typeName] = meta
	t.emitter.Emit(events.UpdateTokenPrice{TokenID: tokenID, NewPrice: newPrice})
	return nil
}

// Metadata returns the registered metadata for typeName.
func (t *Treasury) Metadata(typeName string) (TokenMetadata, error) {
	meta, ok := t.typeToMetadata[typeName]
	if !ok {
		return TokenMetadata{}, bridgeerr.ErrUnsupportedTokenType
	}
	return meta, nil
}

// TypeNameForID resolves a token id back to its registered type name.
func (t *Treasury) TypeNameForID(id uint8) (string, error) {
	typeName, ok := t.idToType[id]
	if !ok {
		return "", bridgeerr.ErrUnsupportedTokenType
	}
	return typeName, nil
}

// TokenID returns the registered id for typeName.
func (t *Treasury) TokenID(typeName string) (uint8, error) {
	meta, err := t.Metadata(typeName)
	if err != nil {
		return 0, err
	}
	return meta.ID, nil
}

// DecimalMultiplier returns 10^decimals for typeName.
func (t *Treasury) DecimalMultiplier(typeName string) (uint64, error) {
	meta, err := t.Metadata(typeName)
	if err != nil {
		return 0, err
	}
	return meta.DecimalMultiplier, nil
}

// NotionalValue returns the current 8-dp USD notional price for typeName.
func (t *Treasury) NotionalValue(typeName string) (uint64, error) {
	meta, err := t.Metadata(typeName)
	if err != nil {
		return 0, err
	}
	return meta.NotionalValueUSD8dp, nil
}
