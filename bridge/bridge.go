// Package bridge implements the lifecycle state machine that ties the
// treasury, limiter, and committee together: send/approve/claim for token
// transfers and dispatch of signed governance messages (spec C8).
package bridge

import (
	"bytes"

	"nhbridge/bridgeerr"
	"nhbridge/chainregistry"
	"nhbridge/committee"
	"nhbridge/events"
	"nhbridge/limiter"
	"nhbridge/messages"
	"nhbridge/treasury"
)

const evmAddressLen = 20

// BridgeRecord is the lifecycle record for a single bridge message, keyed by
// its BridgeMessageKey (spec §3.6).
type BridgeRecord struct {
	Message            messages.BridgeMessage
	VerifiedSignatures [][]byte // nil means "no signatures yet" (Pending)
	Claimed            bool
}

func (r *BridgeRecord) approved() bool { return r.VerifiedSignatures != nil }

// Bridge is the orchestrator for one home-chain deployment. The zero value is
// not usable; construct with New.
type Bridge struct {
	ChainID  chainregistry.ChainID
	registry *chainregistry.Registry
	comm     *committee.Committee
	treas    *treasury.Treasury
	lim      *limiter.RouteLimiter
	emitter  events.Emitter

	sequenceNums map[messages.MessageType]uint64
	records      map[messages.BridgeMessageKey]*BridgeRecord
	paused       bool
}

// New constructs an orchestrator for chainID, wiring the committee, treasury,
// and limiter it delegates to.
func New(chainID chainregistry.ChainID, registry *chainregistry.Registry, comm *committee.Committee, treas *treasury.Treasury, lim *limiter.RouteLimiter, emitter events.Emitter) *Bridge {
	if emitter == nil {
		emitter = events.NoopEmitter{}
	}
	return &Bridge{
		ChainID:      chainID,
		registry:     registry,
		comm:         comm,
		treas:        treas,
		lim:          lim,
		emitter:      emitter,
		sequenceNums: make(map[messages.MessageType]uint64),
		records:      make(map[messages.BridgeMessageKey]*BridgeRecord),
	}
}

// SetEmitter overrides the event emitter. Passing nil resets to a no-op.
func (b *Bridge) SetEmitter(emitter events.Emitter) {
	if emitter == nil {
		emitter = events.NoopEmitter{}
	}
	b.emitter = emitter
}

// Paused reports the current emergency-pause state.
func (b *Bridge) Paused() bool { return b.paused }

// Record returns a copy of the stored record for key, if any.
func (b *Bridge) Record(key messages.BridgeMessageKey) (BridgeRecord, bool) {
	rec, ok := b.records[key]
	if !ok {
		return BridgeRecord{}, false
	}
	return *rec, true
}

// peekSeqNum returns the next sequence number for msgType without consuming
// it. Callers must only persist the bump via commitSeqNum once every
// fallible step that depends on the number has succeeded, so a failed send
// never burns a gap in the sequence (spec §3.2).
func (b *Bridge) peekSeqNum(msgType messages.MessageType) uint64 {
	return b.sequenceNums[msgType]
}

func (b *Bridge) commitSeqNum(msgType messages.MessageType, n uint64) {
	b.sequenceNums[msgType] = n + 1
}

// FormNextCommittee delegates to the underlying committee's
// TryCreateNextCommittee, replacing the active roster from pending
// registrations once minParticipationBps of active-validator voting power
// has registered. Exposed on Bridge so callers only need one orchestrator
// handle for the full lifecycle, rather than reaching past it into the
// committee package directly.
func (b *Bridge) FormNextCommittee(minParticipationBps uint32) bool {
	return b.comm.TryCreateNextCommittee(minParticipationBps)
}

// CommitteeEpoch returns the underlying committee's current epoch.
func (b *Bridge) CommitteeEpoch() uint64 { return b.comm.Epoch() }

// CommitteeMembers returns a snapshot of the underlying committee's members.
func (b *Bridge) CommitteeMembers() []committee.CommitteeMember { return b.comm.Members() }

// SendToken burns token and records a new outbound transfer to targetChain
// (spec §4.7).
func (b *Bridge) SendToken(senderHomeAddress []byte, targetChain chainregistry.ChainID, targetAddress []byte, token treasury.Token) (messages.BridgeMessage, error) {
	if b.paused {
		return messages.BridgeMessage{}, bridgeerr.ErrBridgeUnavailable
	}
	if !b.registry.IsValidRoute(b.ChainID, targetChain) {
		return messages.BridgeMessage{}, bridgeerr.ErrInvalidBridgeRoute
	}
	if len(targetAddress) != evmAddressLen {
		return messages.BridgeMessage{}, bridgeerr.ErrInvalidEVMAddressLen
	}
	if token.Amount == 0 {
		return messages.BridgeMessage{}, bridgeerr.ErrTokenValueZero
	}
	tokenID, err := b.treas.TokenID(token.TypeName)
	if err != nil {
		return messages.BridgeMessage{}, err
	}

	seqNum := b.peekSeqNum(messages.MessageTypeTokenTransfer)
	msg, err := messages.NewTokenTransferMessage(seqNum, b.ChainID, messages.TokenTransferPayload{
		Sender:      senderHomeAddress,
		TargetChain: targetChain,
		Target:      targetAddress,
		TokenType:   tokenID,
		Amount:      token.Amount,
	})
	if err != nil {
		return messages.BridgeMessage{}, err
	}

	if err := b.treas.Burn(token); err != nil {
		return messages.BridgeMessage{}, err
	}
	b.commitSeqNum(messages.MessageTypeTokenTransfer, seqNum)

	b.records[msg.Key()] = &BridgeRecord{Message: msg}
	b.emitter.Emit(events.TokenDeposited{
		SeqNum:        seqNum,
		SourceChain:   uint8(b.ChainID),
		TargetChain:   uint8(targetChain),
		TokenType:     tokenID,
		Amount:        token.Amount,
		TargetAddress: append([]byte(nil), targetAddress...),
	})
	return msg, nil
}

// ApproveTokenTransfer verifies signatures and stores or idempotently
// re-confirms the approved state of a token-transfer message (spec §4.7).
func (b *Bridge) ApproveTokenTransfer(msg messages.BridgeMessage, signatures [][]byte) error {
	if b.paused {
		return bridgeerr.ErrBridgeUnavailable
	}
	if msg.MessageType != messages.MessageTypeTokenTransfer {
		return bridgeerr.ErrUnexpectedMessageType
	}
	if msg.MessageVersion != messages.CurrentMessageVersion {
		return bridgeerr.ErrUnexpectedVersion
	}
	payload, err := messages.ExtractTokenTransferPayload(msg.Payload)
	if err != nil {
		return err
	}
	homeInitiated := msg.SourceChain == b.ChainID
	remoteTargeted := payload.TargetChain == b.ChainID
	if !homeInitiated && !remoteTargeted {
		return bridgeerr.ErrUnexpectedChainID
	}

	if err := b.comm.VerifySignatures(msg, signatures); err != nil {
		return err
	}

	key := msg.Key()
	existing, ok := b.records[key]

	if homeInitiated {
		if !ok {
			return bridgeerr.ErrMessageNotFound
		}
		if !existing.Message.Equal(msg) {
			return bridgeerr.ErrMalformedMessage
		}
		if existing.approved() {
			b.emitter.Emit(events.TokenTransferAlreadyApproved{SourceChain: uint8(msg.SourceChain), SeqNum: msg.SeqNum})
			return nil
		}
		existing.VerifiedSignatures = signatures
		b.emitter.Emit(events.TokenTransferApproved{SourceChain: uint8(msg.SourceChain), SeqNum: msg.SeqNum})
		return nil
	}

	if ok {
		b.emitter.Emit(events.TokenTransferAlreadyApproved{SourceChain: uint8(msg.SourceChain), SeqNum: msg.SeqNum})
		return nil
	}
	b.records[key] = &BridgeRecord{Message: msg, VerifiedSignatures: signatures}
	b.emitter.Emit(events.TokenTransferApproved{SourceChain: uint8(msg.SourceChain), SeqNum: msg.SeqNum})
	return nil
}

// claim implements the shared body of ClaimToken and ClaimAndTransferToken.
// When checkRecipient is true, callerAddress must bytewise-equal the
// message's recorded target address.
func (b *Bridge) claim(callerAddress []byte, checkRecipient bool, clockMs uint64, sourceChain chainregistry.ChainID, seqNum uint64, tokenTypeName string) (*treasury.Token, error) {
	key := messages.BridgeMessageKey{SourceChain: sourceChain, MessageType: messages.MessageTypeTokenTransfer, BridgeSeqNum: seqNum}
	rec, ok := b.records[key]
	if !ok {
		return nil, bridgeerr.ErrMessageNotFound
	}
	if !rec.approved() {
		return nil, bridgeerr.ErrUnauthorisedClaim
	}
	payload, err := messages.ExtractTokenTransferPayload(rec.Message.Payload)
	if err != nil {
		return nil, err
	}
	if payload.TargetChain != b.ChainID {
		return nil, bridgeerr.ErrUnexpectedChainID
	}
	if checkRecipient && !bytes.Equal(callerAddress, payload.Target) {
		return nil, bridgeerr.ErrUnauthorisedClaim
	}
	resolvedType, err := b.treas.TypeNameForID(payload.TokenType)
	if err != nil {
		return nil, err
	}
	if resolvedType != tokenTypeName {
		return nil, bridgeerr.ErrInvalidTokenType
	}

	if rec.Claimed {
		b.emitter.Emit(events.TokenTransferAlreadyClaimed{SourceChain: uint8(sourceChain), SeqNum: seqNum})
		return nil, nil
	}

	route := chainregistry.Route{Source: sourceChain, Destination: b.ChainID}
	within, err := b.lim.CheckAndRecordSendingTransfer(route, b.treas, tokenTypeName, payload.Amount, clockMs)
	if err != nil {
		return nil, err
	}
	if !within {
		b.emitter.Emit(events.TokenTransferLimitExceed{SourceChain: uint8(sourceChain), SeqNum: seqNum})
		return nil, nil
	}

	token, err := b.treas.Mint(tokenTypeName, payload.Amount)
	if err != nil {
		return nil, err
	}
	rec.Claimed = true
	b.emitter.Emit(events.TokenTransferClaimed{
		SourceChain: uint8(sourceChain),
		SeqNum:      seqNum,
		Recipient:   append([]byte(nil), payload.Target...),
		TokenType:   payload.TokenType,
		Amount:      payload.Amount,
	})
	return &token, nil
}

// ClaimToken mints the recorded transfer to the caller, who must equal the
// message's recorded recipient address (spec §4.7). A nil, nil result means
// an idempotent re-claim or a limiter rejection; both cases emit their own
// event rather than returning an error.
func (b *Bridge) ClaimToken(callerAddress []byte, clockMs uint64, sourceChain chainregistry.ChainID, seqNum uint64, tokenTypeName string) (*treasury.Token, error) {
	return b.claim(callerAddress, true, clockMs, sourceChain, seqNum, tokenTypeName)
}

// ClaimAndTransferToken is ClaimToken without the recipient check, so anyone
// may call it (spec §4.7). It returns the minted token to its caller and
// names the recorded recipient in the TokenTransferClaimed event; it does not
// itself move the token to that recipient.
func (b *Bridge) ClaimAndTransferToken(clockMs uint64, sourceChain chainregistry.ChainID, seqNum uint64, tokenTypeName string) (*treasury.Token, error) {
	return b.claim(nil, false, clockMs, sourceChain, seqNum, tokenTypeName)
}

// ExecuteSystemMessage dispatches a signed governance message against the
// committee, treasury, or limiter, or toggles pause state (spec §4.7). The
// governance sequence number for msg.MessageType is only committed once the
// dispatch itself has succeeded, so a rejected message never desyncs the
// relayer's retry sequence (spec §3.2).
func (b *Bridge) ExecuteSystemMessage(msg messages.BridgeMessage, signatures [][]byte) error {
	if msg.MessageVersion != messages.CurrentMessageVersion {
		return bridgeerr.ErrUnexpectedVersion
	}
	if msg.SourceChain != b.ChainID {
		return bridgeerr.ErrUnexpectedChainID
	}
	expected := b.sequenceNums[msg.MessageType]
	if msg.SeqNum != expected {
		return bridgeerr.ErrUnexpectedSeqNum
	}
	if err := b.comm.VerifySignatures(msg, signatures); err != nil {
		return err
	}

	if err := b.dispatchSystemMessage(msg); err != nil {
		return err
	}

	b.sequenceNums[msg.MessageType] = expected + 1
	return nil
}

func (b *Bridge) dispatchSystemMessage(msg messages.BridgeMessage) error {
	switch msg.MessageType {
	case messages.MessageTypeEmergencyOp:
		return b.executeEmergencyOp(msg)
	case messages.MessageTypeCommitteeBlocklist:
		listType, addrs, err := messages.ExtractCommitteeBlocklist(msg.Payload)
		if err != nil {
			return err
		}
		return b.comm.ExecuteBlocklist(listType, addrs)
	case messages.MessageTypeUpdateBridgeLimit:
		p, err := messages.ExtractUpdateBridgeLimit(msg.Payload)
		if err != nil {
			return err
		}
		route := chainregistry.Route{Source: p.SendingChain, Destination: b.ChainID}
		b.lim.UpdateRouteLimit(route, p.NewLimit)
		return nil
	case messages.MessageTypeUpdateAssetPrice:
		p, err := messages.ExtractUpdateAssetPrice(msg.Payload)
		if err != nil {
			return err
		}
		return b.treas.UpdateAssetNotionalPrice(p.TokenID, p.NewPrice)
	case messages.MessageTypeAddTokensOnHome:
		return b.executeAddTokensOnHome(msg)
	default:
		return bridgeerr.ErrUnexpectedMessageType
	}
}

// executeAddTokensOnHome validates every entry of the batch — length match,
// non-zero price, an open waiting-room slot, and no id collision either
// against already-supported tokens or within the batch itself — before
// promoting any of them, so a failure partway through never leaves a partial
// batch committed into the treasury's token table.
func (b *Bridge) executeAddTokensOnHome(msg messages.BridgeMessage) error {
	p, err := messages.ExtractAddTokensOnHome(msg.Payload)
	if err != nil {
		return err
	}
	if len(p.IDs) != len(p.TypeNames) || len(p.IDs) != len(p.Prices) {
		return bridgeerr.ErrLengthMismatch
	}

	seenIDs := make(map[uint8]bool, len(p.IDs))
	seenTypeNames := make(map[string]bool, len(p.IDs))
	for i, id := range p.IDs {
		typeName := string(p.TypeNames[i])
		if p.Prices[i] == 0 {
			return bridgeerr.ErrZeroNotionalPrice
		}
		if !b.treas.IsWaitingToken(typeName) {
			return bridgeerr.ErrTokenNotWaiting
		}
		if seenTypeNames[typeName] {
			return bridgeerr.ErrTokenNotWaiting
		}
		if b.treas.TokenIDRegistered(id) || seenIDs[id] {
			return bridgeerr.ErrTokenAlreadyRegistered
		}
		seenIDs[id] = true
		seenTypeNames[typeName] = true
	}

	for i, id := range p.IDs {
		if err := b.treas.AddNewToken(string(p.TypeNames[i]), id, p.Prices[i]); err != nil {
			return err
		}
	}
	return nil
}

func (b *Bridge) executeEmergencyOp(msg messages.BridgeMessage) error {
	op, err := messages.ExtractEmergencyOp(msg.Payload)
	if err != nil {
		return err
	}
	switch op {
	case messages.EmergencyOpPause:
		if b.paused {
			return bridgeerr.ErrAlreadyPaused
		}
		b.paused = true
		b.emitter.Emit(events.Paused{})
		return nil
	case messages.EmergencyOpUnpause:
		if !b.paused {
			return bridgeerr.ErrNotPaused
		}
		b.paused = false
		b.emitter.Emit(events.Unpaused{})
		return nil
	default:
		return bridgeerr.ErrUnexpectedMessageType
	}
}
