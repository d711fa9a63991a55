// Package committee implements the weighted-voting member registry,
// block-list, and signature aggregation/verification consumed by the bridge
// orchestrator (spec C7).
package committee

import (
	"nhbridge/bridgecrypto"
	"nhbridge/bridgeerr"
	"nhbridge/crypto"
	"nhbridge/events"
	"nhbridge/messages"
)

const (
	compressedPubkeyLen = 33
	evmAddressLen       = 20
	votingPowerScaleBps = 10_000
)

// ActiveValidatorSet is the external collaborator the committee consults
// during registration and committee formation. Spec §9 notes the source's
// active_validator_addresses() is a stub returning empty; this rewrite models
// it as an explicit dependency the caller must supply a real implementation
// for, rather than a silent no-op.
type ActiveValidatorSet interface {
	IsActiveValidator(addr crypto.Address) bool
	VotingPowerBps(addr crypto.Address) uint32
}

// ValidatorPower pairs an address with its voting power, used to seed a
// StaticValidatorSet. crypto.Address embeds a byte slice and so cannot serve
// as a map key directly; this struct carries the pairing instead.
type ValidatorPower struct {
	Address        crypto.Address
	VotingPowerBps uint32
}

// StaticValidatorSet is a fixed-membership ActiveValidatorSet, usable in
// tests and as a minimal real implementation when validator power is known
// ahead of time rather than observed from a live consensus set.
type StaticValidatorSet struct {
	powers map[string]uint32
}

// NewStaticValidatorSet builds a StaticValidatorSet from a list of
// (address, bps) pairs.
func NewStaticValidatorSet(powers []ValidatorPower) *StaticValidatorSet {
	s := &StaticValidatorSet{powers: make(map[string]uint32, len(powers))}
	for _, p := range powers {
		s.powers[p.Address.String()] = p.VotingPowerBps
	}
	return s
}

func (s *StaticValidatorSet) IsActiveValidator(addr crypto.Address) bool {
	_, ok := s.powers[addr.String()]
	return ok
}

func (s *StaticValidatorSet) VotingPowerBps(addr crypto.Address) uint32 {
	return s.powers[addr.String()]
}

// CommitteeMember is a registered signer, keyed externally by its compressed
// pubkey (spec §3.5).
type CommitteeMember struct {
	Address          crypto.Address
	CompressedPubkey [compressedPubkeyLen]byte
	VotingPowerBps   uint32
	HTTPURL          string
	Blocklisted      bool
}

type registration struct {
	sender  crypto.Address
	pubkey  [compressedPubkeyLen]byte
	httpURL string
}

// Committee holds the active member set, pending registrations, and the
// current epoch counter. The zero value is not usable; construct with New.
type Committee struct {
	admin      crypto.Address
	activeSet  ActiveValidatorSet
	emitter    events.Emitter
	members    map[[compressedPubkeyLen]byte]*CommitteeMember
	registered map[string]registration
	epoch      uint64
}

// New constructs an empty committee owned by admin.
func New(admin crypto.Address, activeSet ActiveValidatorSet, emitter events.Emitter) *Committee {
	if emitter == nil {
		emitter = events.NoopEmitter{}
	}
	return &Committee{
		admin:      admin,
		activeSet:  activeSet,
		emitter:    emitter,
		members:    make(map[[compressedPubkeyLen]byte]*CommitteeMember),
		registered: make(map[string]registration),
	}
}

// SetEmitter overrides the event emitter. Passing nil resets to a no-op.
func (c *Committee) SetEmitter(emitter events.Emitter) {
	if emitter == nil {
		emitter = events.NoopEmitter{}
	}
	c.emitter = emitter
}

// Epoch returns the current committee epoch.
func (c *Committee) Epoch() uint64 { return c.epoch }

// Members returns a snapshot copy of the active member set.
func (c *Committee) Members() []CommitteeMember {
	out := make([]CommitteeMember, 0, len(c.members))
	for _, m := range c.members {
		out = append(out, *m)
	}
	return out
}

// Register records sender's intent to join the next committee. Only
// accepted while the active member set is empty: v1 accepts no
// re-registration after activation (spec §4.6).
func (c *Committee) Register(sender crypto.Address, pubkey33 []byte, httpURL string) error {
	if len(c.members) != 0 {
		return bridgeerr.ErrCommitteeAlreadyInitialized
	}
	if len(pubkey33) != compressedPubkeyLen {
		return bridgeerr.ErrInvalidPubkeyLength
	}
	if !c.activeSet.IsActiveValidator(sender) {
		return bridgeerr.ErrNotActiveValidator
	}
	var key [compressedPubkeyLen]byte
	copy(key[:], pubkey33)
	for _, reg := range c.registered {
		if reg.pubkey == key {
			return bridgeerr.ErrDuplicatePubkey
		}
	}
	c.registered[sender.String()] = registration{sender: sender, pubkey: key, httpURL: httpURL}
	return nil
}

// TryCreateNextCommittee replaces the member set from pending registrations
// if their combined active-validator voting power meets minParticipationBps.
// Otherwise it is a no-op, per spec §4.6. Returns whether the replacement
// happened.
func (c *Committee) TryCreateNextCommittee(minParticipationBps uint32) bool {
	var total uint32
	for _, reg := range c.registered {
		if c.activeSet.IsActiveValidator(reg.sender) {
			total += c.activeSet.VotingPowerBps(reg.sender)
		}
	}
	if total < minParticipationBps {
		return false
	}

	members := make(map[[compressedPubkeyLen]byte]*CommitteeMember, len(c.registered))
	for _, reg := range c.registered {
		members[reg.pubkey] = &CommitteeMember{
			Address:          reg.sender,
			CompressedPubkey: reg.pubkey,
			VotingPowerBps:   c.activeSet.VotingPowerBps(reg.sender),
			HTTPURL:          reg.httpURL,
		}
	}
	c.members = members
	c.registered = make(map[string]registration)
	c.epoch++
	c.emitter.Emit(events.CommitteeUpdated{
		Epoch:               c.epoch,
		MemberCount:         len(c.members),
		TotalVotingPowerBps: total,
	})
	return true
}

// ExecuteBlocklist toggles blocklisted on each matching member (spec §4.6).
// listType != BlocklistTypeUnblock means "blocklist"; BlocklistTypeUnblock
// means "unblocklist".
func (c *Committee) ExecuteBlocklist(listType messages.BlocklistType, addrs [][evmAddressLen]byte) error {
	blocklisted := listType != messages.BlocklistTypeUnblock

	targets := make([]*CommitteeMember, len(addrs))
	for i, target := range addrs {
		member := c.findByEVMAddress(target)
		if member == nil {
			return bridgeerr.ErrUnknownBlocklistTarget
		}
		targets[i] = member
	}

	for _, member := range targets {
		member.Blocklisted = blocklisted
	}
	c.emitter.Emit(events.BlocklistUpdated{Addresses: addrs, Blocklisted: blocklisted})
	return nil
}

func (c *Committee) findByEVMAddress(target [evmAddressLen]byte) *CommitteeMember {
	for _, m := range c.members {
		addr, err := bridgecrypto.EVMAddress(m.CompressedPubkey[:])
		if err != nil {
			continue
		}
		if addr == target {
			return m
		}
	}
	return nil
}

// RequiredVotingPowerBps returns the bps threshold a message's signatures
// must clear, per spec §4.6. Returns an error for emergency-op types other
// than pause/unpause, which are not permitted to carry any threshold.
func RequiredVotingPowerBps(msg messages.BridgeMessage) (uint32, error) {
	switch msg.MessageType {
	case messages.MessageTypeTokenTransfer:
		return 3334, nil
	case messages.MessageTypeEmergencyOp:
		op, err := messages.ExtractEmergencyOp(msg.Payload)
		if err != nil {
			return 0, err
		}
		switch op {
		case messages.EmergencyOpPause:
			return 450, nil
		case messages.EmergencyOpUnpause:
			return 5001, nil
		default:
			return 0, bridgeerr.ErrUnexpectedMessageType
		}
	case messages.MessageTypeCommitteeBlocklist, messages.MessageTypeUpdateBridgeLimit,
		messages.MessageTypeUpdateAssetPrice, messages.MessageTypeAddTokensOnHome:
		return 5001, nil
	default:
		return 0, bridgeerr.ErrUnexpectedMessageType
	}
}

// VerifySignatures recovers each signature's signer over the domain-separated
// preimage of msg, rejects duplicate or unknown signers, and requires the
// accumulated non-block-listed voting power to meet the message's threshold.
func (c *Committee) VerifySignatures(msg messages.BridgeMessage, signatures [][]byte) error {
	required, err := RequiredVotingPowerBps(msg)
	if err != nil {
		return err
	}
	preimage := messages.SigningPreimage(msg)

	seen := make(map[[compressedPubkeyLen]byte]bool, len(signatures))
	var total uint32
	for _, sig := range signatures {
		compressed, err := bridgecrypto.Ecrecover(sig, preimage, bridgecrypto.HashAlgoKeccak256)
		if err != nil {
			return bridgeerr.ErrInvalidSignature
		}
		var key [compressedPubkeyLen]byte
		copy(key[:], compressed)
		if seen[key] {
			return bridgeerr.ErrDuplicatedSignature
		}
		seen[key] = true

		member, ok := c.members[key]
		if !ok {
			return bridgeerr.ErrInvalidSignature
		}
		if member.Blocklisted {
			continue
		}
		total += member.VotingPowerBps
	}

	if total < required {
		return bridgeerr.ErrSignatureBelowThreshold
	}
	return nil
}
