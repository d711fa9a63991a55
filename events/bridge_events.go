package events

// Event type tags. Stable strings, not part of the wire protocol, but kept
// stable for downstream indexers.
const (
	TypeTokenDeposited            = "bridge.token_deposited"
	TypeTokenTransferApproved     = "bridge.token_transfer_approved"
	TypeTokenTransferAlreadyApproved = "bridge.token_transfer_already_approved"
	TypeTokenTransferClaimed      = "bridge.token_transfer_claimed"
	TypeTokenTransferAlreadyClaimed  = "bridge.token_transfer_already_claimed"
	TypeTokenTransferLimitExceed  = "bridge.token_transfer_limit_exceed"
	TypeNewToken                  = "treasury.new_token"
	TypeUpdateTokenPrice          = "treasury.update_token_price"
	TypeUpdateRouteLimit          = "limiter.update_route_limit"
	TypePaused                    = "bridge.paused"
	TypeUnpaused                  = "bridge.unpaused"
	TypeBlocklistUpdated          = "committee.blocklist_updated"
	TypeCommitteeUpdated          = "committee.updated"
)

// TokenDeposited is emitted when send_token burns a token and records an
// outbound transfer.
type TokenDeposited struct {
	SeqNum        uint64
	SourceChain   uint8
	TargetChain   uint8
	TokenType     uint8
	Amount        uint64
	TargetAddress []byte
}

func (TokenDeposited) EventType() string { return TypeTokenDeposited }

// TokenTransferApproved is emitted the first time a transfer's signatures are
// stored.
type TokenTransferApproved struct {
	SourceChain uint8
	SeqNum      uint64
}

func (TokenTransferApproved) EventType() string { return TypeTokenTransferApproved }

// TokenTransferAlreadyApproved is emitted on an idempotent re-approval.
type TokenTransferAlreadyApproved struct {
	SourceChain uint8
	SeqNum      uint64
}

func (TokenTransferAlreadyApproved) EventType() string { return TypeTokenTransferAlreadyApproved }

// TokenTransferClaimed is emitted when claim succeeds and mints the token.
type TokenTransferClaimed struct {
	SourceChain uint8
	SeqNum      uint64
	Recipient   []byte
	TokenType   uint8
	Amount      uint64
}

func (TokenTransferClaimed) EventType() string { return TypeTokenTransferClaimed }

// TokenTransferAlreadyClaimed is emitted on an idempotent re-claim.
type TokenTransferAlreadyClaimed struct {
	SourceChain uint8
	SeqNum      uint64
}

func (TokenTransferAlreadyClaimed) EventType() string { return TypeTokenTransferAlreadyClaimed }

// TokenTransferLimitExceed is emitted when a claim would exceed the route
// limit; the caller may retry later.
type TokenTransferLimitExceed struct {
	SourceChain uint8
	SeqNum      uint64
}

func (TokenTransferLimitExceed) EventType() string { return TypeTokenTransferLimitExceed }

// NewToken is emitted when the treasury promotes a waiting-room token to
// supported.
type NewToken struct {
	TokenID       uint8
	TypeName      string
	NotionalValue uint64
}

func (NewToken) EventType() string { return TypeNewToken }

// UpdateTokenPrice is emitted when the treasury's notional price changes.
type UpdateTokenPrice struct {
	TokenID  uint8
	NewPrice uint64
}

func (UpdateTokenPrice) EventType() string { return TypeUpdateTokenPrice }

// UpdateRouteLimit is emitted when the limiter's per-route cap changes.
type UpdateRouteLimit struct {
	SourceChain      uint8
	DestinationChain uint8
	NewLimit         uint64
}

func (UpdateRouteLimit) EventType() string { return TypeUpdateRouteLimit }

// Paused is emitted when an emergency-op message pauses the bridge.
type Paused struct{}

func (Paused) EventType() string { return TypePaused }

// Unpaused is emitted when an emergency-op message resumes the bridge.
type Unpaused struct{}

func (Unpaused) EventType() string { return TypeUnpaused }

// BlocklistUpdated is emitted once per execute_blocklist call.
type BlocklistUpdated struct {
	Addresses   [][20]byte
	Blocklisted bool
}

func (BlocklistUpdated) EventType() string { return TypeBlocklistUpdated }

// CommitteeUpdated is emitted when try_create_next_committee replaces the
// member set.
type CommitteeUpdated struct {
	Epoch               uint64
	MemberCount         int
	TotalVotingPowerBps uint32
}

func (CommitteeUpdated) EventType() string { return TypeCommitteeUpdated }
