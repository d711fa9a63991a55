// Package bridgeerr collects the sentinel errors returned by every bridge
// component. Callers compare with errors.Is; wrapping with fmt.Errorf("...:
// %w", ...) is expected at call sites that need extra context.
package bridgeerr

import "errors"

// Codec errors (C2/C4).
var (
	ErrOutOfRange         = errors.New("codec: read past end of buffer")
	ErrLenOutOfRange       = errors.New("codec: uleb128 length wider than 5 bytes")
	ErrNotBool            = errors.New("codec: byte is not a valid bool")
	ErrTrailingBytes      = errors.New("codec: trailing bytes after decode")
	ErrInvalidPayloadLen  = errors.New("codec: invalid payload length")
	ErrInvalidAddressLen  = errors.New("codec: invalid address length")
	ErrEmptyList          = errors.New("codec: list must not be empty")
)

// Routing / chain-id errors (C1).
var (
	ErrInvalidChainID    = errors.New("chain registry: invalid chain id")
	ErrInvalidBridgeRoute = errors.New("chain registry: invalid bridge route")
)

// Treasury errors (C5).
var (
	ErrUnsupportedTokenType = errors.New("treasury: unsupported token type")
	ErrNonZeroSupply        = errors.New("treasury: token has non-zero supply at registration")
	ErrZeroNotionalPrice    = errors.New("treasury: notional price must be positive")
	ErrMissingCapability    = errors.New("treasury: mint/burn capability not registered")
	ErrTokenAlreadyRegistered = errors.New("treasury: token id already registered")
	ErrTokenNotWaiting      = errors.New("treasury: token not in waiting room")
)

// Committee errors (C7).
var (
	ErrSignatureBelowThreshold        = errors.New("committee: aggregate voting power below required threshold")
	ErrDuplicatedSignature            = errors.New("committee: duplicated signature")
	ErrInvalidSignature               = errors.New("committee: signature does not recover to a known member")
	ErrNotActiveValidator             = errors.New("committee: sender is not an active validator")
	ErrDuplicatePubkey                = errors.New("committee: duplicate pubkey")
	ErrCommitteeAlreadyInitialized    = errors.New("committee: already initialized")
	ErrSenderNotInCommittee           = errors.New("committee: sender not registered")
	ErrInvalidPubkeyLength            = errors.New("committee: pubkey must be 33 bytes")
	ErrUnknownBlocklistTarget         = errors.New("committee: blocklist contains unknown key")
	ErrInsufficientParticipation      = errors.New("committee: registrant participation below minimum")
)

// Bridge orchestrator errors (C8).
var (
	ErrUnexpectedMessageType = errors.New("bridge: unexpected message type")
	ErrUnexpectedChainID     = errors.New("bridge: unexpected chain id")
	ErrUnexpectedSeqNum      = errors.New("bridge: unexpected sequence number")
	ErrUnexpectedVersion     = errors.New("bridge: unexpected message version")
	ErrAlreadyPaused         = errors.New("bridge: already paused")
	ErrNotPaused             = errors.New("bridge: not paused")
	ErrUnauthorisedClaim     = errors.New("bridge: caller is not the record's target")
	ErrMessageNotFound       = errors.New("bridge: message not found")
	ErrBridgeUnavailable     = errors.New("bridge: bridge is paused")
	ErrMalformedMessage      = errors.New("bridge: record/message mismatch")
	ErrTokenValueZero        = errors.New("bridge: token value must be positive")
	ErrInvalidEVMAddressLen  = errors.New("bridge: evm address must be 20 bytes")
	ErrInvalidTokenType      = errors.New("bridge: declared token type does not match record")
	ErrLengthMismatch        = errors.New("bridge: add-tokens arrays have mismatched lengths")
)

// Limiter errors (C6).
var (
	ErrLimitNotFoundForRoute = errors.New("limiter: route limit not found")
)
