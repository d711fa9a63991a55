// Package limiter implements the 24-hour sliding, notional-USD rate limiter
// per directed route, with per-hour bucketing (spec C6).
package limiter

import (
	"github.com/holiman/uint256"

	"nhbridge/bridgeerr"
	"nhbridge/chainregistry"
	"nhbridge/events"
)

const secondsPerHourMs = 3_600_000

// maxWindowHours bounds per_hour_amounts at 24 buckets (spec §3.4).
const maxWindowHours = 24

// PriceSource supplies the notional USD price and decimal multiplier for a
// token type. *treasury.Treasury satisfies this by method shape without the
// limiter needing to import the treasury package.
type PriceSource interface {
	NotionalValue(typeName string) (uint64, error)
	DecimalMultiplier(typeName string) (uint64, error)
}

// TransferRecord is the per-route limiter state described in spec §3.4.
type TransferRecord struct {
	HourHead       uint64
	HourTail       uint64
	PerHourAmounts []uint64
	TotalAmount    uint64
}

// RouteLimiter enforces a sliding 24-hour notional-USD cap per route. The
// zero value is not usable; construct with New.
type RouteLimiter struct {
	caps    map[chainregistry.Route]uint64
	records map[chainregistry.Route]*TransferRecord
	emitter events.Emitter
}

// New constructs an empty limiter.
func New(emitter events.Emitter) *RouteLimiter {
	if emitter == nil {
		emitter = events.NoopEmitter{}
	}
	return &RouteLimiter{
		caps:    make(map[chainregistry.Route]uint64),
		records: make(map[chainregistry.Route]*TransferRecord),
		emitter: emitter,
	}
}

// SetEmitter overrides the event emitter. Passing nil resets to a no-op.
func (l *RouteLimiter) SetEmitter(emitter events.Emitter) {
	if emitter == nil {
		emitter = events.NoopEmitter{}
	}
	l.emitter = emitter
}

// UpdateRouteLimit upserts the cap for route and emits UpdateRouteLimit.
func (l *RouteLimiter) UpdateRouteLimit(route chainregistry.Route, newLimitUSD8dp uint64) {
	l.caps[route] = newLimitUSD8dp
	l.emitter.Emit(events.UpdateRouteLimit{
		SourceChain:      uint8(route.Source),
		DestinationChain: uint8(route.Destination),
		NewLimit:         newLimitUSD8dp,
	})
}

// Record returns a copy of the current TransferRecord for route, if any.
func (l *RouteLimiter) Record(route chainregistry.Route) (TransferRecord, bool) {
	rec, ok := l.records[route]
	if !ok {
		return TransferRecord{}, false
	}
	return *rec, true
}

func hourOf(clockMs uint64) int64 {
	return int64(clockMs / secondsPerHourMs)
}

// ensureRecord returns the route's record, inserting a fresh one per step 1
// of spec §4.5 if none exists yet.
func (l *RouteLimiter) ensureRecord(route chainregistry.Route) *TransferRecord {
	rec, ok := l.records[route]
	if !ok {
		rec = &TransferRecord{
			HourHead:       0,
			HourTail:       0,
			PerHourAmounts: []uint64{0},
			TotalAmount:    0,
		}
		l.records[route] = rec
	}
	return rec
}

// slideToHour implements spec §4.5 step 3: adjust rec so HourHead == h,
// evicting stale buckets from the front or, if the whole window is stale,
// clearing it outright.
func slideToHour(rec *TransferRecord, h int64) {
	head := int64(rec.HourHead)
	if head == h {
		return
	}
	tail := int64(rec.HourTail)
	targetTail := h - (maxWindowHours - 1)

	if head < targetTail {
		rec.PerHourAmounts = []uint64{0}
		rec.TotalAmount = 0
		rec.HourHead = uint64(targetTail)
		rec.HourTail = uint64(targetTail)
		return
	}

	for tail < targetTail {
		rec.TotalAmount -= rec.PerHourAmounts[0]
		rec.PerHourAmounts = rec.PerHourAmounts[1:]
		tail++
	}
	rec.HourTail = uint64(tail)

	for head < h {
		rec.PerHourAmounts = append(rec.PerHourAmounts, 0)
		head++
	}
	rec.HourHead = uint64(head)
}

// CheckAndRecordSendingTransfer implements spec §4.5. true means "within
// limit and recorded"; false means "would exceed, not recorded" (the
// limiter's return-value polarity is normalized per spec §4.5/§9 — it never
// means the opposite).
func (l *RouteLimiter) CheckAndRecordSendingTransfer(route chainregistry.Route, prices PriceSource, typeName string, amount uint64, clockMs uint64) (bool, error) {
	limitUSD8dp, ok := l.caps[route]
	if !ok {
		return false, bridgeerr.ErrLimitNotFoundForRoute
	}

	notional, err := prices.NotionalValue(typeName)
	if err != nil {
		return false, err
	}
	decimals, err := prices.DecimalMultiplier(typeName)
	if err != nil {
		return false, err
	}

	rec := l.ensureRecord(route)
	slideToHour(rec, hourOf(clockMs))

	decimalsU256 := uint256.NewInt(decimals)
	notionalWithDecimals := new(uint256.Int).Mul(uint256.NewInt(notional), uint256.NewInt(amount))
	scaledTotal := new(uint256.Int).Mul(uint256.NewInt(rec.TotalAmount), decimalsU256)
	scaledLimit := new(uint256.Int).Mul(uint256.NewInt(limitUSD8dp), decimalsU256)

	sum := new(uint256.Int).Add(scaledTotal, notionalWithDecimals)
	if sum.Gt(scaledLimit) {
		return false, nil
	}

	delta := new(uint256.Int).Div(notionalWithDecimals, decimalsU256)
	deltaU64 := delta.Uint64()

	idx := len(rec.PerHourAmounts) - 1
	rec.PerHourAmounts[idx] += deltaU64
	rec.TotalAmount += deltaU64
	return true, nil
}
