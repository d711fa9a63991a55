package bridge

import (
	"context"
	"encoding/hex"
	"log/slog"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"nhbridge/chainregistry"
	"nhbridge/messages"
	"nhbridge/observability/logging"
	"nhbridge/observability/metrics"
	"nhbridge/treasury"
)

var tracer = otel.Tracer("nhbridge/bridge")

// Instrumented wraps a Bridge with per-call tracing, structured logging, and
// a correlation id attached to both — the request-scoped observability layer
// that sits above the orchestrator's plain synchronous API. Every method
// defined here takes a context.Context to carry the active trace span; the
// Bridge methods it does not wrap (ClaimAndTransferToken, Record, Snapshot,
// and the other read accessors) are promoted from the embedded Bridge
// unchanged, without tracing, logging, or metrics.
type Instrumented struct {
	*Bridge
	log *slog.Logger
}

// Instrument wraps b for tracing and logging. log may be nil, in which case
// a structured JSON logger is built via observability/logging.Setup.
func Instrument(b *Bridge, log *slog.Logger) *Instrumented {
	if log == nil {
		log = logging.Setup("nhbridge", "")
	}
	return &Instrumented{Bridge: b, log: log}
}

func (i *Instrumented) startOp(ctx context.Context, name string, attrs ...attribute.KeyValue) (context.Context, func(err error)) {
	correlationID := uuid.New().String()
	attrs = append(attrs, attribute.String("bridge.correlation_id", correlationID))
	spanCtx, span := tracer.Start(ctx, name, trace.WithAttributes(attrs...))
	logger := i.log.With("op", name, "correlation_id", correlationID)
	logger.Info("bridge operation started")
	return spanCtx, func(err error) {
		if err != nil {
			span.SetStatus(codes.Error, err.Error())
			span.RecordError(err)
			logger.Error("bridge operation failed", "error", err)
		} else {
			span.SetStatus(codes.Ok, "")
			logger.Info("bridge operation completed")
		}
		span.End()
	}
}

func messageTypeLabel(mt messages.MessageType) string {
	switch mt {
	case messages.MessageTypeTokenTransfer:
		return "token_transfer"
	case messages.MessageTypeCommitteeBlocklist:
		return "committee_blocklist"
	case messages.MessageTypeEmergencyOp:
		return "emergency_op"
	case messages.MessageTypeUpdateBridgeLimit:
		return "update_bridge_limit"
	case messages.MessageTypeUpdateAssetPrice:
		return "update_asset_price"
	case messages.MessageTypeAddTokensOnHome:
		return "add_tokens_on_home"
	default:
		return "unknown"
	}
}

func outcomeLabel(err error) string {
	if err != nil {
		return "rejected"
	}
	return "accepted"
}

// SendToken instruments Bridge.SendToken.
func (i *Instrumented) SendToken(ctx context.Context, senderHomeAddress []byte, targetChain chainregistry.ChainID, targetAddress []byte, token treasury.Token) (messages.BridgeMessage, error) {
	_, done := i.startOp(ctx, "bridge.send_token", attribute.Int("bridge.target_chain", int(targetChain)))
	i.log.Info("bridge send_token recipient",
		logging.MaskField("target_address", hex.EncodeToString(targetAddress)))
	msg, err := i.Bridge.SendToken(senderHomeAddress, targetChain, targetAddress, token)
	metrics.Bridge().RecordMessage(messageTypeLabel(messages.MessageTypeTokenTransfer), outcomeLabel(err))
	done(err)
	return msg, err
}

// ApproveTokenTransfer instruments Bridge.ApproveTokenTransfer.
func (i *Instrumented) ApproveTokenTransfer(ctx context.Context, msg messages.BridgeMessage, signatures [][]byte) error {
	_, done := i.startOp(ctx, "bridge.approve_token_transfer", attribute.Int64("bridge.seq_num", int64(msg.SeqNum)))
	err := i.Bridge.ApproveTokenTransfer(msg, signatures)
	metrics.Bridge().RecordMessage(messageTypeLabel(messages.MessageTypeTokenTransfer), outcomeLabel(err))
	done(err)
	return err
}

// ClaimToken instruments Bridge.ClaimToken.
func (i *Instrumented) ClaimToken(ctx context.Context, callerAddress []byte, clockMs uint64, sourceChain chainregistry.ChainID, seqNum uint64, tokenTypeName string) (*treasury.Token, error) {
	_, done := i.startOp(ctx, "bridge.claim_token", attribute.Int64("bridge.seq_num", int64(seqNum)))
	token, err := i.Bridge.ClaimToken(callerAddress, clockMs, sourceChain, seqNum, tokenTypeName)
	switch {
	case err != nil:
		metrics.Bridge().RecordMessage(messageTypeLabel(messages.MessageTypeTokenTransfer), "rejected")
	case token == nil:
		key := messages.BridgeMessageKey{SourceChain: sourceChain, MessageType: messages.MessageTypeTokenTransfer, BridgeSeqNum: seqNum}
		if rec, ok := i.Bridge.Record(key); ok && rec.Claimed {
			metrics.Bridge().RecordMessage(messageTypeLabel(messages.MessageTypeTokenTransfer), "idempotent")
		} else {
			metrics.Bridge().RecordLimitRejection(chainregistry.Route{Source: sourceChain, Destination: i.ChainID}.String())
		}
	default:
		metrics.Bridge().RecordMessage(messageTypeLabel(messages.MessageTypeTokenTransfer), "accepted")
	}
	done(err)
	return token, err
}

// FormNextCommittee instruments Bridge.FormNextCommittee.
func (i *Instrumented) FormNextCommittee(ctx context.Context, minParticipationBps uint32) bool {
	_, done := i.startOp(ctx, "bridge.form_next_committee", attribute.Int("bridge.min_participation_bps", int(minParticipationBps)))
	formed := i.Bridge.FormNextCommittee(minParticipationBps)
	if formed {
		var total uint32
		for _, m := range i.Bridge.CommitteeMembers() {
			if !m.Blocklisted {
				total += m.VotingPowerBps
			}
		}
		metrics.Bridge().SetCommitteeState(i.Bridge.CommitteeEpoch(), total)
	}
	done(nil)
	return formed
}

// ExecuteSystemMessage instruments Bridge.ExecuteSystemMessage.
func (i *Instrumented) ExecuteSystemMessage(ctx context.Context, msg messages.BridgeMessage, signatures [][]byte) error {
	_, done := i.startOp(ctx, "bridge.execute_system_message", attribute.Int("bridge.message_type", int(msg.MessageType)))
	err := i.Bridge.ExecuteSystemMessage(msg, signatures)
	metrics.Bridge().RecordMessage(messageTypeLabel(msg.MessageType), outcomeLabel(err))
	if err == nil {
		metrics.Bridge().SetPaused(i.Bridge.Paused())
	}
	done(err)
	return err
}
