package events

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	zlog "github.com/rs/zerolog/log"

	"github.com/baechuer/real-time-ressys/services/barter-service/internal/metrics"
	appctx "github.com/baechuer/real-time-ressys/services/barter-service/internal/pkg/context"
)

// Publisher is the transport port; rabbitmq.Publisher satisfies it.
type Publisher interface {
	PublishEvent(ctx context.Context, routingKey, messageID string, body []byte) error
}

type NoopPublisher struct{}

func (NoopPublisher) PublishEvent(ctx context.Context, routingKey, messageID string, body []byte) error {
	return nil
}

type Clock interface{ Now() time.Time }

// Emitter wraps payloads in a DomainEventEnvelope and publishes them best-effort:
// failures are logged and never returned to the caller.
type Emitter struct {
	pub   Publisher
	clock Clock
}

func NewEmitter(pub Publisher, clock Clock) *Emitter {
	if pub == nil {
		pub = NoopPublisher{}
	}
	return &Emitter{pub: pub, clock: clock}
}

// Emit publishes payload under routingKey. A nil Emitter is a no-op.
func Emit[T any](ctx context.Context, e *Emitter, routingKey string, payload T) {
	if e == nil {
		return
	}
	env := DomainEventEnvelope[T]{
		Version:    EventVersion,
		Producer:   EventProducer,
		MessageID:  uuid.NewString(),
		TraceID:    appctx.GetRequestID(ctx),
		OccurredAt: e.clock.Now().UTC(),
		Payload:    payload,
	}
	body, err := json.Marshal(env)
	if err != nil {
		zlog.Error().Err(err).Str("rk", routingKey).Msg("marshal domain event failed")
		return
	}
	err = e.pub.PublishEvent(ctx, routingKey, env.MessageID, body)
	metrics.RecordDomainEvent(routingKey, err)
	if err != nil {
		zlog.Error().
			Err(err).
			Str("rk", routingKey).
			Str("message_id", env.MessageID).
			Msg("publish domain event failed")
	}
}
