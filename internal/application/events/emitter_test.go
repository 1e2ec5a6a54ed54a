package events

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appctx "github.com/baechuer/real-time-ressys/services/barter-service/internal/pkg/context"
)

type fakeClock struct{ t time.Time }

func (c fakeClock) Now() time.Time { return c.t }

type recordingPublisher struct {
	keys   []string
	ids    []string
	bodies [][]byte
	err    error
}

func (p *recordingPublisher) PublishEvent(ctx context.Context, rk, id string, body []byte) error {
	p.keys = append(p.keys, rk)
	p.ids = append(p.ids, id)
	p.bodies = append(p.bodies, body)
	return p.err
}

func TestEmit_WrapsPayloadInEnvelope(t *testing.T) {
	now := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	pub := &recordingPublisher{}
	em := NewEmitter(pub, fakeClock{t: now})

	ctx := appctx.WithRequestID(context.Background(), "req-42")
	Emit(ctx, em, RKListingCreated, ListingPayload{ListingID: "l1", OwnerID: "u1"})

	require.Len(t, pub.bodies, 1)
	assert.Equal(t, RKListingCreated, pub.keys[0])

	var env DomainEventEnvelope[ListingPayload]
	require.NoError(t, json.Unmarshal(pub.bodies[0], &env))
	assert.Equal(t, EventVersion, env.Version)
	assert.Equal(t, EventProducer, env.Producer)
	assert.Equal(t, pub.ids[0], env.MessageID)
	assert.Equal(t, "req-42", env.TraceID)
	assert.True(t, now.Equal(env.OccurredAt))
	assert.Equal(t, "l1", env.Payload.ListingID)
}

func TestEmit_PublishErrorIsSwallowed(t *testing.T) {
	pub := &recordingPublisher{err: errors.New("broker down")}
	em := NewEmitter(pub, fakeClock{t: time.Now()})

	assert.NotPanics(t, func() {
		Emit(context.Background(), em, RKMessageSent, MessageSentPayload{MessageID: "m1"})
	})
	assert.Len(t, pub.keys, 1)
}

func TestEmit_NilEmitter(t *testing.T) {
	assert.NotPanics(t, func() {
		Emit(context.Background(), nil, RKRatingSubmitted, RatingSubmittedPayload{})
	})
}
