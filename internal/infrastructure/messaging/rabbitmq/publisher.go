package rabbitmq

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	zlog "github.com/rs/zerolog/log"
)

const (
	DefaultExchange = "barter.events"

	// Wait window for Return / Confirm
	publishWait = 150 * time.Millisecond
)

var (
	ErrMissingRoutingKey = errors.New("missing routingKey")
	ErrMissingMessageID  = errors.New("missing messageID")
	ErrNotConnected      = errors.New("publisher channel not ready")
)

// Publisher sends domain event envelopes to a durable topic exchange with confirms.
type Publisher struct {
	url      string
	exchange string

	mu sync.Mutex

	conn *amqp.Connection
	ch   *amqp.Channel

	confirmCh <-chan amqp.Confirmation
	returnCh  <-chan amqp.Return
}

func NewPublisher(url, exchange string) (*Publisher, error) {
	if exchange == "" {
		exchange = DefaultExchange
	}

	p := &Publisher{
		url:      url,
		exchange: exchange,
	}
	if err := p.connect(); err != nil {
		return nil, err
	}
	return p, nil
}

func (p *Publisher) Exchange() string { return p.exchange }

func (p *Publisher) connect() error {
	conn, err := amqp.Dial(p.url)
	if err != nil {
		return err
	}

	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return err
	}

	if err := ch.ExchangeDeclare(p.exchange, "topic", true, false, false, false, nil); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return err
	}

	if err := ch.Confirm(false); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return err
	}

	p.conn = conn
	p.ch = ch

	p.confirmCh = ch.NotifyPublish(make(chan amqp.Confirmation, 1))
	p.returnCh = ch.NotifyReturn(make(chan amqp.Return, 1))

	return nil
}

func (p *Publisher) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.ch != nil {
		_ = p.ch.Close()
		p.ch = nil
	}
	if p.conn != nil {
		_ = p.conn.Close()
		p.conn = nil
	}
	return nil
}

// PublishEvent publishes a JSON envelope with mandatory + confirms.
// Unroutable messages are not an error: nothing may be bound to the exchange yet.
func (p *Publisher) PublishEvent(ctx context.Context, routingKey, messageID string, body []byte) error {
	if strings.TrimSpace(routingKey) == "" {
		return ErrMissingRoutingKey
	}
	if strings.TrimSpace(messageID) == "" {
		return ErrMissingMessageID
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if p.ch == nil {
		return ErrNotConnected
	}

	err := p.ch.PublishWithContext(
		ctx,
		p.exchange,
		routingKey,
		true,  // mandatory
		false, // immediate
		amqp.Publishing{
			MessageId:    messageID,
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			Timestamp:    time.Now().UTC(),
			Body:         body,
		},
	)
	if err != nil {
		return err
	}

	return awaitConfirm(ctx, p.returnCh, p.confirmCh, publishWait)
}

// awaitConfirm waits at most wait in total for the Confirm. A Return is
// followed by its Confirm, so Returns are logged and the wait goes on.
func awaitConfirm(ctx context.Context, returns <-chan amqp.Return, confirms <-chan amqp.Confirmation, wait time.Duration) error {
	timer := time.NewTimer(wait)
	defer timer.Stop()
	for {
		select {
		case ret := <-returns:
			zlog.Debug().Str("routing_key", ret.RoutingKey).Msg("event unroutable")
		case conf := <-confirms:
			if !conf.Ack {
				return errors.New("publish nack")
			}
			return nil
		case <-timer.C:
			return nil
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}
