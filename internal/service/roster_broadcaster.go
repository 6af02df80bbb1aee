package service

import (
	"context"
	"encoding/json"
	"strings"
	"sync"

	"github.com/nats-io/nats.go"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/noah-isme/gema-activities/internal/dto"
	"github.com/noah-isme/gema-activities/internal/observability"
)

const rosterBufferSize = 16

// RosterBroadcaster fans roster changes out to stream subscribers and external brokers.
type RosterBroadcaster interface {
	Publish(ctx context.Context, event dto.RosterEvent)
	Subscribe() (<-chan dto.RosterEvent, func())
}

type rosterBroadcaster struct {
	redis        *redis.Client
	redisChannel string
	nats         *nats.Conn
	natsSubject  string
	logger       zerolog.Logger

	mu          sync.RWMutex
	subscribers map[chan dto.RosterEvent]struct{}
}

// NewRosterBroadcaster constructs a broadcaster. Nil clients or an empty channel base keep events in-process.
func NewRosterBroadcaster(redisClient *redis.Client, natsConn *nats.Conn, channelBase string, logger zerolog.Logger) RosterBroadcaster {
	channel := ""
	subject := ""
	if base := strings.TrimSpace(channelBase); base != "" {
		channel = base
		subject = strings.ReplaceAll(base, ":", ".")
	}

	return &rosterBroadcaster{
		redis:        redisClient,
		redisChannel: channel,
		nats:         natsConn,
		natsSubject:  subject,
		logger:       logger.With().Str("component", "roster_broadcaster").Logger(),
		subscribers:  make(map[chan dto.RosterEvent]struct{}),
	}
}

func (b *rosterBroadcaster) Publish(ctx context.Context, event dto.RosterEvent) {
	b.broadcast(event)

	if (b.redis == nil || b.redisChannel == "") && (b.nats == nil || b.natsSubject == "") {
		return
	}

	payload, err := json.Marshal(event)
	if err != nil {
		b.logger.Warn().Err(err).Msg("failed to encode roster event")
		return
	}

	if b.redis != nil && b.redisChannel != "" {
		if err := b.redis.Publish(ctx, b.redisChannel, payload).Err(); err != nil {
			observability.RosterEvents().WithLabelValues("redis", "error").Inc()
			b.logger.Warn().Err(err).Str("event_id", event.ID).Msg("failed to publish roster event to redis")
		} else {
			observability.RosterEvents().WithLabelValues("redis", "ok").Inc()
		}
	}

	if b.nats != nil && b.natsSubject != "" {
		if err := b.nats.Publish(b.natsSubject, payload); err != nil {
			observability.RosterEvents().WithLabelValues("nats", "error").Inc()
			b.logger.Warn().Err(err).Str("event_id", event.ID).Msg("failed to publish roster event to nats")
		} else {
			observability.RosterEvents().WithLabelValues("nats", "ok").Inc()
		}
	}
}

func (b *rosterBroadcaster) Subscribe() (<-chan dto.RosterEvent, func()) {
	channel := make(chan dto.RosterEvent, rosterBufferSize)

	b.mu.Lock()
	b.subscribers[channel] = struct{}{}
	b.mu.Unlock()
	observability.RosterSubscribers().Inc()

	var once sync.Once
	cleanup := func() {
		once.Do(func() {
			b.mu.Lock()
			delete(b.subscribers, channel)
			close(channel)
			b.mu.Unlock()
			observability.RosterSubscribers().Dec()
		})
	}

	return channel, cleanup
}

func (b *rosterBroadcaster) broadcast(event dto.RosterEvent) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	for ch := range b.subscribers {
		select {
		case ch <- event:
			observability.RosterEvents().WithLabelValues("stream", "ok").Inc()
		default:
			observability.RosterEvents().WithLabelValues("stream", "dropped").Inc()
		}
	}
}
