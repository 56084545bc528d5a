package notification

import (
	"context"
	"time"

	"fishtrade-backend/pkg/cache"
	"fishtrade-backend/pkg/logger"
)

// Channel is the Redis pub/sub channel the websocket gateway listens on.
const Channel = "notifications"

// Publisher pushes events to interested frontends. Delivery is
// at-most-once: a failed publish is logged and dropped, it never
// fails the request that produced it.
type Publisher interface {
	Publish(ctx context.Context, event Event)
}

type redisPublisher struct {
	cache cache.Cache
}

// NewPublisher creates a Redis-backed event publisher.
func NewPublisher(c cache.Cache) Publisher {
	return &redisPublisher{cache: c}
}

func (p *redisPublisher) Publish(ctx context.Context, event Event) {
	if event.CreatedAt.IsZero() {
		event.CreatedAt = time.Now()
	}
	if event.Audience == "" {
		event.Audience = AudienceAll
	}

	if err := p.cache.Publish(ctx, Channel, event); err != nil {
		logger.Error("failed to publish notification event", err)
	}
}
