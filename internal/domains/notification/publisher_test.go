package notification

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type capturingCache struct {
	channel string
	payload interface{}
	err     error
}

func (c *capturingCache) Get(_ context.Context, _ string, _ interface{}) (bool, error) {
	return false, nil
}
func (c *capturingCache) Set(_ context.Context, _ string, _ interface{}, _ time.Duration) error {
	return nil
}
func (c *capturingCache) Delete(_ context.Context, _ ...string) error      { return nil }
func (c *capturingCache) DeletePattern(_ context.Context, _ string) error  { return nil }
func (c *capturingCache) Increment(_ context.Context, _ string) (int64, error) {
	return 0, nil
}
func (c *capturingCache) Expire(_ context.Context, _ string, _ time.Duration) error { return nil }
func (c *capturingCache) Ping(_ context.Context) error                              { return nil }

func (c *capturingCache) Publish(_ context.Context, channel string, payload interface{}) error {
	c.channel = channel
	c.payload = payload
	return c.err
}

func TestPublish_FillsDefaults(t *testing.T) {
	cc := &capturingCache{}
	p := NewPublisher(cc)

	p.Publish(context.Background(), Event{
		Type:    EventNewReport,
		Title:   "New daily report",
		Message: "Report for 2026-08-28 submitted",
	})

	assert.Equal(t, Channel, cc.channel)
	event, ok := cc.payload.(Event)
	require.True(t, ok)
	assert.Equal(t, AudienceAll, event.Audience)
	assert.False(t, event.CreatedAt.IsZero())
}

func TestPublish_KeepsExplicitAudience(t *testing.T) {
	cc := &capturingCache{}
	p := NewPublisher(cc)

	p.Publish(context.Background(), Event{
		Type:     EventInventoryAlert,
		Audience: AudienceAdmins,
	})

	event := cc.payload.(Event)
	assert.Equal(t, AudienceAdmins, event.Audience)
}

func TestPublish_SwallowsErrors(t *testing.T) {
	cc := &capturingCache{err: errors.New("redis down")}
	p := NewPublisher(cc)

	assert.NotPanics(t, func() {
		p.Publish(context.Background(), Event{Type: EventUserActivity})
	})
}
