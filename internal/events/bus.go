// MCU Tracker - Marvel Cinematic Universe Watch Tracker
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/mcutracker

package events

import (
	"context"
	"fmt"
	"sync"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/goccy/go-json"

	"github.com/tomtom215/mcutracker/internal/config"
	"github.com/tomtom215/mcutracker/internal/logging"
	"github.com/tomtom215/mcutracker/internal/metrics"
)

// DefaultBufferSize is the per-subscriber buffer when none is configured.
const DefaultBufferSize = 256

// Publisher publishes progress events. *Bus satisfies it.
type Publisher interface {
	PublishProgressUpdated(ctx context.Context, e ProgressUpdated) error
}

// Bus is the in-process event bus.
type Bus struct {
	pubsub *gochannel.GoChannel
	logger watermill.LoggerAdapter

	mu     sync.RWMutex
	closed bool
}

// NewBus creates a GoChannel-backed bus.
func NewBus(cfg config.EventsConfig) *Bus {
	buffer := cfg.BufferSize
	if buffer <= 0 {
		buffer = DefaultBufferSize
	}

	logger := watermill.NewSlogLogger(logging.NewSlogLogger())
	return &Bus{
		pubsub: gochannel.NewGoChannel(gochannel.Config{
			OutputChannelBuffer: buffer,
		}, logger),
		logger: logger,
	}
}

// PublishProgressUpdated publishes e, then one AchievementUnlocked per id in
// e.NewlyUnlocked.
func (b *Bus) PublishProgressUpdated(ctx context.Context, e ProgressUpdated) error {
	if err := b.publish(ctx, TopicProgressUpdated, e); err != nil {
		return err
	}
	for _, id := range e.NewlyUnlocked {
		if err := b.publish(ctx, TopicAchievementUnlocked, AchievementUnlocked{
			UserID:        e.UserID,
			AchievementID: id,
			OccurredAt:    e.OccurredAt,
		}); err != nil {
			return err
		}
	}
	return nil
}

// Subscribe returns the message stream for topic until ctx is done.
func (b *Bus) Subscribe(ctx context.Context, topic string) (<-chan *message.Message, error) {
	return b.pubsub.Subscribe(ctx, topic)
}

// Close stops delivery to all subscribers.
func (b *Bus) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return nil
	}
	b.closed = true
	return b.pubsub.Close()
}

func (b *Bus) publish(ctx context.Context, topic string, payload interface{}) error {
	b.mu.RLock()
	defer b.mu.RUnlock()
	if b.closed {
		return fmt.Errorf("event bus is closed")
	}

	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal %s event: %w", topic, err)
	}

	msg := message.NewMessage(watermill.NewUUID(), data)
	if id := logging.CorrelationIDFromContext(ctx); id != "" {
		msg.Metadata.Set(MetadataCorrelationID, id)
	}

	if err := b.pubsub.Publish(topic, msg); err != nil {
		return fmt.Errorf("publish %s: %w", topic, err)
	}
	metrics.RecordEventPublished(topic)
	return nil
}
