// MCU Tracker - Marvel Cinematic Universe Watch Tracker
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/mcutracker

package events

import (
	"context"
	"fmt"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/goccy/go-json"
	"github.com/rs/zerolog"

	"github.com/tomtom215/mcutracker/internal/logging"
	"github.com/tomtom215/mcutracker/internal/metrics"
)

// Consumer turns bus events into logs and metrics.
type Consumer struct {
	bus    *Bus
	logger zerolog.Logger
}

// NewConsumer creates a consumer for bus.
func NewConsumer(bus *Bus) *Consumer {
	return &Consumer{
		bus:    bus,
		logger: logging.WithComponent("events"),
	}
}

// Run subscribes to every topic and processes messages until ctx is done.
func (c *Consumer) Run(ctx context.Context) error {
	progress, err := c.bus.Subscribe(ctx, TopicProgressUpdated)
	if err != nil {
		return fmt.Errorf("subscribe %s: %w", TopicProgressUpdated, err)
	}
	unlocked, err := c.bus.Subscribe(ctx, TopicAchievementUnlocked)
	if err != nil {
		return fmt.Errorf("subscribe %s: %w", TopicAchievementUnlocked, err)
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case msg, ok := <-progress:
			if !ok {
				return nil
			}
			c.handle(TopicProgressUpdated, msg, c.handleProgress)
		case msg, ok := <-unlocked:
			if !ok {
				return nil
			}
			c.handle(TopicAchievementUnlocked, msg, c.handleUnlocked)
		}
	}
}

func (c *Consumer) handle(topic string, msg *message.Message, fn func(*message.Message) error) {
	err := fn(msg)
	metrics.RecordEventProcessed(topic, err)
	if err != nil {
		c.logger.Error().Err(err).
			Str("topic", topic).
			Str("message_id", msg.UUID).
			Msg("Failed to process event")
	}
	// Malformed payloads cannot succeed on redelivery.
	msg.Ack()
}

func (c *Consumer) handleProgress(msg *message.Message) error {
	var e ProgressUpdated
	if err := json.Unmarshal(msg.Payload, &e); err != nil {
		return fmt.Errorf("unmarshal progress event: %w", err)
	}

	c.logger.Info().
		Str("user_id", e.UserID).
		Str("kind", e.Kind).
		Int("watched", e.WatchedCount).
		Int("newly_unlocked", len(e.NewlyUnlocked)).
		Str("correlation_id", msg.Metadata.Get(MetadataCorrelationID)).
		Msg("Progress updated")
	return nil
}

func (c *Consumer) handleUnlocked(msg *message.Message) error {
	var e AchievementUnlocked
	if err := json.Unmarshal(msg.Payload, &e); err != nil {
		return fmt.Errorf("unmarshal achievement event: %w", err)
	}

	metrics.RecordAchievementUnlocked(e.AchievementID)
	c.logger.Info().
		Str("user_id", e.UserID).
		Str("achievement", e.AchievementID).
		Msg("Achievement unlocked")
	return nil
}
