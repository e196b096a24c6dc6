package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	"github.com/Domenick1991/flightbooking/internal/domain"
)

type messageReader interface {
	ReadMessage(ctx context.Context) (kafka.Message, error)
	Close() error
}

type Consumer struct {
	reader messageReader
	log    *zap.Logger
}

func NewConsumer(brokers []string, groupID, topic string, log *zap.Logger) *Consumer {
	return &Consumer{
		reader: kafka.NewReader(kafka.ReaderConfig{
			Brokers:           brokers,
			GroupID:           groupID,
			Topic:             topic,
			HeartbeatInterval: 3 * time.Second,
			SessionTimeout:    30 * time.Second,
		}),
		log: log,
	}
}

func (c *Consumer) Close() error {
	if c == nil || c.reader == nil {
		return nil
	}
	return c.reader.Close()
}

// Consume feeds messages to handler until ctx is cancelled or handler fails.
// Cancellation is a clean stop and returns nil.
func (c *Consumer) Consume(ctx context.Context, handler func(context.Context, kafka.Message) error) error {
	for {
		msg, err := c.reader.ReadMessage(ctx)
		if err != nil {
			if ctx.Err() != nil && errors.Is(err, ctx.Err()) {
				return nil
			}
			return err
		}

		c.log.Debug("received", zap.String("topic", msg.Topic), zap.Int64("offset", msg.Offset))
		if err := handler(ctx, msg); err != nil {
			return err
		}
	}
}

// DecodeFlightStatusEvent parses a status event and rejects unknown status codes.
func DecodeFlightStatusEvent(msg kafka.Message) (domain.FlightStatusEvent, error) {
	var event domain.FlightStatusEvent
	if err := json.Unmarshal(msg.Value, &event); err != nil {
		return domain.FlightStatusEvent{}, fmt.Errorf("decode flight status event: %w", err)
	}
	if _, err := domain.ParseFlightStatus(string(event.Status)); err != nil {
		return domain.FlightStatusEvent{}, fmt.Errorf("decode flight status event %s: %w", event.EventID, err)
	}
	return event, nil
}
