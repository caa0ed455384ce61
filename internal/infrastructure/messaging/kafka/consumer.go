package kafka

import (
	"context"
	"encoding/json"
	"sync/atomic"
	"time"

	"github.com/segmentio/kafka-go"

	"github.com/turtacn/FreonTrack-Compliance/internal/config"
	"github.com/turtacn/FreonTrack-Compliance/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/FreonTrack-Compliance/pkg/errors"
	"github.com/turtacn/FreonTrack-Compliance/pkg/types/common"
)

var ErrConsumerClosed = errors.New(errors.ErrCodeInternal, "consumer closed")

// ReaderInterface abstracts kafka.Reader for testing.
type ReaderInterface interface {
	FetchMessage(ctx context.Context) (kafka.Message, error)
	CommitMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// Rescorer refreshes the risk assessment for one appliance.  The worker
// consumer calls it for every recorded inspection so cached scores never
// trail new leak data.
type Rescorer interface {
	Rescore(ctx context.Context, equipmentID common.ID) error
}

// RescoreConsumer consumes inspection.recorded events and triggers risk
// rescoring.
type RescoreConsumer struct {
	reader    ReaderInterface
	rescorer  Rescorer
	logger    logging.Logger
	onConsume func(topic, status string)
	closed    atomic.Bool

	processed atomic.Int64
	failed    atomic.Int64
}

// NewRescoreConsumer builds the consumer from the Kafka config section.
func NewRescoreConsumer(cfg config.KafkaConfig, rescorer Rescorer, log logging.Logger) *RescoreConsumer {
	groupID := cfg.GroupID
	if groupID == "" {
		groupID = "freontrack-worker"
	}
	reader := kafka.NewReader(kafka.ReaderConfig{
		Brokers:        cfg.Brokers,
		GroupID:        groupID,
		Topic:          TopicInspectionRecorded,
		MinBytes:       1,
		MaxBytes:       10 * 1024 * 1024,
		MaxWait:        time.Second,
		CommitInterval: 0, // explicit commits after successful handling
		StartOffset:    kafka.LastOffset,
	})
	return &RescoreConsumer{reader: reader, rescorer: rescorer, logger: log}
}

// NewRescoreConsumerWithReader wraps an existing reader (for testing).
func NewRescoreConsumerWithReader(r ReaderInterface, rescorer Rescorer, log logging.Logger) *RescoreConsumer {
	return &RescoreConsumer{reader: r, rescorer: rescorer, logger: log}
}

// WithMetrics wires a per-topic consume counter.  The callback receives the
// topic and "ok" or "error".
func (c *RescoreConsumer) WithMetrics(onConsume func(topic, status string)) *RescoreConsumer {
	c.onConsume = onConsume
	return c
}

// Run fetches and handles messages until the context is cancelled.
func (c *RescoreConsumer) Run(ctx context.Context) error {
	for {
		msg, err := c.reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			if c.closed.Load() {
				return ErrConsumerClosed
			}
			c.logger.Error("Failed to fetch message", logging.Err(err))
			continue
		}

		if err := c.handle(ctx, msg); err != nil {
			c.failed.Add(1)
			c.record(msg.Topic, "error")
			c.logger.Error("Failed to handle inspection event",
				logging.String("topic", msg.Topic),
				logging.Err(err))
			// Commit anyway: rescoring is best-effort and the next
			// inspection for the appliance repeats it.
		} else {
			c.processed.Add(1)
			c.record(msg.Topic, "ok")
		}

		if err := c.reader.CommitMessages(ctx, msg); err != nil {
			c.logger.Warn("Failed to commit offset", logging.Err(err))
		}
	}
}

func (c *RescoreConsumer) handle(ctx context.Context, msg kafka.Message) error {
	var env EventEnvelope
	if err := json.Unmarshal(msg.Value, &env); err != nil {
		return errors.Wrap(err, errors.ErrCodeSerialization, "failed to unmarshal envelope")
	}
	var payload InspectionRecordedPayload
	if err := env.DecodePayload(&payload); err != nil {
		return errors.Wrap(err, errors.ErrCodeSerialization, "failed to decode inspection payload")
	}
	if payload.EquipmentID == "" {
		return errors.InvalidParam("inspection event missing equipment id")
	}

	c.logger.Debug("Rescoring after inspection",
		logging.String("equipment_id", string(payload.EquipmentID)))
	return c.rescorer.Rescore(ctx, payload.EquipmentID)
}

func (c *RescoreConsumer) record(topic, status string) {
	if c.onConsume != nil {
		c.onConsume(topic, status)
	}
}

// Close stops the reader.
func (c *RescoreConsumer) Close() error {
	if !c.closed.CompareAndSwap(false, true) {
		return nil
	}
	err := c.reader.Close()
	c.logger.Info("Kafka consumer closed",
		logging.Int64("processed", c.processed.Load()),
		logging.Int64("failed", c.failed.Load()))
	return err
}

//Personal.AI order the ending
