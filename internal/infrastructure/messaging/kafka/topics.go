package kafka

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"github.com/turtacn/FreonTrack-Compliance/internal/domain/alert"
	"github.com/turtacn/FreonTrack-Compliance/internal/domain/inspection"
	"github.com/turtacn/FreonTrack-Compliance/internal/domain/inventory"
	"github.com/turtacn/FreonTrack-Compliance/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/FreonTrack-Compliance/pkg/errors"
	"github.com/turtacn/FreonTrack-Compliance/pkg/types/common"
)

// Topics carrying compliance events.
const (
	TopicInspectionRecorded = "inspection.recorded"
	TopicAlertRaised        = "alert.raised"
	TopicInventoryLow       = "inventory.low"
)

// eventSource identifies this service in event envelopes.
const eventSource = "freontrack-compliance"

// EventEnvelope is the wire format shared by every published event.
type EventEnvelope struct {
	EventID       string          `json:"event_id"`
	EventType     string          `json:"event_type"`
	Source        string          `json:"source"`
	Timestamp     time.Time       `json:"timestamp"`
	SchemaVersion string          `json:"schema_version"`
	Payload       json.RawMessage `json:"payload"`
}

// NewEventEnvelope wraps a payload in a versioned envelope.
func NewEventEnvelope(eventType string, payload interface{}) (*EventEnvelope, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeSerialization, "failed to marshal payload")
	}
	return &EventEnvelope{
		EventID:       uuid.NewString(),
		EventType:     eventType,
		Source:        eventSource,
		Timestamp:     time.Now().UTC(),
		SchemaVersion: "v1",
		Payload:       data,
	}, nil
}

// DecodePayload unmarshals the envelope payload into target.
func (e *EventEnvelope) DecodePayload(target interface{}) error {
	if len(e.Payload) == 0 || string(e.Payload) == "null" {
		return nil
	}
	return json.Unmarshal(e.Payload, target)
}

// InspectionRecordedPayload announces a persisted leak inspection.
type InspectionRecordedPayload struct {
	InspectionID common.ID  `json:"inspection_id"`
	EquipmentID  common.ID  `json:"equipment_id"`
	TechnicianID common.ID  `json:"technician_id"`
	LeakRate     *float64   `json:"leak_rate,omitempty"`
	Compliant    bool       `json:"compliant"`
	InspectedAt  time.Time  `json:"inspected_at"`
}

// AlertRaisedPayload announces a new open compliance alert.
type AlertRaisedPayload struct {
	AlertID     common.ID `json:"alert_id"`
	EquipmentID common.ID `json:"equipment_id,omitempty"`
	AlertType   string    `json:"alert_type"`
	Severity    string    `json:"severity"`
	Title       string    `json:"title"`
	CreatedAt   time.Time `json:"created_at"`
}

// InventoryLowPayload announces stock at or below reorder level.
type InventoryLowPayload struct {
	InventoryID     common.ID `json:"inventory_id"`
	RefrigerantType string    `json:"refrigerant_type"`
	QuantityOnHand  float64   `json:"quantity_on_hand_lbs"`
	ReorderLevel    float64   `json:"reorder_level_lbs"`
}

// Publisher adapts the Producer to the typed event ports of the application
// services.  Events are keyed by equipment so per-appliance ordering holds.
type Publisher struct {
	producer  *Producer
	logger    logging.Logger
	onPublish func(topic, status string)
}

// NewPublisher wraps a Producer.
func NewPublisher(producer *Producer, log logging.Logger) *Publisher {
	return &Publisher{producer: producer, logger: log}
}

// WithMetrics wires a per-topic publish counter.  The callback receives the
// topic and "ok" or "error".
func (p *Publisher) WithMetrics(onPublish func(topic, status string)) *Publisher {
	p.onPublish = onPublish
	return p
}

func (p *Publisher) publish(ctx context.Context, topic, eventType string, key common.ID, payload interface{}) (err error) {
	if p.onPublish != nil {
		defer func() {
			status := "ok"
			if err != nil {
				status = "error"
			}
			p.onPublish(topic, status)
		}()
	}

	env, err := NewEventEnvelope(eventType, payload)
	if err != nil {
		return err
	}
	value, err := json.Marshal(env)
	if err != nil {
		return errors.Wrap(err, errors.ErrCodeSerialization, "failed to marshal envelope")
	}
	return p.producer.Publish(ctx, &common.ProducerMessage{
		Topic:     topic,
		Key:       []byte(key),
		Value:     value,
		Timestamp: env.Timestamp,
		Headers: map[string]string{
			"event_type":     eventType,
			"source_service": eventSource,
			"schema_version": env.SchemaVersion,
		},
	})
}

// InspectionRecorded publishes an inspection.recorded event.
func (p *Publisher) InspectionRecorded(ctx context.Context, ins *inspection.LeakInspection) error {
	return p.publish(ctx, TopicInspectionRecorded, TopicInspectionRecorded, ins.EquipmentID,
		InspectionRecordedPayload{
			InspectionID: ins.ID,
			EquipmentID:  ins.EquipmentID,
			TechnicianID: ins.TechnicianID,
			LeakRate:     ins.CalculatedLeakRate,
			Compliant:    ins.Compliant,
			InspectedAt:  ins.InspectionDate,
		})
}

// AlertRaised publishes an alert.raised event.
func (p *Publisher) AlertRaised(ctx context.Context, a *alert.ComplianceAlert) error {
	return p.publish(ctx, TopicAlertRaised, TopicAlertRaised, a.EquipmentID,
		AlertRaisedPayload{
			AlertID:     a.ID,
			EquipmentID: a.EquipmentID,
			AlertType:   string(a.AlertType),
			Severity:    string(a.Severity),
			Title:       a.Title,
			CreatedAt:   a.CreatedDate,
		})
}

// InventoryLow publishes an inventory.low event.
func (p *Publisher) InventoryLow(ctx context.Context, inv *inventory.RefrigerantInventory) error {
	return p.publish(ctx, TopicInventoryLow, TopicInventoryLow, inv.ID,
		InventoryLowPayload{
			InventoryID:     inv.ID,
			RefrigerantType: inv.RefrigerantType,
			QuantityOnHand:  inv.QuantityOnHand,
			ReorderLevel:    inv.ReorderLevel,
		})
}

//Personal.AI order the ending
