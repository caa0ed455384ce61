package kafka

import (
	"context"
	"encoding/json"
	"io"
	"testing"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/turtacn/FreonTrack-Compliance/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/FreonTrack-Compliance/pkg/types/common"
)

type fakeReader struct {
	messages  []kafka.Message
	committed []kafka.Message
	closed    bool
}

func (r *fakeReader) FetchMessage(ctx context.Context) (kafka.Message, error) {
	if len(r.messages) == 0 {
		return kafka.Message{}, io.EOF
	}
	msg := r.messages[0]
	r.messages = r.messages[1:]
	return msg, nil
}

func (r *fakeReader) CommitMessages(ctx context.Context, msgs ...kafka.Message) error {
	r.committed = append(r.committed, msgs...)
	return nil
}

func (r *fakeReader) Close() error {
	r.closed = true
	return nil
}

type fakeRescorer struct {
	rescored []common.ID
	err      error
}

func (f *fakeRescorer) Rescore(ctx context.Context, equipmentID common.ID) error {
	if f.err != nil {
		return f.err
	}
	f.rescored = append(f.rescored, equipmentID)
	return nil
}

func inspectionMessage(t *testing.T, equipmentID common.ID) kafka.Message {
	t.Helper()
	env, err := NewEventEnvelope(TopicInspectionRecorded, InspectionRecordedPayload{
		InspectionID: common.NewID(),
		EquipmentID:  equipmentID,
		TechnicianID: common.NewID(),
		Compliant:    false,
	})
	require.NoError(t, err)
	value, err := json.Marshal(env)
	require.NoError(t, err)
	return kafka.Message{Topic: TopicInspectionRecorded, Value: value}
}

func TestRescoreConsumer_HandlesInspectionEvent(t *testing.T) {
	eqID := common.NewID()
	reader := &fakeReader{messages: []kafka.Message{inspectionMessage(t, eqID)}}
	rescorer := &fakeRescorer{}
	c := NewRescoreConsumerWithReader(reader, rescorer, logging.NewNopLogger())

	msg, err := reader.FetchMessage(context.Background())
	require.NoError(t, err)
	require.NoError(t, c.handle(context.Background(), msg))

	require.Len(t, rescorer.rescored, 1)
	assert.Equal(t, eqID, rescorer.rescored[0])
}

func TestRescoreConsumer_RejectsMalformedEnvelope(t *testing.T) {
	c := NewRescoreConsumerWithReader(&fakeReader{}, &fakeRescorer{}, logging.NewNopLogger())

	err := c.handle(context.Background(), kafka.Message{Value: []byte("not json")})
	assert.Error(t, err)
}

func TestRescoreConsumer_RejectsMissingEquipmentID(t *testing.T) {
	env, err := NewEventEnvelope(TopicInspectionRecorded, InspectionRecordedPayload{})
	require.NoError(t, err)
	value, err := json.Marshal(env)
	require.NoError(t, err)

	rescorer := &fakeRescorer{}
	c := NewRescoreConsumerWithReader(&fakeReader{}, rescorer, logging.NewNopLogger())

	err = c.handle(context.Background(), kafka.Message{Value: value})
	assert.Error(t, err)
	assert.Empty(t, rescorer.rescored)
}

func TestRescoreConsumer_CloseIdempotent(t *testing.T) {
	reader := &fakeReader{}
	c := NewRescoreConsumerWithReader(reader, &fakeRescorer{}, logging.NewNopLogger())

	require.NoError(t, c.Close())
	assert.True(t, reader.closed)
	require.NoError(t, c.Close())
}

//Personal.AI order the ending
