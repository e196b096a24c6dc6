package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/Domenick1991/flightbooking/internal/domain"
)

type MockWriter struct {
	mock.Mock
}

func (m *MockWriter) WriteMessages(ctx context.Context, msgs ...kafka.Message) error {
	args := m.Called(ctx, msgs)
	return args.Error(0)
}

func (m *MockWriter) Close() error {
	return m.Called().Error(0)
}

// sliceReader serves queued messages, then returns err.
type sliceReader struct {
	msgs   []kafka.Message
	err    error
	closed bool
}

func (r *sliceReader) ReadMessage(ctx context.Context) (kafka.Message, error) {
	if len(r.msgs) == 0 {
		if r.err != nil {
			return kafka.Message{}, r.err
		}
		<-ctx.Done()
		return kafka.Message{}, ctx.Err()
	}
	msg := r.msgs[0]
	r.msgs = r.msgs[1:]
	return msg, nil
}

func (r *sliceReader) Close() error {
	r.closed = true
	return nil
}

func sampleEvent() domain.FlightStatusEvent {
	f := domain.Flight{ID: 7, FlightNumber: "SU100"}
	return domain.NewFlightStatusEvent(f, domain.FlightStatusDelayed, time.Date(2024, 3, 9, 12, 0, 0, 0, time.UTC))
}

func sameEvent(a, b domain.FlightStatusEvent) bool {
	return a.EventID == b.EventID && a.FlightID == b.FlightID && a.FlightNumber == b.FlightNumber &&
		a.Status == b.Status && a.OccurredAt.Equal(b.OccurredAt)
}

func TestProducer_Publish(t *testing.T) {
	w := &MockWriter{}
	p := &Producer{writer: w, log: zap.NewNop()}
	ctx := context.Background()
	event := sampleEvent()

	w.On("WriteMessages", ctx, mock.MatchedBy(func(msgs []kafka.Message) bool {
		if len(msgs) != 1 || msgs[0].Topic != "flight-status" || string(msgs[0].Key) != "7" {
			return false
		}
		var got domain.FlightStatusEvent
		return json.Unmarshal(msgs[0].Value, &got) == nil && sameEvent(got, event)
	})).Return(nil).Once()

	err := p.Publish(ctx, "flight-status", "7", event)

	require.NoError(t, err)
	w.AssertExpectations(t)
}

func TestProducer_Publish_MarshalError(t *testing.T) {
	w := &MockWriter{}
	p := &Producer{writer: w, log: zap.NewNop()}

	err := p.Publish(context.Background(), "t", "k", make(chan int))

	assert.ErrorContains(t, err, "failed to marshal payload")
	w.AssertNotCalled(t, "WriteMessages", mock.Anything, mock.Anything)
}

func TestProducer_PublishWithRetry(t *testing.T) {
	w := &MockWriter{}
	p := &Producer{writer: w, log: zap.NewNop()}
	ctx := context.Background()

	w.On("WriteMessages", ctx, mock.Anything).Return(errors.New("leader not available")).Once()
	w.On("WriteMessages", ctx, mock.Anything).Return(nil).Once()

	err := p.PublishWithRetry(ctx, "flight-status", "7", sampleEvent(), 3)

	require.NoError(t, err)
	w.AssertNumberOfCalls(t, "WriteMessages", 2)
}

func TestProducer_PublishWithRetry_Exhausted(t *testing.T) {
	w := &MockWriter{}
	p := &Producer{writer: w, log: zap.NewNop()}
	boom := errors.New("leader not available")
	w.On("WriteMessages", mock.Anything, mock.Anything).Return(boom)

	err := p.PublishWithRetry(context.Background(), "flight-status", "7", sampleEvent(), 1)

	assert.ErrorIs(t, err, boom)
	assert.ErrorContains(t, err, "failed after 1 retries")
}

func TestProducer_PublishWithRetry_Cancelled(t *testing.T) {
	w := &MockWriter{}
	p := &Producer{writer: w, log: zap.NewNop()}
	ctx, cancel := context.WithCancel(context.Background())
	w.On("WriteMessages", mock.Anything, mock.Anything).Run(func(mock.Arguments) { cancel() }).Return(errors.New("timeout"))

	err := p.PublishWithRetry(ctx, "flight-status", "7", sampleEvent(), 5)

	assert.ErrorIs(t, err, context.Canceled)
	w.AssertNumberOfCalls(t, "WriteMessages", 1)
}

func TestConsumer_Consume(t *testing.T) {
	first, _ := json.Marshal(sampleEvent())
	r := &sliceReader{msgs: []kafka.Message{{Value: first}, {Value: first}}, err: io.EOF}
	c := &Consumer{reader: r, log: zap.NewNop()}

	var handled int
	err := c.Consume(context.Background(), func(ctx context.Context, msg kafka.Message) error {
		handled++
		return nil
	})

	assert.ErrorIs(t, err, io.EOF)
	assert.Equal(t, 2, handled)
	require.NoError(t, c.Close())
	assert.True(t, r.closed)
}

func TestConsumer_Consume_StopsOnCancel(t *testing.T) {
	r := &sliceReader{}
	c := &Consumer{reader: r, log: zap.NewNop()}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := c.Consume(ctx, func(context.Context, kafka.Message) error { return nil })

	assert.NoError(t, err)
}

func TestConsumer_Consume_HandlerError(t *testing.T) {
	r := &sliceReader{msgs: []kafka.Message{{Value: []byte("{}")}}}
	c := &Consumer{reader: r, log: zap.NewNop()}
	boom := errors.New("handler failed")

	err := c.Consume(context.Background(), func(context.Context, kafka.Message) error { return boom })

	assert.ErrorIs(t, err, boom)
}

func TestDecodeFlightStatusEvent(t *testing.T) {
	event := sampleEvent()
	data, err := json.Marshal(event)
	require.NoError(t, err)

	got, err := DecodeFlightStatusEvent(kafka.Message{Value: data})
	require.NoError(t, err)
	assert.True(t, sameEvent(event, got))

	_, err = DecodeFlightStatusEvent(kafka.Message{Value: []byte("not json")})
	assert.ErrorContains(t, err, "decode flight status event")

	_, err = DecodeFlightStatusEvent(kafka.Message{Value: []byte(`{"flight_id":1,"status":"BOARDING"}`)})
	assert.ErrorIs(t, err, domain.ErrUnknownFlightStatus)
}

func TestConsumer_CloseNil(t *testing.T) {
	var c *Consumer
	assert.NoError(t, c.Close())
}
