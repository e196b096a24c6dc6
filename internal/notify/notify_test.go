package notify

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/Domenick1991/flightbooking/internal/domain"
)

func TestMessage(t *testing.T) {
	for _, s := range domain.FlightStatuses() {
		text, err := Message(domain.FlightStatusEvent{FlightNumber: "SU100", Status: s})
		require.NoError(t, err, s)
		assert.Contains(t, text, "SU100")
	}

	_, err := Message(domain.FlightStatusEvent{FlightNumber: "SU100", Status: "BOARDING"})
	assert.ErrorIs(t, err, domain.ErrUnknownFlightStatus)
}

func TestSender_Send(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	s := NewSender(zap.New(core))
	event := domain.FlightStatusEvent{FlightID: 7, FlightNumber: "SU100", Status: domain.FlightStatusCancelled}

	require.NoError(t, s.Send(context.Background(), event))

	entries := logs.FilterMessage("passenger notification").All()
	require.Len(t, entries, 1)
	fields := entries[0].ContextMap()
	assert.Equal(t, int64(7), fields["flight_id"])
	assert.Equal(t, "CANCELLED", fields["status"])
	assert.Contains(t, fields["text"], "cancelled")
}

func TestSender_Send_Cancelled(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := NewSender(zap.New(core)).Send(ctx, domain.FlightStatusEvent{Status: domain.FlightStatusArrived})

	assert.ErrorIs(t, err, context.Canceled)
	assert.Zero(t, logs.Len())
}
