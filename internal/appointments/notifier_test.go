package appointments

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/imrishuroy/go-appointment-flow/internal/country"
	"github.com/imrishuroy/go-appointment-flow/internal/messages"
)

type captureBus struct {
	detailType string
	detail     string
	err        error
}

func (b *captureBus) PutEvent(ctx context.Context, detailType, detail string) error {
	b.detailType, b.detail = detailType, detail
	return b.err
}

func TestBusNotifier_PutsAppointmentCreated(t *testing.T) {
	bus := &captureBus{}
	logger, _ := test.NewNullLogger()
	n := NewBusNotifier(bus, logger)

	err := n.PublishAppointmentCreated(context.Background(), Appointment{
		ID:         3,
		InsureID:   "12345",
		ScheduleID: 10,
		CountryISO: country.CL,
		State:      StateCompleted,
		DynamoID:   "r-1",
		CreatedAt:  time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC),
	})

	require.NoError(t, err)
	assert.Equal(t, messages.DetailTypeAppointmentCreate, bus.detailType)
	assert.JSONEq(t,
		`{"scheduleId":10,"insureId":"12345","countryISO":"CL","createdAt":"2024-05-01T10:00:00Z","dynamoId":"r-1","state":"COMPLETED"}`,
		bus.detail)
}

func TestBusNotifier_PropagatesError(t *testing.T) {
	logger, _ := test.NewNullLogger()
	n := NewBusNotifier(&captureBus{err: errors.New("throttled")}, logger)

	err := n.PublishAppointmentCreated(context.Background(), Appointment{DynamoID: "r-1"})

	assert.EqualError(t, err, "throttled")
}
