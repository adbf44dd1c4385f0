package appointments

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/imrishuroy/go-appointment-flow/internal/messages"
)

// EventPutter puts one event on a bus. Implemented by aws.EventBusPublisher.
type EventPutter interface {
	PutEvent(ctx context.Context, detailType, detail string) error
}

// BusNotifier announces created appointments on the event bus.
type BusNotifier struct {
	bus    EventPutter
	logger logrus.FieldLogger
}

func NewBusNotifier(bus EventPutter, logger logrus.FieldLogger) *BusNotifier {
	return &BusNotifier{bus: bus, logger: logger}
}

func (n *BusNotifier) PublishAppointmentCreated(ctx context.Context, a Appointment) error {
	detail, err := messages.Marshal(messages.AppointmentCreated{
		ScheduleID: messages.FlexInt(a.ScheduleID),
		InsureID:   a.InsureID,
		CountryISO: a.CountryISO.String(),
		CreatedAt:  a.CreatedAt,
		DynamoID:   a.DynamoID,
		State:      a.State,
	})
	if err != nil {
		return fmt.Errorf("marshal appointment created: %w", err)
	}
	if err := n.bus.PutEvent(ctx, messages.DetailTypeAppointmentCreate, detail); err != nil {
		return err
	}
	n.logger.WithFields(logrus.Fields{"dynamo_id": a.DynamoID, "country": a.CountryISO}).Debug("appointment created event put")
	return nil
}
