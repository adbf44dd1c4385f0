package consumers

import (
	"context"

	"github.com/aws/aws-lambda-go/events"
	"github.com/sirupsen/logrus"

	"github.com/imrishuroy/go-appointment-flow/internal/appointments"
	"github.com/imrishuroy/go-appointment-flow/internal/country"
	"github.com/imrishuroy/go-appointment-flow/internal/messages"
	"github.com/imrishuroy/go-appointment-flow/internal/metrics"
)

// Fulfiller is a country processor.
type Fulfiller interface {
	Fulfill(ctx context.Context, in appointments.FulfillInput) (*appointments.Appointment, error)
	Country() country.Code
}

// FulfillmentConsumer feeds request-created messages from a country queue to its processor.
type FulfillmentConsumer struct {
	svc     Fulfiller
	logger  logrus.FieldLogger
	metrics metrics.Recorder
}

func NewFulfillmentConsumer(svc Fulfiller, logger logrus.FieldLogger, rec metrics.Recorder) *FulfillmentConsumer {
	if rec == nil {
		rec = metrics.Nop{}
	}
	return &FulfillmentConsumer{
		svc:     svc,
		logger:  logger.WithFields(logrus.Fields{"component": "fulfillment_consumer", "country": svc.Country()}),
		metrics: rec,
	}
}

// Handle is the SQS batch entry point.
func (c *FulfillmentConsumer) Handle(ctx context.Context, ev events.SQSEvent) error {
	dims := map[string]string{metrics.DimensionCountry: c.svc.Country().String()}
	return processBatch(ctx, ev, c.logger, c.metrics, dims, c.handleRecord)
}

func (c *FulfillmentConsumer) handleRecord(ctx context.Context, rec events.SQSMessage) error {
	msg, err := messages.ParseRequestCreated(rec.Body)
	if err != nil {
		return err
	}
	c.logger.WithFields(logrus.Fields{"message_id": rec.MessageId, "dynamo_id": msg.OriginID()}).Info("request created received")

	_, err = c.svc.Fulfill(ctx, appointments.FulfillInput{
		InsureID:   msg.InsureID,
		ScheduleID: msg.ScheduleID.Int(),
		CountryISO: msg.CountryISO,
		DynamoID:   msg.OriginID(),
	})
	return err
}
