package consumers

import (
	"context"

	"github.com/aws/aws-lambda-go/events"
	"github.com/sirupsen/logrus"

	"github.com/imrishuroy/go-appointment-flow/internal/messages"
	"github.com/imrishuroy/go-appointment-flow/internal/metrics"
	"github.com/imrishuroy/go-appointment-flow/internal/requests"
)

// RequestReconciler moves a request to the state its fulfillment reported.
type RequestReconciler interface {
	Reconcile(ctx context.Context, in requests.ReconcileInput) (*requests.AppointmentRequest, bool, error)
}

// ReconciliationConsumer feeds appointment-created events back into the request store.
type ReconciliationConsumer struct {
	reconciler RequestReconciler
	logger     logrus.FieldLogger
	metrics    metrics.Recorder
}

func NewReconciliationConsumer(r RequestReconciler, logger logrus.FieldLogger, rec metrics.Recorder) *ReconciliationConsumer {
	if rec == nil {
		rec = metrics.Nop{}
	}
	return &ReconciliationConsumer{
		reconciler: r,
		logger:     logger.WithField("component", "reconciliation_consumer"),
		metrics:    rec,
	}
}

// Handle is the SQS batch entry point.
func (c *ReconciliationConsumer) Handle(ctx context.Context, ev events.SQSEvent) error {
	return processBatch(ctx, ev, c.logger, c.metrics, nil, c.handleRecord)
}

func (c *ReconciliationConsumer) handleRecord(ctx context.Context, rec events.SQSMessage) error {
	msg, err := messages.ParseAppointmentCreated(rec.Body)
	if err != nil {
		return err
	}

	req, updated, err := c.reconciler.Reconcile(ctx, requests.ReconcileInput{
		DynamoID:   msg.DynamoID,
		State:      msg.State,
		CountryISO: msg.CountryISO,
	})
	if err != nil {
		return err
	}
	if updated {
		c.logger.WithFields(logrus.Fields{
			"message_id": rec.MessageId,
			"dynamo_id":  req.ID,
			"state":      req.State,
		}).Info("appointment request reconciled")
	}
	return nil
}
