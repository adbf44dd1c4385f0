// Package consumers adapts SQS batches to the fulfillment and reconciliation services.
package consumers

import (
	"context"
	"fmt"

	"github.com/aws/aws-lambda-go/events"
	"github.com/sirupsen/logrus"

	"github.com/imrishuroy/go-appointment-flow/internal/metrics"
)

type recordFunc func(ctx context.Context, rec events.SQSMessage) error

// processBatch handles records in order. The first failure aborts the batch and is
// returned so the whole batch is redelivered; records after it are not attempted.
func processBatch(ctx context.Context, ev events.SQSEvent, logger logrus.FieldLogger, rec metrics.Recorder, dims map[string]string, handle recordFunc) error {
	logger.WithField("records", len(ev.Records)).Debug("batch received")
	for i, r := range ev.Records {
		if err := handle(ctx, r); err != nil {
			logger.WithFields(logrus.Fields{
				"message_id": r.MessageId,
				"position":   i,
				"records":    len(ev.Records),
			}).WithError(err).Error("record failed; aborting batch")
			rec.Incr(ctx, metrics.BatchFailures, dims)
			return fmt.Errorf("message %s: %w", r.MessageId, err)
		}
	}
	return nil
}
