package requests

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/imrishuroy/go-appointment-flow/internal/aws"
	"github.com/imrishuroy/go-appointment-flow/internal/messages"
)

// MessagePublisher sends a message with string attributes. Implemented by
// aws.SNSPublisher and aws.QueueRouter.
type MessagePublisher interface {
	Publish(ctx context.Context, subject, messageBody string, attributes map[string]string) (string, error)
}

// TopicNotifier publishes request-created messages tagged with event type and country.
type TopicNotifier struct {
	publisher MessagePublisher
	logger    logrus.FieldLogger
}

func NewTopicNotifier(publisher MessagePublisher, logger logrus.FieldLogger) *TopicNotifier {
	return &TopicNotifier{publisher: publisher, logger: logger}
}

func (n *TopicNotifier) PublishRequestCreated(ctx context.Context, req AppointmentRequest) error {
	body, err := messages.Marshal(messages.RequestCreated{
		ID:         req.ID,
		InsureID:   req.InsureID,
		ScheduleID: messages.FlexInt(req.ScheduleID),
		CountryISO: req.CountryISO.String(),
		State:      string(req.State),
		DynamoID:   req.ID,
	})
	if err != nil {
		return fmt.Errorf("marshal request created: %w", err)
	}

	id, err := n.publisher.Publish(ctx, messages.SubjectRequestCreated, body, map[string]string{
		"eventType":          messages.EventTypeRequestCreated,
		aws.CountryAttribute: req.CountryISO.String(),
	})
	if err != nil {
		return err
	}
	n.logger.WithFields(logrus.Fields{"request_id": req.ID, "message_id": id}).Debug("request created published")
	return nil
}
