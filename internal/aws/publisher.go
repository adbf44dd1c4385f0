package aws

import (
	"context"
	"errors"
	"fmt"

	sdkaws "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/eventbridge"
	ebtypes "github.com/aws/aws-sdk-go-v2/service/eventbridge/types"
	"github.com/aws/aws-sdk-go-v2/service/sns"
	snstypes "github.com/aws/aws-sdk-go-v2/service/sns/types"
	"github.com/aws/aws-sdk-go-v2/service/sqs"
	sqstypes "github.com/aws/aws-sdk-go-v2/service/sqs/types"
)

// CountryAttribute is the message attribute SNS subscriptions and the queue router filter on.
const CountryAttribute = "country"

// ErrMissingTopic is returned when publishing without a topic ARN.
var ErrMissingTopic = errors.New("sns topic arn is missing or empty")

// SNSPublisher wraps an SNS client and a topic ARN.
type SNSPublisher struct {
	SNS      SNSAPI
	TopicARN string
}

// NewSNSPublisher returns a publisher bound to a topic.
func NewSNSPublisher(client SNSAPI, topicARN string) *SNSPublisher {
	return &SNSPublisher{SNS: client, TopicARN: topicARN}
}

// Publish sends messageBody to the topic. attributes are sent as String message attributes.
func (p *SNSPublisher) Publish(ctx context.Context, subject, messageBody string, attributes map[string]string) (string, error) {
	if p.TopicARN == "" {
		return "", ErrMissingTopic
	}
	input := &sns.PublishInput{
		TopicArn: &p.TopicARN,
		Message:  &messageBody,
	}
	if subject != "" {
		input.Subject = &subject
	}
	if len(attributes) > 0 {
		attrs := make(map[string]snstypes.MessageAttributeValue, len(attributes))
		for k, v := range attributes {
			attrs[k] = snstypes.MessageAttributeValue{
				DataType:    sdkaws.String("String"),
				StringValue: sdkaws.String(v),
			}
		}
		input.MessageAttributes = attrs
	}

	out, err := p.SNS.Publish(ctx, input)
	if err != nil {
		return "", fmt.Errorf("sns publish: %w", err)
	}
	return sdkaws.ToString(out.MessageId), nil
}

// QueueRouter sends messages straight to a per-country SQS queue. It stands in for
// the SNS fan-out when no topic is configured (local and dev stacks).
type QueueRouter struct {
	SQS       SQSAPI
	QueueURLs map[string]string // country code -> queue URL
}

// NewQueueRouter returns a router over the given country queues.
func NewQueueRouter(client SQSAPI, queueURLs map[string]string) *QueueRouter {
	return &QueueRouter{SQS: client, QueueURLs: queueURLs}
}

// Publish picks the queue from the country attribute and sends the body wrapped the
// way an SNS subscription would deliver it, so consumers see one envelope format.
func (r *QueueRouter) Publish(ctx context.Context, subject, messageBody string, attributes map[string]string) (string, error) {
	country := attributes[CountryAttribute]
	queueURL, ok := r.QueueURLs[country]
	if !ok || queueURL == "" {
		return "", fmt.Errorf("no queue configured for country %q", country)
	}

	body, err := wrapAsNotification(subject, messageBody, attributes)
	if err != nil {
		return "", err
	}
	input := &sqs.SendMessageInput{
		QueueUrl:    &queueURL,
		MessageBody: &body,
	}
	if len(attributes) > 0 {
		msgAttrs := map[string]sqstypes.MessageAttributeValue{}
		for k, v := range attributes {
			// using string type for all attrs
			msgAttrs[k] = sqstypes.MessageAttributeValue{
				DataType:    sdkaws.String("String"),
				StringValue: sdkaws.String(v),
			}
		}
		input.MessageAttributes = msgAttrs
	}

	out, err := r.SQS.SendMessage(ctx, input)
	if err != nil {
		return "", fmt.Errorf("send message: %w", err)
	}
	return sdkaws.ToString(out.MessageId), nil
}

// EventBusPublisher puts events on an EventBridge bus under a fixed source.
type EventBusPublisher struct {
	EventBridge EventBridgeAPI
	BusName     string
	Source      string
}

// NewEventBusPublisher returns a publisher bound to a bus and source.
func NewEventBusPublisher(client EventBridgeAPI, busName, source string) *EventBusPublisher {
	return &EventBusPublisher{EventBridge: client, BusName: busName, Source: source}
}

// PutEvent puts a single event. A partially failed batch is reported as an error.
func (p *EventBusPublisher) PutEvent(ctx context.Context, detailType, detail string) error {
	out, err := p.EventBridge.PutEvents(ctx, &eventbridge.PutEventsInput{
		Entries: []ebtypes.PutEventsRequestEntry{
			{
				EventBusName: &p.BusName,
				Source:       &p.Source,
				DetailType:   &detailType,
				Detail:       &detail,
			},
		},
	})
	if err != nil {
		return fmt.Errorf("put events: %w", err)
	}
	if out.FailedEntryCount > 0 {
		code, msg := "", ""
		if len(out.Entries) > 0 {
			code = sdkaws.ToString(out.Entries[0].ErrorCode)
			msg = sdkaws.ToString(out.Entries[0].ErrorMessage)
		}
		return fmt.Errorf("put events: %d entries failed (%s: %s)", out.FailedEntryCount, code, msg)
	}
	return nil
}
