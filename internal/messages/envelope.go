package messages

import (
	"errors"

	jsoniter "github.com/json-iterator/go"

	"github.com/imrishuroy/go-appointment-flow/internal/apperrors"
)

// snsNotification is the body SNS hands to an SQS subscription.
type snsNotification struct {
	Type      string `json:"Type"`
	MessageID string `json:"MessageId"`
	Message   string `json:"Message"`
}

// busEvent is the body EventBridge hands to an SQS target. Only detail matters here.
type busEvent struct {
	DetailType string              `json:"detail-type"`
	Source     string              `json:"source"`
	Detail     jsoniter.RawMessage `json:"detail"`
	Message    string              `json:"Message"`
}

// ParseRequestCreated unwraps an SQS body carrying an SNS notification whose
// Message is a RequestCreated payload.
func ParseRequestCreated(body string) (*RequestCreated, error) {
	const op = "ParseRequestCreated"

	var n snsNotification
	if err := json.UnmarshalFromString(body, &n); err != nil {
		return nil, apperrors.Parse(op, "invalid message body", err)
	}
	if n.Message == "" {
		return nil, apperrors.Parse(op, "notification has no Message", nil)
	}
	var msg RequestCreated
	if err := json.UnmarshalFromString(n.Message, &msg); err != nil {
		return nil, apperrors.Parse(op, "invalid notification Message", err)
	}
	return &msg, nil
}

// ParseAppointmentCreated unwraps an SQS body carrying an EventBridge event. A body
// bridged through SNS is accepted too: its Message holds either the event or the
// bare detail.
func ParseAppointmentCreated(body string) (*AppointmentCreated, error) {
	const op = "ParseAppointmentCreated"

	var ev busEvent
	if err := json.UnmarshalFromString(body, &ev); err != nil {
		return nil, apperrors.Parse(op, "invalid message body", err)
	}
	detail, err := detailOf(ev)
	if err != nil {
		return nil, apperrors.Parse(op, "event has no detail", err)
	}
	var msg AppointmentCreated
	if err := json.Unmarshal(detail, &msg); err != nil {
		return nil, apperrors.Parse(op, "invalid event detail", err)
	}
	return &msg, nil
}

var errNoDetail = errors.New("neither detail nor Message present")

func detailOf(ev busEvent) ([]byte, error) {
	if len(ev.Detail) > 0 && string(ev.Detail) != "null" {
		return ev.Detail, nil
	}
	if ev.Message == "" {
		return nil, errNoDetail
	}
	var inner busEvent
	if err := json.UnmarshalFromString(ev.Message, &inner); err != nil {
		return nil, err
	}
	if len(inner.Detail) > 0 && string(inner.Detail) != "null" {
		return inner.Detail, nil
	}
	return []byte(ev.Message), nil
}
