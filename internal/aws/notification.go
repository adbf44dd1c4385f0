package aws

import (
	"fmt"

	jsoniter "github.com/json-iterator/go"
)

// notification mirrors the JSON body SNS delivers to an SQS subscription.
type notification struct {
	Type              string                        `json:"Type"`
	Subject           string                        `json:"Subject,omitempty"`
	Message           string                        `json:"Message"`
	MessageAttributes map[string]notificationAttrib `json:"MessageAttributes,omitempty"`
}

type notificationAttrib struct {
	Type  string `json:"Type"`
	Value string `json:"Value"`
}

func wrapAsNotification(subject, message string, attributes map[string]string) (string, error) {
	n := notification{Type: "Notification", Subject: subject, Message: message}
	if len(attributes) > 0 {
		n.MessageAttributes = make(map[string]notificationAttrib, len(attributes))
		for k, v := range attributes {
			n.MessageAttributes[k] = notificationAttrib{Type: "String", Value: v}
		}
	}
	b, err := jsoniter.ConfigCompatibleWithStandardLibrary.Marshal(n)
	if err != nil {
		return "", fmt.Errorf("marshal notification: %w", err)
	}
	return string(b), nil
}
