package requests

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/imrishuroy/go-appointment-flow/internal/country"
	"github.com/imrishuroy/go-appointment-flow/internal/messages"
)

type capturePublisher struct {
	subject string
	body    string
	attrs   map[string]string
	err     error
}

func (p *capturePublisher) Publish(ctx context.Context, subject, body string, attrs map[string]string) (string, error) {
	p.subject, p.body, p.attrs = subject, body, attrs
	if p.err != nil {
		return "", p.err
	}
	return "msg-1", nil
}

func TestTopicNotifier_PublishesRequestWithAttributes(t *testing.T) {
	pub := &capturePublisher{}
	n := NewTopicNotifier(pub, nullLogger())

	err := n.PublishRequestCreated(context.Background(), AppointmentRequest{
		ID: "r-1", InsureID: "12345", ScheduleID: 7, CountryISO: country.CL, State: StatePending,
	})

	require.NoError(t, err)
	assert.Equal(t, messages.SubjectRequestCreated, pub.subject)
	assert.Equal(t, map[string]string{"eventType": "APPOINTMENT_REQUEST_CREATED", "country": "CL"}, pub.attrs)
	assert.JSONEq(t,
		`{"id":"r-1","insureId":"12345","scheduleId":7,"countryISO":"CL","state":"PENDING","dynamoId":"r-1"}`,
		pub.body)
}

func TestTopicNotifier_PropagatesPublishError(t *testing.T) {
	pub := &capturePublisher{err: errors.New("throttled")}
	n := NewTopicNotifier(pub, nullLogger())

	err := n.PublishRequestCreated(context.Background(), AppointmentRequest{ID: "r-1", CountryISO: country.PE})

	assert.EqualError(t, err, "throttled")
}
