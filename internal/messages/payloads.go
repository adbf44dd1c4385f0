// Package messages defines the payloads that travel between the API, the country
// processors and the reconciler, and unwraps them from their queue envelopes.
package messages

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"
	"time"

	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

const (
	EventTypeRequestCreated     = "APPOINTMENT_REQUEST_CREATED"
	SubjectRequestCreated       = "Appointment Request Created"
	DetailTypeAppointmentCreate = "Appointment Created"
)

// FlexInt decodes from a JSON number or a numeric JSON string.
type FlexInt int

func (n *FlexInt) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		return nil
	}
	raw := string(b)
	if len(raw) >= 2 && raw[0] == '"' && raw[len(raw)-1] == '"' {
		raw = strings.TrimSpace(raw[1 : len(raw)-1])
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return fmt.Errorf("must be an integer, got %s", string(b))
	}
	*n = FlexInt(v)
	return nil
}

func (n FlexInt) Int() int { return int(n) }

// RequestCreated is published once an appointment request is stored. It carries the
// whole record; DynamoID is accepted from producers that name the id that way.
type RequestCreated struct {
	ID         string  `json:"id"`
	InsureID   string  `json:"insureId"`
	ScheduleID FlexInt `json:"scheduleId"`
	CountryISO string  `json:"countryISO"`
	State      string  `json:"state"`
	DynamoID   string  `json:"dynamoId,omitempty"`
}

// OriginID returns the id of the appointment request the message refers to.
func (m RequestCreated) OriginID() string {
	if m.DynamoID != "" {
		return m.DynamoID
	}
	return m.ID
}

// AppointmentCreated is the detail of the event a country processor emits after
// writing its relational row.
type AppointmentCreated struct {
	ScheduleID FlexInt   `json:"scheduleId"`
	InsureID   string    `json:"insureId"`
	CountryISO string    `json:"countryISO"`
	CreatedAt  time.Time `json:"createdAt"`
	DynamoID   string    `json:"dynamoId"`
	State      string    `json:"state"`
}

// Marshal encodes v with the package codec.
func Marshal(v any) (string, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return "", err
	}
	return string(b), nil
}
