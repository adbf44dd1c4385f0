package requests

import "github.com/imrishuroy/go-appointment-flow/internal/country"

// State of an appointment request.
type State string

const (
	StatePending   State = "PENDING"
	StateCompleted State = "COMPLETED"
	StateCanceled  State = "CANCELED"
)

// Valid reports whether s is one of the known states.
func (s State) Valid() bool {
	switch s {
	case StatePending, StateCompleted, StateCanceled:
		return true
	}
	return false
}

// AppointmentRequest is the item stored in the appointment requests table.
type AppointmentRequest struct {
	ID         string       `json:"id" dynamodbav:"id"` // PK
	InsureID   string       `json:"insureId" dynamodbav:"insureId"`
	ScheduleID int          `json:"scheduleId" dynamodbav:"scheduleId"`
	CountryISO country.Code `json:"countryISO" dynamodbav:"countryISO"`
	State      State        `json:"state" dynamodbav:"state"` // PENDING | COMPLETED | CANCELED
}

// CreateInput is what a caller supplies to open a request.
type CreateInput struct {
	InsureID   string
	ScheduleID int
	CountryISO country.Code
}

// ListFilter narrows ListRequests. Zero value lists everything.
type ListFilter struct {
	InsureID string
}

// insureIDLength is the fixed length of an insured person's code.
const insureIDLength = 5
