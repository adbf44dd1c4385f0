package validation

import "github.com/imrishuroy/go-appointment-flow/internal/messages"

// CreateAppointmentRequest is the payload for POST /appointment-request.
type CreateAppointmentRequest struct {
	InsureID   string            `json:"insureId" validate:"required,len=5"`     // insured person's code
	ScheduleID *messages.FlexInt `json:"scheduleId" validate:"required,gt=0"`    // number or numeric string
	CountryISO string            `json:"countryISO" validate:"required,country"` // country with a processor
}

// ListAppointmentRequestsQuery is the query string of GET /appointment-request.
type ListAppointmentRequestsQuery struct {
	InsureID string `json:"insureId" form:"insureId" validate:"omitempty,len=5"`
}

// allowedListParams are the only query parameters GET /appointment-request accepts.
var allowedListParams = map[string]struct{}{
	"insureId": {},
}
