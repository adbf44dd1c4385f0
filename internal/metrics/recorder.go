package metrics

import "context"

// Metric names emitted by the flow.
const (
	RequestsCreated       = "RequestsCreated"
	RequestsReconciled    = "RequestsReconciled"
	AppointmentsFulfilled = "AppointmentsFulfilled"
	BatchFailures         = "BatchFailures"
)

// DimensionCountry is the dimension name carrying the country code.
const DimensionCountry = "Country"

// Recorder counts flow events. Implementations must not fail the caller.
type Recorder interface {
	Incr(ctx context.Context, name string, dims map[string]string)
}

// Nop discards everything.
type Nop struct{}

func (Nop) Incr(context.Context, string, map[string]string) {}
