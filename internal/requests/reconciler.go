package requests

import (
	"context"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/imrishuroy/go-appointment-flow/internal/apperrors"
	"github.com/imrishuroy/go-appointment-flow/internal/metrics"
)

// StateUpdater is the part of Service the reconciler drives.
type StateUpdater interface {
	UpdateRequestState(ctx context.Context, id string, state State) (*AppointmentRequest, error)
}

// ReconcileInput is what a fulfillment event contributes to reconciliation.
type ReconcileInput struct {
	DynamoID   string
	State      string
	CountryISO string
}

// Reconciler closes the loop: a fulfilled appointment moves its originating request
// to the matching terminal state.
type Reconciler struct {
	updater StateUpdater
	logger  logrus.FieldLogger
	metrics metrics.Recorder
}

func NewReconciler(updater StateUpdater, logger logrus.FieldLogger, rec metrics.Recorder) *Reconciler {
	if rec == nil {
		rec = metrics.Nop{}
	}
	return &Reconciler{updater: updater, logger: logger.WithField("component", "reconciler"), metrics: rec}
}

// TerminalState maps a fulfillment state onto the request vocabulary. Only COMPLETED
// and CANCELED map; anything else leaves the request untouched.
func TerminalState(fulfillment string) (State, bool) {
	switch s := State(strings.ToUpper(strings.TrimSpace(fulfillment))); s {
	case StateCompleted, StateCanceled:
		return s, true
	}
	return "", false
}

// Reconcile applies in to its request. The bool reports whether an update was made.
func (r *Reconciler) Reconcile(ctx context.Context, in ReconcileInput) (*AppointmentRequest, bool, error) {
	if strings.TrimSpace(in.DynamoID) == "" {
		return nil, false, apperrors.Validation("Reconcile", "dynamoId is required")
	}
	state, ok := TerminalState(in.State)
	if !ok {
		r.logger.WithFields(logrus.Fields{"dynamo_id": in.DynamoID, "state": in.State}).
			Warn("fulfillment state has no terminal mapping; request left unchanged")
		return nil, false, nil
	}

	req, err := r.updater.UpdateRequestState(ctx, in.DynamoID, state)
	if err != nil {
		return nil, false, err
	}
	r.metrics.Incr(ctx, metrics.RequestsReconciled, map[string]string{metrics.DimensionCountry: in.CountryISO})
	return req, true, nil
}
