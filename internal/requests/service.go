package requests

import (
	"context"
	"errors"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/imrishuroy/go-appointment-flow/internal/apperrors"
	"github.com/imrishuroy/go-appointment-flow/internal/country"
	"github.com/imrishuroy/go-appointment-flow/internal/logging"
	"github.com/imrishuroy/go-appointment-flow/internal/metrics"
)

const component = "requests"

// Store persists appointment requests.
type Store interface {
	Create(ctx context.Context, req AppointmentRequest) error
	List(ctx context.Context, filter ListFilter) ([]AppointmentRequest, error)
	UpdateState(ctx context.Context, id string, state State) (*AppointmentRequest, error)
}

// Notifier announces new requests to the country processors.
type Notifier interface {
	PublishRequestCreated(ctx context.Context, req AppointmentRequest) error
}

// Service owns the appointment request lifecycle: PENDING on create, one terminal
// state set by reconciliation.
type Service struct {
	store    Store
	notifier Notifier
	logger   logrus.FieldLogger
	metrics  metrics.Recorder
	tracer   trace.Tracer
	newID    func() string
}

type Option func(*Service)

// WithIDGenerator replaces the uuid generator.
func WithIDGenerator(fn func() string) Option {
	return func(s *Service) { s.newID = fn }
}

func WithMetrics(r metrics.Recorder) Option {
	return func(s *Service) { s.metrics = r }
}

func NewService(store Store, notifier Notifier, logger logrus.FieldLogger, opts ...Option) *Service {
	s := &Service{
		store:    store,
		notifier: notifier,
		logger:   logger.WithField("component", component),
		metrics:  metrics.Nop{},
		tracer:   otel.Tracer("github.com/imrishuroy/go-appointment-flow/internal/requests"),
		newID:    uuid.NewString,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// CreateRequest validates in, stores a PENDING request and publishes it. A failed
// publish leaves the stored request in place.
func (s *Service) CreateRequest(ctx context.Context, in CreateInput) (*AppointmentRequest, error) {
	const op = "CreateRequest"
	if err := validateCreate(in); err != nil {
		return nil, err
	}

	ctx, span := s.tracer.Start(ctx, "requests.CreateRequest",
		trace.WithAttributes(attribute.String("country", in.CountryISO.String())))
	defer span.End()

	req := AppointmentRequest{
		ID:         s.newID(),
		InsureID:   in.InsureID,
		ScheduleID: in.ScheduleID,
		CountryISO: in.CountryISO,
		State:      StatePending,
	}
	span.SetAttributes(attribute.String("request.id", req.ID))

	if err := s.store.Create(ctx, req); err != nil {
		logging.LogError(s.logger, component, op, req, err)
		fail(span, err)
		return nil, apperrors.Storage(op, "failed to create appointment request", err)
	}

	if err := s.notifier.PublishRequestCreated(ctx, req); err != nil {
		logging.LogError(s.logger, component, op, req, err)
		fail(span, err)
		return nil, apperrors.Notification(op, "failed to publish appointment request", err)
	}

	s.metrics.Incr(ctx, metrics.RequestsCreated, map[string]string{metrics.DimensionCountry: req.CountryISO.String()})
	s.logger.WithFields(logrus.Fields{"request_id": req.ID, "country": req.CountryISO}).Info("appointment request created")
	return &req, nil
}

// ListRequests returns every request, or those with exactly filter.InsureID.
// The result is never nil.
func (s *Service) ListRequests(ctx context.Context, filter ListFilter) ([]AppointmentRequest, error) {
	const op = "ListRequests"
	ctx, span := s.tracer.Start(ctx, "requests.ListRequests")
	defer span.End()

	out, err := s.store.List(ctx, filter)
	if err != nil {
		logging.LogError(s.logger, component, op, filter, err)
		fail(span, err)
		return nil, apperrors.Storage(op, "failed to fetch appointment requests", err)
	}
	if out == nil {
		out = []AppointmentRequest{}
	}
	return out, nil
}

// UpdateRequestState overwrites the state of request id. Any transition is allowed
// here; applying the same state twice is a no-op that succeeds.
func (s *Service) UpdateRequestState(ctx context.Context, id string, state State) (*AppointmentRequest, error) {
	const op = "UpdateRequestState"
	var msgs []string
	if strings.TrimSpace(id) == "" {
		msgs = append(msgs, "id is required")
	}
	if !state.Valid() {
		msgs = append(msgs, "state must be one of PENDING, COMPLETED, CANCELED")
	}
	if len(msgs) > 0 {
		return nil, apperrors.Validation(op, msgs...)
	}

	ctx, span := s.tracer.Start(ctx, "requests.UpdateRequestState",
		trace.WithAttributes(attribute.String("request.id", id), attribute.String("state", string(state))))
	defer span.End()

	req, err := s.store.UpdateState(ctx, id, state)
	if errors.Is(err, ErrRequestNotFound) {
		fail(span, err)
		return nil, apperrors.NotFound(op, "appointment request not found", err)
	}
	if err != nil {
		logging.LogError(s.logger, component, op, map[string]string{"id": id, "state": string(state)}, err)
		fail(span, err)
		return nil, apperrors.Storage(op, "failed to update appointment request", err)
	}

	s.logger.WithFields(logrus.Fields{"request_id": id, "state": state}).Info("appointment request state updated")
	return req, nil
}

func validateCreate(in CreateInput) error {
	var msgs []string
	switch n := utf8.RuneCountInString(in.InsureID); {
	case n == 0:
		msgs = append(msgs, "insureId is required")
	case n != insureIDLength:
		msgs = append(msgs, "insureId must be exactly 5 characters")
	}
	if in.ScheduleID <= 0 {
		msgs = append(msgs, "scheduleId must be a positive integer")
	}
	if !in.CountryISO.Valid() {
		msgs = append(msgs, "countryISO must be one of "+supportedList())
	}
	if len(msgs) > 0 {
		return apperrors.Validation("CreateRequest", msgs...)
	}
	return nil
}

func supportedList() string {
	codes := country.Supported()
	parts := make([]string, len(codes))
	for i, c := range codes {
		parts[i] = c.String()
	}
	return strings.Join(parts, ", ")
}

func fail(span trace.Span, err error) {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
}
