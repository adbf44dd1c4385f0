// Package appointments is the country processor: it turns a request-created message
// into a row in the country's relational store and announces it on the event bus.
package appointments

import (
	"context"
	"errors"
	"strings"
	"unicode/utf8"

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

const component = "appointments"

// Writer persists appointments.
type Writer interface {
	Insert(ctx context.Context, a *Appointment) (*Appointment, error)
	FindByDynamoID(ctx context.Context, dynamoID string) (*Appointment, error)
}

// Notifier announces created appointments.
type Notifier interface {
	PublishAppointmentCreated(ctx context.Context, a Appointment) error
}

// Service fulfills requests for a single country.
type Service struct {
	country  country.Code
	writer   Writer
	notifier Notifier
	logger   logrus.FieldLogger
	metrics  metrics.Recorder
	tracer   trace.Tracer
}

func NewService(c country.Code, writer Writer, notifier Notifier, logger logrus.FieldLogger, rec metrics.Recorder) *Service {
	if rec == nil {
		rec = metrics.Nop{}
	}
	return &Service{
		country:  c,
		writer:   writer,
		notifier: notifier,
		logger:   logger.WithFields(logrus.Fields{"component": component, "country": c}),
		metrics:  rec,
		tracer:   otel.Tracer("github.com/imrishuroy/go-appointment-flow/internal/appointments"),
	}
}

// Country returns the country this processor is bound to.
func (s *Service) Country() country.Code { return s.country }

// Fulfill records a COMPLETED appointment for in and publishes it. A request that
// was already recorded (a redelivered message) is published again from the
// stored row instead of failing.
func (s *Service) Fulfill(ctx context.Context, in FulfillInput) (*Appointment, error) {
	const op = "Fulfill"
	if err := s.validate(in); err != nil {
		return nil, err
	}

	ctx, span := s.tracer.Start(ctx, "appointments.Fulfill", trace.WithAttributes(
		attribute.String("country", s.country.String()),
		attribute.String("dynamo.id", in.DynamoID),
	))
	defer span.End()

	a := &Appointment{
		InsureID:   in.InsureID,
		ScheduleID: in.ScheduleID,
		CountryISO: s.country,
		State:      StateCompleted,
		DynamoID:   in.DynamoID,
	}

	saved, err := s.writer.Insert(ctx, a)
	fresh := err == nil
	if errors.Is(err, ErrDuplicate) {
		saved, err = s.writer.FindByDynamoID(ctx, in.DynamoID)
		if err == nil && saved == nil {
			err = errors.New("duplicate reported but no row found")
		}
		if err == nil {
			s.logger.WithField("dynamo_id", in.DynamoID).Info("appointment already recorded; publishing again")
		}
	}
	if err != nil {
		logging.LogError(s.logger, component, op, in, err)
		fail(span, err)
		return nil, apperrors.Storage(op, "failed to create appointment", err)
	}

	if err := s.notifier.PublishAppointmentCreated(ctx, *saved); err != nil {
		logging.LogError(s.logger, component, op, in, err)
		fail(span, err)
		return nil, apperrors.Notification(op, "failed to publish appointment created", err)
	}

	if fresh {
		s.metrics.Incr(ctx, metrics.AppointmentsFulfilled, map[string]string{metrics.DimensionCountry: s.country.String()})
	}
	s.logger.WithFields(logrus.Fields{"dynamo_id": saved.DynamoID, "appointment_id": saved.ID}).Info("appointment fulfilled")
	return saved, nil
}

func (s *Service) validate(in FulfillInput) error {
	var msgs []string
	if strings.TrimSpace(in.DynamoID) == "" {
		msgs = append(msgs, "dynamoId is required")
	}
	switch {
	case in.InsureID == "":
		msgs = append(msgs, "insureId is required")
	case utf8.RuneCountInString(in.InsureID) != 5:
		msgs = append(msgs, "insureId must be exactly 5 characters")
	}
	if in.ScheduleID <= 0 {
		msgs = append(msgs, "scheduleId must be a positive integer")
	}
	if c, _ := country.Parse(in.CountryISO); c != s.country {
		msgs = append(msgs, "countryISO "+strings.TrimSpace(in.CountryISO)+" does not match processor country "+s.country.String())
	}
	if len(msgs) > 0 {
		return apperrors.Validation("Fulfill", msgs...)
	}
	return nil
}

func fail(span trace.Span, err error) {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
}
