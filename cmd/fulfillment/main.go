package main

import (
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"

	"github.com/imrishuroy/go-appointment-flow/internal/appointments"
	"github.com/imrishuroy/go-appointment-flow/internal/aws"
	"github.com/imrishuroy/go-appointment-flow/internal/config"
	"github.com/imrishuroy/go-appointment-flow/internal/consumers"
	"github.com/imrishuroy/go-appointment-flow/internal/country"
	"github.com/imrishuroy/go-appointment-flow/internal/logging"
	"github.com/imrishuroy/go-appointment-flow/internal/metrics"
)

// One binary serves every country; COUNTRY_ISO picks the database and the queue it drains.
func main() {
	cfg := config.Load()
	logger := logging.New(cfg.LogLevel)

	code, err := bindCountry(cfg)
	if err != nil {
		logger.Fatal(err)
	}
	log := logger.WithField("country", code)

	ctx := context.Background()
	clients, err := aws.NewAWSClients(ctx, cfg.Region, cfg.EndpointOverride)
	if err != nil {
		log.Fatalf("failed to init aws clients: %v", err)
	}

	db, err := appointments.OpenDB(cfg.CountryDB(code.String()), cfg.DBPool, log)
	if err != nil {
		log.Fatalf("failed to open database: %v", err)
	}
	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	if err := appointments.Ping(pingCtx, db); err != nil {
		log.WithError(err).Warn("database ping failed at cold start")
	}
	cancel()

	rec := metrics.NewCloudWatchRecorder(clients.CloudWatch, cfg.MetricsNamespace, logger)
	svc := appointments.NewService(
		code,
		appointments.NewGormWriter(db),
		appointments.NewBusNotifier(aws.NewEventBusPublisher(clients.EventBridge, cfg.EventBusName, cfg.EventSource), logger),
		logger,
		rec,
	)
	consumer := consumers.NewFulfillmentConsumer(svc, logger, rec)

	// If RUN_LOCAL=true, process a single event built from LOCAL_SQS_BODY.
	if cfg.RunLocal {
		body := cfg.LocalSQSBody
		if body == "" {
			body = `{"Type":"Notification","Message":"{\"id\":\"local-request-1\",\"insureId\":\"00001\",\"scheduleId\":1,\"countryISO\":\"` + code.String() + `\",\"state\":\"PENDING\"}"}`
		}
		event := events.SQSEvent{Records: []events.SQSMessage{{MessageId: "local-1", Body: body}}}
		if err := consumer.Handle(ctx, event); err != nil {
			log.Fatalf("local handler error: %v", err)
		}
		return
	}

	lambda.Start(consumer.Handle)
}

// bindCountry loads SUPPORTED_COUNTRIES and resolves COUNTRY_ISO against it.
func bindCountry(cfg config.Config) (country.Code, error) {
	if err := country.Configure(cfg.Countries...); err != nil {
		return "", fmt.Errorf("SUPPORTED_COUNTRIES: %w", err)
	}
	code, ok := country.Parse(cfg.CountryISO)
	if !ok {
		return "", fmt.Errorf("COUNTRY_ISO %q is not one of %v", cfg.CountryISO, country.Supported())
	}
	return code, nil
}
