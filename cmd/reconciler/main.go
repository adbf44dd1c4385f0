package main

import (
	"context"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"

	"github.com/imrishuroy/go-appointment-flow/internal/aws"
	"github.com/imrishuroy/go-appointment-flow/internal/config"
	"github.com/imrishuroy/go-appointment-flow/internal/consumers"
	"github.com/imrishuroy/go-appointment-flow/internal/country"
	"github.com/imrishuroy/go-appointment-flow/internal/logging"
	"github.com/imrishuroy/go-appointment-flow/internal/metrics"
	"github.com/imrishuroy/go-appointment-flow/internal/requests"
)

func main() {
	cfg := config.Load()
	logger := logging.New(cfg.LogLevel)
	if err := country.Configure(cfg.Countries...); err != nil {
		logger.Fatalf("invalid SUPPORTED_COUNTRIES: %v", err)
	}

	ctx := context.Background()
	clients, err := aws.NewAWSClients(ctx, cfg.Region, cfg.EndpointOverride)
	if err != nil {
		logger.Fatalf("failed to init aws clients: %v", err)
	}

	rec := metrics.NewCloudWatchRecorder(clients.CloudWatch, cfg.MetricsNamespace, logger)
	// The reconciler never creates requests, so it has no notifier.
	svc := requests.NewService(requests.NewDynamoStore(clients.DynamoDB, cfg.RequestsTable), nil, logger)
	consumer := consumers.NewReconciliationConsumer(requests.NewReconciler(svc, logger, rec), logger, rec)

	if cfg.RunLocal {
		body := cfg.LocalSQSBody
		if body == "" {
			body = `{"detail-type":"Appointment Created","source":"appointments.source","detail":{"dynamoId":"local-request-1","state":"COMPLETED"}}`
		}
		event := events.SQSEvent{Records: []events.SQSMessage{{MessageId: "local-1", Body: body}}}
		if err := consumer.Handle(ctx, event); err != nil {
			logger.Fatalf("local handler error: %v", err)
		}
		return
	}

	lambda.Start(consumer.Handle)
}
