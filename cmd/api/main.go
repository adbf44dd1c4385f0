package main

import (
	"context"
	"time"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"
	ginadapter "github.com/awslabs/aws-lambda-go-api-proxy/gin"
	"github.com/gin-gonic/gin"

	"github.com/imrishuroy/go-appointment-flow/internal/aws"
	"github.com/imrishuroy/go-appointment-flow/internal/config"
	"github.com/imrishuroy/go-appointment-flow/internal/country"
	"github.com/imrishuroy/go-appointment-flow/internal/handlers"
	"github.com/imrishuroy/go-appointment-flow/internal/logging"
	"github.com/imrishuroy/go-appointment-flow/internal/metrics"
	"github.com/imrishuroy/go-appointment-flow/internal/requests"
)

func main() {
	started := time.Now()
	cfg := config.Load()
	logger := logging.New(cfg.LogLevel)
	if err := country.Configure(cfg.Countries...); err != nil {
		logger.Fatalf("invalid SUPPORTED_COUNTRIES: %v", err)
	}

	clients, err := aws.NewAWSClients(context.Background(), cfg.Region, cfg.EndpointOverride)
	if err != nil {
		logger.Fatalf("failed to init aws clients: %v", err)
	}

	// Without a topic, request-created messages go straight to the country queues.
	var publisher requests.MessagePublisher = aws.NewSNSPublisher(clients.SNS, cfg.TopicARN)
	if cfg.TopicARN == "" {
		logger.WithField("queues", cfg.CountryQueueURLs).Warn("SNS_TOPIC_ARN not set; routing to country queues")
		publisher = aws.NewQueueRouter(clients.SQS, cfg.CountryQueueURLs)
	}

	svc := requests.NewService(
		requests.NewDynamoStore(clients.DynamoDB, cfg.RequestsTable),
		requests.NewTopicNotifier(publisher, logger),
		logger,
		requests.WithMetrics(metrics.NewCloudWatchRecorder(clients.CloudWatch, cfg.MetricsNamespace, logger)),
	)

	if cfg.RunLocal {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}
	r := handlers.NewRouter(handlers.RouterConfig{Requests: svc, Logger: logger, Started: started})

	// if RUN_LOCAL is "true", run a local HTTP server for development.
	if cfg.RunLocal {
		addr := ":" + cfg.Port
		logger.Infof("running local server on %s", addr)
		if err := r.Run(addr); err != nil {
			logger.Fatalf("failed to run local server: %v", err)
		}
		return
	}

	adapter := ginadapter.New(r)

	lambda.Start(func(ctx context.Context, req events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
		return adapter.ProxyWithContext(ctx, req)
	})
}
