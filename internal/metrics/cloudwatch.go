package metrics

import (
	"context"
	"sort"
	"time"

	sdkaws "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/cloudwatch"
	cwtypes "github.com/aws/aws-sdk-go-v2/service/cloudwatch/types"
	"github.com/sirupsen/logrus"

	"github.com/imrishuroy/go-appointment-flow/internal/aws"
)

// CloudWatchRecorder publishes one PutMetricData call per Incr. Failures are logged
// and dropped so a metrics outage never fails a request or a batch.
type CloudWatchRecorder struct {
	client    aws.CloudWatchAPI
	namespace string
	logger    logrus.FieldLogger
	nowFunc   func() time.Time
}

// NewCloudWatchRecorder returns a recorder for namespace, or Nop when namespace is empty.
func NewCloudWatchRecorder(client aws.CloudWatchAPI, namespace string, logger logrus.FieldLogger) Recorder {
	if namespace == "" || client == nil {
		return Nop{}
	}
	return &CloudWatchRecorder{
		client:    client,
		namespace: namespace,
		logger:    logger,
		nowFunc:   time.Now,
	}
}

func (r *CloudWatchRecorder) Incr(ctx context.Context, name string, dims map[string]string) {
	datum := cwtypes.MetricDatum{
		MetricName: sdkaws.String(name),
		Unit:       cwtypes.StandardUnitCount,
		Value:      sdkaws.Float64(1),
		Timestamp:  sdkaws.Time(r.nowFunc()),
	}
	keys := make([]string, 0, len(dims))
	for k := range dims {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		if dims[k] == "" {
			continue
		}
		datum.Dimensions = append(datum.Dimensions, cwtypes.Dimension{
			Name:  sdkaws.String(k),
			Value: sdkaws.String(dims[k]),
		})
	}

	_, err := r.client.PutMetricData(ctx, &cloudwatch.PutMetricDataInput{
		Namespace:  &r.namespace,
		MetricData: []cwtypes.MetricDatum{datum},
	})
	if err != nil {
		r.logger.WithFields(logrus.Fields{"component": "metrics", "metric": name}).Warnf("put metric data: %v", err)
	}
}
