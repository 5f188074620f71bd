package location

import (
	"context"
	"time"

	"github.com/taxi24/location-service/pkg/metrics"
)

type RemoveMetricsDecorator struct {
	Next    RemoveUseCase
	Metrics metrics.Metrics
}

func (d *RemoveMetricsDecorator) Execute(ctx context.Context, driverID string) error {
	start := time.Now()
	err := d.Next.Execute(ctx, driverID)

	if err == nil {
		d.Metrics.RecordDriverRemoved()
	}
	d.Metrics.RecordUseCaseExecution("RemoveDriver", err == nil, time.Since(start))
	return err
}
