package location

import (
	"context"
	"errors"
	"time"

	"github.com/taxi24/location-service/internal/domain/entity"
	"github.com/taxi24/location-service/pkg/metrics"
)

type UpdateMetricsDecorator struct {
	Next    UpdateUseCase
	Metrics metrics.Metrics
}

func (d *UpdateMetricsDecorator) Execute(ctx context.Context, input UpdateInput) error {
	start := time.Now()
	err := d.Next.Execute(ctx, input)

	status := "success"
	if err != nil {
		status = "failure"
	}
	if errors.Is(err, entity.ErrStoreUnavailable) {
		d.Metrics.IncStoreError("upsert")
	}
	d.Metrics.RecordLocationUpdate(status)
	d.Metrics.RecordUseCaseExecution("UpdateLocation", err == nil, time.Since(start))
	return err
}
