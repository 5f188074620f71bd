package location

import (
	"context"
	"errors"
	"time"

	"github.com/taxi24/location-service/internal/domain/entity"
	"github.com/taxi24/location-service/pkg/metrics"
)

type NearestMetricsDecorator struct {
	Next    NearestUseCase
	Metrics metrics.Metrics
}

func (d *NearestMetricsDecorator) Execute(ctx context.Context, input NearestInput) ([]NearestOutput, error) {
	start := time.Now()
	out, err := d.Next.Execute(ctx, input)

	if err == nil {
		d.Metrics.ObserveNearestResultCount(len(out))
	}
	if errors.Is(err, entity.ErrStoreUnavailable) {
		d.Metrics.IncStoreError("nearest")
	}
	d.Metrics.RecordUseCaseExecution("NearestDrivers", err == nil, time.Since(start))
	return out, err
}
