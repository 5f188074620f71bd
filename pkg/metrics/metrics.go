package metrics

import "time"

type Metrics interface {
	// Business
	RecordLocationUpdate(status string)
	RecordDriverRemoved()
	ObserveNearestResultCount(count int)
	RecordUseCaseExecution(useCaseName string, success bool, duration time.Duration)

	// Infrastructure
	ObserveHTTPRequestDuration(method, path, statusCode string, duration float64)
	IncStoreError(operation string)
}
