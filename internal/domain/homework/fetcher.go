// internal/domain/homework/fetcher.go
package homework

import "context"

// Fetcher requests homework statuses changed since fromDate (unix seconds).
// Implementations must not retry; failures are returned as *FetchError.
type Fetcher interface {
	FetchStatuses(ctx context.Context, fromDate int64) (StatusResponse, error)
}
