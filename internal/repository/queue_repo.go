package repository

import "context"

// DispatchQueue hands freshly scheduled jobs off to the external execution
// layer. Scheduling never blocks on crawl completion; the executor pops ids
// at its own pace.
type DispatchQueue interface {
	// PushJob enqueues a job id for execution.
	PushJob(ctx context.Context, jobID string) error
	// PopJob dequeues the oldest job id, or ErrQueueEmpty.
	PopJob(ctx context.Context) (string, error)
}

// RawDataQueue feeds the normalization workers. The crawler side pushes raw
// data row ids as payloads land; workers pop them in FIFO order.
type RawDataQueue interface {
	// Push enqueues a raw data row id for normalization.
	Push(ctx context.Context, rawDataID int64) error
	// Pop dequeues the oldest raw data row id, or ErrQueueEmpty.
	Pop(ctx context.Context) (int64, error)
	// Size returns the current queue depth.
	Size(ctx context.Context) (int64, error)
}
