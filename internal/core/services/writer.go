package services

import (
	"context"
	"sync"

	"github.com/custodia-labs/cashola/internal/core/ports/driven"
	"github.com/custodia-labs/cashola/internal/logger"
)

// writeQueueDepth bounds the per-binding write queue. Mutators block once
// this many writes are outstanding rather than growing without bound.
const writeQueueDepth = 64

// blobWriter serializes the fire-and-forget writes of one async binding.
// Queuing writes to a single goroutine guarantees the stored file always
// converges on the last issued write, which unordered parallel writes
// would not.
type blobWriter struct {
	backend  driven.BlobStore
	location string

	jobs chan writeJob
	done chan struct{}
	once sync.Once
}

type writeJob struct {
	value any
	// ack, when non-nil, marks a flush barrier instead of a write.
	ack chan struct{}
}

func newBlobWriter(backend driven.BlobStore, location string) *blobWriter {
	w := &blobWriter{
		backend:  backend,
		location: location,
		jobs:     make(chan writeJob, writeQueueDepth),
		done:     make(chan struct{}),
	}
	go w.run()
	return w
}

func (w *blobWriter) run() {
	defer close(w.done)
	for job := range w.jobs {
		if job.ack != nil {
			close(job.ack)
			continue
		}
		// No caller is waiting on a fire-and-forget write, so failures
		// are logged and swallowed.
		if err := w.backend.Write(context.Background(), w.location, job.value); err != nil {
			logger.Debug("background write to %s failed: %v", w.location, err)
		}
	}
}

func (w *blobWriter) enqueue(value any) {
	w.jobs <- writeJob{value: value}
}

func (w *blobWriter) flush() {
	ack := make(chan struct{})
	w.jobs <- writeJob{ack: ack}
	<-ack
}

func (w *blobWriter) close() {
	w.once.Do(func() {
		close(w.jobs)
	})
	<-w.done
}
