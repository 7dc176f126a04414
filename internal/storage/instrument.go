package storage

import (
	"context"
	"time"

	"github.com/k1r/imgstore/internal/metrics"
)

type instrumented struct {
	next   Storage
	driver string
}

// Instrument wraps s so every call is counted and timed under the driver label.
func Instrument(s Storage, driver string) Storage {
	return &instrumented{next: s, driver: driver}
}

func (i *instrumented) Upload(ctx context.Context, key string, data []byte, contentType string) error {
	start := time.Now()
	err := i.next.Upload(ctx, key, data, contentType)
	metrics.RecordStoreOperation(i.driver, OpUpload, err == nil, time.Since(start).Seconds())
	return err
}

func (i *instrumented) Delete(ctx context.Context, key string) error {
	start := time.Now()
	err := i.next.Delete(ctx, key)
	metrics.RecordStoreOperation(i.driver, OpDelete, err == nil, time.Since(start).Seconds())
	return err
}
