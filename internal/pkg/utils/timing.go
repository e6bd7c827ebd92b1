package utils

import (
	"context"
	"time"

	"github.com/holasaidlola/shop-analytics/internal/pkg/logger"
)

// Measure runs fn and logs how long the named stage took. Pipeline stages
// are wrapped at their call sites, so the functions themselves stay pure.
func Measure[T any](ctx context.Context, name string, fn func(context.Context) (T, error)) (T, error) {
	start := time.Now()
	res, err := fn(ctx)
	logger.Infof(ctx, "%s executed in %.4fs", name, time.Since(start).Seconds())
	return res, err
}
