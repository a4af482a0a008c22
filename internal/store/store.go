// Package store provides data access for schemascout-owned state.
//
// Currently that is the learned term-mapping table. Stores embed the
// shared Base struct for pool and logger access; the explored schema
// itself is read through the catalog package, never through here.
package store

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/schemascout/schemascout/internal/dbpool"
)

const defaultQueryTimeout = 30 * time.Second

// Base contains shared dependencies for all stores.
type Base struct {
	Pool *dbpool.Pool
	Log  *logrus.Logger
}

// withTimeout creates a context with the default query timeout.
func withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, defaultQueryTimeout)
}
