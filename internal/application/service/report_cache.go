package service

import (
	"context"
	"log"
)

// reportCachePrefix namespaces every cached aggregation
const reportCachePrefix = "report:"

// ReportCache stores computed report views between ledger changes
type ReportCache interface {
	Get(ctx context.Context, key string, dest interface{}) (bool, error)
	Set(ctx context.Context, key string, value interface{}) error
	DeletePrefix(ctx context.Context, prefix string) error
}

// invalidateReports drops cached views after the ledger changed.
// A failure only delays freshness until the TTL, so it is logged and swallowed.
func invalidateReports(ctx context.Context, cache ReportCache) {
	if cache == nil {
		return
	}
	if err := cache.DeletePrefix(ctx, reportCachePrefix); err != nil {
		log.Printf("Warning: failed to invalidate report cache: %v", err)
	}
}
