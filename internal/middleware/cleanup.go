package middleware

import (
	"littlelemon/internal/logger"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

const cleanupSpec = "@every 1m"

// ScheduleCleanup registers the visitor eviction job on c.
func (l *Limiter) ScheduleCleanup(c *cron.Cron) (cron.EntryID, error) {
	return c.AddFunc(cleanupSpec, func() {
		if n := l.Cleanup(); n > 0 {
			logger.L().Debug("evicted idle rate limit visitors", zap.Int("count", n))
		}
	})
}
