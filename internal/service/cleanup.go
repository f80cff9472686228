package service

import (
	"time"

	"github.com/Saurav-Paul/drop/internal/blob"
	"github.com/Saurav-Paul/drop/internal/model"
	"github.com/Saurav-Paul/drop/internal/store"

	"github.com/dustin/go-humanize"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// Cleaner reconciles metadata and blob storage: expired records,
// records past their download cap, and blobs that lost their record
// to a crash ("orphans")
type Cleaner struct {
	Files    *store.FileStore
	Settings *store.SettingsStore
	Blobs    *blob.Store
}

// Attach schedules Run on the given interval. The returned cron owns
// the goroutine; callers stop it on shutdown
func (c *Cleaner) Attach(interval time.Duration) *cron.Cron {
	cr := cron.New()
	cr.Schedule(cron.Every(interval), cron.FuncJob(func() { c.Run() }))
	cr.Start()

	zap.L().Debug("Cleanup attached", zap.Duration("tick_every", interval))

	return cr
}

// Run performs one cleanup pass and returns how many records were
// removed. A single failing deletion never aborts the rest of the
// batch, and blob deletion failures are tolerated because the orphan
// sweep of a later pass picks the leftovers up
func (c *Cleaner) Run() int {
	removed := 0
	var reclaimed int64

	expired, err := c.Files.Expired(time.Now().UTC())
	if err != nil {
		zap.L().Error("Failed to query expired files", zap.Error(err))
	}

	exhausted, err := c.Files.Exhausted()
	if err != nil {
		zap.L().Error("Failed to query files past their download cap", zap.Error(err))
	}

	for _, f := range append(expired, exhausted...) {
		if c.remove(f) {
			removed++
			reclaimed += f.Size
		}
	}

	orphans := c.sweepOrphans()

	if err := c.Settings.Set(store.KeyLastCleanup, time.Now().UTC().Format(time.RFC3339)); err != nil {
		zap.L().Error("Failed to record cleanup timestamp", zap.Error(err))
	}

	if removed > 0 || orphans > 0 {
		zap.L().Info("Cleanup finished",
			zap.Int("removed", removed),
			zap.Int("orphans", orphans),
			zap.String("reclaimed", humanize.IBytes(uint64(reclaimed))),
		)
	}

	return removed
}

func (c *Cleaner) remove(f model.File) bool {
	if err := c.Files.DeleteByCode(f.Code); err != nil {
		// Possibly already deleted by an admin since the query, or
		// listed as both expired and exhausted. Not worth a retry
		zap.L().Warn("Failed to delete file record", zap.String("code", f.Code), zap.Error(err))
		return false
	}

	// Best effort. A blob left behind here is an orphan and gets
	// swept on a later pass
	if err := c.Blobs.Delete(f.Code); err != nil {
		zap.L().Error("Failed to delete blob", zap.String("code", f.Code), zap.Error(err))
	}

	return true
}

// sweepOrphans removes code directories that have no metadata record.
// It runs on every pass independently of record state, which is what
// makes blob deletion failures above safe to tolerate
func (c *Cleaner) sweepOrphans() int {
	onDisk, err := c.Blobs.Codes()
	if err != nil {
		zap.L().Error("Failed to list blob codes", zap.Error(err))
		return 0
	}

	known, err := c.Files.Codes()
	if err != nil {
		zap.L().Error("Failed to list record codes", zap.Error(err))
		return 0
	}

	swept := 0

	for _, code := range onDisk {
		if _, ok := known[code]; ok {
			continue
		}

		if err := c.Blobs.Delete(code); err != nil {
			zap.L().Error("Failed to delete orphaned blob", zap.String("code", code), zap.Error(err))
			continue
		}

		zap.L().Debug("Swept orphaned blob", zap.String("code", code))
		swept++
	}

	return swept
}
