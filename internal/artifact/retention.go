package artifact

import (
	"context"
	"os"
	"path/filepath"
	"time"

	"github.com/sirupsen/logrus"
)

// Sweeper periodically deletes files in the working directory that are older
// than the retention window. It runs independently of session state, so a
// stale session may reference a swept file; transforms surface that as
// ErrMissing.
type Sweeper struct {
	Dir       string
	Retention time.Duration
	Interval  time.Duration
	Logger    *logrus.Logger
}

// Run sweeps until the context is cancelled.
func (s *Sweeper) Run(ctx context.Context) {
	ticker := time.NewTicker(s.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.sweep()
		}
	}
}

func (s *Sweeper) sweep() {
	cutoff := time.Now().Add(-s.Retention)
	removed := 0

	entries, err := os.ReadDir(s.Dir)
	if err != nil {
		s.Logger.WithError(err).Warn("Retention sweep: cannot read working directory")
		return
	}

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		if info.ModTime().After(cutoff) {
			continue
		}
		path := filepath.Join(s.Dir, entry.Name())
		if err := os.Remove(path); err != nil {
			s.Logger.WithError(err).WithField("file", entry.Name()).Warn("Retention sweep: remove failed")
			continue
		}
		removed++
	}

	if removed > 0 {
		s.Logger.WithFields(logrus.Fields{
			"removed":   removed,
			"retention": s.Retention.String(),
		}).Debug("Retention sweep completed")
	}
}
