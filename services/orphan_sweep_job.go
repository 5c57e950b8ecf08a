package services

import (
	"log"
	"time"

	"task-review-api/models"
	"task-review-api/storage"

	"gorm.io/gorm"
)

// OrphanSweepJob reconciles the storage side of the cross-store gap: a
// submission row and its stored file cannot be removed atomically, so a
// failed storage call can leave an object behind after its row is gone. The
// sweep removes stored objects that no live submission references, skipping
// anything newer than the grace window so in-flight uploads are never
// collected.
//
// The job implements cron.Job and is scheduled from main when
// ORPHAN_SWEEP_SCHEDULE is set.
type OrphanSweepJob struct {
	db    *gorm.DB
	store storage.Store
	grace time.Duration
}

const defaultSweepGrace = 24 * time.Hour

func NewOrphanSweepJob(db *gorm.DB, store storage.Store, grace time.Duration) *OrphanSweepJob {
	if grace <= 0 {
		grace = defaultSweepGrace
	}
	return &OrphanSweepJob{db: db, store: store, grace: grace}
}

func (j *OrphanSweepJob) Run() {
	removed, err := j.Sweep()
	if err != nil {
		log.Printf("Orphan sweep failed: %v", err)
		return
	}
	if removed > 0 {
		log.Printf("Orphan sweep removed %d stale objects", removed)
	}
}

// Sweep returns how many orphaned objects were removed.
func (j *OrphanSweepJob) Sweep() (int, error) {
	objects, err := j.store.List()
	if err != nil {
		return 0, err
	}

	var fileURLs []string
	if err := j.db.Model(&models.Submission{}).Pluck("file_url", &fileURLs).Error; err != nil {
		return 0, err
	}
	referenced := make(map[string]bool, len(fileURLs))
	for _, url := range fileURLs {
		referenced[url] = true
	}

	cutoff := time.Now().Add(-j.grace)
	removed := 0
	for _, obj := range objects {
		if referenced[obj.Key] || obj.ModifiedAt.After(cutoff) {
			continue
		}
		if err := j.store.Remove(obj.Key); err != nil {
			log.Printf("Failed to remove orphaned object %s: %v", obj.Key, err)
			continue
		}
		removed++
	}
	return removed, nil
}
