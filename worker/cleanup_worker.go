package worker

import (
	"context"
	"log"
	"time"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"togglenest/models"
)

// CleanupWorker periodically purges tasks whose parent project is gone.
// The project cascade delete is two independent store operations, so a crash
// between them can strand tasks; this sweep is the reconciliation path.
type CleanupWorker struct {
	DB       *gorm.DB
	Logger   *log.Logger
	Interval time.Duration
}

func NewCleanupWorker(db *gorm.DB, logger *log.Logger, interval time.Duration) *CleanupWorker {
	if interval <= 0 {
		interval = time.Hour
	}
	return &CleanupWorker{
		DB:       db,
		Logger:   logger,
		Interval: interval,
	}
}

func (cw *CleanupWorker) Start(ctx context.Context) {
	// Initial delay to let the server start up
	time.Sleep(10 * time.Second)

	cw.Logger.Println("Cleanup worker started")

	ticker := time.NewTicker(cw.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			cw.Logger.Println("Cleanup worker shutting down...")
			return
		case <-ticker.C:
			cw.sweep()
		}
	}
}

func (cw *CleanupWorker) sweep() {
	deleted, err := PurgeOrphanTasks(cw.DB)
	if err != nil {
		cw.Logger.Printf("Error purging orphan tasks: %v", err)
		return
	}
	if deleted > 0 {
		logrus.WithFields(logrus.Fields{
			"deleted": deleted,
		}).Info("orphan tasks purged")
	}
}

// PurgeOrphanTasks deletes tasks referencing a missing project. Idempotent:
// re-running against a clean store deletes nothing.
func PurgeOrphanTasks(db *gorm.DB) (int64, error) {
	result := db.
		Where("project_id NOT IN (?)", db.Model(&models.Project{}).Select("id")).
		Delete(&models.Task{})
	return result.RowsAffected, result.Error
}
