package scheduler

import (
	"log"
	"time"

	"gorm.io/gorm"
)

/* =========================================================
   Seat reconciliation

   A crash between a seat claim and the inscription insert
   leaves the counter one ahead of reality. This pass
   recomputes the counter from the active inscriptions and
   repairs drift in either direction.
========================================================= */

// StartSeatReconciliationScheduler runs the reconciliation pass on a fixed
// interval.
func StartSeatReconciliationScheduler(db *gorm.DB, interval time.Duration) {
	if interval <= 0 {
		interval = 10 * time.Minute
	}
	go func() {
		for {
			time.Sleep(interval)
			ReconcileSeatCounts(db)
		}
	}()
}

// ReconcileSeatCounts repairs class_enrolled_count where it disagrees with
// the number of active inscriptions. Capped at capacity so a repair can
// never violate the ledger invariant.
func ReconcileSeatCounts(db *gorm.DB) {
	type drift struct {
		ClassID       string
		EnrolledCount int
		ActualCount   int
	}

	var drifts []drift
	err := db.Raw(`
		SELECT c.class_id,
		       c.class_enrolled_count AS enrolled_count,
		       COUNT(i.inscription_id) AS actual_count
		FROM classes c
		LEFT JOIN inscriptions i
		       ON i.inscription_class_id = c.class_id
		      AND i.inscription_status IN ('PENDING_PAYMENT','CONFIRMED','ATTENDED')
		      AND i.inscription_deleted_at IS NULL
		WHERE c.class_deleted_at IS NULL
		GROUP BY c.class_id, c.class_enrolled_count
		HAVING c.class_enrolled_count <> COUNT(i.inscription_id)
	`).Scan(&drifts).Error
	if err != nil {
		log.Printf("[ERROR] seat reconciliation scan failed: %v", err)
		return
	}
	if len(drifts) == 0 {
		return
	}

	for _, d := range drifts {
		res := db.Exec(`
			UPDATE classes
			SET class_enrolled_count = LEAST(?, class_capacity)
			WHERE class_id = ? AND class_enrolled_count = ?
		`, d.ActualCount, d.ClassID, d.EnrolledCount)
		if res.Error != nil {
			log.Printf("[ERROR] seat repair on class %s failed: %v", d.ClassID, res.Error)
			continue
		}
		if res.RowsAffected == 1 {
			log.Printf("[Reconcile] class %s seat count repaired %d -> %d", d.ClassID, d.EnrolledCount, d.ActualCount)
		}
	}
}
