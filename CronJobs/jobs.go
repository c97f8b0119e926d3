package CronJobs

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"PalkhiTrans/Models"
	"PalkhiTrans/Notifications"

	"github.com/robfig/cron/v3"
	"github.com/shopspring/decimal"
)

// TransferReminder is a scheduled job that nags the ops channel about transfer
// requirements that have been pending for too long. It never touches billing
// state.
type TransferReminder struct {
	cronScheduler *cron.Cron
	maxPendingAge time.Duration
	jobID         cron.EntryID
}

// NewTransferReminder creates the reminder. The pending-age cutoff comes from
// TRANSFER_REMINDER_DAYS (default 2).
func NewTransferReminder() *TransferReminder {
	days := 2
	if s := os.Getenv("TRANSFER_REMINDER_DAYS"); s != "" {
		if parsed, err := strconv.Atoi(s); err == nil && parsed > 0 {
			days = parsed
		}
	}
	return &TransferReminder{
		cronScheduler: cron.New(),
		maxPendingAge: time.Duration(days) * 24 * time.Hour,
	}
}

// Start schedules the daily check at 09:00.
func (r *TransferReminder) Start() error {
	var err error
	r.jobID, err = r.cronScheduler.AddFunc("0 9 * * *", func() {
		log.Println("Running scheduled pending-transfer check")
		r.runCheck()
	})
	if err != nil {
		return fmt.Errorf("error scheduling cron job: %w", err)
	}

	r.cronScheduler.Start()
	log.Println("Transfer reminder scheduler started - will run daily at 9:00 AM")
	return nil
}

// Stop terminates the scheduler.
func (r *TransferReminder) Stop() {
	if r.cronScheduler != nil {
		r.cronScheduler.Stop()
		log.Println("Transfer reminder scheduler stopped")
	}
}

// RunManualCheck executes the check outside the schedule.
func (r *TransferReminder) RunManualCheck() {
	log.Println("Running manual pending-transfer check")
	r.runCheck()
}

func (r *TransferReminder) runCheck() {
	cutoff := time.Now().Add(-r.maxPendingAge)

	var overdue []Models.TransferRequirement
	if err := Models.DB.
		Where("status = ? AND created_at < ?", Models.TransferPending, cutoff).
		Order("created_at ASC").
		Find(&overdue).Error; err != nil {
		log.Printf("Error in pending-transfer check: %v\n", err)
		return
	}

	if len(overdue) == 0 {
		log.Println("No overdue pending transfers found")
		return
	}

	total := decimal.Zero
	for _, req := range overdue {
		total = total.Add(req.Amount)
	}

	log.Printf("Found %d overdue pending transfers totalling %s\n", len(overdue), total.StringFixed(2))
	Notifications.Notify("%d transfer requirement(s) pending for more than %d day(s), totalling %s. Oldest from %s.",
		len(overdue),
		int(r.maxPendingAge.Hours()/24),
		total.StringFixed(2),
		overdue[0].CreatedAt.Format("2006-01-02"))
}
