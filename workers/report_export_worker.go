// workers/report_export_worker.go
package workers

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"game-asset-system/models"
	"game-asset-system/services"
	"game-asset-system/utils"

	"github.com/go-co-op/gocron/v2"
	"github.com/google/uuid"
)

// ReportSnapshot is the JSON document the worker publishes to R2 so
// dashboards can read the ownership report without hitting this service.
type ReportSnapshot struct {
	GeneratedAt time.Time                  `json:"generated_at"`
	Count       int                        `json:"count"`
	Reports     []models.PlayerAssetReport `json:"reports"`
}

func NewReportSnapshot(reports []models.PlayerAssetReport) ReportSnapshot {
	return ReportSnapshot{
		GeneratedAt: time.Now().UTC(),
		Count:       len(reports),
		Reports:     reports,
	}
}

// ReportExportWorker periodically builds the ownership report and uploads a
// JSON snapshot to R2. Purely additive — request paths never depend on it,
// and a failed export just waits for the next tick.
type ReportExportWorker struct {
	reports  *services.ReportService
	interval time.Duration
}

func NewReportExportWorker(reports *services.ReportService, interval time.Duration) *ReportExportWorker {
	if interval <= 0 {
		interval = 10 * time.Minute
	}
	return &ReportExportWorker{reports: reports, interval: interval}
}

func (w *ReportExportWorker) Start(ctx context.Context) error {
	sched, err := gocron.NewScheduler()
	if err != nil {
		return fmt.Errorf("failed to create scheduler: %w", err)
	}

	_, err = sched.NewJob(
		gocron.DurationJob(w.interval),
		gocron.NewTask(func() {
			w.export(ctx)
		}),
	)
	if err != nil {
		return fmt.Errorf("failed to schedule report export: %w", err)
	}

	sched.Start()
	log.Printf("🔁 Report export worker running (every %s)", w.interval)

	go func() {
		<-ctx.Done()
		_ = sched.Shutdown()
		log.Println("⏹️ Report export worker stopped")
	}()
	return nil
}

func (w *ReportExportWorker) export(ctx context.Context) {
	reports, err := w.reports.BuildReport(ctx)
	if err != nil {
		log.Printf("❌ [EXPORT] failed to build report: %v", err)
		return
	}

	payload, err := json.Marshal(NewReportSnapshot(reports))
	if err != nil {
		log.Printf("❌ [EXPORT] failed to marshal snapshot: %v", err)
		return
	}

	key := fmt.Sprintf("reports/%s-%s.json", time.Now().UTC().Format("20060102T150405Z"), uuid.NewString())
	url, err := utils.UploadBytesToR2(ctx, key, payload, "application/json")
	if err != nil {
		log.Printf("❌ [EXPORT] failed to upload snapshot: %v", err)
		return
	}

	log.Printf("✅ [EXPORT] report snapshot uploaded: %s (%d rows)", url, len(reports))
}
