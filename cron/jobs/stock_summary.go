package jobs

import (
	"github.com/sirupsen/logrus"

	"barpos.GO/config"
	reportService "barpos.GO/service/report"
)

func init() {
	config.CronJobs["stocksummaryjob"] = config.CronJob{Schedule: "0 7 * * *", Job: StockSummaryJob}
}

// StockSummaryJob logs products at or below the restock threshold so the
// morning shift knows what to reorder.
func StockSummaryJob(args ...string) {
	logger := config.GetLogger()

	db, err := config.NewDB()
	if err != nil {
		config.LogError(logger, "cron/jobs", "StockSummaryJob", "database connection failed", nil, err)
		return
	}

	config.LoadAppConfig()
	threshold := config.AppConfig.LowStockThreshold

	rows, err := reportService.GetReportService(db).LowStock(threshold)
	if err != nil {
		config.LogError(logger, "cron/jobs", "StockSummaryJob", "low stock query failed", nil, err)
		return
	}
	if len(rows) == 0 {
		logger.WithField("threshold", threshold).Info("stock summary: nothing below threshold")
		return
	}
	for _, row := range rows {
		logger.WithFields(logrus.Fields{
			"product_id": row.ID,
			"product":    row.Name,
			"stock":      row.Stock,
			"threshold":  threshold,
		}).Warn("stock summary: low stock")
	}
}
