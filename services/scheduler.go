package services

import (
	"log"
	"os"

	"github.com/robfig/cron/v3"
)

// StartScheduler wires the in-process cron jobs. Schedules come from the
// PRICING_CRON and CALENDAR_SYNC_CRON environment variables (standard
// five-field cron expressions); either being unset disables that job. The
// HTTP trigger endpoints keep working either way, so deployments that prefer
// an external scheduler simply leave both unset.
func StartScheduler() *cron.Cron {
	pricingSpec := os.Getenv("PRICING_CRON")
	syncSpec := os.Getenv("CALENDAR_SYNC_CRON")
	if pricingSpec == "" && syncSpec == "" {
		return nil
	}

	c := cron.New()

	if pricingSpec != "" {
		_, err := c.AddFunc(pricingSpec, func() {
			settings := LoadSettings()
			batch := ExecuteAllRules(settings)
			log.Printf("scheduled pricing run: %d properties, %d rooms updated",
				batch.PropertiesProcessed, batch.TotalUpdated)
		})
		if err != nil {
			log.Println("invalid PRICING_CRON expression:", err)
		}
	}

	if syncSpec != "" {
		_, err := c.AddFunc(syncSpec, func() {
			batch := SyncAllConnections()
			log.Printf("scheduled calendar sync: %d imported, %d conflicts",
				batch.TotalImported, batch.TotalConflicts)
		})
		if err != nil {
			log.Println("invalid CALENDAR_SYNC_CRON expression:", err)
		}
	}

	c.Start()
	return c
}
