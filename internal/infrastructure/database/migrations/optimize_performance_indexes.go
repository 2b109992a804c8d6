package migrations

import (
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// OptimizePerformanceIndexes adds the indexes used by the funnel report and
// the event listing.
func OptimizePerformanceIndexes(db *gorm.DB) error {
	log.Info().Msg("Adding performance indexes")

	indexes := []string{
		// funnel report: distinct sessions per step within a period
		`CREATE INDEX IF NOT EXISTS idx_funnel_events_name_time_session ON funnel_events (event_name, event_time, session_id)`,
		// period scans over a large, append-only table
		`CREATE INDEX IF NOT EXISTS idx_funnel_events_time_brin ON funnel_events USING BRIN (event_time)`,
		// profile property lookups
		`CREATE INDEX IF NOT EXISTS idx_user_profiles_properties ON user_profiles USING GIN (properties)`,
	}

	for _, idx := range indexes {
		if err := db.Exec(idx).Error; err != nil {
			return err
		}
	}

	log.Info().Msg("Performance indexes created")
	return nil
}
