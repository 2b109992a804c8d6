package migrations

import (
	"gorm.io/gorm"
)

// AddIndexes adds indexes to the database to improve query performance
func AddIndexes(db *gorm.DB) error {
	// Add indexes to the funnel_events table
	if err := db.Exec("CREATE INDEX IF NOT EXISTS idx_funnel_events_event_time ON funnel_events (event_time)").Error; err != nil {
		return err
	}
	if err := db.Exec("CREATE INDEX IF NOT EXISTS idx_funnel_events_user_id ON funnel_events (user_id)").Error; err != nil {
		return err
	}
	if err := db.Exec("CREATE INDEX IF NOT EXISTS idx_funnel_events_session_id ON funnel_events (session_id)").Error; err != nil {
		return err
	}
	if err := db.Exec("CREATE INDEX IF NOT EXISTS idx_funnel_events_event_name ON funnel_events (event_name)").Error; err != nil {
		return err
	}

	// Add indexes to the user_profiles table
	if err := db.Exec("CREATE INDEX IF NOT EXISTS idx_user_profiles_updated_at ON user_profiles (updated_at)").Error; err != nil {
		return err
	}

	// Add indexes to the visitor_storage table
	if err := db.Exec("CREATE INDEX IF NOT EXISTS idx_visitor_storage_updated_at ON visitor_storage (updated_at)").Error; err != nil {
		return err
	}

	return nil
}
