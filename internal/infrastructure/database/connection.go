package database

import (
	"context"

	"gorm.io/gorm"
)

type timezoneKey struct{}

// SetTimezoneMiddleware pins the session timezone to UTC before queries so
// event_time filters compare against UTC timestamps.
func SetTimezoneMiddleware() func(db *gorm.DB) {
	return func(db *gorm.DB) {
		// the SET below runs through the same callback chain
		if _, ok := db.Statement.Context.Value(timezoneKey{}).(bool); ok {
			return
		}

		ctx := context.WithValue(db.Statement.Context, timezoneKey{}, true)
		db.Session(&gorm.Session{NewDB: true, Context: ctx}).Exec("SET timezone = 'UTC'")
	}
}

// RegisterMiddlewares registers the GORM callbacks used by the service.
func RegisterMiddlewares(db *gorm.DB) {
	db.Callback().Query().Before("gorm:query").Register("set_timezone_before_query", SetTimezoneMiddleware())
}
