package entities

import (
	"time"

	"gorm.io/datatypes"
)

// UserProfile is the per-user record kept alongside events, the equivalent of
// the collector's people profile.
type UserProfile struct {
	UserID     string            `json:"user_id" gorm:"primaryKey;column:user_id"`
	Properties datatypes.JSONMap `json:"properties" gorm:"column:properties;type:jsonb"`
	CreatedAt  time.Time         `json:"created_at"`
	UpdatedAt  time.Time         `json:"updated_at"`
}

func (UserProfile) TableName() string {
	return "user_profiles"
}

// ClientInfo carries what the browser reveals about itself on a request; it
// feeds the profile written on identification.
type ClientInfo struct {
	URL         string
	Path        string
	UserAgent   string
	Referrer    string
	UtmSource   string
	UtmMedium   string
	UtmCampaign string
}
