package entities

import (
	"time"

	"github.com/PavaniTiago/atly-quiz-funnel/internal/utils"
	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Funnel event names as sent to the analytics collector.
const (
	EventPageViewed             = "Page Viewed"
	EventLandingPageLoaded      = "Landing Page Loaded"
	EventLandingPageInteraction = "Landing Page Interaction"
	EventQuizStarted            = "Quiz Started"
	EventQuestionViewed         = "Question Viewed"
	EventAnswerSelected         = "Answer Selected"
	EventQuestionSkipped        = "Question Skipped"
	EventBackNavigation         = "Back Navigation"
	EventContinueClicked        = "Continue Clicked"
	EventInfoPageViewed         = "Info Page Viewed"
	EventQuizCompleted          = "Quiz Completed"
	EventAnalysisStarted        = "Analysis Started"
	EventAnalysisProgress       = "Analysis Progress"
	EventPricingPageViewed      = "Pricing Page Viewed"
	EventPlanSelected           = "Plan Selected"
	EventCheckoutStarted        = "Checkout Started"
	EventFreeTrialStarted       = "Free Trial Started"
	EventUserDroppedOff         = "User Dropped Off"
	EventErrorOccurred          = "Error Occurred"
	EventUserSegmentIdentified  = "User Segment Identified"
)

// Event is one funnel transition. Every event carries the session id, the
// emission timestamp and its name; the rest lives in Properties.
type Event struct {
	EventID    uuid.UUID         `json:"event_id" gorm:"type:uuid;primary_key;column:event_id"`
	EventName  string            `json:"event_name" gorm:"column:event_name;index"`
	SessionID  uuid.UUID         `json:"session_id" gorm:"type:uuid;column:session_id;index"`
	UserID     string            `json:"user_id" gorm:"column:user_id;index"`
	VisitorID  string            `json:"visitor_id" gorm:"column:visitor_id"`
	EventTime  time.Time         `json:"event_time" gorm:"column:event_time;index"`
	Page       string            `json:"page,omitempty" gorm:"column:page"`
	Path       string            `json:"path,omitempty" gorm:"column:path"`
	Properties datatypes.JSONMap `json:"properties" gorm:"column:properties;type:jsonb"`
}

func (Event) TableName() string {
	return "funnel_events"
}

// Timestamp is the ISO-8601 rendering used in the event envelope.
func (e *Event) Timestamp() string {
	return utils.ISO8601(e.EventTime)
}

// Envelope returns the properties merged with the envelope fields, the shape
// delivered to external collectors.
func (e *Event) Envelope() map[string]interface{} {
	out := make(map[string]interface{}, len(e.Properties)+4)
	for k, v := range e.Properties {
		out[k] = v
	}
	out["session_id"] = e.SessionID.String()
	out["timestamp"] = e.Timestamp()
	if e.Page != "" {
		out["page"] = e.Page
	}
	if e.Path != "" {
		out["path"] = e.Path
	}
	return out
}
