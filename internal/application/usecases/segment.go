package usecases

import (
	"strings"

	"github.com/PavaniTiago/atly-quiz-funnel/internal/domain/entities"
)

var segmentRules = []struct {
	phrase     string
	segment    entities.UserSegment
	motivation entities.PrimaryMotivation
}{
	{"Celiac", entities.SegmentCeliacDiagnosed, entities.MotivationMedicalNecessity},
	{"sensitivity", entities.SegmentGlutenSensitive, entities.MotivationHealthConscious},
	{"wellness", entities.SegmentWellnessFocused, entities.MotivationLifestyleChoice},
	{"athlete", entities.SegmentPerformanceAthlete, entities.MotivationPerformanceOptimization},
	{"support", entities.SegmentSupportingFamily, entities.MotivationFamilySupport},
}

// IdentifySegment classifies a visitor from the answer to the first question.
// Rules are checked in order; the first phrase found wins.
func IdentifySegment(firstAnswer string) (entities.UserSegment, entities.PrimaryMotivation) {
	for _, rule := range segmentRules {
		if strings.Contains(firstAnswer, rule.phrase) {
			return rule.segment, rule.motivation
		}
	}
	return entities.SegmentUnknown, entities.MotivationUnknown
}
