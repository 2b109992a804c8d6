package usecases

import (
	"testing"

	"github.com/PavaniTiago/atly-quiz-funnel/internal/domain/entities"
)

func TestIdentifySegment(t *testing.T) {
	tests := []struct {
		answer     string
		segment    entities.UserSegment
		motivation entities.PrimaryMotivation
	}{
		{"I have a Celiac disease diagnosis", entities.SegmentCeliacDiagnosed, entities.MotivationMedicalNecessity},
		{"I suspect I have a non-celiac gluten sensitivity", entities.SegmentGlutenSensitive, entities.MotivationHealthConscious},
		{"It is a wellness & lifestyle choice", entities.SegmentWellnessFocused, entities.MotivationLifestyleChoice},
		{"I'm an athlete looking for a performance edge.", entities.SegmentPerformanceAthlete, entities.MotivationPerformanceOptimization},
		{"To support a friend or family member", entities.SegmentSupportingFamily, entities.MotivationFamilySupport},
		{"", entities.SegmentUnknown, entities.MotivationUnknown},
		{"celiac", entities.SegmentUnknown, entities.MotivationUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.answer, func(t *testing.T) {
			segment, motivation := IdentifySegment(tt.answer)
			if segment != tt.segment {
				t.Errorf("Expected segment %s, got %s", tt.segment, segment)
			}
			if motivation != tt.motivation {
				t.Errorf("Expected motivation %s, got %s", tt.motivation, motivation)
			}
		})
	}
}
