package entities

type UserSegment string

const (
	SegmentCeliacDiagnosed    UserSegment = "celiac_diagnosed"
	SegmentGlutenSensitive    UserSegment = "gluten_sensitive"
	SegmentWellnessFocused    UserSegment = "wellness_focused"
	SegmentPerformanceAthlete UserSegment = "performance_athlete"
	SegmentSupportingFamily   UserSegment = "supporting_family"
	SegmentUnknown            UserSegment = "unknown"
)

type PrimaryMotivation string

const (
	MotivationMedicalNecessity        PrimaryMotivation = "medical_necessity"
	MotivationHealthConscious         PrimaryMotivation = "health_conscious"
	MotivationLifestyleChoice         PrimaryMotivation = "lifestyle_choice"
	MotivationPerformanceOptimization PrimaryMotivation = "performance_optimization"
	MotivationFamilySupport           PrimaryMotivation = "family_support"
	MotivationUnknown                 PrimaryMotivation = "unknown"
)
