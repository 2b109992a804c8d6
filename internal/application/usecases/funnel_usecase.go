package usecases

import (
	"context"
	"time"

	"github.com/PavaniTiago/atly-quiz-funnel/internal/domain/entities"
	"github.com/PavaniTiago/atly-quiz-funnel/internal/domain/repositories"
	"github.com/PavaniTiago/atly-quiz-funnel/internal/infrastructure/cache"
)

// FunnelSteps are the events that mark each stage of the funnel, in order.
var FunnelSteps = []string{
	entities.EventLandingPageLoaded,
	entities.EventQuizStarted,
	entities.EventQuizCompleted,
	entities.EventAnalysisStarted,
	entities.EventPricingPageViewed,
	entities.EventPlanSelected,
	entities.EventCheckoutStarted,
}

// FunnelStep is one stage of the report. Conversion is relative to the first
// stage, StepConversion to the previous one, both in percent.
type FunnelStep struct {
	EventName      string  `json:"event_name"`
	Sessions       int64   `json:"sessions"`
	Conversion     float64 `json:"conversion"`
	StepConversion float64 `json:"step_conversion"`
}

type FunnelReport struct {
	From  time.Time    `json:"from"`
	To    time.Time    `json:"to"`
	Steps []FunnelStep `json:"steps"`
}

type FunnelUseCase interface {
	GetReport(ctx context.Context, from, to time.Time) (*FunnelReport, error)
}

type funnelUseCase struct {
	funnelRepo repositories.FunnelRepository
	reports    *cache.Cache
}

// NewFunnelUseCase builds the report use case; a nil cache recomputes every
// report.
func NewFunnelUseCase(funnelRepo repositories.FunnelRepository, reports *cache.Cache) FunnelUseCase {
	return &funnelUseCase{funnelRepo: funnelRepo, reports: reports}
}

func (uc *funnelUseCase) GetReport(ctx context.Context, from, to time.Time) (*FunnelReport, error) {
	key := from.UTC().Format(time.RFC3339Nano) + "|" + to.UTC().Format(time.RFC3339Nano)
	if uc.reports != nil {
		if cached, ok := uc.reports.Get(key); ok {
			return cached.(*FunnelReport), nil
		}
	}

	report, err := uc.buildReport(ctx, from, to)
	if err != nil {
		return nil, err
	}
	if uc.reports != nil {
		uc.reports.Set(key, report)
	}
	return report, nil
}

func (uc *funnelUseCase) buildReport(ctx context.Context, from, to time.Time) (*FunnelReport, error) {
	counts, err := uc.funnelRepo.CountSessionsByEvent(ctx, FunnelSteps, from, to)
	if err != nil {
		return nil, err
	}

	byName := make(map[string]int64, len(counts))
	for _, c := range counts {
		byName[c.EventName] = c.Sessions
	}

	report := &FunnelReport{From: from, To: to, Steps: make([]FunnelStep, 0, len(FunnelSteps))}
	var first, previous int64
	for i, name := range FunnelSteps {
		sessions := byName[name]
		step := FunnelStep{EventName: name, Sessions: sessions}
		if i == 0 {
			first = sessions
			if sessions > 0 {
				step.Conversion = 100
				step.StepConversion = 100
			}
		} else {
			step.Conversion = percentOf(sessions, first)
			step.StepConversion = percentOf(sessions, previous)
		}
		previous = sessions
		report.Steps = append(report.Steps, step)
	}
	return report, nil
}

func percentOf(part, whole int64) float64 {
	if whole == 0 {
		return 0
	}
	return float64(part) / float64(whole) * 100
}
