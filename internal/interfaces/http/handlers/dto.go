package handlers

import (
	"github.com/PavaniTiago/atly-quiz-funnel/internal/application/usecases"
	"github.com/PavaniTiago/atly-quiz-funnel/internal/domain/entities"
	"github.com/jinzhu/copier"
	"github.com/shopspring/decimal"
)

type Testimonial struct {
	Quote  string `json:"quote"`
	Name   string `json:"name"`
	Avatar string `json:"avatar"`
	Stars  int    `json:"stars"`
}

type LandingScreen struct {
	Headline     string        `json:"headline"`
	Testimonials []Testimonial `json:"testimonials"`
	ProofItems   []string      `json:"proof_items"`
	CTA          string        `json:"cta"`
	Next         string        `json:"next"`
}

type QuestionDTO struct {
	ID      int                   `json:"id"`
	Type    entities.QuestionType `json:"type"`
	Prompt  string                `json:"question"`
	Options []string              `json:"answers"`
	HasInfo bool                  `json:"has_info"`
}

type QuestionScreen struct {
	Question        QuestionDTO `json:"question"`
	TotalQuestions  int         `json:"total_questions"`
	Progress        float64     `json:"progress"`
	Hint            string      `json:"hint,omitempty"`
	Selection       interface{} `json:"selection"`
	ContinueEnabled bool        `json:"continue_enabled"`
	Back            *string     `json:"back"`
	Skip            string      `json:"skip"`
}

type InfoScreen struct {
	QuestionID int                   `json:"question_id"`
	Title      string                `json:"title"`
	Text       string                `json:"text"`
	Content    *entities.InfoContent `json:"content,omitempty"`
	Progress   float64               `json:"progress"`
	Next       string                `json:"next"`
	Back       string                `json:"back"`
}

type QuizEndScreen struct {
	Title    string   `json:"title"`
	Subtitle string   `json:"subtitle"`
	Emojis   []string `json:"emojis"`
	Next     string   `json:"next"`
}

type PlanDTO struct {
	Type         entities.PlanType `json:"plan_type"`
	Label        string            `json:"label"`
	Price        decimal.Decimal   `json:"price"`
	MonthlyPrice decimal.Decimal   `json:"monthly_price"`
	BillingNote  string            `json:"billing_note"`
}

type PricingScreen struct {
	Plans     []PlanDTO         `json:"plans"`
	Selected  entities.PlanType `json:"selected"`
	TrialDays int               `json:"trial_days"`
	TrialEnds string            `json:"trial_ends"`
	CTA       string            `json:"cta"`
}

type AnalysisFrameDTO struct {
	ElapsedMs int64  `json:"elapsed_ms"`
	Percent   int    `json:"percent"`
	Step      string `json:"step"`
}

type LoaderSchedule struct {
	Frames     []AnalysisFrameDTO `json:"frames"`
	RedirectMs int64              `json:"redirect_ms"`
	Next       string             `json:"next"`
}

type Navigation struct {
	Next      string      `json:"next"`
	Selection interface{} `json:"selection,omitempty"`
}

type AnswerRequest struct {
	Answer  *string  `json:"answer"`
	Answers []string `json:"answers"`
}

type ToggleRequest struct {
	Option   string `json:"option"`
	Selected bool   `json:"selected"`
}

type LandingInteractionRequest struct {
	Action string `json:"action"`
}

type PlanRequest struct {
	PlanType string `json:"plan_type"`
}

type DropoffRequest struct {
	Page   string `json:"page"`
	Reason string `json:"reason"`
}

type ErrorReportRequest struct {
	Message string `json:"message"`
	Context string `json:"context"`
}

func toQuestionDTO(q *entities.QuizQuestion) (QuestionDTO, error) {
	var dto QuestionDTO
	if err := copier.Copy(&dto, q); err != nil {
		return QuestionDTO{}, err
	}
	dto.HasInfo = q.HasInfo()
	return dto, nil
}

func toPlanDTOs(plans []entities.Plan) ([]PlanDTO, error) {
	dtos := make([]PlanDTO, 0, len(plans))
	if err := copier.Copy(&dtos, &plans); err != nil {
		return nil, err
	}
	return dtos, nil
}

func toFrameDTO(frame usecases.AnalysisFrame) AnalysisFrameDTO {
	return AnalysisFrameDTO{
		ElapsedMs: frame.Elapsed.Milliseconds(),
		Percent:   frame.Percent,
		Step:      frame.Step,
	}
}
