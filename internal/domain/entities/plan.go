package entities

import (
	"fmt"

	"github.com/shopspring/decimal"
)

type PlanType string

const (
	PlanAnnual  PlanType = "annual"
	PlanMonthly PlanType = "monthly"
)

// TrialDays is the length of the free trial offered on every plan.
const TrialDays = 7

// Plan is a pricing option shown on the checkout screen.
type Plan struct {
	Type         PlanType        `json:"plan_type"`
	Label        string          `json:"label"`
	Price        decimal.Decimal `json:"price"`
	MonthlyPrice decimal.Decimal `json:"monthly_price"`
	BillingNote  string          `json:"billing_note"`
}

var plans = []Plan{
	{
		Type:         PlanAnnual,
		Label:        "Annual",
		Price:        decimal.RequireFromString("69.99"),
		MonthlyPrice: decimal.RequireFromString("69.99").Div(decimal.NewFromInt(12)).Round(2),
		BillingNote:  "$69.99 billed annually",
	},
	{
		Type:         PlanMonthly,
		Label:        "Monthly",
		Price:        decimal.RequireFromString("13.99"),
		MonthlyPrice: decimal.RequireFromString("13.99"),
		BillingNote:  "$13.99 billed monthly",
	},
}

// Plans returns the offered plans, annual first.
func Plans() []Plan {
	out := make([]Plan, len(plans))
	copy(out, plans)
	return out
}

func PlanByType(t PlanType) (Plan, error) {
	for _, p := range plans {
		if p.Type == t {
			return p, nil
		}
	}
	return Plan{}, fmt.Errorf("unknown plan type %q", t)
}
