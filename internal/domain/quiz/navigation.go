package quiz

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/PavaniTiago/atly-quiz-funnel/internal/domain/entities"
)

type RouteKind int

const (
	RouteLanding RouteKind = iota
	RouteQuestion
	RouteInfo
	RouteQuizEnd
	RouteLoader
	RoutePricing
)

// Route is a client-visible funnel destination.
type Route struct {
	Kind       RouteKind
	QuestionID int
}

func QuestionRoute(id int) Route { return Route{Kind: RouteQuestion, QuestionID: id} }
func InfoRoute(id int) Route { return Route{Kind: RouteInfo, QuestionID: id} }

var (
	LandingRoute = Route{Kind: RouteLanding}
	QuizEndRoute = Route{Kind: RouteQuizEnd}
	LoaderRoute  = Route{Kind: RouteLoader}
	PricingRoute = Route{Kind: RoutePricing}
)

func (r Route) Path() string {
	switch r.Kind {
	case RouteQuestion:
		return fmt.Sprintf("/quiz/%d", r.QuestionID)
	case RouteInfo:
		return fmt.Sprintf("/quiz/%d/info", r.QuestionID)
	case RouteQuizEnd:
		return "/quiz-end"
	case RouteLoader:
		return "/loader"
	case RoutePricing:
		return "/pricing"
	default:
		return "/"
	}
}

// Label is the page name used in analytics from/to fields.
func (r Route) Label() string {
	switch r.Kind {
	case RouteQuestion:
		return fmt.Sprintf("question_%d", r.QuestionID)
	case RouteInfo:
		return fmt.Sprintf("info_%d", r.QuestionID)
	case RouteQuizEnd:
		return "quiz_end"
	case RouteLoader:
		return "loader"
	case RoutePricing:
		return "pricing"
	default:
		return "landing"
	}
}

func (r Route) String() string {
	return r.Path()
}

// ParseRoute is the inverse of Route.Path.
func ParseRoute(path string) (Route, error) {
	clean := "/" + strings.Trim(path, "/")
	switch clean {
	case "/":
		return LandingRoute, nil
	case "/quiz-end":
		return QuizEndRoute, nil
	case "/loader":
		return LoaderRoute, nil
	case "/pricing":
		return PricingRoute, nil
	}

	parts := strings.Split(strings.Trim(clean, "/"), "/")
	if parts[0] != "quiz" || len(parts) < 2 || len(parts) > 3 {
		return Route{}, fmt.Errorf("unknown route %q", path)
	}
	id, err := strconv.Atoi(parts[1])
	if err != nil || id < 1 {
		return Route{}, fmt.Errorf("invalid question id in route %q", path)
	}
	if len(parts) == 3 {
		if parts[2] != "info" {
			return Route{}, fmt.Errorf("unknown route %q", path)
		}
		return InfoRoute(id), nil
	}
	return QuestionRoute(id), nil
}

// Resolver computes funnel destinations. It has no side effects.
type Resolver struct {
	catalog *Catalog
}

func NewResolver(catalog *Catalog) *Resolver {
	return &Resolver{catalog: catalog}
}

// Next is the forward target after answering q: its interstitial if it has
// one, otherwise the following question, otherwise the end of the quiz.
func (r *Resolver) Next(q *entities.QuizQuestion) Route {
	if q.HasInfo() {
		return InfoRoute(q.ID)
	}
	return r.questionOrEnd(q.ID + 1)
}

// Skip uses the same target as continuing.
func (r *Resolver) Skip(q *entities.QuizQuestion) Route {
	return r.Next(q)
}

// AfterInfo is where an interstitial continues to. Never another interstitial.
func (r *Resolver) AfterInfo(q *entities.QuizQuestion) Route {
	return r.questionOrEnd(q.ID + 1)
}

// Back returns the previous screen of question q; false on the first question.
func (r *Resolver) Back(q *entities.QuizQuestion) (Route, bool) {
	if q.ID <= 1 {
		return Route{}, false
	}
	prev, ok := r.catalog.GetQuestionByID(q.ID - 1)
	if !ok {
		return Route{}, false
	}
	if prev.HasInfo() {
		return InfoRoute(prev.ID), true
	}
	return QuestionRoute(prev.ID), true
}

// BackFromInfo returns to the question the interstitial belongs to.
func (r *Resolver) BackFromInfo(q *entities.QuizQuestion) Route {
	return QuestionRoute(q.ID)
}

func (r *Resolver) questionOrEnd(id int) Route {
	if id <= r.catalog.TotalQuestions() {
		return QuestionRoute(id)
	}
	return QuizEndRoute
}
