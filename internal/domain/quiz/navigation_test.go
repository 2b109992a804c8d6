package quiz

import (
	"testing"

	"github.com/PavaniTiago/atly-quiz-funnel/internal/domain/entities"
)

func plainCatalog(t *testing.T, withInfo ...int) *Catalog {
	t.Helper()
	info := map[int]bool{}
	for _, id := range withInfo {
		info[id] = true
	}
	var questions []entities.QuizQuestion
	for id := 1; id <= 4; id++ {
		q := entities.QuizQuestion{ID: id, Type: entities.QuestionTypeSingle, Options: []string{"a", "b"}}
		if info[id] {
			q.Info = &entities.Info{Title: "info"}
		}
		questions = append(questions, q)
	}
	catalog, err := NewCatalog(questions, nil)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	return catalog
}

func TestNextWithoutInterstitial(t *testing.T) {
	catalog := plainCatalog(t)
	resolver := NewResolver(catalog)

	for id := 1; id < catalog.TotalQuestions(); id++ {
		q, _ := catalog.GetQuestionByID(id)
		if got := resolver.Next(q); got != QuestionRoute(id+1) {
			t.Errorf("Expected %s, got %s", QuestionRoute(id+1), got)
		}
	}

	last, _ := catalog.GetQuestionByID(catalog.TotalQuestions())
	if got := resolver.Next(last); got != QuizEndRoute {
		t.Errorf("Expected %s, got %s", QuizEndRoute, got)
	}
}

func TestNextWithInterstitial(t *testing.T) {
	catalog := plainCatalog(t, 2, 4)
	resolver := NewResolver(catalog)

	q2, _ := catalog.GetQuestionByID(2)
	if got := resolver.Next(q2); got != InfoRoute(2) {
		t.Errorf("Expected %s, got %s", InfoRoute(2), got)
	}
	if got := resolver.AfterInfo(q2); got != QuestionRoute(3) {
		t.Errorf("Expected %s, got %s", QuestionRoute(3), got)
	}

	q4, _ := catalog.GetQuestionByID(4)
	if got := resolver.AfterInfo(q4); got != QuizEndRoute {
		t.Errorf("Expected %s, got %s", QuizEndRoute, got)
	}
	if got := resolver.Skip(q4); got != resolver.Next(q4) {
		t.Errorf("Expected skip to match next, got %s", got)
	}
}

func TestBack(t *testing.T) {
	catalog := plainCatalog(t, 2)
	resolver := NewResolver(catalog)

	q1, _ := catalog.GetQuestionByID(1)
	if _, ok := resolver.Back(q1); ok {
		t.Error("Expected back to be disabled on the first question")
	}

	q3, _ := catalog.GetQuestionByID(3)
	if got, ok := resolver.Back(q3); !ok || got != InfoRoute(2) {
		t.Errorf("Expected %s, got %s", InfoRoute(2), got)
	}

	q4, _ := catalog.GetQuestionByID(4)
	if got, ok := resolver.Back(q4); !ok || got != QuestionRoute(3) {
		t.Errorf("Expected %s, got %s", QuestionRoute(3), got)
	}

	q2, _ := catalog.GetQuestionByID(2)
	if got := resolver.BackFromInfo(q2); got != QuestionRoute(2) {
		t.Errorf("Expected %s, got %s", QuestionRoute(2), got)
	}
}

func TestRoutePathsRoundTrip(t *testing.T) {
	routes := []Route{LandingRoute, QuestionRoute(3), InfoRoute(1), QuizEndRoute, LoaderRoute, PricingRoute}
	for _, r := range routes {
		t.Run(r.Path(), func(t *testing.T) {
			parsed, err := ParseRoute(r.Path())
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			if parsed != r {
				t.Errorf("Expected %v, got %v", r, parsed)
			}
		})
	}
}

func TestParseRouteRejectsMalformed(t *testing.T) {
	for _, path := range []string{"/quiz", "/quiz/abc", "/quiz/0", "/quiz/1/other", "/checkout"} {
		if _, err := ParseRoute(path); err == nil {
			t.Errorf("Expected error for %q", path)
		}
	}
}
