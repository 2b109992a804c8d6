package quiz

import (
	"testing"

	"github.com/PavaniTiago/atly-quiz-funnel/internal/domain/entities"
)

func TestGetQuestionByIDCoversCatalogRange(t *testing.T) {
	catalog := DefaultCatalog()
	total := catalog.TotalQuestions()

	for id := 1; id <= total; id++ {
		q, ok := catalog.GetQuestionByID(id)
		if !ok {
			t.Fatalf("Expected question %d to exist", id)
		}
		if q.ID != id {
			t.Errorf("Expected question id %d, got %d", id, q.ID)
		}
	}

	for _, id := range []int{-1, 0, total + 1, 100} {
		if _, ok := catalog.GetQuestionByID(id); ok {
			t.Errorf("Expected no question for id %d", id)
		}
	}
}

func TestGetQuestionByIDReturnsCopy(t *testing.T) {
	catalog := DefaultCatalog()

	q, _ := catalog.GetQuestionByID(1)
	q.Prompt = "changed"

	again, _ := catalog.GetQuestionByID(1)
	if again.Prompt == "changed" {
		t.Error("Expected catalog entries to be immutable")
	}
}

func TestDefaultCatalogShape(t *testing.T) {
	catalog := DefaultCatalog()

	if catalog.TotalQuestions() != 5 {
		t.Fatalf("Expected 5 questions, got %d", catalog.TotalQuestions())
	}

	q1, _ := catalog.GetQuestionByID(1)
	if IsMultipleChoice(q1) || !IsSingleChoice(q1) {
		t.Error("Expected question 1 to be single choice")
	}
	q2, _ := catalog.GetQuestionByID(2)
	if !IsMultipleChoice(q2) {
		t.Error("Expected question 2 to be multiple choice")
	}
	if IsMultipleChoice(nil) {
		t.Error("Expected nil question not to be multiple choice")
	}
}

func TestQuestionsWithInfo(t *testing.T) {
	catalog := DefaultCatalog()

	withInfo := catalog.QuestionsWithInfo()
	var ids []int
	for _, q := range withInfo {
		ids = append(ids, q.ID)
	}

	expected := []int{1, 2, 4, 5}
	if len(ids) != len(expected) {
		t.Fatalf("Expected %v, got %v", expected, ids)
	}
	for i := range expected {
		if ids[i] != expected[i] {
			t.Errorf("Expected %v, got %v", expected, ids)
		}
	}

	// cached view
	if &catalog.QuestionsWithInfo()[0] != &withInfo[0] {
		t.Error("Expected QuestionsWithInfo to return the cached slice")
	}
}

func TestInfoContentLookup(t *testing.T) {
	catalog := DefaultCatalog()

	for _, q := range catalog.QuestionsWithInfo() {
		content, ok := catalog.InfoContent(q.Info.Title)
		if !ok {
			t.Errorf("Expected content for %q", q.Info.Title)
			continue
		}
		if len(content.Facts) == 0 {
			t.Errorf("Expected facts for %q", q.Info.Title)
		}
	}

	if _, ok := catalog.InfoContent("Nope"); ok {
		t.Error("Expected missing title to have no content")
	}
}

func TestNewCatalogValidation(t *testing.T) {
	testCases := []struct {
		name      string
		questions []entities.QuizQuestion
	}{
		{"empty", nil},
		{"gap in ids", []entities.QuizQuestion{
			{ID: 1, Type: entities.QuestionTypeSingle, Options: []string{"a"}},
			{ID: 3, Type: entities.QuestionTypeSingle, Options: []string{"a"}},
		}},
		{"no options", []entities.QuizQuestion{
			{ID: 1, Type: entities.QuestionTypeSingle},
		}},
		{"unknown type", []entities.QuizQuestion{
			{ID: 1, Type: "ranking", Options: []string{"a"}},
		}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := NewCatalog(tc.questions, nil); err == nil {
				t.Error("Expected validation error")
			}
		})
	}
}

func TestProgress(t *testing.T) {
	catalog := DefaultCatalog()

	if p := catalog.Progress(5); p != 100 {
		t.Errorf("Expected 100, got %f", p)
	}
	if p := catalog.Progress(1); p != 20 {
		t.Errorf("Expected 20, got %f", p)
	}
}
