package usecases

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"github.com/PavaniTiago/atly-quiz-funnel/internal/domain/entities"
	"github.com/PavaniTiago/atly-quiz-funnel/internal/domain/quiz"
)

func newTestPort(t *testing.T, kv *fakeStore) (*QuizAnswerPort, *AnswerStore, *recordingCollector) {
	t.Helper()
	collector := newRecordingCollector()
	store := NewAnswerStore(kv, "visitor-1")
	session := entities.NewFunnelSession("visitor-1")
	tracker := NewTrackerFactory(collector).For(store, session, entities.ClientInfo{})
	return NewQuizAnswerPort(quiz.NewResolver(quiz.DefaultCatalog()), store, session, tracker), store, collector
}

func TestSelectSingle(t *testing.T) {
	ctx := context.Background()
	port, store, collector := newTestPort(t, newFakeStore())
	q := question(t, 1)

	next, err := port.SelectSingle(ctx, q, q.Options[0])
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if next != quiz.InfoRoute(1) {
		t.Errorf("Expected %s, got %s", quiz.InfoRoute(1), next)
	}
	if answer, _ := store.GetAnswer(ctx, 1); answer.Value() != q.Options[0] {
		t.Errorf("Expected saved answer, got %v", answer.Value())
	}
	if segment, ok := store.GetSegmentAnswer(ctx); !ok || segment.First() != q.Options[0] {
		t.Errorf("Expected segment answer snapshot, got %v", segment.Value())
	}
	if collector.last(entities.EventAnswerSelected) == nil {
		t.Error("Expected Answer Selected event")
	}

	if _, err := port.SelectSingle(ctx, q, "Not an option"); !errors.Is(err, ErrInvalidOption) {
		t.Errorf("Expected ErrInvalidOption, got %v", err)
	}
	if _, err := port.SelectSingle(ctx, question(t, 2), "Specific GF menu items"); !errors.Is(err, ErrWrongQuestionType) {
		t.Errorf("Expected ErrWrongQuestionType, got %v", err)
	}
}

func TestSelectMultiple(t *testing.T) {
	ctx := context.Background()
	port, store, _ := newTestPort(t, newFakeStore())
	q := question(t, 3)

	next, err := port.SelectMultiple(ctx, q, []string{q.Options[1], q.Options[0]})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if next != quiz.QuestionRoute(4) {
		t.Errorf("Expected %s, got %s", quiz.QuestionRoute(4), next)
	}
	answer, _ := store.GetAnswer(ctx, 3)
	if !reflect.DeepEqual(answer.Values, []string{q.Options[1], q.Options[0]}) {
		t.Errorf("Expected selection order kept, got %v", answer.Values)
	}

	if _, err := port.SelectMultiple(ctx, q, nil); !errors.Is(err, ErrEmptySelection) {
		t.Errorf("Expected ErrEmptySelection, got %v", err)
	}
	if _, err := port.SelectMultiple(ctx, q, []string{"Carrier pigeon"}); !errors.Is(err, ErrInvalidOption) {
		t.Errorf("Expected ErrInvalidOption, got %v", err)
	}
}

func TestToggle(t *testing.T) {
	ctx := context.Background()
	port, _, collector := newTestPort(t, newFakeStore())
	q := question(t, 4)

	if _, err := port.Toggle(ctx, q, "Restaurants", true); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	selection, err := port.Toggle(ctx, q, "Bars & Pubs", true)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if !reflect.DeepEqual(selection, []string{"Restaurants", "Bars & Pubs"}) {
		t.Errorf("Expected two selections, got %v", selection)
	}

	selection, _ = port.Toggle(ctx, q, "Restaurants", false)
	if !reflect.DeepEqual(selection, []string{"Bars & Pubs"}) {
		t.Errorf("Expected Restaurants removed, got %v", selection)
	}
	if got := port.GetSelection(ctx, q).Values; !reflect.DeepEqual(got, []string{"Bars & Pubs"}) {
		t.Errorf("Expected persisted selection, got %v", got)
	}

	selected := 0
	for _, name := range collector.names() {
		if name == entities.EventAnswerSelected {
			selected++
		}
	}
	if selected != 2 {
		t.Errorf("Expected 2 Answer Selected events, got %d", selected)
	}
}

func TestToggleReselectKeepsOrder(t *testing.T) {
	ctx := context.Background()
	port, _, collector := newTestPort(t, newFakeStore())
	q := question(t, 3)

	for _, option := range []string{"Social media", "General map apps (e.g., Google Maps)", "Social media"} {
		if _, err := port.Toggle(ctx, q, option, true); err != nil {
			t.Fatalf("Unexpected error: %v", err)
		}
	}
	if got := port.GetSelection(ctx, q).Values; !reflect.DeepEqual(got, []string{"Social media", "General map apps (e.g., Google Maps)"}) {
		t.Errorf("Expected Social media first and map apps second, got %v", got)
	}

	selection, err := port.Toggle(ctx, q, "I don't have a go-to source", false)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if !reflect.DeepEqual(selection, []string{"Social media", "General map apps (e.g., Google Maps)"}) {
		t.Errorf("Expected unselected option to change nothing, got %v", selection)
	}

	selected := 0
	for _, name := range collector.names() {
		if name == entities.EventAnswerSelected {
			selected++
		}
	}
	if selected != 2 {
		t.Errorf("Expected 2 Answer Selected events, got %d", selected)
	}
}

func TestToggleKeepsSelectionWhenNotSaved(t *testing.T) {
	ctx := context.Background()
	kv := newFakeStore()
	port, store, _ := newTestPort(t, kv)
	q := question(t, 4)

	if _, err := port.Toggle(ctx, q, "Restaurants", true); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	kv.failWrite[KeyQuizAnswers] = true
	selection, err := port.Toggle(ctx, q, "Grocery Stores", true)
	if !errors.Is(err, ErrSelectionNotSaved) {
		t.Errorf("Expected ErrSelectionNotSaved, got %v", err)
	}
	want := []string{"Restaurants", "Grocery Stores"}
	if !reflect.DeepEqual(selection, want) {
		t.Errorf("Expected %v, got %v", want, selection)
	}
	if got := port.GetSelection(ctx, q).Values; !reflect.DeepEqual(got, want) {
		t.Errorf("Expected session selection %v, got %v", want, got)
	}
	if stored, _ := store.GetAnswer(ctx, q.ID); !reflect.DeepEqual(stored.Values, []string{"Restaurants"}) {
		t.Errorf("Expected stored selection [Restaurants], got %v", stored.Values)
	}
}

func TestToggleWithStorageDisabled(t *testing.T) {
	ctx := context.Background()
	kv := newFakeStore()
	kv.failGet = true
	kv.failSet = true
	port, _, collector := newTestPort(t, kv)
	q := question(t, 3)

	selection, err := port.Toggle(ctx, q, "Social media", true)
	if !errors.Is(err, ErrSelectionNotSaved) {
		t.Errorf("Expected ErrSelectionNotSaved, got %v", err)
	}
	if !reflect.DeepEqual(selection, []string{"Social media"}) {
		t.Errorf("Expected [Social media], got %v", selection)
	}
	if port.GetSelection(ctx, q).IsEmpty() {
		t.Error("Expected selection to survive for the session")
	}
	if collector.last(entities.EventAnswerSelected) == nil {
		t.Error("Expected Answer Selected event")
	}

	selection, _ = port.Toggle(ctx, q, "Social media", false)
	if len(selection) != 0 || !port.GetSelection(ctx, q).IsEmpty() {
		t.Errorf("Expected empty selection after deselect, got %v", selection)
	}
}

func TestAnsweringEveryQuestion(t *testing.T) {
	ctx := context.Background()
	port, store, collector := newTestPort(t, newFakeStore())
	catalog := quiz.DefaultCatalog()

	questions := catalog.Questions()
	for i := range questions {
		q := &questions[i]
		var err error
		if quiz.IsMultipleChoice(q) {
			_, err = port.SelectMultiple(ctx, q, []string{q.Options[0]})
		} else {
			_, err = port.SelectSingle(ctx, q, q.Options[0])
		}
		if err != nil {
			t.Fatalf("Unexpected error on question %d: %v", q.ID, err)
		}
	}

	total := catalog.TotalQuestions()
	if got := len(store.GetAllAnswers(ctx)); got != total {
		t.Errorf("Expected %d stored answers, got %d", total, got)
	}

	port.tracker.TrackQuizCompleted(ctx)
	event := collector.last(entities.EventQuizCompleted)
	if event == nil {
		t.Fatal("Expected Quiz Completed event")
	}
	if event.Properties["questions_answered"] != total {
		t.Errorf("Expected questions_answered %d, got %v", total, event.Properties["questions_answered"])
	}
	if event.Properties["completion_rate"] != float64(100) {
		t.Errorf("Expected completion_rate 100, got %v", event.Properties["completion_rate"])
	}
}

func TestSelectWithStorageDisabled(t *testing.T) {
	ctx := context.Background()
	kv := newFakeStore()
	kv.failGet = true
	kv.failSet = true
	port, store, collector := newTestPort(t, kv)
	q := question(t, 1)

	next, err := port.SelectSingle(ctx, q, q.Options[2])
	if err != nil {
		t.Fatalf("Expected navigation to continue, got %v", err)
	}
	if next != quiz.InfoRoute(1) {
		t.Errorf("Expected %s, got %s", quiz.InfoRoute(1), next)
	}
	if got := store.GetAllAnswers(ctx); len(got) != 0 {
		t.Errorf("Expected no stored answers, got %v", got)
	}
	event := collector.last(entities.EventAnswerSelected)
	if event == nil || event.Properties["total_answers"] != 1 {
		t.Errorf("Expected Answer Selected with total_answers 1, got %v", event)
	}
}
