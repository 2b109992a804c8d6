package usecases

import (
	"context"
	"reflect"
	"regexp"
	"testing"
)

func TestSaveSingleAnswerIsIdempotent(t *testing.T) {
	ctx := context.Background()
	store := NewAnswerStore(newFakeStore(), "visitor-1")

	store.SaveSingleAnswer(ctx, 1, "A")
	once := store.GetAllAnswers(ctx)
	store.SaveSingleAnswer(ctx, 1, "A")
	twice := store.GetAllAnswers(ctx)

	if !reflect.DeepEqual(once, twice) {
		t.Errorf("Expected identical answers after repeated save, got %v and %v", once, twice)
	}
	if got := twice[1].Value(); got != "A" {
		t.Errorf("Expected answer A, got %v", got)
	}
}

func TestSaveMultipleAnswersReplaces(t *testing.T) {
	ctx := context.Background()
	store := NewAnswerStore(newFakeStore(), "visitor-1")

	store.SaveMultipleAnswers(ctx, 2, []string{"X", "Y"})
	store.SaveMultipleAnswers(ctx, 2, []string{"Z"})

	answer, ok := store.GetAnswer(ctx, 2)
	if !ok {
		t.Fatal("Expected answer for question 2")
	}
	if !reflect.DeepEqual(answer.Value(), []string{"Z"}) {
		t.Errorf("Expected [Z], got %v", answer.Value())
	}
}

func TestAnswersKeepOtherQuestions(t *testing.T) {
	ctx := context.Background()
	store := NewAnswerStore(newFakeStore(), "visitor-1")

	store.SaveSingleAnswer(ctx, 1, "A")
	store.SaveMultipleAnswers(ctx, 2, []string{"X", "Y", "X"})
	store.SaveSingleAnswer(ctx, 1, "B")

	answers := store.GetAllAnswers(ctx)
	if len(answers) != 2 {
		t.Fatalf("Expected 2 answers, got %d", len(answers))
	}
	if answers[1].Value() != "B" {
		t.Errorf("Expected last write to win, got %v", answers[1].Value())
	}
	if !reflect.DeepEqual(answers[2].Value(), []string{"X", "Y"}) {
		t.Errorf("Expected deduplicated selection in order, got %v", answers[2].Value())
	}
}

func TestAnswerStoreWireFormat(t *testing.T) {
	ctx := context.Background()
	kv := newFakeStore()
	store := NewAnswerStore(kv, "visitor-1")

	store.SaveSingleAnswer(ctx, 1, "A")
	store.SaveMultipleAnswers(ctx, 2, []string{"X", "Y"})

	want := `{"1":"A","2":["X","Y"]}`
	if got := kv.data["visitor-1:"+KeyQuizAnswers]; got != want {
		t.Errorf("Expected %s, got %s", want, got)
	}
}

func TestGetAllAnswersDegrades(t *testing.T) {
	ctx := context.Background()

	t.Run("missing", func(t *testing.T) {
		store := NewAnswerStore(newFakeStore(), "visitor-1")
		if got := store.GetAllAnswers(ctx); len(got) != 0 {
			t.Errorf("Expected empty answers, got %v", got)
		}
	})

	t.Run("corrupt", func(t *testing.T) {
		kv := newFakeStore()
		kv.data["visitor-1:"+KeyQuizAnswers] = "{not json"
		store := NewAnswerStore(kv, "visitor-1")
		if got := store.GetAllAnswers(ctx); len(got) != 0 {
			t.Errorf("Expected empty answers, got %v", got)
		}

		store.SaveSingleAnswer(ctx, 1, "A")
		if got := store.GetAllAnswers(ctx); len(got) != 1 {
			t.Errorf("Expected corrupt blob to be repaired, got %v", got)
		}
	})

	t.Run("unavailable", func(t *testing.T) {
		kv := newFakeStore()
		kv.failGet = true
		kv.failSet = true
		store := NewAnswerStore(kv, "visitor-1")

		store.SaveSingleAnswer(ctx, 1, "A")
		if got := store.GetAllAnswers(ctx); len(got) != 0 {
			t.Errorf("Expected empty answers, got %v", got)
		}
	})
}

func TestGetOrCreateUserID(t *testing.T) {
	ctx := context.Background()
	pattern := regexp.MustCompile(`^user_\d+_[0-9a-z]{9}$`)

	t.Run("persisted", func(t *testing.T) {
		store := NewAnswerStore(newFakeStore(), "visitor-1")
		first := store.GetOrCreateUserID(ctx)
		if !pattern.MatchString(first) {
			t.Errorf("Expected user id format, got %s", first)
		}
		if second := store.GetOrCreateUserID(ctx); second != first {
			t.Errorf("Expected stable user id %s, got %s", first, second)
		}
	})

	t.Run("storage disabled", func(t *testing.T) {
		kv := newFakeStore()
		kv.failGet = true
		kv.failSet = true
		store := NewAnswerStore(kv, "visitor-1")
		if id := store.GetOrCreateUserID(ctx); !pattern.MatchString(id) {
			t.Errorf("Expected fresh user id, got %s", id)
		}
	})
}

func TestGetOrCreateFirstVisit(t *testing.T) {
	ctx := context.Background()
	store := NewAnswerStore(newFakeStore(), "visitor-1")

	first := store.GetOrCreateFirstVisit(ctx)
	if first == "" {
		t.Fatal("Expected first visit timestamp")
	}
	if second := store.GetOrCreateFirstVisit(ctx); second != first {
		t.Errorf("Expected stable first visit %s, got %s", first, second)
	}
}

func TestSkippedCounterAndReset(t *testing.T) {
	ctx := context.Background()
	store := NewAnswerStore(newFakeStore(), "visitor-1")

	store.IncrementSkipped(ctx)
	if got := store.IncrementSkipped(ctx); got != 2 {
		t.Errorf("Expected 2 skipped, got %d", got)
	}

	store.SaveSingleAnswer(ctx, 1, "A")
	userID := store.GetOrCreateUserID(ctx)
	store.Reset(ctx)

	if got := store.SkippedCount(ctx); got != 0 {
		t.Errorf("Expected skipped counter cleared, got %d", got)
	}
	if got := store.GetAllAnswers(ctx); len(got) != 0 {
		t.Errorf("Expected answers cleared, got %v", got)
	}
	if got := store.GetOrCreateUserID(ctx); got != userID {
		t.Errorf("Expected user id to survive reset, got %s", got)
	}
}
