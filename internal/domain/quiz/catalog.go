package quiz

import (
	"errors"
	"fmt"
	"sync"

	"github.com/PavaniTiago/atly-quiz-funnel/internal/domain/entities"
)

var ErrQuestionNotFound = errors.New("question not found")

// Catalog is the ordered, immutable list of quiz questions. Catalog order is
// quiz order.
type Catalog struct {
	questions []entities.QuizQuestion
	content   map[string]entities.InfoContent

	withInfoOnce sync.Once
	withInfo     []entities.QuizQuestion
}

// NewCatalog validates that ids are dense from 1..N and every question has
// at least one option.
func NewCatalog(questions []entities.QuizQuestion, content map[string]entities.InfoContent) (*Catalog, error) {
	if len(questions) == 0 {
		return nil, errors.New("catalog needs at least one question")
	}
	for i, q := range questions {
		if q.ID != i+1 {
			return nil, fmt.Errorf("question at position %d has id %d, want %d", i, q.ID, i+1)
		}
		if len(q.Options) == 0 {
			return nil, fmt.Errorf("question %d has no options", q.ID)
		}
		if q.Type != entities.QuestionTypeSingle && q.Type != entities.QuestionTypeMultiple {
			return nil, fmt.Errorf("question %d has unknown type %q", q.ID, q.Type)
		}
	}
	if content == nil {
		content = map[string]entities.InfoContent{}
	}
	return &Catalog{questions: questions, content: content}, nil
}

// DefaultCatalog is the Atly onboarding quiz.
func DefaultCatalog() *Catalog {
	c, err := NewCatalog(defaultQuestions, defaultInfoContent)
	if err != nil {
		panic(err)
	}
	return c
}

// GetQuestionByID returns the question with the given id, or false when the
// id is outside 1..N.
func (c *Catalog) GetQuestionByID(id int) (*entities.QuizQuestion, bool) {
	if id < 1 || id > len(c.questions) {
		return nil, false
	}
	q := c.questions[id-1]
	return &q, true
}

func (c *Catalog) TotalQuestions() int {
	return len(c.questions)
}

func (c *Catalog) Questions() []entities.QuizQuestion {
	out := make([]entities.QuizQuestion, len(c.questions))
	copy(out, c.questions)
	return out
}

// QuestionsWithInfo lists the questions followed by an interstitial. Computed
// once.
func (c *Catalog) QuestionsWithInfo() []entities.QuizQuestion {
	c.withInfoOnce.Do(func() {
		for _, q := range c.questions {
			if q.Info != nil {
				c.withInfo = append(c.withInfo, q)
			}
		}
	})
	return c.withInfo
}

// InfoContent looks up the rich interstitial content by title.
func (c *Catalog) InfoContent(title string) (entities.InfoContent, bool) {
	content, ok := c.content[title]
	return content, ok
}

// Progress is the percentage of the quiz reached when showing question id.
func (c *Catalog) Progress(id int) float64 {
	if len(c.questions) == 0 {
		return 0
	}
	return float64(id) / float64(len(c.questions)) * 100
}

func IsMultipleChoice(q *entities.QuizQuestion) bool {
	return q != nil && q.Type == entities.QuestionTypeMultiple
}

func IsSingleChoice(q *entities.QuizQuestion) bool {
	return q != nil && q.Type == entities.QuestionTypeSingle
}
