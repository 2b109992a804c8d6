package entities

// QuestionType determines whether one or many options may be chosen.
type QuestionType string

const (
	QuestionTypeSingle   QuestionType = "single"
	QuestionTypeMultiple QuestionType = "multiple"
)

// Info is the interstitial attached to a question. Title doubles as the
// lookup key into the richer InfoContent table.
type Info struct {
	Title string `json:"title"`
	Text  string `json:"text"`
}

// QuizQuestion is a static catalog entry. IDs are dense from 1..N.
type QuizQuestion struct {
	ID      int          `json:"id"`
	Type    QuestionType `json:"type"`
	Prompt  string       `json:"question"`
	Options []string     `json:"answers"`
	Info    *Info        `json:"info,omitempty"`
}

func (q *QuizQuestion) HasInfo() bool {
	return q != nil && q.Info != nil
}

// HasOption reports whether option is one of the question's answers.
func (q *QuizQuestion) HasOption(option string) bool {
	for _, o := range q.Options {
		if o == option {
			return true
		}
	}
	return false
}

// InfoFact is one bullet on an interstitial screen.
type InfoFact struct {
	Icon      string `json:"icon"`
	Text      string `json:"text"`
	Highlight string `json:"highlight,omitempty"`
}

// InfoContent is the rich rendering of an interstitial, keyed by Info.Title.
type InfoContent struct {
	Icon     string     `json:"icon"`
	Title    string     `json:"title"`
	Subtitle string     `json:"subtitle"`
	Facts    []InfoFact `json:"facts"`
	CTA      string     `json:"cta"`
}
