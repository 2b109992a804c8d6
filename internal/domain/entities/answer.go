package entities

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Answer is the stored value for one question: a single string for
// single-choice questions, an ordered set of strings (selection order) for
// multiple-choice ones.
type Answer struct {
	Values   []string
	Multiple bool
}

func SingleAnswer(value string) Answer {
	return Answer{Values: []string{value}}
}

func MultipleAnswer(values []string) Answer {
	out := make([]string, 0, len(values))
	seen := make(map[string]struct{}, len(values))
	for _, v := range values {
		if _, dup := seen[v]; dup {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return Answer{Values: out, Multiple: true}
}

// First returns the single value, or the first selection of a multiple answer.
func (a Answer) First() string {
	if len(a.Values) == 0 {
		return ""
	}
	return a.Values[0]
}

func (a Answer) IsEmpty() bool {
	return len(a.Values) == 0
}

// Value returns the answer in its wire shape: string or []string.
func (a Answer) Value() interface{} {
	if a.Multiple {
		if a.Values == nil {
			return []string{}
		}
		return a.Values
	}
	return a.First()
}

func (a Answer) MarshalJSON() ([]byte, error) {
	return json.Marshal(a.Value())
}

func (a *Answer) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return fmt.Errorf("empty answer")
	}

	switch trimmed[0] {
	case '[':
		var values []string
		if err := json.Unmarshal(trimmed, &values); err != nil {
			return err
		}
		*a = MultipleAnswer(values)
	case '"':
		var value string
		if err := json.Unmarshal(trimmed, &value); err != nil {
			return err
		}
		*a = SingleAnswer(value)
	default:
		return fmt.Errorf("unsupported answer encoding: %s", string(trimmed))
	}
	return nil
}

// Answers maps question id to its answer. It encodes as the quizAnswers blob.
type Answers map[int]Answer

// Values returns the wire shape of every answer, keyed the way the blob is.
func (a Answers) Values() map[string]interface{} {
	out := make(map[string]interface{}, len(a))
	for id, answer := range a {
		out[fmt.Sprint(id)] = answer.Value()
	}
	return out
}
