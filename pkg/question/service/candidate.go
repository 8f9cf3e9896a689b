package service

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// CandidateQuestion is one unvalidated question submitted for ingestion.
//
// Decoding never fails on a JSON object: fields of the wrong type mark the
// candidate malformed so that one bad record cannot reject its whole batch.
type CandidateQuestion struct {
	Question      string     `json:"question"`
	Options       []string   `json:"options"`
	CorrectAnswer string     `json:"correctAnswer"`
	HasOptions    *bool      `json:"hasOptions"`
	Category      string     `json:"category"`
	Subcategory   string     `json:"subcategory"`
	Explanation   string     `json:"explanation"`
	Company       StringList `json:"company"`
	Images        StringList `json:"question_image"`

	optionsInvalid bool
	malformed      error
}

// Err returns the decoding problem recorded for c, if any.
func (c *CandidateQuestion) Err() error { return c.malformed }

// OptionsValid is false when options was present but not an array of strings or numbers.
func (c *CandidateQuestion) OptionsValid() bool { return !c.optionsInvalid }

// Snapshot is the text used to identify c in failure reports.
func (c *CandidateQuestion) Snapshot() string {
	if t := strings.TrimSpace(c.Question); t != "" {
		return t
	}
	return "Missing Question"
}

func (c *CandidateQuestion) UnmarshalJSON(data []byte) error {
	*c = CandidateQuestion{}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil || raw == nil {
		c.malformed = errors.New("question record must be a JSON object")
		return nil
	}

	var problems []string
	str := func(key string, dst *string) {
		v, ok := raw[key]
		if !ok || isNull(v) {
			return
		}
		if err := json.Unmarshal(v, dst); err != nil {
			problems = append(problems, key+" must be a string")
		}
	}
	str("question", &c.Question)
	str("subcategory", &c.Subcategory)
	str("explanation", &c.Explanation)

	if v, ok := raw["correctAnswer"]; ok && !isNull(v) {
		if err := json.Unmarshal(v, &c.CorrectAnswer); err != nil {
			var n json.Number
			if nerr := json.Unmarshal(v, &n); nerr != nil {
				problems = append(problems, "correctAnswer must be a string or a number")
			} else {
				c.CorrectAnswer = n.String()
			}
		}
	}
	// A category of the wrong type stays empty and fails the category check.
	if v, ok := raw["category"]; ok && !isNull(v) {
		_ = json.Unmarshal(v, &c.Category)
	}
	if v, ok := raw["hasOptions"]; ok && !isNull(v) {
		var b bool
		if err := json.Unmarshal(v, &b); err != nil {
			problems = append(problems, "hasOptions must be a boolean")
		} else {
			c.HasOptions = &b
		}
	}
	if v, ok := raw["options"]; ok && !isNull(v) {
		opts, err := decodeArray(v)
		if err != nil {
			c.optionsInvalid = true
		} else {
			c.Options = opts
		}
	}
	if v, ok := raw["company"]; ok {
		if err := c.Company.UnmarshalJSON(v); err != nil {
			problems = append(problems, "company "+err.Error())
		}
	}
	if v, ok := raw["question_image"]; ok {
		if err := c.Images.UnmarshalJSON(v); err != nil {
			problems = append(problems, "question_image "+err.Error())
		}
	}

	if len(problems) > 0 {
		c.malformed = errors.New(strings.Join(problems, "; "))
	}
	return nil
}

// StringList accepts a single string, a number, an array of them, or null.
type StringList []string

func (l *StringList) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return err
	}
	out, err := toSequence(v)
	if err != nil {
		return err
	}
	*l = out
	return nil
}

// Compact trims every entry and drops the blank ones.
func (l StringList) Compact() []string {
	out := make([]string, 0, len(l))
	for _, s := range l {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}

// decodeArray reads a JSON array of strings or numbers; numbers keep their literal text.
func decodeArray(data []byte) ([]string, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, err
	}
	arr, ok := v.([]any)
	if !ok {
		return nil, errors.New("must be an array")
	}
	out := make([]string, 0, len(arr))
	for i, e := range arr {
		switch s := e.(type) {
		case string:
			out = append(out, s)
		case json.Number:
			out = append(out, s.String())
		default:
			return nil, fmt.Errorf("entry %d must be a string or a number", i)
		}
	}
	return out, nil
}

func toSequence(v any) (StringList, error) {
	switch t := v.(type) {
	case nil:
		return nil, nil
	case string:
		return StringList{t}, nil
	case json.Number:
		return StringList{t.String()}, nil
	case []any:
		out := make(StringList, 0, len(t))
		for i, e := range t {
			switch s := e.(type) {
			case nil:
			case string:
				out = append(out, s)
			case json.Number:
				out = append(out, s.String())
			default:
				return nil, fmt.Errorf("entry %d must be a string", i)
			}
		}
		return out, nil
	default:
		return nil, errors.New("must be a string or an array of strings")
	}
}

func isNull(v json.RawMessage) bool {
	return string(bytes.TrimSpace(v)) == "null"
}
