package service

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStringListUnmarshal(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    StringList
		wantErr bool
	}{
		{name: "single string", in: `"Google"`, want: StringList{"Google"}},
		{name: "array", in: `["Google", "TCS"]`, want: StringList{"Google", "TCS"}},
		{name: "number", in: `3`, want: StringList{"3"}},
		{name: "mixed array with null", in: `["a", null, 7]`, want: StringList{"a", "7"}},
		{name: "null", in: `null`, want: nil},
		{name: "object", in: `{"name":"x"}`, wantErr: true},
		{name: "nested array", in: `[["x"]]`, wantErr: true},
		{name: "bool", in: `true`, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got StringList
			err := json.Unmarshal([]byte(tt.in), &got)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestStringListCompact(t *testing.T) {
	assert.Equal(t, []string{"Google", "TCS"}, StringList{" Google ", "", "   ", "TCS"}.Compact())
	assert.Empty(t, StringList(nil).Compact())
}

func TestCandidateQuestionDecode(t *testing.T) {
	var c CandidateQuestion
	require.NoError(t, json.Unmarshal([]byte(`{
		"question": " What is 2+2? ",
		"options": ["3", "4"],
		"correctAnswer": "4",
		"hasOptions": true,
		"category": "Aptitude",
		"company": "Google",
		"question_image": "https://img/1.png"
	}`), &c))

	require.NoError(t, c.Err())
	assert.True(t, c.OptionsValid())
	require.NotNil(t, c.HasOptions)
	assert.True(t, *c.HasOptions)
	assert.Equal(t, []string{"3", "4"}, c.Options)
	assert.Equal(t, StringList{"Google"}, c.Company)
	assert.Equal(t, StringList{"https://img/1.png"}, c.Images)
	assert.Equal(t, "What is 2+2?", c.Snapshot())
}

func TestCandidateQuestionDecode_AbsentVersusFalse(t *testing.T) {
	var absent, falsy CandidateQuestion
	require.NoError(t, json.Unmarshal([]byte(`{"question":"q"}`), &absent))
	require.NoError(t, json.Unmarshal([]byte(`{"question":"q","hasOptions":false}`), &falsy))

	assert.Nil(t, absent.HasOptions)
	require.NotNil(t, falsy.HasOptions)
	assert.False(t, *falsy.HasOptions)
}

func TestCandidateQuestionDecode_WrongTypesMarkMalformed(t *testing.T) {
	var items []CandidateQuestion
	require.NoError(t, json.Unmarshal([]byte(`[
		{"question": 12, "hasOptions": "yes"},
		"not an object",
		{"question": "ok", "options": "a,b", "hasOptions": true},
		{"question": "ok", "company": {"id": 1}}
	]`), &items))
	require.Len(t, items, 4)

	assert.ErrorContains(t, items[0].Err(), "question must be a string")
	assert.ErrorContains(t, items[0].Err(), "hasOptions must be a boolean")
	assert.Equal(t, "Missing Question", items[0].Snapshot())

	assert.Error(t, items[1].Err())

	assert.NoError(t, items[2].Err(), "options shape is judged against hasOptions later")
	assert.False(t, items[2].OptionsValid())

	assert.ErrorContains(t, items[3].Err(), "company")
}

func TestCandidateQuestionDecode_NumbersBecomeText(t *testing.T) {
	var c CandidateQuestion
	require.NoError(t, json.Unmarshal([]byte(`{
		"question": "Next in 2, 4, 8?",
		"options": ["12", 16, 32.0],
		"correctAnswer": 16,
		"hasOptions": true,
		"category": "aptitude"
	}`), &c))

	require.NoError(t, c.Err())
	assert.True(t, c.OptionsValid())
	assert.Equal(t, []string{"12", "16", "32.0"}, c.Options)
	assert.Equal(t, "16", c.CorrectAnswer)
}

func TestCandidateQuestionDecode_OptionEntries(t *testing.T) {
	tests := []struct {
		name  string
		in    string
		valid bool
	}{
		{name: "strings", in: `["a", "b"]`, valid: true},
		{name: "numbers", in: `[1, 2]`, valid: true},
		{name: "null entry", in: `["a", null]`},
		{name: "object entry", in: `["a", {"b": 1}]`},
		{name: "bool entry", in: `[true, false]`},
		{name: "single string", in: `"a"`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var c CandidateQuestion
			require.NoError(t, json.Unmarshal([]byte(`{"question":"q","options":`+tt.in+`}`), &c))
			assert.Equal(t, tt.valid, c.OptionsValid())
		})
	}
}

func TestCandidateQuestionDecode_WrongTypedCategoryIsEmpty(t *testing.T) {
	var c CandidateQuestion
	require.NoError(t, json.Unmarshal([]byte(`{"question":"q","category":5}`), &c))
	assert.NoError(t, c.Err())
	assert.Empty(t, c.Category)
}
