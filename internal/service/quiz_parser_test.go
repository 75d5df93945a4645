package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseQuizText_MarkerDesignatesAnswer(t *testing.T) {
	raw := `Chapter 1 Quiz

What is a primary key?
A) x
B) y [CORRECT]
C) z`

	parsed := ParseQuizText(raw)

	assert.Equal(t, "Chapter 1 Quiz", parsed.Title)
	require.Len(t, parsed.Questions, 1)

	q := parsed.Questions[0]
	assert.Equal(t, "What is a primary key?", q.QuestionText)
	assert.Equal(t, "B", q.CorrectAnswer)
	assert.Equal(t, "y", q.Options["B"], "marker must be stripped from the stored option")
	assert.Equal(t, "x", q.Options["A"])
	assert.Equal(t, "z", q.Options["C"])
}

func TestParseQuizText_FirstOptionFallback(t *testing.T) {
	raw := `Fallback Quiz

Which join returns all rows?
A) inner
B) outer`

	parsed := ParseQuizText(raw)

	require.Len(t, parsed.Questions, 1)
	assert.Equal(t, "A", parsed.Questions[0].CorrectAnswer)
}

func TestParseQuizText_LateMarkerOverridesFallback(t *testing.T) {
	raw := `Override Quiz

Which index type is default?
A) hash
B) btree
C) gin [CORRECT]
D) brin`

	parsed := ParseQuizText(raw)

	require.Len(t, parsed.Questions, 1)
	assert.Equal(t, "C", parsed.Questions[0].CorrectAnswer)
}

func TestParseQuizText_MultipleQuestionsAndBlankLines(t *testing.T) {
	raw := `Big Quiz

First question?
A) a1 [CORRECT]
B) b1

Second question?

A) a2
B) b2 [CORRECT]

Third question?
A) a3 [CORRECT]`

	parsed := ParseQuizText(raw)

	require.Len(t, parsed.Questions, 3)
	assert.Equal(t, "First question?", parsed.Questions[0].QuestionText)
	assert.Equal(t, "A", parsed.Questions[0].CorrectAnswer)
	assert.Equal(t, "B", parsed.Questions[1].CorrectAnswer)
	assert.Equal(t, "A", parsed.Questions[2].CorrectAnswer)
}

func TestParseQuizText_QuestionWithoutOptions(t *testing.T) {
	raw := `Broken Quiz

Where are the options?`

	parsed := ParseQuizText(raw)

	require.Len(t, parsed.Questions, 1)
	assert.Empty(t, parsed.Questions[0].CorrectAnswer)
	assert.Empty(t, parsed.Questions[0].Options)
}

func TestParseQuizText_Empty(t *testing.T) {
	parsed := ParseQuizText("")
	assert.Empty(t, parsed.Title)
	assert.Empty(t, parsed.Questions)

	parsed = ParseQuizText("Title Only")
	assert.Equal(t, "Title Only", parsed.Title)
	assert.Empty(t, parsed.Questions)
}

func TestParseQuizText_NonOptionLinesIgnored(t *testing.T) {
	raw := `Noise Quiz

Real question?
some stray commentary
A) yes [CORRECT]
B) no
E) not a valid option prefix`

	parsed := ParseQuizText(raw)

	require.Len(t, parsed.Questions, 1)
	q := parsed.Questions[0]
	assert.Equal(t, "A", q.CorrectAnswer)
	assert.Len(t, q.Options, 2)
}
