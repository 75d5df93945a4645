package service

import "strings"

// correctMarker designates an option as the answer key inside authoring text.
// It is stripped before storage.
const correctMarker = "[CORRECT]"

var optionPrefixes = []string{"A)", "B)", "C)", "D)"}

// ParsedQuestion is one structured question produced from authoring text.
// CorrectAnswer is empty when a question had no options at all; callers must
// reject such questions before persisting.
type ParsedQuestion struct {
	QuestionText  string
	Options       map[string]string
	CorrectAnswer string
}

// ParsedQuiz is the structured result of parsing a raw quiz text block.
type ParsedQuiz struct {
	Title     string
	Questions []ParsedQuestion
}

// ParseQuizText converts teacher-authored free text into a structured quiz.
//
// Format: the first non-blank line is the title. A line ending in "?" starts a
// new question. Lines starting with "A)".."D)" are options; "[CORRECT]"
// anywhere in an option marks it as the answer and is stripped. A question
// with no marker falls back to its first parsed option's letter.
func ParseQuizText(raw string) ParsedQuiz {
	var parsed ParsedQuiz
	var current *ParsedQuestion

	for _, line := range strings.Split(raw, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		if parsed.Title == "" {
			parsed.Title = line
			continue
		}

		if strings.HasSuffix(line, "?") {
			if current != nil {
				parsed.Questions = append(parsed.Questions, *current)
			}
			current = &ParsedQuestion{
				QuestionText: line,
				Options:      make(map[string]string),
			}
			continue
		}

		if current == nil {
			continue
		}

		for _, prefix := range optionPrefixes {
			if !strings.HasPrefix(line, prefix) {
				continue
			}
			letter := prefix[:1]
			text := strings.TrimSpace(line[len(prefix):])

			if strings.Contains(text, correctMarker) {
				text = strings.TrimSpace(strings.ReplaceAll(text, correctMarker, ""))
				current.CorrectAnswer = letter
			} else if current.CorrectAnswer == "" {
				// First-option fallback; a later explicit marker overrides it.
				current.CorrectAnswer = letter
			}

			current.Options[letter] = text
			break
		}
	}

	if current != nil {
		parsed.Questions = append(parsed.Questions, *current)
	}

	return parsed
}
