package services

import (
	"encoding/json"
	"sort"
	"strings"

	"github.com/tutelearn/platform-service/internal/models"
)

// Grade reports whether a submitted answer matches the stored correct
// answer for the given quiz type. An empty, missing, or malformed
// submission grades false; grading never fails.
func Grade(quizType models.QuizType, correctAnswer, submitted json.RawMessage) bool {
	if len(submitted) == 0 || len(correctAnswer) == 0 {
		return false
	}

	switch quizType {
	case models.QuizSingle:
		return gradeSingle(correctAnswer, submitted)
	case models.QuizMultiple:
		return gradeMultiple(correctAnswer, submitted)
	case models.QuizText:
		return gradeText(correctAnswer, submitted)
	default:
		return false
	}
}

func gradeSingle(correctAnswer, submitted json.RawMessage) bool {
	correct := decodeIndexes(correctAnswer)
	answer := decodeIndexes(submitted)

	// Exactly one selection, matching the sole correct index
	if len(correct) != 1 || len(answer) != 1 {
		return false
	}
	return answer[0] == correct[0]
}

func gradeMultiple(correctAnswer, submitted json.RawMessage) bool {
	correct := decodeIndexes(correctAnswer)
	answer := decodeIndexes(submitted)

	if len(answer) == 0 || len(answer) != len(correct) {
		return false
	}

	correct = sortInts(correct)
	answer = sortInts(answer)
	for i := range correct {
		if answer[i] != correct[i] {
			return false
		}
	}
	return true
}

func gradeText(correctAnswer, submitted json.RawMessage) bool {
	correct := decodeTexts(correctAnswer)
	answer := decodeTexts(submitted)

	if len(answer) == 0 || len(correct) == 0 {
		return false
	}

	return normalizeText(answer[0]) == normalizeText(correct[0])
}

// decodeIndexes accepts either a JSON array of option indexes or a
// bare index.
func decodeIndexes(raw json.RawMessage) []int {
	var indexes []int
	if err := json.Unmarshal(raw, &indexes); err == nil {
		return indexes
	}

	var single int
	if err := json.Unmarshal(raw, &single); err == nil {
		return []int{single}
	}

	return nil
}

// decodeTexts accepts either a JSON array of strings or a bare string.
func decodeTexts(raw json.RawMessage) []string {
	var texts []string
	if err := json.Unmarshal(raw, &texts); err == nil {
		return texts
	}

	var single string
	if err := json.Unmarshal(raw, &single); err == nil {
		return []string{single}
	}

	return nil
}

func normalizeText(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

func sortInts(arr []int) []int {
	sorted := make([]int, len(arr))
	copy(sorted, arr)
	sort.Ints(sorted)
	return sorted
}
