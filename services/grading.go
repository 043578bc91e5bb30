package services

import (
	"sort"

	"quizdeck/models"
)

// SubmittedAnswer is one entry of a quiz submission payload. Exactly one of
// AnswerText / SelectedAnswerIDs is meaningful depending on question type,
// but neither is required: grading copes with whatever arrives.
type SubmittedAnswer struct {
	QuestionID        uint   `json:"question_id" binding:"required"`
	AnswerText        string `json:"answer_text"`
	SelectedAnswerIDs []uint `json:"selected_answer_ids"`
}

// Verdict is the per-question grading outcome.
type Verdict struct {
	IsCorrect     bool `json:"is_correct"`
	PointsAwarded int  `json:"points_awarded"`
}

// Grade computes the verdict for one submitted answer against a question
// and its full answer key. Pure computation, no side effects.
//
// Rules:
//   - text: always correct, full points (free response is trusted).
//   - single: the key must hold exactly one correct answer and the
//     submission exactly one id, and they must match.
//   - multiple: sorted submitted ids must equal sorted correct ids.
//     Duplicates are not collapsed, so [1,1,2] never matches {1,2}.
//   - anything else: incorrect, zero points.
func Grade(question *models.Question, key []models.Answer, submitted SubmittedAnswer) Verdict {
	correctIDs := correctAnswerIDs(key)

	switch question.Type {
	case models.QuestionTypeText:
		return Verdict{IsCorrect: true, PointsAwarded: question.Points}

	case models.QuestionTypeSingle:
		if len(correctIDs) == 1 && len(submitted.SelectedAnswerIDs) == 1 &&
			submitted.SelectedAnswerIDs[0] == correctIDs[0] {
			return Verdict{IsCorrect: true, PointsAwarded: question.Points}
		}

	case models.QuestionTypeMultiple:
		if equalIDs(sortedCopy(submitted.SelectedAnswerIDs), correctIDs) {
			return Verdict{IsCorrect: true, PointsAwarded: question.Points}
		}

	default:
		// Unknown type: the enum is closed, but grade defensively.
	}

	return Verdict{}
}

// correctAnswerIDs returns the ids of the correct answers in the key,
// sorted ascending.
func correctAnswerIDs(key []models.Answer) []uint {
	var ids []uint
	for _, answer := range key {
		if answer.IsCorrect {
			ids = append(ids, answer.ID)
		}
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// sortedCopy sorts ascending without mutating the submission, which is
// persisted verbatim in its original order.
func sortedCopy(ids []uint) []uint {
	out := make([]uint, len(ids))
	copy(out, ids)
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

func equalIDs(a, b []uint) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
