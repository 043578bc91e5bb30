package services

import (
	"errors"

	"quizdeck/models"

	"gorm.io/gorm"
)

type AttemptService struct {
	db *gorm.DB
}

func NewAttemptService(db *gorm.DB) *AttemptService {
	return &AttemptService{db: db}
}

type SubmitAttemptRequest struct {
	Answers []SubmittedAnswer `json:"answers" binding:"required,min=1"`
}

type AnswerResult struct {
	QuestionID        uint   `json:"question_id"`
	QuestionText      string `json:"question_text"`
	AnswerText        string `json:"answer_text,omitempty"`
	SelectedAnswerIDs []uint `json:"selected_answer_ids,omitempty"`
	IsCorrect         bool   `json:"is_correct"`
	PointsAwarded     int    `json:"points_awarded"`
}

type AttemptResult struct {
	AttemptID uint           `json:"attempt_id"`
	Score     int            `json:"score"`
	MaxScore  int            `json:"max_score"`
	Answers   []AnswerResult `json:"answers"`
}

type CorrectAnswerInfo struct {
	ID             uint     `json:"id"`
	Text           string   `json:"text"`
	CorrectAnswers []string `json:"correct_answers"`
}

// SubmitAttempt grades one quiz submission and persists the attempt with
// its answers in a single transaction: a failure at any step leaves no
// visible attempt.
//
// Submitted answers whose question id does not belong to the quiz are
// dropped silently. Only the first answer per question is graded; later
// duplicates within the same request are skipped. MaxScore sums the points
// of every question in the quiz, answered or not.
func (s *AttemptService) SubmitAttempt(quizID, userID uint, req *SubmitAttemptRequest) (*AttemptResult, error) {
	tx := s.db.Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
		}
	}()

	var quiz models.Quiz
	if err := tx.First(&quiz, quizID).Error; err != nil {
		tx.Rollback()
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrQuizNotFound
		}
		return nil, err
	}

	var questions []models.Question
	if err := tx.Where("quiz_id = ?", quizID).Find(&questions).Error; err != nil {
		tx.Rollback()
		return nil, err
	}
	if len(questions) == 0 {
		tx.Rollback()
		return nil, ErrNoQuestions
	}

	questionByID := make(map[uint]*models.Question, len(questions))
	questionIDs := make([]uint, 0, len(questions))
	maxScore := 0
	for i := range questions {
		questionByID[questions[i].ID] = &questions[i]
		questionIDs = append(questionIDs, questions[i].ID)
		maxScore += questions[i].Points
	}

	var answers []models.Answer
	if err := tx.Where("question_id IN ?", questionIDs).Find(&answers).Error; err != nil {
		tx.Rollback()
		return nil, err
	}
	keyByQuestion := make(map[uint][]models.Answer)
	for _, answer := range answers {
		keyByQuestion[answer.QuestionID] = append(keyByQuestion[answer.QuestionID], answer)
	}

	// Created first so answer rows can reference the attempt id.
	attempt := models.QuizAttempt{UserID: userID, QuizID: quizID}
	if err := tx.Create(&attempt).Error; err != nil {
		tx.Rollback()
		return nil, err
	}

	totalScore := 0
	results := make([]AnswerResult, 0, len(req.Answers))
	graded := make(map[uint]bool)

	for _, submitted := range req.Answers {
		question, ok := questionByID[submitted.QuestionID]
		if !ok {
			continue // not a question of this quiz
		}
		if graded[submitted.QuestionID] {
			continue // first submission per question wins
		}
		graded[submitted.QuestionID] = true

		verdict := Grade(question, keyByQuestion[question.ID], submitted)

		// The submission is recorded verbatim, not the verdict; results
		// are always re-derivable from the answer key.
		userAnswer := models.UserAnswer{
			AttemptID:         attempt.ID,
			QuestionID:        submitted.QuestionID,
			AnswerText:        submitted.AnswerText,
			SelectedAnswerIDs: submitted.SelectedAnswerIDs,
		}
		if err := tx.Create(&userAnswer).Error; err != nil {
			tx.Rollback()
			return nil, err
		}

		totalScore += verdict.PointsAwarded
		results = append(results, AnswerResult{
			QuestionID:        submitted.QuestionID,
			QuestionText:      question.Text,
			AnswerText:        submitted.AnswerText,
			SelectedAnswerIDs: submitted.SelectedAnswerIDs,
			IsCorrect:         verdict.IsCorrect,
			PointsAwarded:     verdict.PointsAwarded,
		})
	}

	if err := tx.Model(&models.QuizAttempt{}).Where("id = ?", attempt.ID).
		Update("score", totalScore).Error; err != nil {
		tx.Rollback()
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		return nil, err
	}

	return &AttemptResult{
		AttemptID: attempt.ID,
		Score:     totalScore,
		MaxScore:  maxScore,
		Answers:   results,
	}, nil
}

// GetAttemptResult rebuilds the attempt report for its owner. Verdicts are
// re-derived from the persisted answers against the current answer key
// rather than trusted from write time; only the aggregate score is read
// back as stored.
func (s *AttemptService) GetAttemptResult(attemptID, userID uint) (*AttemptResult, error) {
	attempt, err := s.loadOwnedAttempt(attemptID, userID)
	if err != nil {
		return nil, err
	}

	var userAnswers []models.UserAnswer
	if err := s.db.Where("attempt_id = ?", attemptID).Order("id").Find(&userAnswers).Error; err != nil {
		return nil, err
	}

	var questions []models.Question
	if err := s.db.Where("quiz_id = ?", attempt.QuizID).Find(&questions).Error; err != nil {
		return nil, err
	}

	questionByID := make(map[uint]*models.Question, len(questions))
	questionIDs := make([]uint, 0, len(questions))
	maxScore := 0
	for i := range questions {
		questionByID[questions[i].ID] = &questions[i]
		questionIDs = append(questionIDs, questions[i].ID)
		maxScore += questions[i].Points
	}

	keyByQuestion := make(map[uint][]models.Answer)
	if len(questionIDs) > 0 {
		var answers []models.Answer
		if err := s.db.Where("question_id IN ?", questionIDs).Find(&answers).Error; err != nil {
			return nil, err
		}
		for _, answer := range answers {
			keyByQuestion[answer.QuestionID] = append(keyByQuestion[answer.QuestionID], answer)
		}
	}

	results := make([]AnswerResult, 0, len(userAnswers))
	for _, userAnswer := range userAnswers {
		question, ok := questionByID[userAnswer.QuestionID]
		if !ok {
			continue // question deleted since the attempt
		}

		verdict := Grade(question, keyByQuestion[question.ID], SubmittedAnswer{
			QuestionID:        userAnswer.QuestionID,
			AnswerText:        userAnswer.AnswerText,
			SelectedAnswerIDs: userAnswer.SelectedAnswerIDs,
		})

		results = append(results, AnswerResult{
			QuestionID:        userAnswer.QuestionID,
			QuestionText:      question.Text,
			AnswerText:        userAnswer.AnswerText,
			SelectedAnswerIDs: userAnswer.SelectedAnswerIDs,
			IsCorrect:         verdict.IsCorrect,
			PointsAwarded:     verdict.PointsAwarded,
		})
	}

	return &AttemptResult{
		AttemptID: attempt.ID,
		Score:     attempt.Score,
		MaxScore:  maxScore,
		Answers:   results,
	}, nil
}

// GetCorrectAnswers reveals the answer key for every question touched by
// the attempt, owner-only. Returned in question id order.
func (s *AttemptService) GetCorrectAnswers(attemptID, userID uint) ([]CorrectAnswerInfo, error) {
	if _, err := s.loadOwnedAttempt(attemptID, userID); err != nil {
		return nil, err
	}

	var userAnswers []models.UserAnswer
	if err := s.db.Where("attempt_id = ?", attemptID).Find(&userAnswers).Error; err != nil {
		return nil, err
	}

	questionIDs := make([]uint, 0, len(userAnswers))
	seen := make(map[uint]bool)
	for _, userAnswer := range userAnswers {
		if !seen[userAnswer.QuestionID] {
			seen[userAnswer.QuestionID] = true
			questionIDs = append(questionIDs, userAnswer.QuestionID)
		}
	}
	if len(questionIDs) == 0 {
		return []CorrectAnswerInfo{}, nil
	}

	var questions []models.Question
	if err := s.db.Where("id IN ?", questionIDs).Order("id").Find(&questions).Error; err != nil {
		return nil, err
	}

	var correctAnswers []models.Answer
	if err := s.db.Where("question_id IN ? AND is_correct = ?", questionIDs, true).
		Order("id").Find(&correctAnswers).Error; err != nil {
		return nil, err
	}
	textsByQuestion := make(map[uint][]string)
	for _, answer := range correctAnswers {
		textsByQuestion[answer.QuestionID] = append(textsByQuestion[answer.QuestionID], answer.Text)
	}

	infos := make([]CorrectAnswerInfo, 0, len(questions))
	for _, question := range questions {
		texts := textsByQuestion[question.ID]
		if texts == nil {
			texts = []string{}
		}
		infos = append(infos, CorrectAnswerInfo{
			ID:             question.ID,
			Text:           question.Text,
			CorrectAnswers: texts,
		})
	}

	return infos, nil
}

func (s *AttemptService) loadOwnedAttempt(attemptID, userID uint) (*models.QuizAttempt, error) {
	var attempt models.QuizAttempt
	if err := s.db.First(&attempt, attemptID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAttemptNotFound
		}
		return nil, err
	}
	if attempt.UserID != userID {
		return nil, ErrForbidden
	}
	return &attempt, nil
}
