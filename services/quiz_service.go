package services

import (
	"errors"
	"strings"

	"quizdeck/models"

	"gorm.io/gorm"
)

type QuizService struct {
	db *gorm.DB
}

func NewQuizService(db *gorm.DB) *QuizService {
	return &QuizService{db: db}
}

type CreateQuizRequest struct {
	Title       string                 `json:"title" binding:"required,max=200"`
	Description string                 `json:"description"`
	Questions   []CreateQuestionInline `json:"questions" binding:"omitempty,dive"`
}

type CreateQuestionInline struct {
	Text    string               `json:"text" binding:"required"`
	Type    models.QuestionType  `json:"type" binding:"required"`
	Points  int                  `json:"points" binding:"required,min=1"`
	Answers []CreateAnswerInline `json:"answers" binding:"omitempty,dive"`
}

type CreateAnswerInline struct {
	Text      string `json:"text" binding:"required"`
	IsCorrect bool   `json:"is_correct"`
}

type UpdateQuizRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

type CreateQuestionRequest struct {
	QuizID uint                `json:"quiz_id" binding:"required"`
	Text   string              `json:"text" binding:"required"`
	Type   models.QuestionType `json:"type" binding:"required"`
	Points int                 `json:"points" binding:"required,min=1"`
}

type UpdateQuestionRequest struct {
	Text   string              `json:"text"`
	Type   models.QuestionType `json:"type"`
	Points int                 `json:"points" binding:"omitempty,min=1"`
}

type CreateAnswerRequest struct {
	QuestionID uint   `json:"question_id" binding:"required"`
	Text       string `json:"text" binding:"required"`
	IsCorrect  bool   `json:"is_correct"`
}

type UpdateAnswerRequest struct {
	Text      string `json:"text"`
	IsCorrect *bool  `json:"is_correct"`
}

type TagRequest struct {
	Name string `json:"name" binding:"required,max=50"`
}

type ListQuizzesOptions struct {
	Search string
	Tag    string
	Page   int
	Limit  int
}

type QuizPage struct {
	Quizzes []models.Quiz `json:"quizzes"`
	Total   int64         `json:"total"`
}

// assertQuizOwnership is the single authorization check behind every
// quiz/question/answer mutation: the quiz must exist and belong to userID.
func assertQuizOwnership(db *gorm.DB, quizID, userID uint) error {
	var quiz models.Quiz
	if err := db.First(&quiz, quizID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrQuizNotFound
		}
		return err
	}
	if quiz.CreatorID != userID {
		return ErrForbidden
	}
	return nil
}

// validateAnswerKey rejects answer keys that can never be graded correct:
// a single question needs exactly one correct answer, a multiple question
// at least one. Only enforced on wholesale creation; piecemeal answer
// edits are not revalidated and grading degrades gracefully.
func validateAnswerKey(questionType models.QuestionType, answers []CreateAnswerInline) error {
	correctCount := 0
	for _, answer := range answers {
		if answer.IsCorrect {
			correctCount++
		}
	}

	switch questionType {
	case models.QuestionTypeSingle:
		if correctCount != 1 {
			return ErrInvalidAnswerKey
		}
	case models.QuestionTypeMultiple:
		if correctCount < 1 {
			return ErrInvalidAnswerKey
		}
	}
	return nil
}

func (s *QuizService) CreateQuiz(userID uint, req *CreateQuizRequest) (*models.Quiz, error) {
	for _, questionReq := range req.Questions {
		if !questionReq.Type.Valid() {
			return nil, ErrInvalidAnswerKey
		}
		if err := validateAnswerKey(questionReq.Type, questionReq.Answers); err != nil {
			return nil, err
		}
	}

	tx := s.db.Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
		}
	}()

	quiz := models.Quiz{
		Title:       req.Title,
		Description: req.Description,
		CreatorID:   userID,
	}
	if err := tx.Create(&quiz).Error; err != nil {
		tx.Rollback()
		return nil, err
	}

	for _, questionReq := range req.Questions {
		question := models.Question{
			QuizID: quiz.ID,
			Text:   questionReq.Text,
			Type:   questionReq.Type,
			Points: questionReq.Points,
		}
		if err := tx.Create(&question).Error; err != nil {
			tx.Rollback()
			return nil, err
		}

		for _, answerReq := range questionReq.Answers {
			answer := models.Answer{
				QuestionID: question.ID,
				Text:       answerReq.Text,
				IsCorrect:  answerReq.IsCorrect,
			}
			if err := tx.Create(&answer).Error; err != nil {
				tx.Rollback()
				return nil, err
			}
		}
	}

	if err := tx.Commit().Error; err != nil {
		return nil, err
	}

	return s.GetQuiz(quiz.ID)
}

func (s *QuizService) GetQuiz(quizID uint) (*models.Quiz, error) {
	var quiz models.Quiz
	err := s.db.
		Preload("Questions", func(db *gorm.DB) *gorm.DB {
			return db.Order("questions.id")
		}).
		Preload("Questions.Answers", func(db *gorm.DB) *gorm.DB {
			return db.Order("answers.id")
		}).
		Preload("Tags").
		First(&quiz, quizID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrQuizNotFound
		}
		return nil, err
	}
	return &quiz, nil
}

func (s *QuizService) GetUserQuizzes(userID uint) ([]models.Quiz, error) {
	var quizzes []models.Quiz
	err := s.db.Where("creator_id = ?", userID).
		Preload("Questions", func(db *gorm.DB) *gorm.DB {
			return db.Order("questions.id")
		}).
		Preload("Tags").
		Order("created_at DESC").
		Find(&quizzes).Error
	return quizzes, err
}

// ListQuizzes supports an optional case-insensitive title substring filter,
// an optional exact tag-name filter, and page/limit pagination. Total counts
// all matches, not just the returned page.
func (s *QuizService) ListQuizzes(opts ListQuizzesOptions) (*QuizPage, error) {
	page := opts.Page
	if page < 1 {
		page = 1
	}
	limit := opts.Limit
	if limit < 1 {
		limit = 10
	}

	base := func() *gorm.DB {
		query := s.db.Model(&models.Quiz{})
		if opts.Search != "" {
			query = query.Where("LOWER(quizzes.title) LIKE ?", "%"+strings.ToLower(opts.Search)+"%")
		}
		if opts.Tag != "" {
			query = query.
				Joins("JOIN quiz_tags ON quiz_tags.quiz_id = quizzes.id").
				Joins("JOIN tags ON tags.id = quiz_tags.tag_id AND tags.deleted_at IS NULL").
				Where("tags.name = ?", opts.Tag)
		}
		return query
	}

	var total int64
	if err := base().Distinct("quizzes.id").Count(&total).Error; err != nil {
		return nil, err
	}

	var quizzes []models.Quiz
	err := base().Distinct("quizzes.*").
		Preload("Tags").
		Order("quizzes.created_at DESC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&quizzes).Error
	if err != nil {
		return nil, err
	}

	if quizzes == nil {
		quizzes = []models.Quiz{}
	}
	return &QuizPage{Quizzes: quizzes, Total: total}, nil
}

func (s *QuizService) UpdateQuiz(quizID, userID uint, req *UpdateQuizRequest) (*models.Quiz, error) {
	if err := assertQuizOwnership(s.db, quizID, userID); err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	if req.Title != "" {
		updates["title"] = req.Title
	}
	if req.Description != "" {
		updates["description"] = req.Description
	}
	if len(updates) > 0 {
		if err := s.db.Model(&models.Quiz{}).Where("id = ?", quizID).Updates(updates).Error; err != nil {
			return nil, err
		}
	}

	return s.GetQuiz(quizID)
}

// DeleteQuiz removes the quiz and everything it owns: answers first, then
// questions, tag links, attempts with their answers, and finally the quiz
// row, all in one transaction.
func (s *QuizService) DeleteQuiz(quizID, userID uint) error {
	if err := assertQuizOwnership(s.db, quizID, userID); err != nil {
		return err
	}

	tx := s.db.Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
		}
	}()

	questionIDs := tx.Model(&models.Question{}).Select("id").Where("quiz_id = ?", quizID)
	if err := tx.Where("question_id IN (?)", questionIDs).Delete(&models.Answer{}).Error; err != nil {
		tx.Rollback()
		return err
	}
	if err := tx.Where("quiz_id = ?", quizID).Delete(&models.Question{}).Error; err != nil {
		tx.Rollback()
		return err
	}

	attemptIDs := tx.Model(&models.QuizAttempt{}).Select("id").Where("quiz_id = ?", quizID)
	if err := tx.Where("attempt_id IN (?)", attemptIDs).Delete(&models.UserAnswer{}).Error; err != nil {
		tx.Rollback()
		return err
	}
	if err := tx.Where("quiz_id = ?", quizID).Delete(&models.QuizAttempt{}).Error; err != nil {
		tx.Rollback()
		return err
	}

	if err := tx.Exec("DELETE FROM quiz_tags WHERE quiz_id = ?", quizID).Error; err != nil {
		tx.Rollback()
		return err
	}
	if err := tx.Delete(&models.Quiz{}, quizID).Error; err != nil {
		tx.Rollback()
		return err
	}

	return tx.Commit().Error
}

func (s *QuizService) CreateQuestion(userID uint, req *CreateQuestionRequest) (*models.Question, error) {
	if !req.Type.Valid() {
		return nil, ErrInvalidAnswerKey
	}
	if err := assertQuizOwnership(s.db, req.QuizID, userID); err != nil {
		return nil, err
	}

	question := models.Question{
		QuizID: req.QuizID,
		Text:   req.Text,
		Type:   req.Type,
		Points: req.Points,
	}
	if err := s.db.Create(&question).Error; err != nil {
		return nil, err
	}
	return &question, nil
}

func (s *QuizService) GetQuestion(questionID uint) (*models.Question, error) {
	var question models.Question
	if err := s.db.Preload("Answers").First(&question, questionID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrQuestionNotFound
		}
		return nil, err
	}
	return &question, nil
}

func (s *QuizService) GetQuizQuestions(quizID uint) ([]models.Question, error) {
	if err := s.quizExists(quizID); err != nil {
		return nil, err
	}

	var questions []models.Question
	err := s.db.Where("quiz_id = ?", quizID).Order("id").Find(&questions).Error
	return questions, err
}

func (s *QuizService) UpdateQuestion(questionID, userID uint, req *UpdateQuestionRequest) (*models.Question, error) {
	question, err := s.GetQuestion(questionID)
	if err != nil {
		return nil, err
	}
	if err := assertQuizOwnership(s.db, question.QuizID, userID); err != nil {
		return nil, err
	}

	if req.Text != "" {
		question.Text = req.Text
	}
	if req.Type != "" {
		if !req.Type.Valid() {
			return nil, ErrInvalidAnswerKey
		}
		question.Type = req.Type
	}
	if req.Points > 0 {
		question.Points = req.Points
	}

	if err := s.db.Save(question).Error; err != nil {
		return nil, err
	}
	return question, nil
}

func (s *QuizService) DeleteQuestion(questionID, userID uint) error {
	question, err := s.GetQuestion(questionID)
	if err != nil {
		return err
	}
	if err := assertQuizOwnership(s.db, question.QuizID, userID); err != nil {
		return err
	}

	tx := s.db.Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
		}
	}()

	if err := tx.Where("question_id = ?", questionID).Delete(&models.Answer{}).Error; err != nil {
		tx.Rollback()
		return err
	}
	if err := tx.Delete(&models.Question{}, questionID).Error; err != nil {
		tx.Rollback()
		return err
	}

	return tx.Commit().Error
}

func (s *QuizService) CreateAnswer(userID uint, req *CreateAnswerRequest) (*models.Answer, error) {
	question, err := s.GetQuestion(req.QuestionID)
	if err != nil {
		return nil, err
	}
	if err := assertQuizOwnership(s.db, question.QuizID, userID); err != nil {
		return nil, err
	}

	answer := models.Answer{
		QuestionID: req.QuestionID,
		Text:       req.Text,
		IsCorrect:  req.IsCorrect,
	}
	if err := s.db.Create(&answer).Error; err != nil {
		return nil, err
	}
	return &answer, nil
}

func (s *QuizService) GetAnswer(answerID uint) (*models.Answer, error) {
	var answer models.Answer
	if err := s.db.First(&answer, answerID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAnswerNotFound
		}
		return nil, err
	}
	return &answer, nil
}

func (s *QuizService) GetQuestionAnswers(questionID uint) ([]models.Answer, error) {
	if _, err := s.GetQuestion(questionID); err != nil {
		return nil, err
	}

	var answers []models.Answer
	err := s.db.Where("question_id = ?", questionID).Order("id").Find(&answers).Error
	return answers, err
}

func (s *QuizService) UpdateAnswer(answerID, userID uint, req *UpdateAnswerRequest) (*models.Answer, error) {
	answer, err := s.GetAnswer(answerID)
	if err != nil {
		return nil, err
	}
	if err := s.assertAnswerOwnership(answer, userID); err != nil {
		return nil, err
	}

	if req.Text != "" {
		answer.Text = req.Text
	}
	if req.IsCorrect != nil {
		answer.IsCorrect = *req.IsCorrect
	}

	if err := s.db.Save(answer).Error; err != nil {
		return nil, err
	}
	return answer, nil
}

func (s *QuizService) DeleteAnswer(answerID, userID uint) error {
	answer, err := s.GetAnswer(answerID)
	if err != nil {
		return err
	}
	if err := s.assertAnswerOwnership(answer, userID); err != nil {
		return err
	}

	return s.db.Delete(&models.Answer{}, answerID).Error
}

func (s *QuizService) assertAnswerOwnership(answer *models.Answer, userID uint) error {
	question, err := s.GetQuestion(answer.QuestionID)
	if err != nil {
		return err
	}
	return assertQuizOwnership(s.db, question.QuizID, userID)
}

// CreateTag is idempotent by name: an existing tag is returned as-is.
func (s *QuizService) CreateTag(req *TagRequest) (*models.Tag, error) {
	var tag models.Tag
	err := s.db.Where("name = ?", req.Name).First(&tag).Error
	if err == nil {
		return &tag, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	tag = models.Tag{Name: req.Name}
	if err := s.db.Create(&tag).Error; err != nil {
		return nil, err
	}
	return &tag, nil
}

func (s *QuizService) ListTags() ([]models.Tag, error) {
	var tags []models.Tag
	err := s.db.Order("name").Find(&tags).Error
	return tags, err
}

func (s *QuizService) UpdateTag(tagID uint, req *TagRequest) (*models.Tag, error) {
	var tag models.Tag
	if err := s.db.First(&tag, tagID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTagNotFound
		}
		return nil, err
	}

	tag.Name = req.Name
	if err := s.db.Save(&tag).Error; err != nil {
		return nil, err
	}
	return &tag, nil
}

// AddTagToQuiz attaches a tag by name, creating the tag if needed. Already
// attached tags are left alone, so the call is idempotent.
func (s *QuizService) AddTagToQuiz(quizID, userID uint, req *TagRequest) (*models.Tag, error) {
	if err := assertQuizOwnership(s.db, quizID, userID); err != nil {
		return nil, err
	}

	tag, err := s.CreateTag(req)
	if err != nil {
		return nil, err
	}

	var quiz models.Quiz
	if err := s.db.Preload("Tags").First(&quiz, quizID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrQuizNotFound
		}
		return nil, err
	}

	for _, existing := range quiz.Tags {
		if existing.ID == tag.ID {
			return tag, nil
		}
	}

	if err := s.db.Model(&quiz).Association("Tags").Append(tag); err != nil {
		return nil, err
	}
	return tag, nil
}

func (s *QuizService) GetQuizTags(quizID uint) ([]models.Tag, error) {
	var quiz models.Quiz
	if err := s.db.Preload("Tags").First(&quiz, quizID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrQuizNotFound
		}
		return nil, err
	}

	if quiz.Tags == nil {
		return []models.Tag{}, nil
	}
	return quiz.Tags, nil
}

// SearchQuizzesByTag returns quizzes carrying any tag whose name starts
// with the query, case-insensitive.
func (s *QuizService) SearchQuizzesByTag(query string) ([]models.Quiz, error) {
	var quizzes []models.Quiz
	err := s.db.Model(&models.Quiz{}).
		Distinct("quizzes.*").
		Joins("JOIN quiz_tags ON quiz_tags.quiz_id = quizzes.id").
		Joins("JOIN tags ON tags.id = quiz_tags.tag_id AND tags.deleted_at IS NULL").
		Where("LOWER(tags.name) LIKE ?", strings.ToLower(query)+"%").
		Preload("Tags").
		Find(&quizzes).Error
	if err != nil {
		return nil, err
	}

	if quizzes == nil {
		quizzes = []models.Quiz{}
	}
	return quizzes, nil
}

func (s *QuizService) quizExists(quizID uint) error {
	var quiz models.Quiz
	if err := s.db.Select("id").First(&quiz, quizID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrQuizNotFound
		}
		return err
	}
	return nil
}
