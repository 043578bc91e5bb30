package services

import (
	"testing"

	"quizdeck/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateQuiz_WithQuestionsAndAnswers(t *testing.T) {
	db := newTestDB(t)
	service := NewQuizService(db)
	author := createTestUser(t, db, "author")

	quiz, err := service.CreateQuiz(author.ID, &CreateQuizRequest{
		Title:       "Science",
		Description: "Basics",
		Questions: []CreateQuestionInline{
			{
				Text:   "Powerhouse of the cell?",
				Type:   models.QuestionTypeSingle,
				Points: 5,
				Answers: []CreateAnswerInline{
					{Text: "Mitochondria", IsCorrect: true},
					{Text: "Nucleus"},
				},
			},
			{
				Text:   "Noble gases?",
				Type:   models.QuestionTypeMultiple,
				Points: 10,
				Answers: []CreateAnswerInline{
					{Text: "Helium", IsCorrect: true},
					{Text: "Neon", IsCorrect: true},
					{Text: "Iron"},
				},
			},
		},
	})
	require.NoError(t, err)

	assert.Equal(t, author.ID, quiz.CreatorID)
	require.Len(t, quiz.Questions, 2)
	assert.Len(t, quiz.Questions[0].Answers, 2)
	assert.Len(t, quiz.Questions[1].Answers, 3)
}

func TestCreateQuiz_RejectsInvalidAnswerKey(t *testing.T) {
	db := newTestDB(t)
	service := NewQuizService(db)
	author := createTestUser(t, db, "author")

	// single with two correct answers
	_, err := service.CreateQuiz(author.ID, &CreateQuizRequest{
		Title: "Broken",
		Questions: []CreateQuestionInline{
			{
				Text:   "q",
				Type:   models.QuestionTypeSingle,
				Points: 5,
				Answers: []CreateAnswerInline{
					{Text: "a", IsCorrect: true},
					{Text: "b", IsCorrect: true},
				},
			},
		},
	})
	assert.ErrorIs(t, err, ErrInvalidAnswerKey)

	// multiple with no correct answer
	_, err = service.CreateQuiz(author.ID, &CreateQuizRequest{
		Title: "Broken",
		Questions: []CreateQuestionInline{
			{
				Text:    "q",
				Type:    models.QuestionTypeMultiple,
				Points:  5,
				Answers: []CreateAnswerInline{{Text: "a"}},
			},
		},
	})
	assert.ErrorIs(t, err, ErrInvalidAnswerKey)

	// nothing half-created
	var count int64
	require.NoError(t, db.Model(&models.Quiz{}).Count(&count).Error)
	assert.EqualValues(t, 0, count)
}

func TestUpdateQuiz_OwnershipEnforced(t *testing.T) {
	db := newTestDB(t)
	service := NewQuizService(db)
	author := createTestUser(t, db, "author")
	other := createTestUser(t, db, "other")
	quiz := createTestQuiz(t, db, author.ID, "Mine")

	_, err := service.UpdateQuiz(quiz.ID, other.ID, &UpdateQuizRequest{Title: "Stolen"})
	assert.ErrorIs(t, err, ErrForbidden)

	updated, err := service.UpdateQuiz(quiz.ID, author.ID, &UpdateQuizRequest{Title: "Renamed"})
	require.NoError(t, err)
	assert.Equal(t, "Renamed", updated.Title)

	_, err = service.UpdateQuiz(99999, author.ID, &UpdateQuizRequest{Title: "x"})
	assert.ErrorIs(t, err, ErrQuizNotFound)
}

func TestDeleteQuiz_CascadesToChildren(t *testing.T) {
	db := newTestDB(t)
	service := NewQuizService(db)
	author := createTestUser(t, db, "author")
	quiz := createTestQuiz(t, db, author.ID, "Doomed")
	question := createTestQuestion(t, db, quiz.ID, models.QuestionTypeSingle, 5)
	answer := createTestAnswer(t, db, question.ID, "a", true)

	taker := createTestUser(t, db, "taker")
	attemptService := NewAttemptService(db)
	_, err := attemptService.SubmitAttempt(quiz.ID, taker.ID, &SubmitAttemptRequest{
		Answers: []SubmittedAnswer{{QuestionID: question.ID, SelectedAnswerIDs: []uint{answer.ID}}},
	})
	require.NoError(t, err)

	require.NoError(t, service.DeleteQuiz(quiz.ID, author.ID))

	for _, check := range []struct {
		name  string
		model interface{}
	}{
		{"quizzes", &models.Quiz{}},
		{"questions", &models.Question{}},
		{"answers", &models.Answer{}},
		{"attempts", &models.QuizAttempt{}},
		{"user answers", &models.UserAnswer{}},
	} {
		var count int64
		require.NoError(t, db.Model(check.model).Count(&count).Error)
		assert.EqualValues(t, 0, count, "expected no remaining %s", check.name)
	}
}

func TestDeleteQuiz_Forbidden(t *testing.T) {
	db := newTestDB(t)
	service := NewQuizService(db)
	author := createTestUser(t, db, "author")
	other := createTestUser(t, db, "other")
	quiz := createTestQuiz(t, db, author.ID, "Mine")

	assert.ErrorIs(t, service.DeleteQuiz(quiz.ID, other.ID), ErrForbidden)
}

func TestQuestionAndAnswerMutation_WalksUpToQuizOwner(t *testing.T) {
	db := newTestDB(t)
	service := NewQuizService(db)
	author := createTestUser(t, db, "author")
	other := createTestUser(t, db, "other")
	quiz := createTestQuiz(t, db, author.ID, "Mine")

	question, err := service.CreateQuestion(author.ID, &CreateQuestionRequest{
		QuizID: quiz.ID,
		Text:   "q",
		Type:   models.QuestionTypeText,
		Points: 3,
	})
	require.NoError(t, err)

	_, err = service.CreateQuestion(other.ID, &CreateQuestionRequest{
		QuizID: quiz.ID,
		Text:   "q",
		Type:   models.QuestionTypeText,
		Points: 3,
	})
	assert.ErrorIs(t, err, ErrForbidden)

	answer, err := service.CreateAnswer(author.ID, &CreateAnswerRequest{
		QuestionID: question.ID,
		Text:       "a",
		IsCorrect:  true,
	})
	require.NoError(t, err)

	_, err = service.UpdateAnswer(answer.ID, other.ID, &UpdateAnswerRequest{Text: "tampered"})
	assert.ErrorIs(t, err, ErrForbidden)

	assert.ErrorIs(t, service.DeleteQuestion(question.ID, other.ID), ErrForbidden)
	assert.ErrorIs(t, service.DeleteAnswer(answer.ID, other.ID), ErrForbidden)

	require.NoError(t, service.DeleteQuestion(question.ID, author.ID))

	var answerCount int64
	require.NoError(t, db.Model(&models.Answer{}).Count(&answerCount).Error)
	assert.EqualValues(t, 0, answerCount, "deleting a question removes its answers")
}

func TestCreateTag_IdempotentByName(t *testing.T) {
	db := newTestDB(t)
	service := NewQuizService(db)

	first, err := service.CreateTag(&TagRequest{Name: "science"})
	require.NoError(t, err)
	second, err := service.CreateTag(&TagRequest{Name: "science"})
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID)

	var count int64
	require.NoError(t, db.Model(&models.Tag{}).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestAddTagToQuiz_Idempotent(t *testing.T) {
	db := newTestDB(t)
	service := NewQuizService(db)
	author := createTestUser(t, db, "author")
	quiz := createTestQuiz(t, db, author.ID, "Tagged")

	_, err := service.AddTagToQuiz(quiz.ID, author.ID, &TagRequest{Name: "science"})
	require.NoError(t, err)
	_, err = service.AddTagToQuiz(quiz.ID, author.ID, &TagRequest{Name: "science"})
	require.NoError(t, err)

	tags, err := service.GetQuizTags(quiz.ID)
	require.NoError(t, err)
	require.Len(t, tags, 1)
	assert.Equal(t, "science", tags[0].Name)
}

func TestListQuizzes_FiltersAndPagination(t *testing.T) {
	db := newTestDB(t)
	service := NewQuizService(db)
	author := createTestUser(t, db, "author")

	history := createTestQuiz(t, db, author.ID, "World History")
	createTestQuiz(t, db, author.ID, "Math Basics")
	createTestQuiz(t, db, author.ID, "History of Math")

	_, err := service.AddTagToQuiz(history.ID, author.ID, &TagRequest{Name: "humanities"})
	require.NoError(t, err)

	// title substring, case-insensitive
	page, err := service.ListQuizzes(ListQuizzesOptions{Search: "history"})
	require.NoError(t, err)
	assert.EqualValues(t, 2, page.Total)
	assert.Len(t, page.Quizzes, 2)

	// tag filter
	page, err = service.ListQuizzes(ListQuizzesOptions{Tag: "humanities"})
	require.NoError(t, err)
	assert.EqualValues(t, 1, page.Total)
	require.Len(t, page.Quizzes, 1)
	assert.Equal(t, history.ID, page.Quizzes[0].ID)

	// tag filter with no matches
	page, err = service.ListQuizzes(ListQuizzesOptions{Tag: "nope"})
	require.NoError(t, err)
	assert.EqualValues(t, 0, page.Total)
	assert.Empty(t, page.Quizzes)

	// pagination: total counts all matches, page holds at most limit
	page, err = service.ListQuizzes(ListQuizzesOptions{Page: 1, Limit: 2})
	require.NoError(t, err)
	assert.EqualValues(t, 3, page.Total)
	assert.Len(t, page.Quizzes, 2)

	page, err = service.ListQuizzes(ListQuizzesOptions{Page: 2, Limit: 2})
	require.NoError(t, err)
	assert.Len(t, page.Quizzes, 1)
}

func TestSearchQuizzesByTag_Prefix(t *testing.T) {
	db := newTestDB(t)
	service := NewQuizService(db)
	author := createTestUser(t, db, "author")

	quiz := createTestQuiz(t, db, author.ID, "Bio")
	_, err := service.AddTagToQuiz(quiz.ID, author.ID, &TagRequest{Name: "science"})
	require.NoError(t, err)

	quizzes, err := service.SearchQuizzesByTag("sci")
	require.NoError(t, err)
	require.Len(t, quizzes, 1)
	assert.Equal(t, quiz.ID, quizzes[0].ID)

	quizzes, err = service.SearchQuizzesByTag("math")
	require.NoError(t, err)
	assert.Empty(t, quizzes)
}
