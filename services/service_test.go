package services

import (
	"testing"

	"quizdeck/models"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestDB opens an isolated in-memory database. Connections are pinned to
// one so the pool never hands out a second, empty :memory: database.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Quiz{},
		&models.Question{},
		&models.Answer{},
		&models.Tag{},
		&models.QuizAttempt{},
		&models.UserAnswer{},
	))

	return db
}

func createTestUser(t *testing.T, db *gorm.DB, username string) *models.User {
	t.Helper()

	user := models.User{
		Username:     username,
		Email:        username + "@example.com",
		PasswordHash: "x",
	}
	require.NoError(t, db.Create(&user).Error)
	return &user
}

func createTestQuiz(t *testing.T, db *gorm.DB, creatorID uint, title string) *models.Quiz {
	t.Helper()

	quiz := models.Quiz{Title: title, CreatorID: creatorID}
	require.NoError(t, db.Create(&quiz).Error)
	return &quiz
}

func createTestQuestion(t *testing.T, db *gorm.DB, quizID uint, questionType models.QuestionType, points int) *models.Question {
	t.Helper()

	question := models.Question{
		QuizID: quizID,
		Text:   "test question",
		Type:   questionType,
		Points: points,
	}
	require.NoError(t, db.Create(&question).Error)
	return &question
}

func createTestAnswer(t *testing.T, db *gorm.DB, questionID uint, text string, isCorrect bool) *models.Answer {
	t.Helper()

	answer := models.Answer{QuestionID: questionID, Text: text, IsCorrect: isCorrect}
	require.NoError(t, db.Create(&answer).Error)
	return &answer
}
