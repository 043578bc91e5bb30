package services

import "errors"

// Service errors are surfaced directly to the handler layer, which maps
// them to HTTP status codes. Nothing is retried or recovered locally.
var (
	ErrQuizNotFound     = errors.New("quiz not found")
	ErrQuestionNotFound = errors.New("question not found")
	ErrAnswerNotFound   = errors.New("answer not found")
	ErrTagNotFound      = errors.New("tag not found")
	ErrAttemptNotFound  = errors.New("attempt not found")
	ErrUserNotFound     = errors.New("user not found")

	// ErrForbidden covers every ownership check: quiz mutation by a
	// non-creator and attempt reads by a non-owner.
	ErrForbidden = errors.New("access denied")

	ErrNoQuestions      = errors.New("quiz has no questions")
	ErrInvalidAnswerKey = errors.New("invalid answer key for question type")

	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrEmailTaken         = errors.New("email already registered")
	ErrUsernameTaken      = errors.New("username already taken")
)
