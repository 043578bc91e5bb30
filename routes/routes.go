package routes

import (
	"net/http"

	"quizdeck/handlers"
	"quizdeck/middleware"

	"github.com/gin-gonic/gin"
)

func SetupRoutes(
	router *gin.Engine,
	authHandler *handlers.AuthHandler,
	quizHandler *handlers.QuizHandler,
	questionHandler *handlers.QuestionHandler,
	attemptHandler *handlers.AttemptHandler,
	rankingHandler *handlers.RankingHandler,
	jwtSecret string,
) {
	// API routes
	api := router.Group("/api")
	{
		// Auth routes (public)
		auth := api.Group("/auth")
		{
			auth.POST("/register", authHandler.Register)
			auth.POST("/login", authHandler.Login)
		}

		// Public browsing routes
		api.GET("/quizzes", quizHandler.ListQuizzes)
		api.GET("/quizzes/:id", quizHandler.GetQuiz)
		api.GET("/quizzes/:id/tags", quizHandler.GetQuizTags)
		api.GET("/tags/search", quizHandler.SearchQuizzesByTag)
		api.GET("/questions/:id", questionHandler.GetQuestion)
		api.GET("/questions/:id/answers", questionHandler.GetQuestionAnswers)
		api.GET("/answers/:id", questionHandler.GetAnswer)
		api.GET("/tags", quizHandler.ListTags)
		api.GET("/rankings", rankingHandler.GetRankings)

		// Protected routes
		protected := api.Group("/")
		protected.Use(middleware.AuthMiddleware(jwtSecret))
		{
			// User profile
			protected.GET("/auth/profile", authHandler.GetProfile)
			protected.GET("/my-quizzes", quizHandler.GetMyQuizzes)

			// Quiz authoring
			protected.POST("/quizzes", quizHandler.CreateQuiz)
			protected.PUT("/quizzes/:id", quizHandler.UpdateQuiz)
			protected.DELETE("/quizzes/:id", quizHandler.DeleteQuiz)
			protected.POST("/quizzes/:id/tags", quizHandler.AddTagToQuiz)
			protected.GET("/quizzes/:id/questions", questionHandler.GetQuizQuestions)

			// Question and answer authoring
			protected.POST("/questions", questionHandler.CreateQuestion)
			protected.PUT("/questions/:id", questionHandler.UpdateQuestion)
			protected.DELETE("/questions/:id", questionHandler.DeleteQuestion)
			protected.POST("/answers", questionHandler.CreateAnswer)
			protected.PUT("/answers/:id", questionHandler.UpdateAnswer)
			protected.DELETE("/answers/:id", questionHandler.DeleteAnswer)

			// Tags
			protected.POST("/tags", quizHandler.CreateTag)
			protected.PUT("/tags/:id", quizHandler.UpdateTag)

			// Attempts
			protected.POST("/quizzes/:id/attempts", attemptHandler.SubmitAttempt)
			protected.GET("/attempts/:id", attemptHandler.GetAttemptResult)
			protected.GET("/attempts/:id/correct-answers", attemptHandler.GetCorrectAnswers)
		}
	}

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
}
