package handlers

import (
	"net/http"

	"quizdeck/services"

	"github.com/gin-gonic/gin"
)

type AttemptHandler struct {
	attemptService *services.AttemptService
}

func NewAttemptHandler(attemptService *services.AttemptService) *AttemptHandler {
	return &AttemptHandler{
		attemptService: attemptService,
	}
}

func (h *AttemptHandler) SubmitAttempt(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	quizID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req services.SubmitAttemptRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := h.attemptService.SubmitAttempt(quizID, userID, &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, result)
}

func (h *AttemptHandler) GetAttemptResult(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	attemptID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	result, err := h.attemptService.GetAttemptResult(attemptID, userID)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

func (h *AttemptHandler) GetCorrectAnswers(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	attemptID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	answers, err := h.attemptService.GetCorrectAnswers(attemptID, userID)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, answers)
}
