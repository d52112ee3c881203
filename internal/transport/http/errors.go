package handlers

import (
	"errors"
	"net/http"

	"goaltracker/internal/domain"

	"github.com/gin-gonic/gin"
)

// writeError maps domain errors onto the API's status codes. Anything
// unrecognized becomes a 500 with the fallback message plus the raw detail.
func writeError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, domain.ErrUserAlreadyExists):
		c.JSON(http.StatusBadRequest, gin.H{"message": "User already exists."})
	case errors.Is(err, domain.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Invalid credentials."})
	case errors.Is(err, domain.ErrGoalNotFound):
		c.JSON(http.StatusNotFound, gin.H{"message": "Goal not found or unauthorized."})
	case errors.Is(err, domain.ErrChapterNotFound):
		c.JSON(http.StatusNotFound, gin.H{"message": "Chapter not found."})
	case errors.Is(err, domain.ErrLessonNotFound):
		c.JSON(http.StatusNotFound, gin.H{"message": "Lesson not found."})
	case errors.Is(err, domain.ErrTaskNotFound):
		c.JSON(http.StatusNotFound, gin.H{"message": "Task not found or unauthorized."})
	case errors.Is(err, domain.ErrSubTaskNotFound):
		c.JSON(http.StatusNotFound, gin.H{"message": "Sub-task not found."})
	case errors.Is(err, domain.ErrInvalidToggle):
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid completion type or missing subTaskId."})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"message": fallback, "error": err.Error()})
	}
}
