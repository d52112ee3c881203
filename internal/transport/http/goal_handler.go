package handlers

import (
	"net/http"
	"time"

	"goaltracker/internal/application/usecase"
	"goaltracker/internal/domain"
	"goaltracker/internal/middleware"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type GoalHandler struct {
	goals *usecase.GoalUseCase
}

func NewGoalHandler(goals *usecase.GoalUseCase) *GoalHandler {
	return &GoalHandler{goals: goals}
}

type lessonReq struct {
	Title     string `json:"title" binding:"required"`
	Completed bool   `json:"completed"`
	Notes     string `json:"notes"`
}

type chapterReq struct {
	Title   string      `json:"title" binding:"required"`
	Order   *int        `json:"order"`
	Lessons []lessonReq `json:"lessons" binding:"dive"`
}

type createGoalReq struct {
	Title       string       `json:"title" binding:"required"`
	Description string       `json:"description"`
	TargetDate  time.Time    `json:"targetDate" binding:"required"`
	Category    string       `json:"category"`
	Chapters    []chapterReq `json:"chapters" binding:"dive"`
}

type updateGoalReq struct {
	Title       *string            `json:"title"`
	Description *string            `json:"description"`
	TargetDate  *time.Time         `json:"targetDate"`
	Category    *string            `json:"category"`
	Status      *domain.GoalStatus `json:"status" binding:"omitempty,oneof=Planned InProgress OnHold Completed"`
	Chapters    []chapterReq       `json:"chapters" binding:"omitempty,dive"`
}

func toChapterInputs(reqs []chapterReq) []usecase.ChapterInput {
	if reqs == nil {
		return nil
	}
	chapters := make([]usecase.ChapterInput, 0, len(reqs))
	for _, cr := range reqs {
		ci := usecase.ChapterInput{Title: cr.Title, Order: cr.Order}
		for _, lr := range cr.Lessons {
			ci.Lessons = append(ci.Lessons, usecase.LessonInput{
				Title:     lr.Title,
				Completed: lr.Completed,
				Notes:     lr.Notes,
			})
		}
		chapters = append(chapters, ci)
	}
	return chapters
}

func (h *GoalHandler) Create(c *gin.Context) {
	var req createGoalReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Error creating goal. Check input format.", "error": err.Error()})
		return
	}

	goal, err := h.goals.Create(c.Request.Context(), middleware.UserID(c), usecase.CreateGoalInput{
		Title:       req.Title,
		Description: req.Description,
		TargetDate:  req.TargetDate,
		Category:    req.Category,
		Chapters:    toChapterInputs(req.Chapters),
	})
	if err != nil {
		writeError(c, err, "Error creating goal.")
		return
	}
	c.JSON(http.StatusCreated, goal)
}

func (h *GoalHandler) List(c *gin.Context) {
	goals, err := h.goals.List(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		writeError(c, err, "Error fetching goals.")
		return
	}
	c.JSON(http.StatusOK, goals)
}

func (h *GoalHandler) Update(c *gin.Context) {
	goalID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid goal id."})
		return
	}

	var req updateGoalReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Error updating goal. Check input format.", "error": err.Error()})
		return
	}

	goal, err := h.goals.Update(c.Request.Context(), goalID, middleware.UserID(c), usecase.UpdateGoalInput{
		Title:       req.Title,
		Description: req.Description,
		TargetDate:  req.TargetDate,
		Category:    req.Category,
		Status:      req.Status,
		Chapters:    toChapterInputs(req.Chapters),
	})
	if err != nil {
		writeError(c, err, "Error updating goal.")
		return
	}
	c.JSON(http.StatusOK, goal)
}

func (h *GoalHandler) ToggleLesson(c *gin.Context) {
	goalID, err1 := uuid.Parse(c.Param("id"))
	chapterID, err2 := uuid.Parse(c.Param("chapterId"))
	lessonID, err3 := uuid.Parse(c.Param("lessonId"))
	if err1 != nil || err2 != nil || err3 != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid id in path."})
		return
	}

	goal, err := h.goals.ToggleLesson(c.Request.Context(), goalID, chapterID, lessonID, middleware.UserID(c))
	if err != nil {
		writeError(c, err, "Error toggling lesson completion.")
		return
	}
	c.JSON(http.StatusOK, goal)
}

func (h *GoalHandler) Delete(c *gin.Context) {
	goalID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid goal id."})
		return
	}

	if err := h.goals.Delete(c.Request.Context(), goalID, middleware.UserID(c)); err != nil {
		writeError(c, err, "Error deleting goal.")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Goal deleted successfully."})
}
