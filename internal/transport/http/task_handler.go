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

type TaskHandler struct {
	tasks *usecase.TaskUseCase
}

func NewTaskHandler(tasks *usecase.TaskUseCase) *TaskHandler {
	return &TaskHandler{tasks: tasks}
}

type subTaskReq struct {
	Title string `json:"title" binding:"required"`
}

type createTaskReq struct {
	Title        string              `json:"title" binding:"required"`
	Description  string              `json:"description"`
	ScheduleDate time.Time           `json:"scheduleDate" binding:"required"`
	Priority     domain.TaskPriority `json:"priority" binding:"omitempty,oneof=High Medium Low"`
	GoalID       *uuid.UUID          `json:"goalId"`
	SubTasks     []subTaskReq        `json:"subTasks" binding:"dive"`
}

type toggleCompletionReq struct {
	Type      string     `json:"type" binding:"required,oneof=main sub"`
	SubTaskID *uuid.UUID `json:"subTaskId"`
}

func (h *TaskHandler) Create(c *gin.Context) {
	var req createTaskReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Error creating task. Check input format (e.g., scheduleDate).", "error": err.Error()})
		return
	}

	subTasks := make([]string, 0, len(req.SubTasks))
	for _, st := range req.SubTasks {
		subTasks = append(subTasks, st.Title)
	}

	task, err := h.tasks.Create(c.Request.Context(), middleware.UserID(c), usecase.CreateTaskInput{
		Title:        req.Title,
		Description:  req.Description,
		ScheduleDate: req.ScheduleDate,
		Priority:     req.Priority,
		GoalID:       req.GoalID,
		SubTasks:     subTasks,
	})
	if err != nil {
		writeError(c, err, "Error creating task.")
		return
	}
	c.JSON(http.StatusCreated, task)
}

func (h *TaskHandler) List(c *gin.Context) {
	tasks, err := h.tasks.List(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		writeError(c, err, "Error fetching tasks.")
		return
	}
	c.JSON(http.StatusOK, tasks)
}

func (h *TaskHandler) ToggleCompletion(c *gin.Context) {
	taskID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid task id."})
		return
	}

	var req toggleCompletionReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid completion type or missing subTaskId."})
		return
	}

	task, err := h.tasks.ToggleCompletion(c.Request.Context(), taskID, middleware.UserID(c), usecase.ToggleCompletionInput{
		Type:      req.Type,
		SubTaskID: req.SubTaskID,
	})
	if err != nil {
		writeError(c, err, "Server error during completion toggle.")
		return
	}
	c.JSON(http.StatusOK, task)
}

func (h *TaskHandler) Delete(c *gin.Context) {
	taskID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid task id."})
		return
	}

	if err := h.tasks.Delete(c.Request.Context(), taskID, middleware.UserID(c)); err != nil {
		writeError(c, err, "Error deleting task.")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Task deleted successfully."})
}
