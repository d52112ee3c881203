package usecase

import (
	"context"
	"time"

	"goaltracker/internal/domain"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type TaskRepository interface {
	Create(ctx context.Context, task *domain.Task) error
	ListByUser(ctx context.Context, userID uuid.UUID) ([]domain.Task, error)
	GetByID(ctx context.Context, id, userID uuid.UUID) (*domain.Task, error)
	UpdateCompletion(ctx context.Context, task *domain.Task) error
	Delete(ctx context.Context, id, userID uuid.UUID) error
}

// GoalProgressSyncer is the seam to the goal side: tasks only ever ask for a
// recompute of a goal they reference, never push state into it.
type GoalProgressSyncer interface {
	SyncProgress(ctx context.Context, goalID, userID uuid.UUID) error
}

type TaskUseCase struct {
	tasks TaskRepository
	goals GoalProgressSyncer
	log   *zap.SugaredLogger
}

func NewTaskUseCase(tasks TaskRepository, goals GoalProgressSyncer, log *zap.SugaredLogger) *TaskUseCase {
	return &TaskUseCase{tasks: tasks, goals: goals, log: log}
}

type CreateTaskInput struct {
	Title        string
	Description  string
	ScheduleDate time.Time
	Priority     domain.TaskPriority
	GoalID       *uuid.UUID
	SubTasks     []string
}

const (
	ToggleMain = "main"
	ToggleSub  = "sub"
)

type ToggleCompletionInput struct {
	Type      string
	SubTaskID *uuid.UUID
}

func (uc *TaskUseCase) Create(ctx context.Context, userID uuid.UUID, input CreateTaskInput) (*domain.Task, error) {
	priority := input.Priority
	if priority == "" {
		priority = domain.PriorityMedium
	}

	task := &domain.Task{
		ID:           uuid.New(),
		UserID:       userID,
		Title:        input.Title,
		Description:  input.Description,
		ScheduleDate: input.ScheduleDate,
		Priority:     priority,
		GoalID:       input.GoalID,
	}
	// New sub-tasks always start incomplete, whatever the client sent.
	for i, title := range input.SubTasks {
		task.SubTasks = append(task.SubTasks, domain.SubTask{
			ID:       uuid.New(),
			Title:    title,
			Position: i,
		})
	}

	if err := uc.tasks.Create(ctx, task); err != nil {
		return nil, err
	}

	if task.GoalID != nil {
		uc.syncLinkedGoal(ctx, *task.GoalID, userID)
	}
	return task, nil
}

func (uc *TaskUseCase) List(ctx context.Context, userID uuid.UUID) ([]domain.Task, error) {
	return uc.tasks.ListByUser(ctx, userID)
}

// ToggleCompletion handles both toggle variants. A main toggle flips the
// task and forces every sub-task to match; a sub toggle flips one sub-task
// and re-derives the task's completion from all of them.
func (uc *TaskUseCase) ToggleCompletion(ctx context.Context, taskID, userID uuid.UUID, input ToggleCompletionInput) (*domain.Task, error) {
	task, err := uc.tasks.GetByID(ctx, taskID, userID)
	if err != nil {
		return nil, err
	}

	var taskChanged bool
	switch input.Type {
	case ToggleMain:
		task.ToggleMain()
		taskChanged = true
	case ToggleSub:
		if input.SubTaskID == nil {
			return nil, domain.ErrInvalidToggle
		}
		taskChanged, err = task.ToggleSub(*input.SubTaskID)
		if err != nil {
			return nil, err
		}
	default:
		return nil, domain.ErrInvalidToggle
	}

	if err := uc.tasks.UpdateCompletion(ctx, task); err != nil {
		return nil, err
	}

	if taskChanged && task.GoalID != nil {
		uc.syncLinkedGoal(ctx, *task.GoalID, userID)
	}
	return task, nil
}

func (uc *TaskUseCase) Delete(ctx context.Context, taskID, userID uuid.UUID) error {
	task, err := uc.tasks.GetByID(ctx, taskID, userID)
	if err != nil {
		return err
	}

	if err := uc.tasks.Delete(ctx, taskID, userID); err != nil {
		return err
	}

	if task.GoalID != nil {
		uc.syncLinkedGoal(ctx, *task.GoalID, userID)
	}
	return nil
}

// syncLinkedGoal is best-effort: the task mutation already happened and must
// stand even when the goal recompute fails (e.g. a dangling goal reference).
func (uc *TaskUseCase) syncLinkedGoal(ctx context.Context, goalID, userID uuid.UUID) {
	if err := uc.goals.SyncProgress(ctx, goalID, userID); err != nil {
		uc.log.Warnw("goal progress sync after task change failed", "goalId", goalID, "error", err)
	}
}
