package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrTaskNotFound    = errors.New("task not found")
	ErrSubTaskNotFound = errors.New("sub-task not found")
	ErrInvalidToggle   = errors.New("invalid completion toggle request")
)

type TaskPriority string

const (
	PriorityHigh   TaskPriority = "High"
	PriorityMedium TaskPriority = "Medium"
	PriorityLow    TaskPriority = "Low"
)

type Task struct {
	ID           uuid.UUID    `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	UserID       uuid.UUID    `gorm:"type:uuid;index;not null" json:"userId"`
	Title        string       `gorm:"not null" json:"title"`
	Description  string       `json:"description"`
	ScheduleDate time.Time    `gorm:"index" json:"scheduleDate"`
	Priority     TaskPriority `gorm:"default:Medium" json:"priority"`

	// Weak link to a goal. Deleting the goal leaves this dangling on purpose.
	GoalID *uuid.UUID `gorm:"type:uuid;index" json:"goalId,omitempty"`

	Completed bool      `gorm:"default:false" json:"completed"`
	SubTasks  []SubTask `gorm:"foreignKey:TaskID;constraint:OnDelete:CASCADE" json:"subTasks"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type SubTask struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	TaskID    uuid.UUID `gorm:"type:uuid;index" json:"-"`
	Title     string    `gorm:"not null" json:"title"`
	Completed bool      `gorm:"default:false" json:"completed"`

	// Keeps sub-tasks in the order the client sent them.
	Position int `json:"-"`
}

func (t *Task) FindSubTask(id uuid.UUID) *SubTask {
	return findByID(t.SubTasks, id, func(s *SubTask) uuid.UUID { return s.ID })
}

// ToggleMain flips the task's completion and forces every sub-task to the
// new value. The parent always wins over individual sub-task state.
func (t *Task) ToggleMain() {
	t.Completed = !t.Completed
	for i := range t.SubTasks {
		t.SubTasks[i].Completed = t.Completed
	}
}

// ToggleSub flips one sub-task and re-derives the task's completion as the
// AND of all sub-tasks. Returns whether the task-level value changed.
func (t *Task) ToggleSub(id uuid.UUID) (bool, error) {
	st := t.FindSubTask(id)
	if st == nil {
		return false, ErrSubTaskNotFound
	}
	st.Completed = !st.Completed

	all := true
	for i := range t.SubTasks {
		if !t.SubTasks[i].Completed {
			all = false
			break
		}
	}
	changed := t.Completed != all
	t.Completed = all
	return changed, nil
}
