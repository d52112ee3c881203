package repository

import (
	"context"
	"errors"

	"goaltracker/internal/domain"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type TaskRepository struct {
	db *gorm.DB
}

func NewTaskRepository(db *gorm.DB) *TaskRepository {
	return &TaskRepository{db: db}
}

func (r *TaskRepository) withSubTasks(db *gorm.DB) *gorm.DB {
	return db.Preload("SubTasks", func(db *gorm.DB) *gorm.DB {
		return db.Order("position asc")
	})
}

func (r *TaskRepository) Create(ctx context.Context, task *domain.Task) error {
	return r.db.WithContext(ctx).Create(task).Error
}

func (r *TaskRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]domain.Task, error) {
	var tasks []domain.Task
	err := r.withSubTasks(r.db.WithContext(ctx)).
		Where("user_id = ?", userID).
		Order("completed asc").
		Order("schedule_date asc").
		Find(&tasks).Error
	return tasks, err
}

func (r *TaskRepository) GetByID(ctx context.Context, id, userID uuid.UUID) (*domain.Task, error) {
	var task domain.Task
	err := r.withSubTasks(r.db.WithContext(ctx)).
		Where("id = ? AND user_id = ?", id, userID).
		First(&task).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrTaskNotFound
		}
		return nil, err
	}
	return &task, nil
}

// UpdateCompletion persists the task's completed flag together with the
// completion state of every sub-task.
func (r *TaskRepository) UpdateCompletion(ctx context.Context, task *domain.Task) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.Model(&domain.Task{}).
			Where("id = ?", task.ID).
			Update("completed", task.Completed).Error
		if err != nil {
			return err
		}
		for i := range task.SubTasks {
			err := tx.Model(&domain.SubTask{}).
				Where("id = ?", task.SubTasks[i].ID).
				Update("completed", task.SubTasks[i].Completed).Error
			if err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *TaskRepository) Delete(ctx context.Context, id, userID uuid.UUID) error {
	result := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		Delete(&domain.Task{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domain.ErrTaskNotFound
	}
	return nil
}
