package repository

import (
	"context"
	"errors"

	"goaltracker/internal/domain"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type GoalRepository struct {
	db *gorm.DB
}

func NewGoalRepository(db *gorm.DB) *GoalRepository {
	return &GoalRepository{db: db}
}

func (r *GoalRepository) withChapters(db *gorm.DB) *gorm.DB {
	return db.
		Preload("Chapters", func(db *gorm.DB) *gorm.DB {
			return db.Order("\"order\" asc")
		}).
		Preload("Chapters.Lessons", func(db *gorm.DB) *gorm.DB {
			return db.Order("position asc")
		})
}

func (r *GoalRepository) Create(ctx context.Context, goal *domain.Goal) error {
	return r.db.WithContext(ctx).Create(goal).Error
}

func (r *GoalRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]domain.Goal, error) {
	var goals []domain.Goal
	err := r.withChapters(r.db.WithContext(ctx)).
		Where("user_id = ?", userID).
		Order("target_date asc").
		Find(&goals).Error
	return goals, err
}

// GetByID is always owner-scoped; a goal owned by someone else is
// indistinguishable from a missing one.
func (r *GoalRepository) GetByID(ctx context.Context, id, userID uuid.UUID) (*domain.Goal, error) {
	var goal domain.Goal
	err := r.withChapters(r.db.WithContext(ctx)).
		Where("id = ? AND user_id = ?", id, userID).
		First(&goal).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrGoalNotFound
		}
		return nil, err
	}
	return &goal, nil
}

// Update persists the goal's own columns. Chapters are handled separately
// via ReplaceChapters.
func (r *GoalRepository) Update(ctx context.Context, goal *domain.Goal) error {
	return r.db.WithContext(ctx).Omit("Chapters").Save(goal).Error
}

// ReplaceChapters swaps the goal's entire chapter/lesson subtree for the
// given one. Old rows are deleted, so chapter and lesson ids are new.
func (r *GoalRepository) ReplaceChapters(ctx context.Context, goal *domain.Goal, chapters []domain.Chapter) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("goal_id = ?", goal.ID).Delete(&domain.Chapter{}).Error; err != nil {
			return err
		}
		if len(chapters) == 0 {
			return nil
		}
		for i := range chapters {
			chapters[i].GoalID = goal.ID
		}
		return tx.Create(&chapters).Error
	})
	if err != nil {
		return err
	}
	goal.Chapters = chapters
	return nil
}

// SaveProgress writes only the derived columns.
func (r *GoalRepository) SaveProgress(ctx context.Context, goal *domain.Goal) error {
	return r.db.WithContext(ctx).Model(&domain.Goal{}).
		Where("id = ?", goal.ID).
		Updates(map[string]interface{}{
			"progress_percentage": goal.ProgressPercentage,
			"status":              goal.Status,
		}).Error
}

func (r *GoalRepository) UpdateLesson(ctx context.Context, lesson *domain.Lesson) error {
	return r.db.WithContext(ctx).Model(&domain.Lesson{}).
		Where("id = ?", lesson.ID).
		Update("completed", lesson.Completed).Error
}

func (r *GoalRepository) Delete(ctx context.Context, id, userID uuid.UUID) error {
	result := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		Delete(&domain.Goal{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domain.ErrGoalNotFound
	}
	return nil
}
