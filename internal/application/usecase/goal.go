package usecase

import (
	"context"
	"time"

	"goaltracker/internal/domain"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type GoalRepository interface {
	Create(ctx context.Context, goal *domain.Goal) error
	ListByUser(ctx context.Context, userID uuid.UUID) ([]domain.Goal, error)
	GetByID(ctx context.Context, id, userID uuid.UUID) (*domain.Goal, error)
	Update(ctx context.Context, goal *domain.Goal) error
	ReplaceChapters(ctx context.Context, goal *domain.Goal, chapters []domain.Chapter) error
	SaveProgress(ctx context.Context, goal *domain.Goal) error
	UpdateLesson(ctx context.Context, lesson *domain.Lesson) error
	Delete(ctx context.Context, id, userID uuid.UUID) error
}

type GoalUseCase struct {
	goals GoalRepository
	log   *zap.SugaredLogger
}

func NewGoalUseCase(goals GoalRepository, log *zap.SugaredLogger) *GoalUseCase {
	return &GoalUseCase{goals: goals, log: log}
}

type LessonInput struct {
	Title     string
	Completed bool
	Notes     string
}

type ChapterInput struct {
	Title   string
	Order   *int
	Lessons []LessonInput
}

type CreateGoalInput struct {
	Title       string
	Description string
	TargetDate  time.Time
	Category    string
	Chapters    []ChapterInput
}

type UpdateGoalInput struct {
	Title       *string
	Description *string
	TargetDate  *time.Time
	Category    *string
	Status      *domain.GoalStatus
	// Non-nil replaces the whole chapter tree, ids and all.
	Chapters []ChapterInput
}

func buildChapters(inputs []ChapterInput) []domain.Chapter {
	chapters := make([]domain.Chapter, 0, len(inputs))
	for i, in := range inputs {
		order := i
		if in.Order != nil {
			order = *in.Order
		}
		ch := domain.Chapter{
			ID:    uuid.New(),
			Title: in.Title,
			Order: order,
		}
		for j, l := range in.Lessons {
			ch.Lessons = append(ch.Lessons, domain.Lesson{
				ID:        uuid.New(),
				Title:     l.Title,
				Completed: l.Completed,
				Notes:     l.Notes,
				Position:  j,
			})
		}
		chapters = append(chapters, ch)
	}
	return chapters
}

func (uc *GoalUseCase) Create(ctx context.Context, userID uuid.UUID, input CreateGoalInput) (*domain.Goal, error) {
	category := input.Category
	if category == "" {
		category = "General"
	}

	goal := &domain.Goal{
		ID:          uuid.New(),
		UserID:      userID,
		Title:       input.Title,
		Description: input.Description,
		TargetDate:  input.TargetDate,
		Category:    category,
		Status:      domain.StatusPlanned,
		Chapters:    buildChapters(input.Chapters),
	}
	goal.Recalculate()

	if err := uc.goals.Create(ctx, goal); err != nil {
		return nil, err
	}
	return goal, nil
}

// List returns the user's goals sorted by target date, after running the
// self-heal pass over each one.
func (uc *GoalUseCase) List(ctx context.Context, userID uuid.UUID) ([]domain.Goal, error) {
	goals, err := uc.goals.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	for i := range goals {
		uc.healProgress(ctx, &goals[i])
	}
	return goals, nil
}

// healProgress re-derives a goal's progress and writes it back only when the
// stored value had drifted. Failures don't break the read path.
func (uc *GoalUseCase) healProgress(ctx context.Context, goal *domain.Goal) {
	if !goal.Recalculate() {
		return
	}
	if err := uc.goals.SaveProgress(ctx, goal); err != nil {
		uc.log.Warnw("failed to persist healed goal progress", "goalId", goal.ID, "error", err)
	}
}

func (uc *GoalUseCase) Update(ctx context.Context, goalID, userID uuid.UUID, input UpdateGoalInput) (*domain.Goal, error) {
	goal, err := uc.goals.GetByID(ctx, goalID, userID)
	if err != nil {
		return nil, err
	}

	if input.Title != nil {
		goal.Title = *input.Title
	}
	if input.Description != nil {
		goal.Description = *input.Description
	}
	if input.TargetDate != nil {
		goal.TargetDate = *input.TargetDate
	}
	if input.Category != nil {
		goal.Category = *input.Category
	}
	if input.Status != nil {
		goal.Status = *input.Status
	}

	if input.Chapters != nil {
		if err := uc.goals.ReplaceChapters(ctx, goal, buildChapters(input.Chapters)); err != nil {
			return nil, err
		}
	}

	goal.Recalculate()
	if err := uc.goals.Update(ctx, goal); err != nil {
		return nil, err
	}
	return goal, nil
}

func (uc *GoalUseCase) ToggleLesson(ctx context.Context, goalID, chapterID, lessonID, userID uuid.UUID) (*domain.Goal, error) {
	goal, err := uc.goals.GetByID(ctx, goalID, userID)
	if err != nil {
		return nil, err
	}

	chapter := goal.FindChapter(chapterID)
	if chapter == nil {
		return nil, domain.ErrChapterNotFound
	}
	lesson := chapter.FindLesson(lessonID)
	if lesson == nil {
		return nil, domain.ErrLessonNotFound
	}

	lesson.Completed = !lesson.Completed
	if err := uc.goals.UpdateLesson(ctx, lesson); err != nil {
		return nil, err
	}

	if goal.Recalculate() {
		if err := uc.goals.SaveProgress(ctx, goal); err != nil {
			return nil, err
		}
	}
	return goal, nil
}

func (uc *GoalUseCase) Delete(ctx context.Context, goalID, userID uuid.UUID) error {
	return uc.goals.Delete(ctx, goalID, userID)
}

// SyncProgress re-derives the goal's progress from its own lesson tree and
// persists it when it drifted. Task completion feeds nothing into the
// percentage; this is the defensive recompute fired by linked-task changes.
func (uc *GoalUseCase) SyncProgress(ctx context.Context, goalID, userID uuid.UUID) error {
	goal, err := uc.goals.GetByID(ctx, goalID, userID)
	if err != nil {
		return err
	}
	if goal.Recalculate() {
		return uc.goals.SaveProgress(ctx, goal)
	}
	return nil
}
