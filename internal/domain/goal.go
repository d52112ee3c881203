package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrGoalNotFound    = errors.New("goal not found")
	ErrChapterNotFound = errors.New("chapter not found")
	ErrLessonNotFound  = errors.New("lesson not found")
)

type GoalStatus string

const (
	StatusPlanned    GoalStatus = "Planned"
	StatusInProgress GoalStatus = "InProgress"
	StatusOnHold     GoalStatus = "OnHold"
	StatusCompleted  GoalStatus = "Completed"
)

type Goal struct {
	ID                 uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	UserID             uuid.UUID  `gorm:"type:uuid;index;not null" json:"userId"`
	Title              string     `gorm:"not null" json:"title"`
	Description        string     `json:"description"`
	TargetDate         time.Time  `gorm:"index" json:"targetDate"`
	Category           string     `gorm:"default:General" json:"category"`
	Status             GoalStatus `gorm:"default:Planned" json:"status"`
	ProgressPercentage int        `gorm:"default:0" json:"progressPercentage"`

	Chapters []Chapter `gorm:"foreignKey:GoalID;constraint:OnDelete:CASCADE" json:"chapters"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type Chapter struct {
	ID     uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	GoalID uuid.UUID `gorm:"type:uuid;index" json:"-"`
	Title  string    `gorm:"not null" json:"title"`
	Order  int       `json:"order"`

	Lessons []Lesson `gorm:"foreignKey:ChapterID;constraint:OnDelete:CASCADE" json:"lessons"`
}

type Lesson struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	ChapterID uuid.UUID `gorm:"type:uuid;index" json:"-"`
	Title     string    `gorm:"not null" json:"title"`
	Completed bool      `gorm:"default:false" json:"completed"`
	Notes     string    `json:"notes,omitempty"`

	// Keeps lessons in the order the client sent them.
	Position int `json:"-"`
}

func (g *Goal) FindChapter(id uuid.UUID) *Chapter {
	return findByID(g.Chapters, id, func(c *Chapter) uuid.UUID { return c.ID })
}

func (c *Chapter) FindLesson(id uuid.UUID) *Lesson {
	return findByID(c.Lessons, id, func(l *Lesson) uuid.UUID { return l.ID })
}
