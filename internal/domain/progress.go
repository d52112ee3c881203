package domain

import "math"

// LessonCounts walks every chapter and returns the total number of lessons
// and how many of them are completed.
func (g *Goal) LessonCounts() (total, completed int) {
	for _, ch := range g.Chapters {
		total += len(ch.Lessons)
		for _, l := range ch.Lessons {
			if l.Completed {
				completed++
			}
		}
	}
	return total, completed
}

// CalculateProgress derives the completion percentage from the lesson tree.
// A goal with no lessons is 0%, never 100%.
func (g *Goal) CalculateProgress() int {
	total, completed := g.LessonCounts()
	if total == 0 {
		return 0
	}
	return int(math.Round(float64(completed) / float64(total) * 100))
}

// Recalculate rolls the lesson tree up into ProgressPercentage and Status.
// The status rule only fires when the percentage moved or sits at 100, so a
// user-set Planned/OnHold survives any partial progress, while a goal at
// 100% is always pulled back to Completed and a Completed goal whose
// percentage dropped reopens as InProgress. Returns whether anything changed.
func (g *Goal) Recalculate() bool {
	progress := g.CalculateProgress()
	if progress == g.ProgressPercentage && progress != 100 {
		return false
	}

	changed := false
	if g.ProgressPercentage != progress {
		g.ProgressPercentage = progress
		changed = true
	}
	if progress == 100 && g.Status != StatusCompleted {
		g.Status = StatusCompleted
		changed = true
	} else if progress < 100 && g.Status == StatusCompleted {
		g.Status = StatusInProgress
		changed = true
	}
	return changed
}
