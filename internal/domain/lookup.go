package domain

import "github.com/google/uuid"

// findByID returns a pointer into items for the element whose id matches,
// or nil. Used for chapter, lesson and sub-task lookup alike.
func findByID[E any](items []E, id uuid.UUID, key func(*E) uuid.UUID) *E {
	for i := range items {
		if key(&items[i]) == id {
			return &items[i]
		}
	}
	return nil
}
