package models

import (
	"time"

	"github.com/google/uuid"
)

// Favorite links a user to a concept they bookmarked.
// Unique per (user, concept) pair.
type Favorite struct {
	UserID    uuid.UUID `db:"user_id" json:"userId"`
	ConceptID uuid.UUID `db:"concept_id" json:"conceptId"`
	CreatedAt time.Time `db:"created_at" json:"createdAt"`
}
