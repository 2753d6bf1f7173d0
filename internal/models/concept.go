package models

import (
	"time"

	"github.com/google/uuid"
)

// Genres is the closed set of accepted concept genres.
var Genres = []string{"RPG", "FPS", "Metroidvania", "Visual Novel", "Strategy", "Puzzle"}

// IsValidGenre reports whether g is one of the accepted genres.
func IsValidGenre(g string) bool {
	for _, known := range Genres {
		if g == known {
			return true
		}
	}
	return false
}

// ImageKind distinguishes the two illustrative images attached to a concept.
type ImageKind string

const (
	ImageKindCharacter   ImageKind = "character"
	ImageKindEnvironment ImageKind = "environment"
)

// IsValidImageKind reports whether k names a stored image slot.
func IsValidImageKind(k string) bool {
	return k == string(ImageKindCharacter) || k == string(ImageKindEnvironment)
}

// GenerationBrief is the user-submitted creative brief. It is ephemeral and
// never persisted on its own.
type GenerationBrief struct {
	Title      string `json:"title"`
	Genre      string `json:"genre"`
	Ambiance   string `json:"ambiance"`
	Keywords   string `json:"keywords"`
	References string `json:"references"`
}

// Concept is a generated game concept. After creation only the image blobs
// and the is_public flag are ever mutated; the owner never changes.
type Concept struct {
	ID           uuid.UUID `db:"id" json:"id"`
	OwnerID      uuid.UUID `db:"owner_id" json:"ownerId"`
	Title        string    `db:"title" json:"title"`
	Genre        string    `db:"genre" json:"genre"`
	Ambiance     string    `db:"ambiance" json:"ambiance"`
	Keywords     string    `db:"keywords" json:"keywords"`
	References   string    `db:"references_text" json:"references"`
	UniverseText string    `db:"universe_text" json:"universeText"`
	Act1Text     string    `db:"act1_text" json:"act1Text"`
	Act2Text     string    `db:"act2_text" json:"act2Text"`
	Act3Text     string    `db:"act3_text" json:"act3Text"`
	TwistText    string    `db:"twist_text" json:"twistText"`
	Characters   []string  `db:"characters" json:"characters"`
	Locations    []string  `db:"locations" json:"locations"`
	IsPublic     bool      `db:"is_public" json:"isPublic"`
	CreatedAt    time.Time `db:"created_at" json:"createdAt"`
}
