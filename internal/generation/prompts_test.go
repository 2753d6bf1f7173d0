package generation

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"gameforge-server/internal/models"
)

func TestBuildPrompts_ContainsBriefFields(t *testing.T) {
	brief := models.GenerationBrief{
		Title:      "Cendres",
		Genre:      "Metroidvania",
		Ambiance:   "sombre",
		Keywords:   "ruines, feu",
		References: "Hollow Knight",
	}

	prompts := BuildPrompts(brief, 0)

	assert.Contains(t, prompts.Narrative, "Titre: Cendres")
	assert.Contains(t, prompts.Narrative, "Genre: Metroidvania")
	assert.Contains(t, prompts.Narrative, "Références: Hollow Knight")
	assert.Contains(t, prompts.CharacterImage, "sombre")
	assert.Contains(t, prompts.EnvironmentImage, "Cendres")
}

func TestBuildPrompts_TrimsOversizedBrief(t *testing.T) {
	brief := models.GenerationBrief{
		Title:    "Long",
		Genre:    "RPG",
		Keywords: strings.Repeat("exploration ", 2000),
	}

	full := BuildPrompts(brief, 0)
	trimmed := BuildPrompts(brief, 64)

	assert.Less(t, len(trimmed.Narrative), len(full.Narrative))
	assert.NotEmpty(t, trimmed.Narrative)
}
