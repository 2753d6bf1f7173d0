package generation

import (
	"fmt"
	"strings"

	"github.com/pkoukk/tiktoken-go"

	"gameforge-server/internal/models"
)

// SystemPrompt steers the text model toward the labeled French output the
// section extractor expects.
const SystemPrompt = `Tu es un game designer senior. Rédige en français, de manière concise et évocatrice.
Structure ta réponse avec exactement ces sections, chacune dans son propre paragraphe:
Univers:, Acte I:, Acte II:, Acte III:, Twist:, Personnages:, Lieux:.
Liste les personnages entre crochets au format [Nom - Rôle/Gameplay - Description].
Liste les lieux séparés par des virgules au format Nom (description courte).`

// Prompts holds the three prompts derived from one creative brief.
type Prompts struct {
	Narrative        string
	CharacterImage   string
	EnvironmentImage string
}

// BuildPrompts renders the narrative and image prompts for a brief. The
// narrative prompt is trimmed to tokenBudget tokens so oversized briefs never
// overflow the model context.
func BuildPrompts(brief models.GenerationBrief, tokenBudget int) Prompts {
	narrative := fmt.Sprintf(
		"Titre: %s\nGenre: %s\nAmbiance: %s\nMots-clés: %s\nRéférences: %s\n\n"+
			"Génère un concept de jeu vidéo complet: un univers détaillé, un scénario en trois actes "+
			"(Acte I, Acte II, Acte III), un twist narratif, quatre personnages principaux et quatre lieux emblématiques.",
		brief.Title, brief.Genre, brief.Ambiance, brief.Keywords, brief.References,
	)

	return Prompts{
		Narrative: trimToTokenBudget(narrative, tokenBudget),
		CharacterImage: fmt.Sprintf(
			"Portrait conceptuel stylisé d'un personnage principal, style %s, jeu %s, %s",
			brief.Ambiance, brief.Genre, brief.Keywords,
		),
		EnvironmentImage: fmt.Sprintf(
			"Environnement emblématique du jeu %s, style %s, %s",
			brief.Title, brief.Ambiance, brief.Keywords,
		),
	}
}

// trimToTokenBudget truncates text to at most budget tokens. Counting falls
// back to a rough 4-bytes-per-token estimate when the encoding is unavailable.
func trimToTokenBudget(text string, budget int) string {
	if budget <= 0 {
		return text
	}

	enc, err := tiktoken.GetEncoding("cl100k_base")
	if err != nil {
		if len(text) > budget*4 {
			return strings.TrimSpace(text[:budget*4])
		}
		return text
	}

	tokens := enc.Encode(text, nil, nil)
	if len(tokens) <= budget {
		return text
	}
	return strings.TrimSpace(enc.Decode(tokens[:budget]))
}
