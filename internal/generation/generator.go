package generation

import (
	"context"

	"go.uber.org/zap"

	"gameforge-server/internal/models"
)

// Result is the complete output of one generation run: the structured
// narrative plus both illustrative images. Every field is always populated.
type Result struct {
	Sections         Sections
	RawText          string
	CharacterImage   []byte
	EnvironmentImage []byte
}

// Generator turns a creative brief into a full concept. Every degradation
// path ends in canned content, so Generate never fails.
type Generator interface {
	Generate(ctx context.Context, brief models.GenerationBrief) Result
}

type generator struct {
	text        TextGenerator
	images      ImageGenerator
	tokenBudget int
	logger      *zap.Logger
}

var _ Generator = (*generator)(nil)

// NewGenerator assembles the generation pipeline.
func NewGenerator(text TextGenerator, images ImageGenerator, tokenBudget int, logger *zap.Logger) Generator {
	return &generator{
		text:        text,
		images:      images,
		tokenBudget: tokenBudget,
		logger:      logger.Named("Generator"),
	}
}

func (g *generator) Generate(ctx context.Context, brief models.GenerationBrief) Result {
	prompts := BuildPrompts(brief, g.tokenBudget)

	raw := g.generateNarrative(ctx, prompts.Narrative)
	sections := ExtractSections(raw)

	return Result{
		Sections:         sections,
		RawText:          raw,
		CharacterImage:   g.generateImage(ctx, prompts.CharacterImage),
		EnvironmentImage: g.generateImage(ctx, prompts.EnvironmentImage),
	}
}

// generateNarrative asks the text model for the narrative and substitutes
// deterministic canned content when the model is unavailable or fails.
func (g *generator) generateNarrative(ctx context.Context, prompt string) string {
	if g.text == nil {
		countFallback("text")
		return FallbackText(prompt)
	}

	raw, err := g.text.GenerateText(ctx, SystemPrompt, prompt)
	if err != nil {
		g.logger.Warn("Text generation failed, using fallback narrative", zap.Error(err))
		countFallback("text")
		return FallbackText(prompt)
	}
	return raw
}

// generateImage asks the image server for an illustration and renders a
// placeholder when the server is disabled or fails.
func (g *generator) generateImage(ctx context.Context, prompt string) []byte {
	if g.images != nil && g.images.Enabled() {
		data, err := g.images.GenerateImage(ctx, prompt)
		if err == nil {
			return data
		}
		g.logger.Warn("Image generation failed, using placeholder", zap.Error(err))
	}

	countFallback("image")
	data, err := PlaceholderPNG(prompt)
	if err != nil {
		// PNG encoding of an in-memory RGBA image cannot realistically fail;
		// returning nil keeps the pipeline alive regardless.
		g.logger.Error("Placeholder rendering failed", zap.Error(err))
		return nil
	}
	return data
}
