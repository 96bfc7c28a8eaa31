package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/retetar/backend/internal/parse"
)

// DailyGenerationLimit is the fixed number of successful generations each
// user gets per UTC calendar day.
const DailyGenerationLimit = 10

// CompletionProvider is the outbound model call used by the orchestrator.
type CompletionProvider interface {
	Configured() bool
	GenerateCompletion(ctx context.Context, prompt string) (string, error)
}

// QuotaLedger tracks per-user daily usage.
type QuotaLedger interface {
	CountToday(ctx context.Context, userID uuid.UUID) (int, error)
	IncrementToday(ctx context.Context, userID uuid.UUID) error
}

// GeneratorService orchestrates one recipe generation: quota gate, model
// call, normalization, and the increment that only happens on full success.
type GeneratorService struct {
	llm    CompletionProvider
	quota  QuotaLedger
	logger *zap.Logger
}

// NewGeneratorService creates a new GeneratorService instance
func NewGeneratorService(llm CompletionProvider, quota QuotaLedger, logger *zap.Logger) *GeneratorService {
	return &GeneratorService{
		llm:    llm,
		quota:  quota,
		logger: logger,
	}
}

// Generate produces a recipe from free-text ingredients for the given user.
// Every failure path exits before the ledger increment, so the quota is spent
// only on requests that returned a complete recipe. The count check here is
// advisory; the hard uniqueness guarantee lives in the ledger's upsert.
func (s *GeneratorService) Generate(ctx context.Context, userID uuid.UUID, ingredientsText string) (*parse.Recipe, error) {
	ingredients := strings.TrimSpace(ingredientsText)
	if ingredients == "" {
		return nil, ErrEmptyInput
	}

	count, err := s.quota.CountToday(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to read usage ledger: %w", err)
	}
	if count >= DailyGenerationLimit {
		return nil, ErrQuotaExceeded
	}

	if !s.llm.Configured() {
		s.logger.Warn("generation requested without model credential")
		return nil, ErrNotConfigured
	}

	s.logger.Info("generate recipe requested",
		zap.String("user_id", userID.String()),
		zap.String("ingredients", ingredients))

	completion, err := s.llm.GenerateCompletion(ctx, buildPrompt(ingredients))
	if err != nil {
		return nil, err
	}

	recipe, err := parse.Normalize(completion)
	if err != nil {
		s.logger.Warn("model output parse failed", zap.Error(err))
		return nil, fmt.Errorf("%w: %v", ErrGenerationFailed, err)
	}
	if !recipe.Complete() {
		s.logger.Warn("model output incomplete", zap.String("title", recipe.Title))
		return nil, ErrGenerationFailed
	}

	if err := s.quota.IncrementToday(ctx, userID); err != nil {
		return nil, fmt.Errorf("failed to record usage: %w", err)
	}

	s.logger.Info("recipe generated", zap.String("title", recipe.Title))
	return recipe, nil
}

// buildPrompt embeds the user's ingredient text verbatim into the fixed
// Romanian chef prompt, which demands strict JSON matching the documented
// schema.
func buildPrompt(ingredientsText string) string {
	return fmt.Sprintf("Ești un chef profesionist român. Creează o rețetă completă și realistă folosind DOAR ingredientele principale: %s. "+
		"Poți adăuga în mod implicit doar ingrediente de bază (sare, piper, ulei de măsline, apă) dacă sunt necesare. "+
		"RĂSPUNDE DOAR CU JSON VALID (fără explicații, fără text în afara JSON). Folosește exact această schemă:\n"+
		"{\n"+
		"  \"title\": string,\n"+
		"  \"servings\": integer,\n"+
		"  \"prep_time_minutes\": integer,\n"+
		"  \"cook_time_minutes\": integer,\n"+
		"  \"ingredients\": [ { \"item\": string, \"quantity\": number, \"unit\": string, \"notes\": string } ],\n"+
		"  \"instructions\": [ { \"step\": integer, \"text\": string, \"time_minutes\": integer, \"temperature_c\": integer|null } ],\n"+
		"  \"difficulty\": integer,\n"+
		"  \"wine_pairing\": string\n"+
		"}\n"+
		"Cerințe stricte: \n"+
		"- Minim 10 pași detaliați, fiecare cu durată estimată. \n"+
		"- Fiecare ingredient trebuie să aibă cantitate numerică și unitate (g, ml, lingurițe, linguri, buc). \n"+
		"- Cantitățile să fie realiste. \n"+
		"- Include temperatură (°C) dacă se coace sau se prăjește. \n"+
		"- \"servings\" între 2 și 6. \n"+
		"- \"difficulty\" între 1 și 5. \n"+
		"- Textul în română, clar și natural.", ingredientsText)
}
