package service

import "errors"

// Failure taxonomy for the generation pipeline. Every error is terminal for
// the current request; nothing is retried automatically. Handlers map these
// to HTTP statuses with errors.Is.
var (
	// ErrEmptyInput means the submitted ingredient text was blank.
	ErrEmptyInput = errors.New("ingredients text is empty")

	// ErrQuotaExceeded means the user already reached the daily generation limit.
	ErrQuotaExceeded = errors.New("daily generation quota exceeded")

	// ErrNotConfigured means no model provider credential is available.
	ErrNotConfigured = errors.New("model provider credential is not configured")

	// ErrUpstream covers transport failures, timeouts and non-200 responses
	// from the model provider.
	ErrUpstream = errors.New("model provider request failed")

	// ErrGenerationFailed means the provider answered but its output did not
	// yield a complete recipe (unparseable, or missing required fields).
	ErrGenerationFailed = errors.New("model output did not yield a complete recipe")
)

// Auth and persistence failures.
var (
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrRecipeNotFound     = errors.New("recipe not found")
	ErrNotRecipeOwner     = errors.New("recipe belongs to another user")
	ErrInvalidRecipe      = errors.New("recipe is missing required fields")
)
