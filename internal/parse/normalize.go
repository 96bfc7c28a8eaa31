package parse

import (
	"encoding/json"
	"errors"
	"regexp"
	"strconv"
	"strings"
)

// ErrParseFailure indicates the model output could not be turned into a
// recipe: no JSON object was found, or the decoded value was not an object.
var ErrParseFailure = errors.New("no usable recipe JSON in model response")

var openingFence = regexp.MustCompile("^```[a-zA-Z]*")

// Normalize turns raw model output into a canonical Recipe. It tolerates
// markdown code fences around the JSON and prose before or after it. The
// result is deterministic and the function performs no I/O; on any failure it
// returns ErrParseFailure, never a partially populated recipe.
func Normalize(raw string) (*Recipe, error) {
	text := strings.TrimSpace(raw)
	if strings.HasPrefix(text, "```") {
		text = strings.TrimSpace(openingFence.ReplaceAllString(text, ""))
		if strings.HasSuffix(text, "```") {
			text = strings.TrimSpace(strings.TrimSuffix(text, "```"))
		}
	}

	data, err := decodeObject(text)
	if err != nil {
		return nil, err
	}

	recipe := &Recipe{
		Title:       strings.TrimSpace(stringField(data, "title")),
		Ingredients: FormatIngredients(anySlice(data["ingredients"])),
		Difficulty:  difficultyOrDefault(data["difficulty"]),
		WinePairing: strings.TrimSpace(stringField(data, "wine_pairing")),
	}

	steps := anySlice(data["instructions"])
	recipe.Instructions = make([]string, 0, len(steps))
	for _, step := range steps {
		recipe.Instructions = append(recipe.Instructions, FormatInstruction(step))
	}

	recipe.Servings = optionalInt(data["servings"])
	recipe.PrepTimeMinutes = optionalInt(data["prep_time_minutes"])
	recipe.CookTimeMinutes = optionalInt(data["cook_time_minutes"])

	if recipe.PrepTimeMinutes != nil || recipe.CookTimeMinutes != nil {
		total := intOrZero(recipe.PrepTimeMinutes) + intOrZero(recipe.CookTimeMinutes)
		recipe.TotalTimeMinutes = &total
	}

	return recipe, nil
}

// decodeObject decodes text as a single JSON object. When the whole text is
// not valid JSON it retries on the substring between the first '{' and the
// last '}', which recovers JSON embedded in explanatory prose.
func decodeObject(text string) (map[string]any, error) {
	var value any
	if err := json.Unmarshal([]byte(text), &value); err != nil {
		start := strings.Index(text, "{")
		end := strings.LastIndex(text, "}")
		if start == -1 || end == -1 || end <= start {
			return nil, ErrParseFailure
		}
		if err := json.Unmarshal([]byte(text[start:end+1]), &value); err != nil {
			return nil, ErrParseFailure
		}
	}

	obj, ok := value.(map[string]any)
	if !ok {
		return nil, ErrParseFailure
	}
	return obj, nil
}

// difficultyOrDefault parses the difficulty as an integer, falling back to 3
// on anything missing or non-numeric. The 1-5 range is not enforced here.
func difficultyOrDefault(value any) int {
	if n := optionalInt(value); n != nil && *n != 0 {
		return *n
	}
	return 3
}

// optionalInt coerces a JSON value to an integer, returning nil rather than
// an error for anything non-numeric. Fractional values are truncated.
func optionalInt(value any) *int {
	switch v := value.(type) {
	case float64:
		n := int(v)
		return &n
	case string:
		if n, err := strconv.Atoi(strings.TrimSpace(v)); err == nil {
			return &n
		}
		return nil
	default:
		return nil
	}
}

func intOrZero(p *int) int {
	if p == nil {
		return 0
	}
	return *p
}

func anySlice(value any) []any {
	if s, ok := value.([]any); ok {
		return s
	}
	return nil
}
