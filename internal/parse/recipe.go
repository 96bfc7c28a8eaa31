package parse

// Recipe is the canonical, validated output of the generation pipeline. It is
// produced fresh per request and persisted only when the user explicitly saves
// it. Optional numeric fields are nil when the model omitted them or returned
// something non-numeric.
type Recipe struct {
	Title            string   `json:"title"`
	Ingredients      []string `json:"ingredients"`
	Instructions     []string `json:"instructions"`
	Difficulty       int      `json:"difficulty"`
	WinePairing      string   `json:"wine_pairing"`
	Servings         *int     `json:"servings,omitempty"`
	PrepTimeMinutes  *int     `json:"prep_time_minutes,omitempty"`
	CookTimeMinutes  *int     `json:"cook_time_minutes,omitempty"`
	TotalTimeMinutes *int     `json:"total_time_minutes,omitempty"`
}

// Complete reports whether the recipe carries everything required for use:
// a title plus at least one ingredient and one instruction line.
func (r *Recipe) Complete() bool {
	return r.Title != "" && len(r.Ingredients) > 0 && len(r.Instructions) > 0
}
