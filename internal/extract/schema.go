package extract

import "strings"

// toolName is the single function the completion service is forced to call.
const toolName = "extract_game_details"

// Closed value sets for the enum-constrained fields. The schema restricts
// these server-side; Normalize enforces them again locally so nothing outside
// a set ever reaches persistence.
var (
	Difficulties = []string{
		"1 - Light",
		"2 - Medium Light",
		"3 - Medium",
		"4 - Medium Heavy",
		"5 - Heavy",
	}
	PlayTimes = []string{
		"< 30 min",
		"30-60 min",
		"1-2 hours",
		"2-3 hours",
		"3+ hours",
	}
	GameTypes = []string{
		"Strategy",
		"Family",
		"Party",
		"Cooperative",
		"Card Game",
		"Dice Game",
		"Abstract",
		"Thematic",
		"Wargame",
	}
)

// Observed defaulting contract: missing or out-of-set values fall back to
// these rather than failing the import.
const (
	DefaultDifficulty = "3 - Medium"
	DefaultPlayTime   = "1-2 hours"
	DefaultGameType   = "Strategy"
	defaultMinPlayers = 1
	defaultMaxPlayers = 4
)

// GameDetails is the typed candidate record the extractor produces.
type GameDetails struct {
	Title          string   `json:"title"`
	Description    string   `json:"description"`
	Difficulty     string   `json:"difficulty"`
	PlayTime       string   `json:"play_time"`
	GameType       string   `json:"game_type"`
	MinPlayers     int      `json:"min_players"`
	MaxPlayers     int      `json:"max_players"`
	SuggestedAge   string   `json:"suggested_age"`
	Mechanics      []string `json:"mechanics"`
	Publisher      string   `json:"publisher"`
	MainImage      string   `json:"main_image"`
	GameplayImages []string `json:"gameplay_images"`
	BGGURL         string   `json:"bgg_url"`
}

// Normalize coerces the record into the closed contract: enum fields outside
// their sets take the observed defaults, player counts are clamped to >= 1
// with min <= max, and free-text fields are trimmed.
func (d *GameDetails) Normalize() {
	d.Title = strings.TrimSpace(d.Title)
	d.Description = strings.TrimSpace(d.Description)
	d.SuggestedAge = strings.TrimSpace(d.SuggestedAge)
	d.Publisher = strings.TrimSpace(d.Publisher)
	d.MainImage = strings.TrimSpace(d.MainImage)
	d.BGGURL = strings.TrimSpace(d.BGGURL)

	d.Difficulty = coerceEnum(d.Difficulty, Difficulties, DefaultDifficulty)
	d.PlayTime = coerceEnum(d.PlayTime, PlayTimes, DefaultPlayTime)
	d.GameType = coerceEnum(d.GameType, GameTypes, DefaultGameType)

	if d.MinPlayers < 1 {
		d.MinPlayers = defaultMinPlayers
	}
	if d.MaxPlayers < 1 {
		d.MaxPlayers = defaultMaxPlayers
	}
	if d.MinPlayers > d.MaxPlayers {
		d.MinPlayers, d.MaxPlayers = d.MaxPlayers, d.MinPlayers
	}

	cleaned := make([]string, 0, len(d.Mechanics))
	for _, m := range d.Mechanics {
		if m = strings.TrimSpace(m); m != "" {
			cleaned = append(cleaned, m)
		}
	}
	d.Mechanics = cleaned
}

func coerceEnum(value string, allowed []string, fallback string) string {
	value = strings.TrimSpace(value)
	for _, a := range allowed {
		if value == a {
			return a
		}
	}
	return fallback
}

// toolParameters is the strict JSON schema declared on the function call.
func toolParameters() map[string]any {
	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"title": map[string]any{
				"type":        "string",
				"description": "The board game's title",
			},
			"description": map[string]any{
				"type":        "string",
				"description": "Long-form markdown description of the game",
			},
			"difficulty": map[string]any{
				"type": "string",
				"enum": Difficulties,
			},
			"play_time": map[string]any{
				"type": "string",
				"enum": PlayTimes,
			},
			"game_type": map[string]any{
				"type": "string",
				"enum": GameTypes,
			},
			"min_players": map[string]any{"type": "integer"},
			"max_players": map[string]any{"type": "integer"},
			"suggested_age": map[string]any{
				"type":        "string",
				"description": "Suggested minimum age, e.g. '10+'",
			},
			"mechanics": map[string]any{
				"type":  "array",
				"items": map[string]any{"type": "string"},
			},
			"publisher": map[string]any{"type": "string"},
			"main_image": map[string]any{
				"type":        "string",
				"description": "Box art URL chosen verbatim from the supplied candidates",
			},
			"gameplay_images": map[string]any{
				"type":        "array",
				"items":       map[string]any{"type": "string"},
				"description": "Up to two gameplay photo URLs chosen verbatim from the supplied candidates",
			},
			"bgg_url": map[string]any{"type": "string"},
		},
		"required": []string{"title"},
	}
}
