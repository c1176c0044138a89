package streaks

import "encoding/json"

// RequestType is the only accepted value of the "type" field.
const RequestType = "streak_setup"

// SetupRequest is a validated inbound request, rendered to prompt text.
type SetupRequest struct {
	StreakName   string
	Tone         string
	ToneProvided bool
}

type Suggestion struct {
	Emoji       string   `json:"emoji"`
	Description string   `json:"description"`
	Steps       []string `json:"steps"`
}

// Fallback is served whenever generation fails for any reason.
var Fallback = Suggestion{
	Emoji:       "⚡",
	Description: "Build momentum, one day at a time.",
	Steps: []string{
		"Start small and stay consistent",
		"Track your progress daily",
		"Celebrate every milestone",
	},
}

var (
	fallbackBody       = mustMarshal(Fallback)
	invalidRequestBody = []byte(`{"error":"Invalid request"}`)
)

func mustMarshal(v any) []byte {
	b, err := json.Marshal(v)
	if err != nil {
		panic(err)
	}
	return b
}
