package ai

import "strings"

// BuildStreakPrompt renders the coach prompt for one streak. Both values
// are embedded as given.
func BuildStreakPrompt(streakName, tone string) string {
	var b strings.Builder

	b.WriteString(coachRole)
	b.WriteString("\n\n")

	b.WriteString(`Streak name: "`)
	b.WriteString(streakName)
	b.WriteString("\"\n")

	b.WriteString("Tone: ")
	b.WriteString(tone)
	b.WriteString("\n\n")

	b.WriteString(streakSetupContract)

	return b.String()
}
