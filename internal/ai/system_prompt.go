package ai

const coachRole = `You are a motivational coach helping someone build a daily habit streak.`

// streakSetupContract is the output format the model must follow. The
// sanitizer in the streaks package checks replies against it.
const streakSetupContract = `Respond ONLY with valid JSON in this exact format (no markdown, no explanation):
{
  "emoji": "single emoji that represents this streak",
  "description": "one motivating sentence about this streak (max 100 chars)",
  "steps": [
    "step 1 (actionable, specific, max 60 chars)",
    "step 2 (actionable, specific, max 60 chars)",
    "step 3 (actionable, specific, max 60 chars)"
  ]
}

Make it energetic and motivating. Use emojis that fit the activity, but default to ⚡ if unsure.`
