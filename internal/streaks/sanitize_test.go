package streaks

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

const validReply = `{"emoji":"🏃","description":"Every mile counts.","steps":["Lace up","Run 10 minutes","Log it"]}`

func TestStripFences(t *testing.T) {
	cases := map[string]string{
		"bare json":          validReply,
		"json fence":         "```json\n" + validReply + "\n```",
		"bare fence":         "```\n" + validReply + "\n```",
		"other language tag": "```javascript\n" + validReply + "\n```",
		"surrounding space":  "  \n```json\n" + validReply + "\n```\n\n",
		"single line":        "```json " + validReply + " ```",
		"crlf":               "```json\r\n" + validReply + "\r\n```",
		"no newline":         "```json" + validReply + "```",
	}

	for name, in := range cases {
		t.Run(name, func(t *testing.T) {
			require.Equal(t, validReply, StripFences(in))
		})
	}
}

func TestSanitizeFencedReplyUnmodified(t *testing.T) {
	body, err := Sanitize("```json\n" + validReply + "\n```")
	require.NoError(t, err)
	require.JSONEq(t, validReply, string(body))
	require.Equal(t, validReply, string(body))
}

func TestSanitizeKeepsOrderAndExtras(t *testing.T) {
	in := `{
  "steps": ["one", "two", "three", "four"],
  "emoji": "📚",
  "description": "Read a page a day, and then another one, until the habit reads itself to you at night.",
  "bonus": {"streak": 7}
}`

	body, err := Sanitize(in)
	require.NoError(t, err)
	require.Equal(t,
		`{"steps":["one","two","three","four"],"emoji":"📚","description":"Read a page a day, and then another one, until the habit reads itself to you at night.","bonus":{"streak":7}}`,
		string(body))
}

func TestSanitizeParseErrors(t *testing.T) {
	for _, in := range []string{
		"",
		"Here is your streak!",
		"```json\n{\"emoji\": \"⚡\",\n```",
		`{'emoji': '⚡'}`,
	} {
		_, err := Sanitize(in)
		require.Error(t, err, "input %q", in)
		require.True(t, errors.Is(err, ErrParse), "input %q: %v", in, err)
	}
}

func TestSanitizeShapeErrors(t *testing.T) {
	cases := map[string]string{
		"missing emoji":       `{"description":"d","steps":[]}`,
		"empty emoji":         `{"emoji":"","description":"d","steps":[]}`,
		"emoji not string":    `{"emoji":1,"description":"d","steps":[]}`,
		"missing description": `{"emoji":"⚡","steps":[]}`,
		"null description":    `{"emoji":"⚡","description":null,"steps":[]}`,
		"missing steps":       `{"emoji":"⚡","description":"d"}`,
		"steps string":        `{"emoji":"⚡","description":"d","steps":"a, b, c"}`,
		"steps object":        `{"emoji":"⚡","description":"d","steps":{"1":"a"}}`,
		"array reply":         `[1,2,3]`,
		"string reply":        `"⚡"`,
		"null reply":          `null`,
	}

	for name, in := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := Sanitize(in)
			require.Error(t, err)
			require.True(t, errors.Is(err, ErrShape), "%v", err)
		})
	}
}

func TestSanitizeDoesNotEnforceStepCount(t *testing.T) {
	body, err := Sanitize(`{"emoji":"⚡","description":"d","steps":[]}`)
	require.NoError(t, err)
	require.Equal(t, `{"emoji":"⚡","description":"d","steps":[]}`, string(body))
}
