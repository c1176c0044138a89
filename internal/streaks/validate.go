package streaks

import (
	"encoding/json"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
)

// maxBodyBytes caps the inbound body. Real requests are well under 1 KiB.
const maxBodyBytes = 1 << 20

// toneMissing is what an absent tone renders as in the prompt.
const toneMissing = "undefined"

// DecodeSetupRequest reads and validates a streak setup body. Every failure
// wraps ErrInvalidRequest.
func DecodeSetupRequest(body io.Reader) (SetupRequest, error) {
	b, err := io.ReadAll(body)
	if err != nil {
		return SetupRequest{}, fmt.Errorf("%w: read body: %w", ErrInvalidRequest, err)
	}

	var fields map[string]any
	if err := json.Unmarshal(b, &fields); err != nil {
		return SetupRequest{}, fmt.Errorf("%w: %w", ErrInvalidRequest, err)
	}
	if fields == nil {
		return SetupRequest{}, fmt.Errorf("%w: body is null", ErrInvalidRequest)
	}

	if t, _ := fields["type"].(string); t != RequestType {
		return SetupRequest{}, fmt.Errorf("%w: type must be %q", ErrInvalidRequest, RequestType)
	}

	name, ok := fields["streakName"]
	if !ok || !truthy(name) {
		return SetupRequest{}, fmt.Errorf("%w: streakName is required", ErrInvalidRequest)
	}

	req := SetupRequest{
		StreakName: render(name),
		Tone:       toneMissing,
	}
	if tone, ok := fields["tone"]; ok {
		req.Tone = render(tone)
		req.ToneProvided = true
	}

	return req, nil
}

// truthy reports whether a decoded JSON value counts as present: non-empty
// strings, non-zero numbers, true, and any object or array.
func truthy(v any) bool {
	switch x := v.(type) {
	case nil:
		return false
	case bool:
		return x
	case string:
		return x != ""
	case float64:
		return x != 0
	default:
		return true
	}
}

// render turns a decoded JSON value into prompt text the way a template
// literal would: arrays join their elements with commas, objects become
// "[object Object]".
func render(v any) string {
	switch x := v.(type) {
	case string:
		return x
	case float64:
		return formatNumber(x)
	case bool:
		return strconv.FormatBool(x)
	case nil:
		return "null"
	case []any:
		parts := make([]string, len(x))
		for i, e := range x {
			if e != nil {
				parts[i] = render(e)
			}
		}
		return strings.Join(parts, ",")
	default:
		return "[object Object]"
	}
}

// formatNumber prints x in decimal for 1e-6 <= |x| < 1e21 and in exponent
// form otherwise, e.g. 1e+21 or 1.5e-7.
func formatNumber(x float64) string {
	if x == 0 {
		return "0"
	}
	if a := math.Abs(x); a >= 1e-6 && a < 1e21 {
		return strconv.FormatFloat(x, 'f', -1, 64)
	}

	mant, exp, _ := strings.Cut(strconv.FormatFloat(x, 'e', -1, 64), "e")
	sign, digits := exp[:1], strings.TrimLeft(exp[1:], "0")
	return mant + "e" + sign + digits
}
