package analytics

import (
	"net/http"
	"strings"

	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// Event names emitted by the streak handler.
const (
	EventStreakSuggested = "streak_suggested"
	EventStreakFallback  = "streak_fallback"
	EventStreakRejected  = "streak_rejected"
)

// Envelope is what we attach to every event.
type Envelope struct {
	EventID        string
	RequestID      string
	SessionID      string
	Platform       string
	AppVersion     string
	DeviceLocale   string
	SourceEventKey string
}

// FromRequest extracts event envelope fields from request.
// Client headers only; nothing from the body.
func FromRequest(r *http.Request) Envelope {
	platform := strings.TrimSpace(r.Header.Get("X-Platform"))
	if platform == "" {
		platform = "unknown"
	} else {
		platform = strings.ToLower(platform)
		if platform != "ios" && platform != "android" && platform != "web" {
			platform = "unknown"
		}
	}

	appVer := strings.TrimSpace(r.Header.Get("X-App-Version"))
	locale := strings.TrimSpace(r.Header.Get("Accept-Language"))
	if locale == "" {
		locale = strings.TrimSpace(r.Header.Get("X-Device-Locale"))
	}

	return Envelope{
		EventID:        uuid.NewString(),
		RequestID:      chimiddleware.GetReqID(r.Context()),
		SessionID:      strings.TrimSpace(r.Header.Get("X-Session-Id")),
		Platform:       platform,
		AppVersion:     appVer,
		DeviceLocale:   locale,
		SourceEventKey: SourceEventKeyFromRequest(r),
	}
}

// Client-provided idempotency key (optional)
func SourceEventKeyFromRequest(r *http.Request) string {
	// preferred: Idempotency-Key header
	k := strings.TrimSpace(r.Header.Get("Idempotency-Key"))
	if k != "" {
		return k
	}
	// fallback
	return strings.TrimSpace(r.Header.Get("X-Source-Event-Key"))
}

// Log writes one analytics event to the log stream.
// Never logs raw user text; caller passes sanitized props.
func Log(log logrus.FieldLogger, env Envelope, eventName string, props map[string]any) {
	if eventName == "" || log == nil {
		return
	}

	fields := logrus.Fields{
		"event":    eventName,
		"event_id": env.EventID,
		"platform": env.Platform,
	}
	setIfPresent(fields, "request_id", env.RequestID)
	setIfPresent(fields, "session_id", env.SessionID)
	setIfPresent(fields, "app_version", env.AppVersion)
	setIfPresent(fields, "device_locale", env.DeviceLocale)
	setIfPresent(fields, "source_event_key", env.SourceEventKey)
	if len(props) > 0 {
		fields["props"] = props
	}

	log.WithFields(fields).Info("analytics event")
}

func setIfPresent(f logrus.Fields, key, value string) {
	if strings.TrimSpace(value) != "" {
		f[key] = value
	}
}
