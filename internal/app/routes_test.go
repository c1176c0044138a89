package app

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/require"

	"streak-coach-backend/internal/streaks"
)

const suggestion = `{"emoji":"💧","description":"Hydrate like a champion.","steps":["Fill a bottle","Sip hourly","Refill at lunch"]}`

func newTestRouter(t *testing.T, err error) http.Handler {
	t.Helper()
	log, _ := test.NewNullLogger()

	return NewRouter(streaks.SuggesterFunc(func(ctx context.Context, prompt string) (json.RawMessage, error) {
		if err != nil {
			return nil, err
		}
		return json.RawMessage(suggestion), nil
	}), log)
}

func TestHealth(t *testing.T) {
	w := httptest.NewRecorder()
	newTestRouter(t, nil).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))

	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, "OK", w.Body.String())
}

func TestStreakOnAnyPath(t *testing.T) {
	router := newTestRouter(t, nil)

	for _, path := range []string{"/", "/streak", "/api/v1/streaks/setup"} {
		req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(`{"type":"streak_setup","streakName":"Water"}`))
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		require.Equal(t, http.StatusOK, w.Code, path)
		require.Equal(t, suggestion, w.Body.String(), path)
	}
}

func TestBrowserPreflight(t *testing.T) {
	req := httptest.NewRequest(http.MethodOptions, "/", nil)
	req.Header.Set("Origin", "https://app.example")
	req.Header.Set("Access-Control-Request-Method", "POST")
	req.Header.Set("Access-Control-Request-Headers", "content-type")

	w := httptest.NewRecorder()
	newTestRouter(t, nil).ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	require.Empty(t, w.Body.String())
	require.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
	require.Equal(t, "POST, OPTIONS", w.Header().Get("Access-Control-Allow-Methods"))
	require.Equal(t, "Content-Type", w.Header().Get("Access-Control-Allow-Headers"))
}

func TestCrossOriginPostGetsCORSHeaders(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"type":"streak_setup","streakName":"Water"}`))
	req.Header.Set("Origin", "https://app.example")

	w := httptest.NewRecorder()
	newTestRouter(t, errors.New("upstream down")).ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))

	var got streaks.Suggestion
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	require.Equal(t, streaks.Fallback, got)
}

func TestMethodNotAllowed(t *testing.T) {
	w := httptest.NewRecorder()
	newTestRouter(t, nil).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

	require.Equal(t, http.StatusMethodNotAllowed, w.Code)
	require.Equal(t, "Method not allowed", w.Body.String())
}

func TestMetricsExposed(t *testing.T) {
	router := newTestRouter(t, errors.New("boom"))

	router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"type":"streak_setup","streakName":"Water"}`)))

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, w.Code)

	body, err := io.ReadAll(w.Body)
	require.NoError(t, err)
	require.Contains(t, string(body), `streak_coach_requests_total{outcome="fallback"}`)
	require.Contains(t, string(body), `streak_coach_degraded_total{kind="unknown"}`)
}
