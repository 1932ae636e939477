package report

import (
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/entrhq/pagekit/pkg/mockserver"
	"github.com/entrhq/pagekit/pkg/scenario"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleResult() *scenario.RunResult {
	return &scenario.RunResult{
		ID:        "run-1234",
		SuiteName: "login-flows",
		StartedAt: time.Now(),
		Duration:  2500 * time.Millisecond,
		Scenarios: []scenario.ScenarioResult{
			{
				Name:     "login-success",
				Duration: 1200 * time.Millisecond,
				Steps: []scenario.StepResult{
					{Name: "open login page", Status: scenario.StatusPassed, Duration: 300 * time.Millisecond},
					{Name: "submit valid credentials", Status: scenario.StatusPassed, Duration: 900 * time.Millisecond},
				},
			},
			{
				Name:     "login-bad-password",
				Duration: 1300 * time.Millisecond,
				Steps: []scenario.StepResult{
					{Name: "open login page", Status: scenario.StatusPassed, Duration: 280 * time.Millisecond},
					{
						Name:     "error banner is shown",
						Status:   scenario.StatusFailed,
						Err:      fmt.Errorf(`wait for "[data-testid=\"login-error\"]": timeout`),
						Duration: 1020 * time.Millisecond,
						URL:      "http://127.0.0.1:8089/login",
						Snapshot: `<form data-testid="login-form"></form>`,
					},
					{Name: "never runs", Status: scenario.StatusSkipped},
				},
			},
		},
	}
}

func TestRenderPlain(t *testing.T) {
	out := Render(sampleResult(), FormatPlain)

	assert.Contains(t, out, "Suite: login-flows")
	assert.Contains(t, out, "run-1234")
	assert.Contains(t, out, "✓ open login page")
	assert.Contains(t, out, "✗ error banner is shown")
	assert.Contains(t, out, "- never runs")
	assert.Contains(t, out, "url:   http://127.0.0.1:8089/login")
	assert.Contains(t, out, "FAIL: 3 passed, 1 failed, 1 skipped")
}

func TestRenderPlain_Pass(t *testing.T) {
	result := sampleResult()
	result.Scenarios = result.Scenarios[:1]

	out := Render(result, FormatPlain)
	assert.Contains(t, out, "PASS: 2 passed, 0 failed, 0 skipped")
}

func TestRenderStyled(t *testing.T) {
	out := Render(sampleResult(), FormatStyled)

	// Content survives styling regardless of the active color profile
	assert.Contains(t, out, "login-success")
	assert.Contains(t, out, "error banner is shown")
	assert.Contains(t, out, "login-form")
}

func TestRenderRequests(t *testing.T) {
	records := []mockserver.RecordedRequest{
		{
			Method:     http.MethodPost,
			Path:       "/api/login",
			Body:       []byte(`{"username":"alice"}`),
			ReceivedAt: time.Now(),
			Matched:    "/api/login",
		},
		{
			Method:     http.MethodGet,
			Path:       "/api/unknown",
			ReceivedAt: time.Now(),
		},
	}

	plain := RenderRequests(records, FormatPlain)
	assert.Contains(t, plain, "POST /api/login")
	assert.Contains(t, plain, "(matched /api/login)")
	assert.Contains(t, plain, "(unmatched)")
	assert.Contains(t, plain, `"username": "alice"`, "body should be pretty-printed")

	styled := RenderRequests(records, FormatStyled)
	assert.Contains(t, styled, "/api/login")
}

func TestRenderRequests_Empty(t *testing.T) {
	out := RenderRequests(nil, FormatPlain)
	assert.Equal(t, "No requests recorded.\n", out)
}

func TestPrettyJSON(t *testing.T) {
	assert.Equal(t, "{\n  \"a\": 1\n}", prettyJSON([]byte(`{"a":1}`)))
	assert.Equal(t, "not json", prettyJSON([]byte("not json")))
}

func TestClip(t *testing.T) {
	assert.Equal(t, "short", clip("short", 10))
	assert.Equal(t, "abc...", clip("abcdef", 3))
}

func TestIndent(t *testing.T) {
	require.Equal(t, "  a\n  b", indent("a\nb\n", "  "))
}
