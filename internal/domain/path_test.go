package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUpdateConfigField_SetsLeafAndKeepsSiblings(t *testing.T) {
	cfg := GenerateWidgetConfig(WidgetOverrides{WidgetID: ptr("widget_demo123")})

	got, err := UpdateConfigField(cfg, "appearance.theme.primaryColor", "#000000")
	require.NoError(t, err)

	assert.Equal(t, "#000000", got.Appearance.Theme.PrimaryColor)

	expected := cfg
	expected.Appearance.Theme.PrimaryColor = "#000000"
	assert.Equal(t, expected, got)

	// input untouched
	assert.Equal(t, "#7c3aed", cfg.Appearance.Theme.PrimaryColor)
}

func TestUpdateConfigField_EveryLeaf(t *testing.T) {
	values := map[string]any{
		"behavior.autoOpen":                true,
		"behavior.autoOpenDelay":           float64(500),
		"behavior.showOnAllPages":          false,
		"behavior.initialMessage":          "Hey",
		"behavior.persistConversation":     false,
		"appearance.position":              "top-left",
		"appearance.logo":                  "https://example.com/l.png",
		"appearance.title":                 "Support",
		"appearance.subtitle":              "",
		"appearance.welcomeMessage":        "Welcome",
		"appearance.inputPlaceholder":      "Ask...",
		"appearance.sendButtonText":        "Go",
		"appearance.theme.primaryColor":    "#111111",
		"appearance.theme.textColor":       "#222222",
		"appearance.theme.backgroundColor": "#333333",
		"appearance.theme.buttonStyle":     "pill",
	}
	require.ElementsMatch(t, LeafPaths(), keys(values))

	cfg := DefaultWidgetConfig()
	for path, v := range values {
		var err error
		cfg, err = UpdateConfigField(cfg, path, v)
		require.NoError(t, err, path)
	}

	assert.True(t, cfg.Behavior.AutoOpen)
	assert.Equal(t, 500, cfg.Behavior.AutoOpenDelay)
	assert.Equal(t, PositionTopLeft, cfg.Appearance.Position)
	assert.Equal(t, ButtonStylePill, cfg.Appearance.Theme.ButtonStyle)
	assert.Equal(t, "#333333", cfg.Appearance.Theme.BackgroundColor)
	assert.Equal(t, "Go", cfg.Appearance.SendButtonText)
}

func TestUpdateConfigField_InvalidPaths(t *testing.T) {
	cfg := DefaultWidgetConfig()

	tests := []struct {
		name   string
		path   string
		value  any
		reason string
	}{
		{"unknown leaf", "appearance.bogus", 1, "unknown field"},
		{"branch node", "appearance", map[string]any{}, "addresses a branch, not a leaf"},
		{"nested branch", "appearance.theme", map[string]any{}, "addresses a branch, not a leaf"},
		{"leading dot", ".appearance.title", "x", "empty path segment"},
		{"trailing dot", "appearance.title.", "x", "empty path segment"},
		{"double dot", "appearance..title", "x", "empty path segment"},
		{"empty", "", "x", "empty path"},
		{"past a leaf", "appearance.title.length", 3, "unknown field"},
		{"wrong case", "Appearance.Title", "x", "unknown field"},
		{"read-only id", "widgetId", "widget_other", "field is read-only"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := UpdateConfigField(cfg, tt.path, tt.value)

			var pathErr *InvalidPathError
			require.ErrorAs(t, err, &pathErr)
			assert.Equal(t, tt.path, pathErr.Path)
			assert.Equal(t, tt.reason, pathErr.Reason)
			assert.Equal(t, cfg, got)
		})
	}
}

func TestUpdateConfigField_InvalidValues(t *testing.T) {
	cfg := DefaultWidgetConfig()

	tests := []struct {
		name  string
		path  string
		value any
	}{
		{"negative delay", "behavior.autoOpenDelay", -5},
		{"fractional delay", "behavior.autoOpenDelay", 1.5},
		{"string delay", "behavior.autoOpenDelay", "100"},
		{"string bool", "behavior.autoOpen", "true"},
		{"number title", "appearance.title", 42},
		{"unknown position", "appearance.position", "middle"},
		{"unknown button style", "appearance.theme.buttonStyle", "circle"},
		{"nil value", "appearance.title", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := UpdateConfigField(cfg, tt.path, tt.value)

			var valueErr *InvalidValueError
			require.ErrorAs(t, err, &valueErr)
			assert.Equal(t, tt.path, valueErr.Path)
		})
	}
}

func TestUpdateConfigField_NumericForms(t *testing.T) {
	cfg := DefaultWidgetConfig()

	for _, v := range []any{int(750), int64(750), float64(750), json.Number("750"), json.Number("750.0")} {
		got, err := UpdateConfigField(cfg, "behavior.autoOpenDelay", v)
		require.NoError(t, err)
		assert.Equal(t, 750, got.Behavior.AutoOpenDelay)
	}
}

func keys(m map[string]any) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	return out
}
