package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateWidgetConfig_EmptyOverridesReturnsDefaults(t *testing.T) {
	got := GenerateWidgetConfig(WidgetOverrides{})

	assert.Equal(t, DefaultWidgetConfig(), got)
	require.NoError(t, got.Validate())
}

func TestGenerateWidgetConfig_WidgetIDOnly(t *testing.T) {
	got := GenerateWidgetConfig(WidgetOverrides{WidgetID: ptr("widget_abc")})

	assert.Equal(t, "widget_abc", got.WidgetID)
	assert.Equal(t, PositionBottomRight, got.Appearance.Position)
	assert.Equal(t, 3000, got.Behavior.AutoOpenDelay)
	assert.Equal(t, "#7c3aed", got.Appearance.Theme.PrimaryColor)
}

func TestGenerateWidgetConfig_Precedence(t *testing.T) {
	tests := []struct {
		name      string
		overrides WidgetOverrides
		check     func(t *testing.T, c WidgetConfig)
	}{
		{
			name:      "zero-valued bool override wins over true default",
			overrides: WidgetOverrides{Behavior: &BehaviorOverrides{ShowOnAllPages: ptr(false)}},
			check: func(t *testing.T, c WidgetConfig) {
				assert.False(t, c.Behavior.ShowOnAllPages)
				assert.True(t, c.Behavior.PersistConversation)
			},
		},
		{
			name:      "zero delay means open immediately",
			overrides: WidgetOverrides{Behavior: &BehaviorOverrides{AutoOpen: ptr(true), AutoOpenDelay: ptr(0)}},
			check: func(t *testing.T, c WidgetConfig) {
				assert.True(t, c.Behavior.AutoOpen)
				assert.Equal(t, 0, c.Behavior.AutoOpenDelay)
			},
		},
		{
			name: "partial theme keeps sibling defaults",
			overrides: WidgetOverrides{Appearance: &AppearanceOverrides{
				Theme: &ThemeOverrides{PrimaryColor: ptr("#000000")},
			}},
			check: func(t *testing.T, c WidgetConfig) {
				assert.Equal(t, "#000000", c.Appearance.Theme.PrimaryColor)
				assert.Equal(t, "#ffffff", c.Appearance.Theme.TextColor)
				assert.Equal(t, ButtonStyleRounded, c.Appearance.Theme.ButtonStyle)
				assert.Equal(t, "Conversa AI", c.Appearance.Title)
			},
		},
		{
			name: "appearance without theme keeps default theme",
			overrides: WidgetOverrides{Appearance: &AppearanceOverrides{
				Position: ptr(PositionTopLeft),
				Subtitle: ptr(""),
			}},
			check: func(t *testing.T, c WidgetConfig) {
				assert.Equal(t, PositionTopLeft, c.Appearance.Position)
				assert.Equal(t, "", c.Appearance.Subtitle)
				assert.Equal(t, DefaultWidgetConfig().Appearance.Theme, c.Appearance.Theme)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.check(t, GenerateWidgetConfig(tt.overrides))
		})
	}
}

func TestGenerateWidgetConfig_IgnoresUnknownJSONFields(t *testing.T) {
	raw := `{
		"widgetId": "widget_x",
		"contextMode": "strict",
		"behavior": {"autoOpen": true, "bogus": 1},
		"appearance": {"theme": {"buttonStyle": "pill", "shadow": "large"}, "extra": {"a": 1}}
	}`

	var o WidgetOverrides
	require.NoError(t, json.Unmarshal([]byte(raw), &o))

	got := GenerateWidgetConfig(o)
	assert.Equal(t, "widget_x", got.WidgetID)
	assert.True(t, got.Behavior.AutoOpen)
	assert.Equal(t, ButtonStylePill, got.Appearance.Theme.ButtonStyle)
	assert.Equal(t, 3000, got.Behavior.AutoOpenDelay)
}

func TestGenerateWidgetConfig_NoAliasing(t *testing.T) {
	color := "#123456"
	o := WidgetOverrides{
		Behavior:   &BehaviorOverrides{InitialMessage: ptr("hi")},
		Appearance: &AppearanceOverrides{Theme: &ThemeOverrides{PrimaryColor: &color}},
	}

	got := GenerateWidgetConfig(o)

	color = "#ffffff"
	*o.Behavior.InitialMessage = "changed"
	o.Appearance.Theme = &ThemeOverrides{TextColor: ptr("#000000")}

	assert.Equal(t, "#123456", got.Appearance.Theme.PrimaryColor)
	assert.Equal(t, "hi", got.Behavior.InitialMessage)
	assert.Equal(t, "#ffffff", got.Appearance.Theme.TextColor)
}

func TestGenerateWidgetConfig_Idempotent(t *testing.T) {
	inputs := []WidgetOverrides{
		{},
		{WidgetID: ptr("widget_abc")},
		{
			WidgetID: ptr("widget_full"),
			Behavior: &BehaviorOverrides{AutoOpen: ptr(true), AutoOpenDelay: ptr(250)},
			Appearance: &AppearanceOverrides{
				Logo:  ptr("https://cdn.example.com/logo.png"),
				Theme: &ThemeOverrides{ButtonStyle: ptr(ButtonStyleSquare)},
			},
		},
	}

	for _, o := range inputs {
		first := GenerateWidgetConfig(o)
		assert.Equal(t, first, GenerateWidgetConfig(ToOverrides(first)))
	}
}

func TestWidgetConfig_Validate(t *testing.T) {
	cfg := DefaultWidgetConfig()
	cfg.Behavior.AutoOpenDelay = -1

	var valueErr *InvalidValueError
	require.ErrorAs(t, cfg.Validate(), &valueErr)
	assert.Equal(t, "behavior.autoOpenDelay", valueErr.Path)

	cfg = DefaultWidgetConfig()
	cfg.Appearance.Position = "center"
	require.ErrorAs(t, cfg.Validate(), &valueErr)
	assert.Equal(t, "appearance.position", valueErr.Path)

	cfg = DefaultWidgetConfig()
	cfg.Appearance.Theme.ButtonStyle = "round"
	require.ErrorAs(t, cfg.Validate(), &valueErr)
	assert.Equal(t, "appearance.theme.buttonStyle", valueErr.Path)
}
