package domain

import "fmt"

// Position is the screen corner the widget is anchored to
type Position string

const (
	PositionBottomRight Position = "bottom-right"
	PositionBottomLeft  Position = "bottom-left"
	PositionTopRight    Position = "top-right"
	PositionTopLeft     Position = "top-left"
)

// Valid reports whether p is one of the known positions
func (p Position) Valid() bool {
	switch p {
	case PositionBottomRight, PositionBottomLeft, PositionTopRight, PositionTopLeft:
		return true
	}
	return false
}

// ButtonStyle is the corner shape of the launcher and send buttons
type ButtonStyle string

const (
	ButtonStyleRounded ButtonStyle = "rounded"
	ButtonStyleSquare  ButtonStyle = "square"
	ButtonStylePill    ButtonStyle = "pill"
)

// Valid reports whether s is one of the known button styles
func (s ButtonStyle) Valid() bool {
	switch s {
	case ButtonStyleRounded, ButtonStyleSquare, ButtonStylePill:
		return true
	}
	return false
}

// WidgetConfig is the complete description of one widget instance.
// It holds no maps, slices or pointers, so copying the value copies the whole tree.
type WidgetConfig struct {
	WidgetID   string           `json:"widgetId"`
	Behavior   WidgetBehavior   `json:"behavior"`
	Appearance WidgetAppearance `json:"appearance"`
}

// WidgetBehavior controls when and how the widget opens
type WidgetBehavior struct {
	AutoOpen            bool   `json:"autoOpen"`
	AutoOpenDelay       int    `json:"autoOpenDelay"` // milliseconds, 0 opens immediately
	ShowOnAllPages      bool   `json:"showOnAllPages"`
	InitialMessage      string `json:"initialMessage"`
	PersistConversation bool   `json:"persistConversation"`
}

// WidgetAppearance holds the visible texts, placement and theme
type WidgetAppearance struct {
	Position         Position    `json:"position"`
	Theme            WidgetTheme `json:"theme"`
	Logo             string      `json:"logo"`
	Title            string      `json:"title"`
	Subtitle         string      `json:"subtitle"`
	WelcomeMessage   string      `json:"welcomeMessage"`
	InputPlaceholder string      `json:"inputPlaceholder"`
	SendButtonText   string      `json:"sendButtonText"`
}

// WidgetTheme holds CSS colors and the button style
type WidgetTheme struct {
	PrimaryColor    string      `json:"primaryColor"`
	TextColor       string      `json:"textColor"`
	BackgroundColor string      `json:"backgroundColor"`
	ButtonStyle     ButtonStyle `json:"buttonStyle"`
}

// DefaultWidgetConfig returns default widget configuration
func DefaultWidgetConfig() WidgetConfig {
	return WidgetConfig{
		WidgetID: "",
		Behavior: WidgetBehavior{
			AutoOpen:            false,
			AutoOpenDelay:       3000,
			ShowOnAllPages:      true,
			InitialMessage:      "Hello! How can I help you today?",
			PersistConversation: true,
		},
		Appearance: WidgetAppearance{
			Position: PositionBottomRight,
			Theme: WidgetTheme{
				PrimaryColor:    "#7c3aed",
				TextColor:       "#ffffff",
				BackgroundColor: "#ffffff",
				ButtonStyle:     ButtonStyleRounded,
			},
			Title:            "Conversa AI",
			Subtitle:         "Ask me anything",
			WelcomeMessage:   "Hello! I'm your AI assistant. How can I help you today?",
			InputPlaceholder: "Type your message...",
			SendButtonText:   "Send",
		},
	}
}

// Validate checks enum and range constraints
func (c WidgetConfig) Validate() error {
	if c.Behavior.AutoOpenDelay < 0 {
		return &InvalidValueError{Path: "behavior.autoOpenDelay", Reason: "must not be negative"}
	}
	if !c.Appearance.Position.Valid() {
		return &InvalidValueError{
			Path:   "appearance.position",
			Reason: fmt.Sprintf("unknown position %q", c.Appearance.Position),
		}
	}
	if !c.Appearance.Theme.ButtonStyle.Valid() {
		return &InvalidValueError{
			Path:   "appearance.theme.buttonStyle",
			Reason: fmt.Sprintf("unknown button style %q", c.Appearance.Theme.ButtonStyle),
		}
	}
	return nil
}
