package domain

// WidgetOverrides is a partially populated WidgetConfig. A nil field means
// "not specified" and falls back to the default.
type WidgetOverrides struct {
	WidgetID   *string              `json:"widgetId,omitempty"`
	Behavior   *BehaviorOverrides   `json:"behavior,omitempty"`
	Appearance *AppearanceOverrides `json:"appearance,omitempty"`
}

// BehaviorOverrides is the partial form of WidgetBehavior
type BehaviorOverrides struct {
	AutoOpen            *bool   `json:"autoOpen,omitempty"`
	AutoOpenDelay       *int    `json:"autoOpenDelay,omitempty"`
	ShowOnAllPages      *bool   `json:"showOnAllPages,omitempty"`
	InitialMessage      *string `json:"initialMessage,omitempty"`
	PersistConversation *bool   `json:"persistConversation,omitempty"`
}

// AppearanceOverrides is the partial form of WidgetAppearance
type AppearanceOverrides struct {
	Position         *Position       `json:"position,omitempty"`
	Theme            *ThemeOverrides `json:"theme,omitempty"`
	Logo             *string         `json:"logo,omitempty"`
	Title            *string         `json:"title,omitempty"`
	Subtitle         *string         `json:"subtitle,omitempty"`
	WelcomeMessage   *string         `json:"welcomeMessage,omitempty"`
	InputPlaceholder *string         `json:"inputPlaceholder,omitempty"`
	SendButtonText   *string         `json:"sendButtonText,omitempty"`
}

// ThemeOverrides is the partial form of WidgetTheme
type ThemeOverrides struct {
	PrimaryColor    *string      `json:"primaryColor,omitempty"`
	TextColor       *string      `json:"textColor,omitempty"`
	BackgroundColor *string      `json:"backgroundColor,omitempty"`
	ButtonStyle     *ButtonStyle `json:"buttonStyle,omitempty"`
}

// GenerateWidgetConfig layers overrides over the defaults, field by field, at
// the top level, behavior, appearance and appearance.theme. It never fails.
// The result shares no memory with overrides.
func GenerateWidgetConfig(overrides WidgetOverrides) WidgetConfig {
	cfg := DefaultWidgetConfig()

	setIf(&cfg.WidgetID, overrides.WidgetID)

	if b := overrides.Behavior; b != nil {
		setIf(&cfg.Behavior.AutoOpen, b.AutoOpen)
		setIf(&cfg.Behavior.AutoOpenDelay, b.AutoOpenDelay)
		setIf(&cfg.Behavior.ShowOnAllPages, b.ShowOnAllPages)
		setIf(&cfg.Behavior.InitialMessage, b.InitialMessage)
		setIf(&cfg.Behavior.PersistConversation, b.PersistConversation)
	}

	if a := overrides.Appearance; a != nil {
		setIf(&cfg.Appearance.Position, a.Position)
		setIf(&cfg.Appearance.Logo, a.Logo)
		setIf(&cfg.Appearance.Title, a.Title)
		setIf(&cfg.Appearance.Subtitle, a.Subtitle)
		setIf(&cfg.Appearance.WelcomeMessage, a.WelcomeMessage)
		setIf(&cfg.Appearance.InputPlaceholder, a.InputPlaceholder)
		setIf(&cfg.Appearance.SendButtonText, a.SendButtonText)

		if t := a.Theme; t != nil {
			setIf(&cfg.Appearance.Theme.PrimaryColor, t.PrimaryColor)
			setIf(&cfg.Appearance.Theme.TextColor, t.TextColor)
			setIf(&cfg.Appearance.Theme.BackgroundColor, t.BackgroundColor)
			setIf(&cfg.Appearance.Theme.ButtonStyle, t.ButtonStyle)
		}
	}

	return cfg
}

// ToOverrides returns overrides with every field of cfg specified.
// GenerateWidgetConfig(ToOverrides(c)) == c for any c.
func ToOverrides(cfg WidgetConfig) WidgetOverrides {
	return WidgetOverrides{
		WidgetID: ptr(cfg.WidgetID),
		Behavior: &BehaviorOverrides{
			AutoOpen:            ptr(cfg.Behavior.AutoOpen),
			AutoOpenDelay:       ptr(cfg.Behavior.AutoOpenDelay),
			ShowOnAllPages:      ptr(cfg.Behavior.ShowOnAllPages),
			InitialMessage:      ptr(cfg.Behavior.InitialMessage),
			PersistConversation: ptr(cfg.Behavior.PersistConversation),
		},
		Appearance: &AppearanceOverrides{
			Position: ptr(cfg.Appearance.Position),
			Theme: &ThemeOverrides{
				PrimaryColor:    ptr(cfg.Appearance.Theme.PrimaryColor),
				TextColor:       ptr(cfg.Appearance.Theme.TextColor),
				BackgroundColor: ptr(cfg.Appearance.Theme.BackgroundColor),
				ButtonStyle:     ptr(cfg.Appearance.Theme.ButtonStyle),
			},
			Logo:             ptr(cfg.Appearance.Logo),
			Title:            ptr(cfg.Appearance.Title),
			Subtitle:         ptr(cfg.Appearance.Subtitle),
			WelcomeMessage:   ptr(cfg.Appearance.WelcomeMessage),
			InputPlaceholder: ptr(cfg.Appearance.InputPlaceholder),
			SendButtonText:   ptr(cfg.Appearance.SendButtonText),
		},
	}
}

func setIf[T any](dst *T, src *T) {
	if src != nil {
		*dst = *src
	}
}

func ptr[T any](v T) *T {
	return &v
}
