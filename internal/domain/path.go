package domain

import (
	"encoding/json"
	"fmt"
	"math"
	"sort"
	"strings"
)

type leafSetter func(cfg *WidgetConfig, value any) error

// leaves is the allow-list of updatable leaf paths. widgetId is read-only.
var leaves = map[string]leafSetter{
	"behavior.autoOpen": func(c *WidgetConfig, v any) error {
		return assignBool(&c.Behavior.AutoOpen, v)
	},
	"behavior.autoOpenDelay": func(c *WidgetConfig, v any) error {
		n, err := asInt(v)
		if err != nil {
			return err
		}
		if n < 0 {
			return fmt.Errorf("must not be negative, got %d", n)
		}
		c.Behavior.AutoOpenDelay = n
		return nil
	},
	"behavior.showOnAllPages": func(c *WidgetConfig, v any) error {
		return assignBool(&c.Behavior.ShowOnAllPages, v)
	},
	"behavior.initialMessage": func(c *WidgetConfig, v any) error {
		return assignString(&c.Behavior.InitialMessage, v)
	},
	"behavior.persistConversation": func(c *WidgetConfig, v any) error {
		return assignBool(&c.Behavior.PersistConversation, v)
	},
	"appearance.position": func(c *WidgetConfig, v any) error {
		s, err := asString(v)
		if err != nil {
			return err
		}
		p := Position(s)
		if !p.Valid() {
			return fmt.Errorf("unknown position %q", s)
		}
		c.Appearance.Position = p
		return nil
	},
	"appearance.logo": func(c *WidgetConfig, v any) error {
		return assignString(&c.Appearance.Logo, v)
	},
	"appearance.title": func(c *WidgetConfig, v any) error {
		return assignString(&c.Appearance.Title, v)
	},
	"appearance.subtitle": func(c *WidgetConfig, v any) error {
		return assignString(&c.Appearance.Subtitle, v)
	},
	"appearance.welcomeMessage": func(c *WidgetConfig, v any) error {
		return assignString(&c.Appearance.WelcomeMessage, v)
	},
	"appearance.inputPlaceholder": func(c *WidgetConfig, v any) error {
		return assignString(&c.Appearance.InputPlaceholder, v)
	},
	"appearance.sendButtonText": func(c *WidgetConfig, v any) error {
		return assignString(&c.Appearance.SendButtonText, v)
	},
	"appearance.theme.primaryColor": func(c *WidgetConfig, v any) error {
		return assignString(&c.Appearance.Theme.PrimaryColor, v)
	},
	"appearance.theme.textColor": func(c *WidgetConfig, v any) error {
		return assignString(&c.Appearance.Theme.TextColor, v)
	},
	"appearance.theme.backgroundColor": func(c *WidgetConfig, v any) error {
		return assignString(&c.Appearance.Theme.BackgroundColor, v)
	},
	"appearance.theme.buttonStyle": func(c *WidgetConfig, v any) error {
		s, err := asString(v)
		if err != nil {
			return err
		}
		bs := ButtonStyle(s)
		if !bs.Valid() {
			return fmt.Errorf("unknown button style %q", s)
		}
		c.Appearance.Theme.ButtonStyle = bs
		return nil
	},
}

var branches = map[string]bool{
	"behavior":         true,
	"appearance":       true,
	"appearance.theme": true,
}

const readOnlyLeaf = "widgetId"

// LeafPaths lists every path accepted by UpdateConfigField, sorted
func LeafPaths() []string {
	paths := make([]string, 0, len(leaves))
	for p := range leaves {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	return paths
}

// UpdateConfigField returns a copy of cfg with the leaf at path set to value.
// cfg itself is never modified.
func UpdateConfigField(cfg WidgetConfig, path string, value any) (WidgetConfig, error) {
	set, err := resolveLeaf(path)
	if err != nil {
		return cfg, err
	}

	next := cfg
	if err := set(&next, value); err != nil {
		return cfg, &InvalidValueError{Path: path, Reason: err.Error()}
	}
	return next, nil
}

func resolveLeaf(path string) (leafSetter, error) {
	if path == "" {
		return nil, &InvalidPathError{Path: path, Reason: "empty path"}
	}
	for _, seg := range strings.Split(path, ".") {
		if seg == "" {
			return nil, &InvalidPathError{Path: path, Reason: "empty path segment"}
		}
	}

	if set, ok := leaves[path]; ok {
		return set, nil
	}
	switch {
	case branches[path]:
		return nil, &InvalidPathError{Path: path, Reason: "addresses a branch, not a leaf"}
	case path == readOnlyLeaf:
		return nil, &InvalidPathError{Path: path, Reason: "field is read-only"}
	}
	return nil, &InvalidPathError{Path: path, Reason: "unknown field"}
}

func assignBool(dst *bool, v any) error {
	b, ok := v.(bool)
	if !ok {
		return fmt.Errorf("expected boolean, got %T", v)
	}
	*dst = b
	return nil
}

func assignString(dst *string, v any) error {
	s, err := asString(v)
	if err != nil {
		return err
	}
	*dst = s
	return nil
}

func asString(v any) (string, error) {
	switch s := v.(type) {
	case string:
		return s, nil
	case Position:
		return string(s), nil
	case ButtonStyle:
		return string(s), nil
	}
	return "", fmt.Errorf("expected string, got %T", v)
}

func asInt(v any) (int, error) {
	switch n := v.(type) {
	case int:
		return n, nil
	case int32:
		return int(n), nil
	case int64:
		return int(n), nil
	case float64:
		return floatToInt(n)
	case float32:
		return floatToInt(float64(n))
	case json.Number:
		if i, err := n.Int64(); err == nil {
			return int(i), nil
		}
		f, err := n.Float64()
		if err != nil {
			return 0, fmt.Errorf("expected integer, got %q", n.String())
		}
		return floatToInt(f)
	}
	return 0, fmt.Errorf("expected integer, got %T", v)
}

func floatToInt(f float64) (int, error) {
	if f != math.Trunc(f) || math.IsInf(f, 0) || f > math.MaxInt32 || f < math.MinInt32 {
		return 0, fmt.Errorf("expected integer, got %v", f)
	}
	return int(f), nil
}
