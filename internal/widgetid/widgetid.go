// Package widgetid provides widget identifier generation for new widget configs.
package widgetid

import (
	"strings"

	"github.com/google/uuid"
)

// Prefix is prepended to every generated widget id
const Prefix = "widget_"

// Generator creates new widget identifiers
type Generator interface {
	NewID() string
}

// UUIDGenerator derives ids from random UUIDs: "widget_" followed by 12 lowercase hex chars
type UUIDGenerator struct{}

// NewID returns a fresh widget id
func (UUIDGenerator) NewID() string {
	hex := strings.ReplaceAll(uuid.NewString(), "-", "")
	return Prefix + hex[:12]
}

// Static always returns the same id
type Static string

// NewID returns the fixed id
func (s Static) NewID() string {
	return string(s)
}
