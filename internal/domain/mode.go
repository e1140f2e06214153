package domain

import (
	"errors"
	"fmt"
	"strings"
)

// Mode selects which documentation site is used for fetching markdown and
// for rewriting reference links.
type Mode string

const (
	// ModeNone means no mode was given; the primary documentation base is used.
	ModeNone Mode = ""
	ModePro  Mode = "pro"
	ModeDemo Mode = "demo"
)

// ErrInvalidMode is returned by ParseMode for unknown mode names.
var ErrInvalidMode = errors.New("invalid mode")

// ValidModes lists the modes accepted on the command line.
var ValidModes = []Mode{ModePro, ModeDemo}

// ParseMode converts a user supplied string into a Mode.
// An empty string yields ModeNone.
func ParseMode(s string) (Mode, error) {
	m := Mode(strings.ToLower(strings.TrimSpace(s)))
	if m == ModeNone || m.Valid() {
		return m, nil
	}
	names := make([]string, len(ValidModes))
	for i, v := range ValidModes {
		names[i] = string(v)
	}
	return ModeNone, fmt.Errorf("%w '%s', valid modes are: %s", ErrInvalidMode, s, strings.Join(names, ", "))
}

// Valid reports whether m is one of ValidModes.
func (m Mode) Valid() bool {
	for _, v := range ValidModes {
		if m == v {
			return true
		}
	}
	return false
}

// IsAlternate reports whether the alternate (demo) documentation base applies.
func (m Mode) IsAlternate() bool {
	return m == ModeDemo
}

// DocsSite holds the two documentation bases a Mode chooses between.
type DocsSite struct {
	BaseURL     string
	DemoBaseURL string
}

// BaseFor returns the documentation base URL for the given mode, without a
// trailing slash. Anything other than ModeDemo resolves to the primary base.
func (s DocsSite) BaseFor(m Mode) string {
	if m.IsAlternate() {
		return strings.TrimRight(s.DemoBaseURL, "/")
	}
	return strings.TrimRight(s.BaseURL, "/")
}
