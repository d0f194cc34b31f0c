// Package sysutil holds the small environment helpers placesd needs before
// config and logging are fully wired.
package sysutil

import (
	"strings"

	"github.com/rs/zerolog"
)

// SetLogLevel sets the global zerolog level from LOG_LEVEL. Matching ignores
// case and surrounding space; "warning" aliases "warn" and "off" disables
// logging. Empty or unknown values select info.
func SetLogLevel(lvl string) {
	zerolog.SetGlobalLevel(ParseLogLevel(lvl))
}

// ParseLogLevel maps a LOG_LEVEL value to a zerolog level without touching
// global state.
func ParseLogLevel(lvl string) zerolog.Level {
	switch s := strings.ToLower(strings.TrimSpace(lvl)); s {
	case "warning":
		return zerolog.WarnLevel
	case "off", "none":
		return zerolog.Disabled
	case "":
		return zerolog.InfoLevel
	default:
		l, err := zerolog.ParseLevel(s)
		if err != nil || l == zerolog.NoLevel {
			return zerolog.InfoLevel
		}
		return l
	}
}

// IsTruthy reports whether a flag-like env value such as MIGRATE_ONLY is on.
// "1", "true", "yes", "y" and "on" count, in any case.
func IsTruthy(v string) bool {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "1", "true", "yes", "y", "on":
		return true
	}
	return false
}

// FirstNonEmpty returns the first value that is not blank, unmodified, or ""
// when every value is blank.
func FirstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
