// FILE: macrolog/src/internal/core/level.go
package core

import (
	"fmt"
	"strings"
)

// Level is a named severity with a stable integer rank. Ranks are not
// contiguous: ERROR sits at 5 with a gap at 4, matching the literal values
// printer configs reference. Comparisons must use ranks, never iota order.
type Level int

const (
	// LevelPrint is the always-shown tier. It sits below TRACE and is never
	// filtered by the console threshold.
	LevelPrint Level = -1

	LevelTrace Level = 0
	LevelDebug Level = 1
	LevelInfo  Level = 2
	LevelWarn  Level = 3
	LevelError Level = 5
)

// Rank returns the numeric rank used for threshold comparison.
func (l Level) Rank() int {
	return int(l)
}

func (l Level) String() string {
	switch l {
	case LevelPrint:
		return "PRINT"
	case LevelTrace:
		return "TRACE"
	case LevelDebug:
		return "DEBUG"
	case LevelInfo:
		return "INFO"
	case LevelWarn:
		return "WARN"
	case LevelError:
		return "ERROR"
	default:
		return fmt.Sprintf("LEVEL(%d)", int(l))
	}
}

// CompareLevels returns a negative value when a is less severe than b,
// zero when equal, positive when more severe.
func CompareLevels(a, b Level) int {
	return a.Rank() - b.Rank()
}

// ParseLevel resolves a level name case-insensitively. PRINT is not a valid
// argument level; it is reachable only through the dedicated macro.
func ParseLevel(name string) (Level, error) {
	switch strings.ToUpper(strings.TrimSpace(name)) {
	case "TRACE":
		return LevelTrace, nil
	case "DEBUG":
		return LevelDebug, nil
	case "INFO":
		return LevelInfo, nil
	case "WARN", "WARNING":
		return LevelWarn, nil
	case "ERROR":
		return LevelError, nil
	default:
		return LevelPrint, fmt.Errorf("unknown log level: %q (valid: TRACE, DEBUG, INFO, WARN, ERROR)", name)
	}
}
