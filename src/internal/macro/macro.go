// FILE: macrolog/src/internal/macro/macro.go
package macro

import (
	"fmt"
	"strconv"
	"strings"

	"macrolog/src/internal/core"
)

// Kind identifies one of the registered logging macros. The mapping from
// macro to default level is closed: unknown commands are rejected at this
// boundary so the engine stays agnostic of macro naming.
type Kind int

const (
	KindPrint Kind = iota
	KindTrace
	KindDebug
	KindInfo
	KindWarn
	KindError

	// KindGeneric is the _ML macro: level comes from the LVL argument,
	// absent LVL behaves like _PRINT.
	KindGeneric
)

var kindNames = map[string]Kind{
	"_PRINT": KindPrint,
	"_TRACE": KindTrace,
	"_DEBUG": KindDebug,
	"_INFO":  KindInfo,
	"_WARN":  KindWarn,
	"_ERROR": KindError,
	"_ML":    KindGeneric,
}

// ParseKind resolves a macro command name.
func ParseKind(command string) (Kind, error) {
	k, ok := kindNames[strings.ToUpper(strings.TrimSpace(command))]
	if !ok {
		return KindPrint, fmt.Errorf("unknown macro command: %q", command)
	}
	return k, nil
}

func (k Kind) String() string {
	for name, kind := range kindNames {
		if kind == k {
			return name
		}
	}
	return fmt.Sprintf("KIND(%d)", int(k))
}

// DefaultLevel maps a fixed macro to its implied level. The generic macro
// defaults to the always-shown tier when LVL is absent.
func DefaultLevel(k Kind) core.Level {
	switch k {
	case KindTrace:
		return core.LevelTrace
	case KindDebug:
		return core.LevelDebug
	case KindInfo:
		return core.LevelInfo
	case KindWarn:
		return core.LevelWarn
	case KindError:
		return core.LevelError
	default:
		return core.LevelPrint
	}
}

// ParseArgs translates macro arguments into a record. Keys are matched
// case-insensitively, Klipper style. An unknown LVL on the generic macro is
// a configuration error, never silently coerced.
func ParseArgs(kind Kind, params map[string]string) (core.Record, error) {
	args := make(map[string]string, len(params))
	for k, v := range params {
		args[strings.ToUpper(k)] = v
	}

	name := args["NAME"]
	if name == "" {
		return core.Record{}, fmt.Errorf("missing required NAME")
	}
	msg := args["MSG"]
	if msg == "" {
		return core.Record{}, fmt.Errorf("missing required MSG")
	}

	level := DefaultLevel(kind)
	if kind == KindGeneric {
		if lvl, ok := args["LVL"]; ok && lvl != "" {
			parsed, err := core.ParseLevel(lvl)
			if err != nil {
				return core.Record{}, err
			}
			level = parsed
		}
	}

	display, err := parseFlag(args["DISPLAY"])
	if err != nil {
		return core.Record{}, fmt.Errorf("invalid DISPLAY value: %w", err)
	}
	notify, err := parseFlag(args["NOTIFY"])
	if err != nil {
		return core.Record{}, fmt.Errorf("invalid NOTIFY value: %w", err)
	}

	return core.NewRecord(name, msg, level, display, notify), nil
}

// parseFlag reads a 0/1 macro boolean; absent means 0.
func parseFlag(v string) (bool, error) {
	if v == "" {
		return false, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return false, err
	}
	return n != 0, nil
}
