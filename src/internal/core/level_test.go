// FILE: macrolog/src/internal/core/level_test.go
package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLevelRanks(t *testing.T) {
	// Ranks are the literal values printer configs reference, including
	// the gap between WARN and ERROR.
	assert.Equal(t, 0, LevelTrace.Rank())
	assert.Equal(t, 1, LevelDebug.Rank())
	assert.Equal(t, 2, LevelInfo.Rank())
	assert.Equal(t, 3, LevelWarn.Rank())
	assert.Equal(t, 5, LevelError.Rank())

	// The always-shown tier sits below TRACE
	assert.Less(t, LevelPrint.Rank(), LevelTrace.Rank())
}

func TestCompareLevels(t *testing.T) {
	ordered := []Level{LevelPrint, LevelTrace, LevelDebug, LevelInfo, LevelWarn, LevelError}
	for i := range ordered {
		for j := range ordered {
			cmp := CompareLevels(ordered[i], ordered[j])
			switch {
			case i < j:
				assert.Negative(t, cmp, "%s vs %s", ordered[i], ordered[j])
			case i > j:
				assert.Positive(t, cmp, "%s vs %s", ordered[i], ordered[j])
			default:
				assert.Zero(t, cmp)
			}
		}
	}
}

func TestParseLevel(t *testing.T) {
	testCases := []struct {
		name        string
		input       string
		expected    Level
		expectError bool
	}{
		{name: "Trace", input: "TRACE", expected: LevelTrace},
		{name: "LowerCase", input: "debug", expected: LevelDebug},
		{name: "MixedCase", input: "Info", expected: LevelInfo},
		{name: "Whitespace", input: " WARN ", expected: LevelWarn},
		{name: "WarningAlias", input: "WARNING", expected: LevelWarn},
		{name: "Error", input: "ERROR", expected: LevelError},
		{name: "Unknown", input: "VERBOSE", expectError: true},
		{name: "Empty", input: "", expectError: true},
		{name: "PrintNotParseable", input: "PRINT", expectError: true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			level, err := ParseLevel(tc.input)
			if tc.expectError {
				assert.Error(t, err)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tc.expected, level)
			}
		})
	}
}

func TestLevelString(t *testing.T) {
	assert.Equal(t, "PRINT", LevelPrint.String())
	assert.Equal(t, "TRACE", LevelTrace.String())
	assert.Equal(t, "ERROR", LevelError.String())
	assert.Equal(t, "LEVEL(4)", Level(4).String())
}

func TestNewRecord(t *testing.T) {
	rec := NewRecord("probe", "homing done", LevelInfo, true, false)

	assert.Equal(t, "probe", rec.Name)
	assert.Equal(t, "homing done", rec.Message)
	assert.Equal(t, LevelInfo, rec.Level)
	assert.True(t, rec.Display)
	assert.False(t, rec.Notify)
	assert.False(t, rec.Time.IsZero())
}
