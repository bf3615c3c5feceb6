// FILE: macrolog/src/internal/format/format.go
package format

import (
	"bytes"
	"fmt"
	"strings"
	"text/template"
	"time"

	"macrolog/src/internal/core"

	"github.com/lixenwraith/log"
)

const (
	// DefaultTemplate mirrors the stock macro line: timestamp, level,
	// bracketed macro name, message.
	DefaultTemplate = "{{FmtTime .Timestamp}} {{.Level}} <{{.Name}}>: {{.Message}}"

	// DefaultTimestampLayout keeps lines short; the date is recoverable from
	// rotation boundaries.
	DefaultTimestampLayout = "15:04:05"
)

// Formatter renders records into the line consumed by the console and file
// sinks. The display and notification sinks take the raw message instead.
type Formatter struct {
	template        *template.Template
	timestampLayout string
	logger          *log.Logger
}

// New compiles the line template. A parse failure is a configuration error;
// callers fall back to Default and report once through the console sink.
func New(templateText, timestampLayout string, logger *log.Logger) (*Formatter, error) {
	if templateText == "" {
		templateText = DefaultTemplate
	}
	if timestampLayout == "" {
		timestampLayout = DefaultTimestampLayout
	}

	f := &Formatter{
		timestampLayout: timestampLayout,
		logger:          logger,
	}

	funcMap := template.FuncMap{
		"FmtTime": func(t time.Time) string {
			return t.Format(f.timestampLayout)
		},
		"ToUpper":   strings.ToUpper,
		"ToLower":   strings.ToLower,
		"TrimSpace": strings.TrimSpace,
	}

	tmpl, err := template.New("line").Funcs(funcMap).Parse(templateText)
	if err != nil {
		return nil, fmt.Errorf("invalid format template: %w", err)
	}

	f.template = tmpl
	return f, nil
}

// Default returns a formatter built from the stock template. The stock
// template is known good, so construction cannot fail.
func Default(logger *log.Logger) *Formatter {
	f, err := New(DefaultTemplate, DefaultTimestampLayout, logger)
	if err != nil {
		panic(fmt.Sprintf("default format template failed to compile: %v", err))
	}
	return f
}

// Render produces the formatted line for a record. It never fails the
// caller: a template execution error falls back to a fixed layout.
func (f *Formatter) Render(rec core.Record) string {
	data := map[string]any{
		"Timestamp": rec.Time,
		"Level":     rec.Level.String(),
		"Name":      rec.Name,
		"Message":   rec.Message,
	}

	var buf bytes.Buffer
	if err := f.template.Execute(&buf, data); err != nil {
		f.logger.Debug("msg", "Template execution failed, using fallback",
			"component", "formatter",
			"error", err)

		return fmt.Sprintf("[%s] [%s] %s - %s",
			rec.Time.Format(f.timestampLayout),
			rec.Level.String(),
			rec.Name,
			rec.Message)
	}

	// Sinks decide line termination themselves
	return strings.TrimRight(buf.String(), "\n")
}

// TimestampLayout returns the configured timestamp layout.
func (f *Formatter) TimestampLayout() string {
	return f.timestampLayout
}
