// Package diagnostics carries the structured problem reports the loading
// and relationship-resolution pipeline produces alongside its output. A
// warning here never stops the build; fatal conditions travel as errors.
package diagnostics

import "sync"

// Severity orders diagnostics from most to least serious.
type Severity int

const (
	SeverityError Severity = iota
	SeverityWarning
	SeverityInformation
	SeverityHint
)

// String returns the lowercase severity name.
func (s Severity) String() string {
	switch s {
	case SeverityError:
		return "error"
	case SeverityWarning:
		return "warning"
	case SeverityInformation:
		return "information"
	default:
		return "hint"
	}
}

// Stable diagnostic identifiers. Tooling matches on these strings, so they
// never change once shipped.
const (
	IDSymbolNodeNotFound         = "org.swift.docc.SymbolNodeNotFound"
	IDInvalidSymbolReferencePath = "org.swift.docc.InvalidSymbolReferencePath"
	IDMixedGraphFormats          = "org.swift.docc.MixedGraphFormats"
)

// Diagnostic is one structured problem report.
type Diagnostic struct {
	Identifier  string `json:"identifier"`
	Severity    Severity
	Summary     string `json:"summary"`
	Explanation string `json:"explanation,omitempty"`
}

// Sink receives diagnostics as they are produced.
type Sink interface {
	Emit(Diagnostic)
}

// Engine is a mutex-guarded collecting Sink. The zero value is ready to use
// and safe for concurrent emitters.
type Engine struct {
	mu          sync.Mutex
	diagnostics []Diagnostic
}

// Emit implements Sink.
func (e *Engine) Emit(d Diagnostic) {
	e.mu.Lock()
	e.diagnostics = append(e.diagnostics, d)
	e.mu.Unlock()
}

// All returns a copy of the collected diagnostics in emission order.
func (e *Engine) All() []Diagnostic {
	e.mu.Lock()
	defer e.mu.Unlock()
	return append([]Diagnostic(nil), e.diagnostics...)
}

// Count returns how many diagnostics have been collected.
func (e *Engine) Count() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.diagnostics)
}

// WithSeverity returns the collected diagnostics matching the severity.
func (e *Engine) WithSeverity(s Severity) []Diagnostic {
	e.mu.Lock()
	defer e.mu.Unlock()
	var out []Diagnostic
	for _, d := range e.diagnostics {
		if d.Severity == s {
			out = append(out, d)
		}
	}
	return out
}
