package lsp

import (
	protocol "github.com/tliron/glsp/protocol_3_16"

	"snake/internal/errs"
)

// DiagnosticsFor converts a compile result's error into the LSP
// diagnostic list to publish: empty when err is nil (clearing any prior
// error), one entry for a recognized *errs.CompileError, and a
// best-effort single diagnostic at the document start for anything else.
func DiagnosticsFor(err error) []protocol.Diagnostic {
	if err == nil {
		return []protocol.Diagnostic{}
	}

	ce, ok := err.(*errs.CompileError)
	if !ok {
		return []protocol.Diagnostic{{
			Range:    protocol.Range{Start: protocol.Position{}, End: protocol.Position{Character: 1}},
			Severity: ptrSeverity(protocol.DiagnosticSeverityError),
			Source:   ptrString("snake"),
			Message:  err.Error(),
		}}
	}

	line := uint32(0)
	if ce.Position.Line > 0 {
		line = uint32(ce.Position.Line - 1)
	}
	col := uint32(0)
	if ce.Position.Column > 0 {
		col = uint32(ce.Position.Column - 1)
	}
	length := uint32(ce.Length)
	if length < 1 {
		length = 1
	}

	return []protocol.Diagnostic{{
		Range: protocol.Range{
			Start: protocol.Position{Line: line, Character: col},
			End:   protocol.Position{Line: line, Character: col + length},
		},
		Severity: ptrSeverity(protocol.DiagnosticSeverityError),
		Source:   ptrString("snake-" + ce.Code),
		Message:  ce.Message,
	}}
}

func ptrSeverity(s protocol.DiagnosticSeverity) *protocol.DiagnosticSeverity { return &s }

func ptrString(s string) *string { return &s }
