package lsp_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	protocol "github.com/tliron/glsp/protocol_3_16"

	"snake/internal/ast"
	"snake/internal/errs"
	"snake/internal/lsp"
)

func TestInitializeAdvertisesFullDocumentSync(t *testing.T) {
	handler := lsp.NewSnakeHandler()

	result, err := handler.Initialize(nil, &protocol.InitializeParams{})
	require.NoError(t, err)

	init, ok := result.(*protocol.InitializeResult)
	require.True(t, ok)
	require.NotNil(t, init.Capabilities.TextDocumentSync)
}

func TestShutdownAndInitializedDoNotError(t *testing.T) {
	handler := lsp.NewSnakeHandler()
	assert.NoError(t, handler.Initialized(nil, &protocol.InitializedParams{}))
	assert.NoError(t, handler.Shutdown(nil))
}

func TestDiagnosticsForNilErrorIsEmpty(t *testing.T) {
	diags := lsp.DiagnosticsFor(nil)
	assert.Empty(t, diags)
}

func TestDiagnosticsForCompileErrorCarriesPositionAndCode(t *testing.T) {
	ce := errs.UnboundVariable("x", ast.Position{Line: 3, Column: 5})

	diags := lsp.DiagnosticsFor(ce)
	require.Len(t, diags, 1)
	assert.Equal(t, uint32(2), diags[0].Range.Start.Line)
	assert.Equal(t, uint32(4), diags[0].Range.Start.Character)
	assert.Contains(t, diags[0].Message, "x")
}

func TestDiagnosticsForPlainErrorFallsBackToOneEntry(t *testing.T) {
	diags := lsp.DiagnosticsFor(assertErr{})
	require.Len(t, diags, 1)
	assert.Equal(t, "boom", diags[0].Message)
}

type assertErr struct{}

func (assertErr) Error() string { return "boom" }
