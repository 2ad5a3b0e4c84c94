// Package lsp implements a diagnostics-only language server for Snake:
// it republishes checker/parser errors as LSP diagnostics whenever a
// document is opened or changed. It does not offer completion or
// semantic tokens.
package lsp

import (
	"fmt"
	"log"
	"net/url"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"

	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"

	"snake/internal/compiler"
)

// SnakeHandler implements the LSP server handlers for Snake.
type SnakeHandler struct {
	mu      sync.RWMutex
	content map[string]string
}

// NewSnakeHandler creates an empty handler ready to be wired into a
// protocol.Handler.
func NewSnakeHandler() *SnakeHandler {
	return &SnakeHandler{content: make(map[string]string)}
}

// Initialize responds to the client's initialize request and advertises
// the server's (deliberately narrow) capabilities.
func (h *SnakeHandler) Initialize(ctx *glsp.Context, params *protocol.InitializeParams) (any, error) {
	log.Println("snake-lsp: Initialize called")

	return &protocol.InitializeResult{
		Capabilities: protocol.ServerCapabilities{
			TextDocumentSync: &protocol.TextDocumentSyncOptions{
				OpenClose: ptrBool(true),
				Change:    ptrSyncKind(protocol.TextDocumentSyncKindFull),
			},
		},
	}, nil
}

// Initialized is called once the client has received the server's
// capabilities.
func (h *SnakeHandler) Initialized(ctx *glsp.Context, params *protocol.InitializedParams) error {
	log.Println("snake-lsp: Initialized")
	return nil
}

// Shutdown handles the LSP shutdown request.
func (h *SnakeHandler) Shutdown(ctx *glsp.Context) error {
	log.Println("snake-lsp: Shutdown")
	return nil
}

// TextDocumentDidOpen handles file open notifications.
func (h *SnakeHandler) TextDocumentDidOpen(ctx *glsp.Context, params *protocol.DidOpenTextDocumentParams) error {
	uri := params.TextDocument.URI
	log.Printf("snake-lsp: opened %s\n", uri)
	return h.recompile(ctx, uri)
}

// TextDocumentDidChange handles file change notifications by re-reading
// the document from disk and recompiling it, same as the teacher's
// updateAST, rather than trying to apply incremental change events.
func (h *SnakeHandler) TextDocumentDidChange(ctx *glsp.Context, params *protocol.DidChangeTextDocumentParams) error {
	uri := params.TextDocument.URI
	log.Printf("snake-lsp: changed %s\n", uri)
	return h.recompile(ctx, uri)
}

// TextDocumentDidClose forgets whatever content was cached for a closed
// document.
func (h *SnakeHandler) TextDocumentDidClose(ctx *glsp.Context, params *protocol.DidCloseTextDocumentParams) error {
	uri := params.TextDocument.URI
	log.Printf("snake-lsp: closed %s\n", uri)

	path, err := uriToPath(uri)
	if err != nil {
		return err
	}

	h.mu.Lock()
	delete(h.content, path)
	h.mu.Unlock()
	return nil
}

// recompile re-reads uri's file from disk, compiles it, caches the
// source, and publishes the resulting diagnostics (an empty list clears
// any prior error).
func (h *SnakeHandler) recompile(ctx *glsp.Context, uri protocol.DocumentUri) error {
	path, err := uriToPath(uri)
	if err != nil {
		return err
	}

	source, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("snake-lsp: failed to read %s: %w", path, err)
	}

	h.mu.Lock()
	h.content[path] = string(source)
	h.mu.Unlock()

	_, compileErr := compiler.Compile(path, string(source))
	ctx.Notify(protocol.ServerTextDocumentPublishDiagnostics, &protocol.PublishDiagnosticsParams{
		URI:         uri,
		Diagnostics: DiagnosticsFor(compileErr),
	})
	return nil
}

func uriToPath(rawURI protocol.DocumentUri) (string, error) {
	u, err := url.Parse(string(rawURI))
	if err != nil {
		return "", fmt.Errorf("invalid URI %s: %w", rawURI, err)
	}

	path := u.Path
	if runtime.GOOS == "windows" && strings.HasPrefix(path, "/") && len(path) > 3 && path[2] == ':' {
		path = path[1:]
	}
	return filepath.FromSlash(path), nil
}

func ptrBool(b bool) *bool { return &b }

func ptrSyncKind(k protocol.TextDocumentSyncKind) *protocol.TextDocumentSyncKind { return &k }
