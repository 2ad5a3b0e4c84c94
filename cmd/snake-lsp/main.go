package main

import (
	"log"
	"os"

	"github.com/tliron/commonlog"
	protocol "github.com/tliron/glsp/protocol_3_16"
	"github.com/tliron/glsp/server"

	"snake/internal/lsp"
)

const lsName = "snake"

var version = "0.0.1"

func main() {
	commonlog.Configure(1, nil)

	snakeHandler := lsp.NewSnakeHandler()

	handler := protocol.Handler{
		Initialize:            snakeHandler.Initialize,
		Initialized:           snakeHandler.Initialized,
		Shutdown:              snakeHandler.Shutdown,
		TextDocumentDidOpen:   snakeHandler.TextDocumentDidOpen,
		TextDocumentDidChange: snakeHandler.TextDocumentDidChange,
		TextDocumentDidClose:  snakeHandler.TextDocumentDidClose,
	}

	s := server.NewServer(&handler, lsName, false)

	log.Println("Starting Snake LSP server...")

	if err := s.RunStdio(); err != nil {
		log.Println("Error starting Snake LSP server:", err)
		os.Exit(1)
	}
}
