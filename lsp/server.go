// Package lsp serves arithmetic documents over the Language Server
// Protocol. Every open document is reparsed on change; parse errors are
// published as diagnostics and hovering shows the expression under the
// cursor.
package lsp

import (
	"sync"

	"github.com/tliron/commonlog"
	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"
	"github.com/tliron/glsp/server"

	_ "github.com/tliron/commonlog/simple"

	"github.com/zcfabra/flat-ast-interpreter/arith/parser"
)

const lsName = "arith"

var log = commonlog.GetLogger("arith.lsp")

type Server struct {
	handler   protocol.Handler
	server    *server.Server
	version   string
	parseOpts []parser.Option

	mu   sync.Mutex
	docs map[protocol.DocumentUri]*Document
}

// NewServer creates a server. parseOpts apply to every document parse.
func NewServer(version string, parseOpts ...parser.Option) *Server {
	ls := &Server{
		version:   version,
		parseOpts: parseOpts,
		docs:      make(map[protocol.DocumentUri]*Document),
	}

	ls.handler = protocol.Handler{
		Initialize:            ls.initialize,
		Initialized:           ls.initialized,
		Shutdown:              ls.shutdown,
		SetTrace:              ls.setTrace,
		TextDocumentDidOpen:   ls.textDocumentDidOpen,
		TextDocumentDidChange: ls.textDocumentDidChange,
		TextDocumentDidClose:  ls.textDocumentDidClose,
		TextDocumentHover:     ls.textDocumentHover,
	}

	ls.server = server.NewServer(&ls.handler, lsName, false)

	return ls
}

func (ls *Server) RunStdio() error {
	return ls.server.RunStdio()
}

// Document returns the current state of an open document.
func (ls *Server) Document(uri protocol.DocumentUri) (*Document, bool) {
	ls.mu.Lock()
	defer ls.mu.Unlock()
	doc, ok := ls.docs[uri]
	return doc, ok
}

func (ls *Server) initialize(ctx *glsp.Context, params *protocol.InitializeParams) (any, error) {
	capabilities := ls.handler.CreateServerCapabilities()

	capabilities.TextDocumentSync = &protocol.TextDocumentSyncOptions{
		OpenClose: boolPtr(true),
		Change:    syncKindPtr(protocol.TextDocumentSyncKindFull),
	}

	return protocol.InitializeResult{
		Capabilities: capabilities,
		ServerInfo: &protocol.InitializeResultServerInfo{
			Name:    lsName,
			Version: &ls.version,
		},
	}, nil
}

func (ls *Server) initialized(ctx *glsp.Context, params *protocol.InitializedParams) error {
	log.Info("client initialized")
	return nil
}

func (ls *Server) shutdown(ctx *glsp.Context) error {
	protocol.SetTraceValue(protocol.TraceValueOff)
	return nil
}

func (ls *Server) setTrace(ctx *glsp.Context, params *protocol.SetTraceParams) error {
	protocol.SetTraceValue(params.Value)
	return nil
}

func (ls *Server) textDocumentDidOpen(ctx *glsp.Context, params *protocol.DidOpenTextDocumentParams) error {
	ls.update(ctx, params.TextDocument.URI, params.TextDocument.Text)
	return nil
}

func (ls *Server) textDocumentDidChange(ctx *glsp.Context, params *protocol.DidChangeTextDocumentParams) error {
	if len(params.ContentChanges) == 0 {
		return nil
	}
	change := params.ContentChanges[len(params.ContentChanges)-1]
	if textChange, ok := change.(protocol.TextDocumentContentChangeEventWhole); ok {
		ls.update(ctx, params.TextDocument.URI, textChange.Text)
	}
	return nil
}

func (ls *Server) textDocumentDidClose(ctx *glsp.Context, params *protocol.DidCloseTextDocumentParams) error {
	uri := params.TextDocument.URI
	ls.mu.Lock()
	delete(ls.docs, uri)
	ls.mu.Unlock()

	ctx.Notify(protocol.ServerTextDocumentPublishDiagnostics, protocol.PublishDiagnosticsParams{
		URI:         uri,
		Diagnostics: []protocol.Diagnostic{},
	})
	return nil
}

func (ls *Server) textDocumentHover(ctx *glsp.Context, params *protocol.HoverParams) (*protocol.Hover, error) {
	doc, ok := ls.Document(params.TextDocument.URI)
	if !ok {
		return nil, nil
	}
	return doc.Hover(params.Position), nil
}

// update reparses a document and publishes its diagnostics.
func (ls *Server) update(ctx *glsp.Context, uri protocol.DocumentUri, text string) {
	doc := Analyze(uri, text, ls.parseOpts...)
	if doc.Err != nil {
		log.Debugf("%s: %s", uri, doc.Err)
	}

	ls.mu.Lock()
	ls.docs[uri] = doc
	ls.mu.Unlock()

	ctx.Notify(protocol.ServerTextDocumentPublishDiagnostics, protocol.PublishDiagnosticsParams{
		URI:         uri,
		Diagnostics: doc.Diagnostics(),
	})
}

func boolPtr(b bool) *bool {
	return &b
}

func syncKindPtr(kind protocol.TextDocumentSyncKind) *protocol.TextDocumentSyncKind {
	return &kind
}
