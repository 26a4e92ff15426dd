// Package lsp serves synscan diagnostics over the Language Server Protocol.
//
// Only document sync is implemented: open/change/save/close drive a
// debounced check per document and the result is pushed with
// textDocument/publishDiagnostics.
package lsp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/sourcegraph/go-lsp"
	"github.com/sourcegraph/jsonrpc2"

	"synscan/internal/driver"
)

const diagnosticSource = "synscan"

var (
	// ErrExit signals a graceful shutdown after receiving "exit".
	ErrExit = errors.New("lsp exit")
	// ErrExitWithoutShutdown signals an "exit" without a preceding "shutdown".
	ErrExitWithoutShutdown = errors.New("lsp exit without shutdown")
)

// Publisher delivers diagnostics to the client.
type Publisher interface {
	Publish(ctx context.Context, params lsp.PublishDiagnosticsParams) error
}

type connPublisher struct{ conn *jsonrpc2.Conn }

func (p connPublisher) Publish(ctx context.Context, params lsp.PublishDiagnosticsParams) error {
	return p.conn.Notify(ctx, "textDocument/publishDiagnostics", params)
}

// ServerOptions configures LSP server behavior.
type ServerOptions struct {
	Debounce time.Duration
	Driver   driver.Options
	// Publisher overrides the connection; used by tests.
	Publisher Publisher
	// Verbose logs every check to stderr.
	Verbose bool
}

// Server handles JSON-RPC for the synscan language server.
type Server struct {
	// pubMu orders publishes against didClose; taken before mu.
	pubMu     sync.Mutex
	mu        sync.Mutex
	docs      map[lsp.DocumentURI]*document
	seq       uint64
	debounce  time.Duration
	opts      driver.Options
	publisher Publisher
	verbose   bool
	baseCtx   context.Context
	root      string

	shutdownRequested bool
	exitErr           error
}

// NewServer constructs a new LSP server.
func NewServer(opts ServerOptions) *Server {
	debounce := opts.Debounce
	if debounce <= 0 {
		debounce = 300 * time.Millisecond
	}
	return &Server{
		docs:      make(map[lsp.DocumentURI]*document),
		debounce:  debounce,
		opts:      opts.Driver,
		publisher: opts.Publisher,
		verbose:   opts.Verbose,
		baseCtx:   context.Background(),
	}
}

// Serve runs the server over rwc until the client disconnects, exits or
// ctx is canceled. A clean "shutdown" + "exit" sequence returns ErrExit.
func (s *Server) Serve(ctx context.Context, rwc io.ReadWriteCloser) error {
	s.mu.Lock()
	s.baseCtx = ctx
	s.mu.Unlock()

	stream := jsonrpc2.NewBufferedStream(rwc, jsonrpc2.VSCodeObjectCodec{})
	conn := jsonrpc2.NewConn(ctx, stream, jsonrpc2.HandlerWithError(s.Handle))
	select {
	case <-conn.DisconnectNotify():
	case <-ctx.Done():
		_ = conn.Close()
	}
	s.stopAll()

	s.mu.Lock()
	defer s.mu.Unlock()
	return s.exitErr
}

// Handle is the jsonrpc2 entry point.
func (s *Server) Handle(ctx context.Context, conn *jsonrpc2.Conn, req *jsonrpc2.Request) (any, error) {
	s.mu.Lock()
	if s.publisher == nil && conn != nil {
		s.publisher = connPublisher{conn: conn}
	}
	s.mu.Unlock()

	result, err := s.dispatch(req)
	if req.Method == "exit" && conn != nil {
		go conn.Close()
	}
	return result, err
}

func (s *Server) dispatch(req *jsonrpc2.Request) (any, error) {
	switch req.Method {
	case "initialize":
		return s.handleInitialize(req)
	case "initialized":
		return nil, nil
	case "shutdown":
		s.mu.Lock()
		s.shutdownRequested = true
		s.mu.Unlock()
		s.stopAll()
		return nil, nil
	case "exit":
		s.mu.Lock()
		if s.shutdownRequested {
			s.exitErr = ErrExit
		} else {
			s.exitErr = ErrExitWithoutShutdown
		}
		s.mu.Unlock()
		return nil, nil
	case "textDocument/didOpen":
		return nil, s.handleDidOpen(req)
	case "textDocument/didChange":
		return nil, s.handleDidChange(req)
	case "textDocument/didSave":
		return nil, s.handleDidSave(req)
	case "textDocument/didClose":
		return nil, s.handleDidClose(req)
	default:
		if req.Notif {
			return nil, nil
		}
		return nil, &jsonrpc2.Error{Code: jsonrpc2.CodeMethodNotFound, Message: "method not found: " + req.Method}
	}
}

func decodeParams(req *jsonrpc2.Request, v any) error {
	if req.Params == nil {
		return &jsonrpc2.Error{Code: jsonrpc2.CodeInvalidParams, Message: "missing params"}
	}
	if err := json.Unmarshal(*req.Params, v); err != nil {
		return &jsonrpc2.Error{Code: jsonrpc2.CodeInvalidParams, Message: fmt.Sprintf("invalid params: %v", err)}
	}
	return nil
}

func (s *Server) handleInitialize(req *jsonrpc2.Request) (any, error) {
	var params lsp.InitializeParams
	if req.Params != nil {
		if err := decodeParams(req, &params); err != nil {
			return nil, err
		}
	}
	root := uriToPath(params.RootURI)
	if root == "" {
		root = params.RootPath
	}
	s.mu.Lock()
	s.root = root
	s.mu.Unlock()
	if root != "" {
		s.logf("initialize: root=%s", root)
	}
	return lsp.InitializeResult{
		Capabilities: lsp.ServerCapabilities{
			TextDocumentSync: &lsp.TextDocumentSyncOptionsOrKind{
				Options: &lsp.TextDocumentSyncOptions{
					OpenClose: true,
					Change:    lsp.TDSKIncremental,
					Save:      &lsp.SaveOptions{},
				},
			},
		},
	}, nil
}

func (s *Server) handleDidOpen(req *jsonrpc2.Request) error {
	var params lsp.DidOpenTextDocumentParams
	if err := decodeParams(req, &params); err != nil {
		return err
	}
	item := params.TextDocument
	s.mu.Lock()
	doc, ok := s.docs[item.URI]
	if !ok {
		doc = &document{uri: item.URI, path: uriToPath(item.URI)}
		s.docs[item.URI] = doc
	}
	doc.languageID = item.LanguageID
	doc.version = item.Version
	doc.text = item.Text
	s.mu.Unlock()
	s.schedule(item.URI, s.debounce)
	return nil
}

func (s *Server) handleDidChange(req *jsonrpc2.Request) error {
	var params lsp.DidChangeTextDocumentParams
	if err := decodeParams(req, &params); err != nil {
		return err
	}
	uri := params.TextDocument.URI
	s.pubMu.Lock()
	defer s.pubMu.Unlock()
	s.mu.Lock()
	doc, ok := s.docs[uri]
	if !ok {
		s.mu.Unlock()
		s.logf("didChange: unknown document %s", uri)
		return nil
	}
	doc.text = applyChanges(doc.text, params.ContentChanges)
	doc.version = params.TextDocument.Version
	s.mu.Unlock()
	s.schedule(uri, s.debounce)
	return nil
}

// didSave checks right away, the buffer is stable.
func (s *Server) handleDidSave(req *jsonrpc2.Request) error {
	var params lsp.DidSaveTextDocumentParams
	if err := decodeParams(req, &params); err != nil {
		return err
	}
	s.schedule(params.TextDocument.URI, 0)
	return nil
}

func (s *Server) handleDidClose(req *jsonrpc2.Request) error {
	var params lsp.DidCloseTextDocumentParams
	if err := decodeParams(req, &params); err != nil {
		return err
	}
	uri := params.TextDocument.URI
	s.pubMu.Lock()
	defer s.pubMu.Unlock()
	s.mu.Lock()
	doc, ok := s.docs[uri]
	if ok {
		doc.stop()
		delete(s.docs, uri)
	}
	ctx := s.baseCtx
	s.mu.Unlock()
	if !ok {
		return nil
	}
	// клиент сам не чистит панель, шлём пустой список
	s.publish(ctx, lsp.PublishDiagnosticsParams{URI: uri, Diagnostics: []lsp.Diagnostic{}})
	return nil
}

// stopAll cancels every pending check.
func (s *Server) stopAll() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, doc := range s.docs {
		doc.stop()
	}
}

func (s *Server) publish(ctx context.Context, params lsp.PublishDiagnosticsParams) {
	s.mu.Lock()
	pub := s.publisher
	s.mu.Unlock()
	if pub == nil {
		return
	}
	if err := pub.Publish(ctx, params); err != nil {
		s.logf("publishDiagnostics %s: %v", params.URI, err)
	}
}

func (s *Server) logf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "lsp: "+format+"\n", args...)
}

type stdrwc struct{}

func (stdrwc) Read(p []byte) (int, error) {
	return os.Stdin.Read(p)
}

func (stdrwc) Write(p []byte) (int, error) {
	return os.Stdout.Write(p)
}

func (stdrwc) Close() error {
	if err := os.Stdin.Close(); err != nil {
		return err
	}
	return os.Stdout.Close()
}

// Stdio is the transport used by "synscan lsp".
func Stdio() io.ReadWriteCloser {
	return stdrwc{}
}
