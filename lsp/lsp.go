// Package lsp serves diagnostics and evaluated values to editors over the
// Language Server Protocol.
package lsp

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/tliron/commonlog"
	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"
	"github.com/tliron/glsp/server"

	_ "github.com/tliron/commonlog/simple"

	"github.com/SatelliteDish/Novel/compile"
	"github.com/SatelliteDish/Novel/diag"
	"github.com/SatelliteDish/Novel/eval"
	"github.com/SatelliteDish/Novel/syntax"
)

const lsName = "novel"

var log = commonlog.GetLogger("novel.lsp")

type Server struct {
	workspace *compile.Workspace
	handler   protocol.Handler
	server    *server.Server
	version   string
	workers   int
	opts      []syntax.Option
}

// NewServer prepares a language server. workers and opts are used for every
// compilation it runs.
func NewServer(version string, workers int, opts ...syntax.Option) *Server {
	s := &Server{
		version: version,
		workers: workers,
		opts:    opts,
	}

	s.handler = protocol.Handler{
		Initialize:            s.initialize,
		Initialized:           s.initialized,
		Shutdown:              s.shutdown,
		SetTrace:              s.setTrace,
		TextDocumentDidOpen:   s.textDocumentDidOpen,
		TextDocumentDidChange: s.textDocumentDidChange,
		TextDocumentDidClose:  s.textDocumentDidClose,
		TextDocumentDidSave:   s.textDocumentDidSave,
		TextDocumentHover:     s.textDocumentHover,
	}

	s.server = server.NewServer(&s.handler, lsName, false)

	return s
}

func (s *Server) RunStdio() error {
	return s.server.RunStdio()
}

func (s *Server) initialize(ctx *glsp.Context, params *protocol.InitializeParams) (any, error) {
	rootDir := getRootDir()
	if params.RootURI != nil && *params.RootURI != "" {
		if path, err := uriToPath(*params.RootURI); err == nil {
			rootDir = path
		}
	} else if params.RootPath != nil && *params.RootPath != "" {
		rootDir = *params.RootPath
	}

	s.workspace = compile.NewWorkspace(rootDir, s.workers, s.opts...)
	log.Infof("workspace root: %s", rootDir)

	capabilities := s.handler.CreateServerCapabilities()

	capabilities.TextDocumentSync = &protocol.TextDocumentSyncOptions{
		OpenClose: boolPtr(true),
		Change:    syncKindPtr(protocol.TextDocumentSyncKindFull),
		Save: &protocol.SaveOptions{
			IncludeText: boolPtr(true),
		},
	}
	capabilities.HoverProvider = true

	return protocol.InitializeResult{
		Capabilities: capabilities,
		ServerInfo: &protocol.InitializeResultServerInfo{
			Name:    lsName,
			Version: &s.version,
		},
	}, nil
}

// initialized compiles the whole workspace and publishes what it found.
func (s *Server) initialized(ctx *glsp.Context, params *protocol.InitializedParams) error {
	if err := s.workspace.ScanAll(context.Background()); err != nil {
		log.Errorf("scan workspace: %s", err)
	}
	for _, u := range s.workspace.Units() {
		s.publish(ctx, u)
	}
	return nil
}

func (s *Server) shutdown(ctx *glsp.Context) error {
	return nil
}

func (s *Server) setTrace(ctx *glsp.Context, params *protocol.SetTraceParams) error {
	protocol.SetTraceValue(params.Value)
	return nil
}

func (s *Server) textDocumentDidOpen(ctx *glsp.Context, params *protocol.DidOpenTextDocumentParams) error {
	path, err := uriToPath(params.TextDocument.URI)
	if err != nil {
		return nil
	}
	s.publish(ctx, s.workspace.UpdateFile(path, params.TextDocument.Text))
	return nil
}

func (s *Server) textDocumentDidChange(ctx *glsp.Context, params *protocol.DidChangeTextDocumentParams) error {
	path, err := uriToPath(params.TextDocument.URI)
	if err != nil {
		return nil
	}
	if len(params.ContentChanges) > 0 {
		change := params.ContentChanges[len(params.ContentChanges)-1]
		if textChange, ok := change.(protocol.TextDocumentContentChangeEventWhole); ok {
			s.publish(ctx, s.workspace.UpdateFile(path, textChange.Text))
		}
	}
	return nil
}

// textDocumentDidClose falls back to the file on disk. A buffer that was
// never saved is forgotten and its diagnostics are cleared.
func (s *Server) textDocumentDidClose(ctx *glsp.Context, params *protocol.DidCloseTextDocumentParams) error {
	path, err := uriToPath(params.TextDocument.URI)
	if err != nil {
		return nil
	}
	if err := s.workspace.ScanFile(path); err == nil {
		s.publish(ctx, s.workspace.GetFile(path))
		return nil
	}
	s.workspace.RemoveFile(path)
	ctx.Notify(protocol.ServerTextDocumentPublishDiagnostics, protocol.PublishDiagnosticsParams{
		URI:         params.TextDocument.URI,
		Diagnostics: []protocol.Diagnostic{},
	})
	return nil
}

func (s *Server) textDocumentDidSave(ctx *glsp.Context, params *protocol.DidSaveTextDocumentParams) error {
	path, err := uriToPath(params.TextDocument.URI)
	if err != nil {
		return nil
	}
	if params.Text != nil {
		s.publish(ctx, s.workspace.UpdateFile(path, *params.Text))
		return nil
	}
	if err := s.workspace.ScanFile(path); err != nil {
		log.Warningf("rescan %s: %s", path, err)
		return nil
	}
	s.publish(ctx, s.workspace.GetFile(path))
	return nil
}

// textDocumentHover shows the node under the cursor and what it evaluates
// to.
func (s *Server) textDocumentHover(ctx *glsp.Context, params *protocol.HoverParams) (*protocol.Hover, error) {
	path, err := uriToPath(params.TextDocument.URI)
	if err != nil {
		return nil, nil
	}
	u := s.workspace.GetFile(path)
	if u == nil {
		return nil, nil
	}

	offset := offsetAt(u.Source, params.Position)
	n := s.workspace.NodeAtPoint(path, offset)
	if n == nil {
		return nil, nil
	}

	rng := protocol.Range{
		Start: positionAt(u.Source, n.Token.Offset),
		End:   positionAt(u.Source, n.Token.End()),
	}
	return &protocol.Hover{
		Contents: protocol.MarkupContent{
			Kind:  protocol.MarkupKindMarkdown,
			Value: hoverText(n),
		},
		Range: &rng,
	}, nil
}

func hoverText(n *syntax.Node) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "**%s**\n\n", n.Kind)
	v, err := eval.Evaluate(n)
	var d diag.Diagnostic
	switch {
	case err == nil:
		fmt.Fprintf(&sb, "`%s`", v)
	case errors.As(err, &d):
		fmt.Fprintf(&sb, "_%s_", d.Kind)
	default:
		fmt.Fprintf(&sb, "_%s_", err)
	}
	return sb.String()
}

func (s *Server) publish(ctx *glsp.Context, u *compile.Unit) {
	if u == nil {
		return
	}
	ctx.Notify(protocol.ServerTextDocumentPublishDiagnostics, protocol.PublishDiagnosticsParams{
		URI:         pathToURI(u.Name),
		Diagnostics: toProtocolDiagnostics(u),
	})
}

func toProtocolDiagnostics(u *compile.Unit) []protocol.Diagnostic {
	all := u.Diagnostics.All()
	result := make([]protocol.Diagnostic, len(all))
	source := lsName
	severity := protocol.DiagnosticSeverityError
	for i, d := range all {
		result[i] = protocol.Diagnostic{
			Range:    diagnosticRange(u.Source, d.Position),
			Severity: &severity,
			Source:   &source,
			Message:  d.Kind.String(),
		}
	}
	return result
}

// diagnosticRange covers the character at offset, or is empty at the end of
// the source.
func diagnosticRange(src string, offset int) protocol.Range {
	start := positionAt(src, offset)
	end := start
	if offset < len(src) && src[offset] != '\n' {
		end.Character += protocol.UInteger(utf16Len(runeAt(src, offset)))
	}
	return protocol.Range{Start: start, End: end}
}

func uriToPath(uri string) (string, error) {
	if strings.HasPrefix(uri, "file://") {
		parsed, err := url.Parse(uri)
		if err != nil {
			return "", err
		}
		return filepath.Clean(parsed.Path), nil
	}
	return uri, nil
}

func pathToURI(path string) protocol.DocumentUri {
	if strings.Contains(path, "://") {
		return path
	}
	if abs, err := filepath.Abs(path); err == nil {
		path = abs
	}
	return (&url.URL{Scheme: "file", Path: filepath.ToSlash(path)}).String()
}

func boolPtr(b bool) *bool {
	return &b
}

func syncKindPtr(k protocol.TextDocumentSyncKind) *protocol.TextDocumentSyncKind {
	return &k
}

func getRootDir() string {
	dir, err := os.Getwd()
	if err != nil {
		return "."
	}
	return dir
}
