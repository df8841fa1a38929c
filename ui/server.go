// Package ui serves a browser playground for Novel expressions and the
// compiled units of a workspace.
package ui

import (
	"bytes"
	"embed"
	"encoding/json"
	"fmt"
	"html/template"
	"io/fs"
	"mime"
	"net/http"
	"os"
	"strings"

	"github.com/tliron/commonlog"

	"github.com/SatelliteDish/Novel/compile"
	"github.com/SatelliteDish/Novel/format"
	"github.com/SatelliteDish/Novel/syntax"
)

//go:embed templates
var embeddedFS embed.FS

var log = commonlog.GetLogger("novel.ui")

type Server struct {
	workspace  *compile.Workspace
	opts       []syntax.Option
	mux        *http.ServeMux
	templateFS fs.FS
	funcMap    template.FuncMap
}

// EvalRequest is the body of a JSON POST to /eval.
type EvalRequest struct {
	Source string `json:"source"`
	Force  bool   `json:"force"`
}

// NewServer builds the playground. ws may be nil, in which case the unit
// pages report that no workspace is loaded.
func NewServer(ws *compile.Workspace, opts ...syntax.Option) (*Server, error) {
	templateFS := overlayFS("ui/templates", mustSub(embeddedFS, "templates"))

	funcMap := template.FuncMap{
		"text": func(r *format.Report) string {
			var buf bytes.Buffer
			format.NewLineEncoder(&buf).Encode(r)
			return buf.String()
		},
	}

	if _, err := template.New("").Funcs(funcMap).ParseFS(templateFS, "*.html"); err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}

	s := &Server{
		workspace:  ws,
		opts:       opts,
		mux:        http.NewServeMux(),
		templateFS: templateFS,
		funcMap:    funcMap,
	}

	s.mux.HandleFunc("POST /eval", s.handleEval)
	s.mux.HandleFunc("GET /grammar", s.handleGrammar)
	s.mux.HandleFunc("GET /u/{path...}", s.handleUnit)
	s.mux.HandleFunc("GET /", s.handleIndex)

	return s, nil
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

func (s *Server) render(w http.ResponseWriter, name string, data any) {
	tmpl, err := template.New("").Funcs(s.funcMap).ParseFS(s.templateFS, "*.html")
	if err != nil {
		http.Error(w, "template error: "+err.Error(), http.StatusInternalServerError)
		return
	}
	if err := tmpl.ExecuteTemplate(w, name, data); err != nil {
		log.Warningf("render %s: %s", name, err)
	}
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, r *format.Report) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := format.NewJSONEncoder(w).Encode(r); err != nil {
		log.Warningf("encode report: %s", err)
	}
}

func wantsJSON(r *http.Request) bool {
	return r.Header.Get("Accept") == "application/json"
}

// evaluate compiles and evaluates one playground buffer.
func (s *Server) evaluate(req EvalRequest) *format.Report {
	u := compile.Compile("playground", req.Source, s.opts...)
	return format.UnitReport(u).WithValue(u.Evaluate(req.Force))
}

func (s *Server) handleEval(w http.ResponseWriter, r *http.Request) {
	var req EvalRequest

	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mediaType == "application/json" {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid JSON: "+err.Error(), http.StatusBadRequest)
			return
		}
		s.writeJSON(w, http.StatusOK, s.evaluate(req))
		return
	}

	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form data: "+err.Error(), http.StatusBadRequest)
		return
	}
	req.Source = r.FormValue("source")
	req.Force = r.FormValue("force") != ""

	report := s.evaluate(req)
	if wantsJSON(r) {
		s.writeJSON(w, http.StatusOK, report)
		return
	}
	s.render(w, "index.html", indexData{
		Source: req.Source,
		Force:  req.Force,
		Report: report,
		Units:  s.units(),
	})
}

func (s *Server) handleGrammar(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	fmt.Fprint(w, syntax.GrammarSource())
}

func (s *Server) handleUnit(w http.ResponseWriter, r *http.Request) {
	if s.workspace == nil {
		http.Error(w, "no workspace loaded", http.StatusNotFound)
		return
	}
	path := r.PathValue("path")
	u := s.workspace.GetFile(path)
	if u == nil && !strings.HasPrefix(path, "/") {
		u = s.workspace.GetFile("/" + path)
	}
	if u == nil {
		http.Error(w, "unit not found", http.StatusNotFound)
		return
	}

	report := format.UnitReport(u).WithValue(u.Evaluate(false))
	if wantsJSON(r) {
		s.writeJSON(w, http.StatusOK, report)
		return
	}
	s.render(w, "unit.html", report)
}

type indexData struct {
	Source string
	Force  bool
	Report *format.Report
	Units  []unitSummary
}

type unitSummary struct {
	Name        string
	Diagnostics int
}

func (s *Server) units() []unitSummary {
	if s.workspace == nil {
		return nil
	}
	var result []unitSummary
	for _, u := range s.workspace.Units() {
		result = append(result, unitSummary{Name: u.Name, Diagnostics: u.Diagnostics.Len()})
	}
	return result
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}

	data := indexData{Units: s.units()}
	if src := r.URL.Query().Get("source"); src != "" {
		data.Source = src
		data.Report = s.evaluate(EvalRequest{Source: src})
	}
	s.render(w, "index.html", data)
}

func mustSub(fsys fs.FS, dir string) fs.FS {
	sub, err := fs.Sub(fsys, dir)
	if err != nil {
		panic(err)
	}
	return sub
}

// overlayFSType prefers files on disk over the embedded ones so templates
// can be edited without rebuilding.
type overlayFSType struct {
	primary   fs.FS
	secondary fs.FS
}

func overlayFS(primaryPath string, secondary fs.FS) fs.FS {
	return &overlayFSType{
		primary:   os.DirFS(primaryPath),
		secondary: secondary,
	}
}

func (o *overlayFSType) Open(name string) (fs.File, error) {
	f, err := o.primary.Open(name)
	if err == nil {
		return f, nil
	}
	return o.secondary.Open(name)
}

func (o *overlayFSType) ReadDir(name string) ([]fs.DirEntry, error) {
	entries := make(map[string]fs.DirEntry)

	if rd, ok := o.secondary.(fs.ReadDirFS); ok {
		if list, err := rd.ReadDir(name); err == nil {
			for _, e := range list {
				entries[e.Name()] = e
			}
		}
	}

	if rd, ok := o.primary.(fs.ReadDirFS); ok {
		if list, err := rd.ReadDir(name); err == nil {
			for _, e := range list {
				entries[e.Name()] = e
			}
		}
	}

	result := make([]fs.DirEntry, 0, len(entries))
	for _, e := range entries {
		result = append(result, e)
	}
	return result, nil
}
