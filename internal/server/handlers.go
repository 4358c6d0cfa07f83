package server

import (
	"encoding/json"
	"html"
	"html/template"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/hevedar/appsketch/internal/dsl"
	"github.com/hevedar/appsketch/internal/highlight"
	"github.com/hevedar/appsketch/internal/inspect"
	"github.com/hevedar/appsketch/internal/logging"
	"github.com/hevedar/appsketch/internal/render"
	"go.uber.org/zap"
)

// updateMessage is pushed to clients after each successful re-parse.
// The page script reloads on receipt; the counts let other consumers
// show a summary without another round trip.
type updateMessage struct {
	Type        string `json:"type"`
	Generation  int64  `json:"generation"`
	Screens     int    `json:"screens"`
	Diagnostics int    `json:"diagnostics"`
}

func (s *Server) routes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/", s.handlePage)
	mux.HandleFunc("/preview", s.handlePreview)
	mux.HandleFunc("/ws", s.handleWS)
	mux.HandleFunc("/api/result.json", s.handleResult)
	return mux
}

// pageView is the data the shell template renders
type pageView struct {
	Title       string
	File        string
	Summary     *inspect.Summary
	Diagnostics []dsl.Diagnostic
	Source      template.HTML
}

// handlePage serves the preview shell: summary header, highlighted
// source with flagged lines, and the rendered document in a frame
func (s *Server) handlePage(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	logging.LogHTTPRequest(r.RemoteAddr, r.Method, r.URL.Path)

	source, result := s.snapshot()
	view := pageView{
		Title:       s.config.Title,
		File:        s.config.Path,
		Summary:     inspect.Summarize(result),
		Diagnostics: result.Diagnostics,
		Source:      highlightSource(source, result.Diagnostics),
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := shellTemplate.Execute(w, view); err != nil {
		logging.Error("Failed to render preview shell", zap.Error(err))
	}
}

// handlePreview serves the standalone rendered document shown inside
// the shell's frame
func (s *Server) handlePreview(w http.ResponseWriter, r *http.Request) {
	logging.LogHTTPRequest(r.RemoteAddr, r.Method, r.URL.Path)

	_, result := s.snapshot()
	page, err := render.NewHTML(s.config.Title).Render(result)
	if err != nil {
		logging.Error("Failed to render preview document", zap.Error(err))
		http.Error(w, "failed to render preview", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write(page)
}

// handleResult serves the latest parse result as JSON
func (s *Server) handleResult(w http.ResponseWriter, r *http.Request) {
	logging.LogHTTPRequest(r.RemoteAddr, r.Method, r.URL.Path)

	_, result := s.snapshot()
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(result); err != nil {
		logging.Error("Failed to encode parse result", zap.Error(err))
	}
}

// handleWS upgrades the connection and attaches it to the hub
func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		logging.Error("WebSocket upgrade failed",
			zap.String("remote_addr", r.RemoteAddr),
			zap.Error(err),
		)
		return
	}

	c := &client{
		id:         uuid.New().String(),
		remoteAddr: r.RemoteAddr,
		conn:       conn,
		send:       make(chan []byte, 16),
	}

	select {
	case s.hub.register <- c:
	case <-s.hub.done:
		_ = conn.Close()
		return
	}

	go c.writePump()
	c.readPump(s.hub)
}

// highlightSource renders the document as colorized HTML, one list
// item per line. Lines carrying a diagnostic are flagged so the
// stylesheet can mark them.
func highlightSource(source string, diags []dsl.Diagnostic) template.HTML {
	flagged := make(map[int]bool, len(diags))
	for _, d := range diags {
		flagged[d.LineNumber] = true
	}

	lines := strings.Split(source, "\n")
	if n := len(lines); n > 0 && lines[n-1] == "" {
		lines = lines[:n-1]
	}

	var b strings.Builder
	b.WriteString("<ol class=\"source\">\n")
	for i, line := range lines {
		if flagged[i+1] {
			b.WriteString(`<li class="flagged">`)
		} else {
			b.WriteString("<li>")
		}

		pos := 0
		for _, tok := range highlight.TokenizeLine(line) {
			if tok.Start > pos {
				b.WriteString(html.EscapeString(line[pos:tok.Start]))
			}
			b.WriteString(`<span class="tok-`)
			b.WriteString(string(tok.Kind))
			b.WriteString(`">`)
			b.WriteString(html.EscapeString(tok.Text))
			b.WriteString("</span>")
			pos = tok.End
		}
		if pos < len(line) {
			b.WriteString(html.EscapeString(line[pos:]))
		}

		b.WriteString("</li>\n")
	}
	b.WriteString("</ol>")

	// Every text span above went through EscapeString, so the markup
	// is safe to inline.
	return template.HTML(b.String())
}

var shellTemplate = template.Must(template.New("shell").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
<style>
body { font-family: system-ui, Arial, sans-serif; margin: 0; background: #f4f5f7; color: #222; }
header { display: flex; align-items: baseline; gap: 1rem; padding: .75rem 1.5rem; background: #fff; border-bottom: 1px solid #dde2ea; }
header h1 { font-size: 1.1rem; margin: 0; }
header .file { color: #666; font-family: ui-monospace, monospace; font-size: .85rem; }
header .counts { color: #666; font-size: .85rem; margin-left: auto; }
.status { font-size: .75rem; border-radius: 10px; padding: .15rem .6rem; }
.status.live { background: #e2f5e8; color: #22733c; }
.status.offline { background: #fdeaea; color: #a33; }
main { display: grid; grid-template-columns: minmax(320px, 2fr) 3fr; gap: 1rem; padding: 1rem 1.5rem; height: calc(100vh - 60px); box-sizing: border-box; }
.pane { background: #fff; border: 1px solid #dde2ea; border-radius: 8px; overflow: auto; }
ol.source { font-family: ui-monospace, monospace; font-size: .85rem; line-height: 1.5; margin: .75rem 0; padding-left: 3.5rem; }
ol.source li { white-space: pre; }
ol.source li.flagged { background: #fdeaea; }
ol.source li::marker { color: #aab; }
.tok-keyword { color: #7b2d8b; font-weight: 600; }
.tok-string { color: #1a7f37; }
.tok-comment { color: #999; font-style: italic; }
.tok-attr { color: #953800; }
.tok-name { color: #0550ae; }
.tok-arrow { color: #cf222e; font-weight: 600; }
.tok-brace { color: #444; }
.tok-punct { color: #666; }
.diagnostics { margin: 0 1rem .75rem; padding: .5rem 1.5rem; background: #fff3f3; border: 1px solid #e0b4b4; border-radius: 6px; font-size: .85rem; }
iframe { width: 100%; height: 100%; border: 0; }
</style>
</head>
<body>
<header>
<h1>{{.Title}}</h1>
<span class="file">{{.File}}</span>
<span class="counts">{{.Summary.ScreenCount}} screens &middot; {{.Summary.ComponentCount}} components &middot; {{.Summary.LinkCount}} links</span>
<span id="status" class="status offline">connecting</span>
</header>
<main>
<div class="pane">
{{.Source}}
{{if .Diagnostics}}<ul class="diagnostics">
{{range .Diagnostics}}<li>line {{.LineNumber}}: {{.Message}}</li>
{{end}}</ul>
{{end}}</div>
<div class="pane">
<iframe src="/preview" title="preview"></iframe>
</div>
</main>
<script>
(function () {
	var status = document.getElementById("status");
	var delay = 1000;
	function connect() {
		var proto = location.protocol === "https:" ? "wss://" : "ws://";
		var ws = new WebSocket(proto + location.host + "/ws");
		ws.onopen = function () {
			status.className = "status live";
			status.textContent = "live";
			delay = 1000;
		};
		ws.onmessage = function () {
			location.reload();
		};
		ws.onclose = function () {
			status.className = "status offline";
			status.textContent = "reconnecting";
			setTimeout(connect, delay);
			delay = Math.min(delay * 2, 15000);
		};
	}
	connect();
})();
</script>
</body>
</html>`))
