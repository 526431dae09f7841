// Package observer serves session snapshots over HTTP and streams them to websocket clients.
package observer

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/akinfelami/pico-mdr/engine"
	"github.com/akinfelami/pico-mdr/parameter"
	"github.com/akinfelami/pico-mdr/render"
	"github.com/akinfelami/pico-mdr/status"
)

// SnapshotSource is anything that can produce a consistent session copy
type SnapshotSource interface {
	Snapshot() engine.Snapshot
}

// Server is the read-only observer endpoint
// Every route reads snapshots; nothing here mutates the session
type Server struct {
	addr         string
	src          SnapshotSource
	scene        *render.Scene
	reg          *status.Registry
	publishEvery time.Duration

	router *mux.Router
}

// NewServer builds the routes; scene renders /frame and may be shared with the terminal
func NewServer(addr string, src SnapshotSource, scene *render.Scene, reg *status.Registry, publishEvery time.Duration) *Server {
	if scene == nil {
		scene = render.NewScene()
	}
	if reg == nil {
		reg = status.NewRegistry()
	}
	if publishEvery <= 0 {
		publishEvery = parameter.ObserverPublishInterval
	}

	s := &Server{
		addr:         addr,
		src:          src,
		scene:        scene,
		reg:          reg,
		publishEvery: publishEvery,
		router:       mux.NewRouter(),
	}
	s.router.HandleFunc("/", s.serveIndex).Methods(http.MethodGet)
	s.router.HandleFunc("/snapshot", s.serveSnapshot).Methods(http.MethodGet)
	s.router.HandleFunc("/frame", s.serveFrame).Methods(http.MethodGet)
	s.router.HandleFunc("/ws", s.serveWebsocket)
	return s
}

// Handler exposes the router for embedding and tests
func (s *Server) Handler() http.Handler {
	return s.router
}

// Run serves until ctx ends; only a listener failure is returned
func (s *Server) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.addr)
	if err != nil {
		return fmt.Errorf("observer listen %s: %w", s.addr, err)
	}
	return s.Serve(ctx, ln)
}

// Serve runs on an existing listener
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:           s.router,
		ReadHeaderTimeout: 5 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}

	errs := make(chan error, 1)
	go func() {
		errs <- srv.Serve(ln)
	}()
	log.Printf("observer: serving on %s", ln.Addr())

	select {
	case err := <-errs:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("observer serve: %w", err)
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
		<-errs
		return nil
	}
}

// snapshot copies the session and attaches the current metrics
func (s *Server) snapshot() engine.Snapshot {
	snap := s.src.Snapshot()
	snap.Metrics = s.reg.Export()
	return snap
}

func (s *Server) serveSnapshot(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, s.snapshot())
}

// serveFrame returns the draw list of the current snapshot, for remote canvases
func (s *Server) serveFrame(w http.ResponseWriter, r *http.Request) {
	snap := s.src.Snapshot()
	rec := render.NewRecorder()
	s.scene.Draw(&snap, rec)
	writeJSON(w, struct {
		Frame  uint64      `json:"frame"`
		Width  int         `json:"width"`
		Height int         `json:"height"`
		Ops    []render.Op `json:"ops"`
	}{
		Frame:  snap.Frame,
		Width:  parameter.ScreenWidth,
		Height: parameter.ScreenHeight,
		Ops:    rec.Ops(),
	})
}

func (s *Server) serveIndex(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write([]byte(indexPage))
}

func (s *Server) serveWebsocket(w http.ResponseWriter, r *http.Request) {
	cli, err := newClient(w, r, s.snapshot, s.publishEvery)
	if err != nil {
		log.Printf("observer: upgrade: %v", err)
		return
	}

	clients := s.reg.Ints.Get(status.ObserverClients)
	clients.Add(1)
	defer clients.Add(-1)

	if err := cli.Sync(r.Context()); err != nil && !isClosure(err) {
		log.Printf("observer: client %s: %v", r.RemoteAddr, err)
	}
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

const indexPage = `<!doctype html>
<html>
<head><title>pico-mdr observer</title></head>
<body style="background:#000;color:#0ff;font-family:monospace">
<h1>MACRODATA REFINEMENT</h1>
<pre id="status">connecting...</pre>
<ul>
<li><a href="/snapshot">/snapshot</a></li>
<li><a href="/frame">/frame</a></li>
</ul>
<script>
const out = document.getElementById("status");
const ws = new WebSocket("ws://" + location.host + "/ws");
ws.onmessage = (ev) => {
  const s = JSON.parse(ev.data);
  out.textContent = "frame " + s.frame + "  " + s.play + "  " + s.progress + "% complete  bad " + s.bad_remaining;
};
ws.onclose = () => { out.textContent += "\ndisconnected"; };
</script>
</body>
</html>
`
