package observer

import (
	"context"
	"encoding/json"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"github.com/akinfelami/pico-mdr/engine"
	"github.com/akinfelami/pico-mdr/render"
	"github.com/akinfelami/pico-mdr/status"
	"github.com/akinfelami/pico-mdr/system"
)

func newTestServer(t *testing.T) (*Server, *engine.Session, *status.Registry) {
	t.Helper()
	s := engine.NewSession(42)
	system.InitSession(s, system.DefaultInitOptions())
	reg := status.NewRegistry()
	reg.Ints.Get(status.SimFrames).Store(3)
	return NewServer("", s, render.NewScene(), reg, 20*time.Millisecond), s, reg
}

func getJSON(t *testing.T, url string, v any) {
	t.Helper()
	resp, err := http.Get(url)
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("GET %s: status %d", url, resp.StatusCode)
	}
	if ct := resp.Header.Get("Content-Type"); ct != "application/json" {
		t.Errorf("content type %q", ct)
	}
	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		t.Fatal(err)
	}
}

func TestSnapshotEndpoint(t *testing.T) {
	obs, s, _ := newTestServer(t)
	ts := httptest.NewServer(obs.Handler())
	defer ts.Close()

	var got map[string]any
	getJSON(t, ts.URL+"/snapshot", &got)

	if got["play"] != "start" {
		t.Errorf("play = %v", got["play"])
	}
	if int(got["bad_remaining"].(float64)) != s.BadRemaining {
		t.Errorf("bad_remaining = %v, want %d", got["bad_remaining"], s.BadRemaining)
	}
	metrics, ok := got["metrics"].(map[string]any)
	if !ok || metrics["sim.frames"] != float64(3) {
		t.Errorf("metrics = %v", got["metrics"])
	}
}

func TestFrameEndpoint(t *testing.T) {
	obs, s, _ := newTestServer(t)
	s.Update(func(s *engine.Session) { s.Play = engine.PlayPlaying })
	ts := httptest.NewServer(obs.Handler())
	defer ts.Close()

	var got struct {
		Width int         `json:"width"`
		Ops   []render.Op `json:"ops"`
	}
	getJSON(t, ts.URL+"/frame", &got)

	if got.Width != 640 {
		t.Errorf("width = %d", got.Width)
	}
	if len(got.Ops) == 0 || got.Ops[0].Kind != render.OpClear || got.Ops[len(got.Ops)-1].Kind != render.OpShow {
		t.Fatalf("draw list not framed by clear/show: %d ops", len(got.Ops))
	}
	found := false
	for _, op := range got.Ops {
		if op.Kind == render.OpText && op.Text == "Ocula" {
			found = true
		}
	}
	if !found {
		t.Error("title missing from draw list")
	}
}

func TestIndexAndMethods(t *testing.T) {
	obs, _, _ := newTestServer(t)
	ts := httptest.NewServer(obs.Handler())
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/")
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK || !strings.HasPrefix(resp.Header.Get("Content-Type"), "text/html") {
		t.Errorf("index: %d %s", resp.StatusCode, resp.Header.Get("Content-Type"))
	}

	resp, err = http.Post(ts.URL+"/snapshot", "application/json", nil)
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusMethodNotAllowed {
		t.Errorf("POST /snapshot: %d", resp.StatusCode)
	}

	resp, err = http.Get(ts.URL + "/missing")
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("GET /missing: %d", resp.StatusCode)
	}
}

func TestWebsocketStream(t *testing.T) {
	obs, s, reg := newTestServer(t)
	ts := httptest.NewServer(obs.Handler())
	defer ts.Close()

	url := "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatal(err)
	}

	_ = conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	var first map[string]any
	if err := conn.ReadJSON(&first); err != nil {
		t.Fatal(err)
	}
	if uint64(first["seed"].(float64)) != s.Seed {
		t.Errorf("seed = %v", first["seed"])
	}

	s.Update(func(s *engine.Session) { s.Frame = 99 })
	deadline := time.Now().Add(2 * time.Second)
	for {
		var next map[string]any
		if err := conn.ReadJSON(&next); err != nil {
			t.Fatal(err)
		}
		if next["frame"] == float64(99) {
			break
		}
		if time.Now().After(deadline) {
			t.Fatal("frame update never published")
		}
	}

	clients := reg.Ints.Get(status.ObserverClients)
	if clients.Load() != 1 {
		t.Errorf("clients = %d while connected", clients.Load())
	}

	_ = conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
	conn.Close()

	for clients.Load() != 0 {
		if time.Now().After(deadline.Add(2 * time.Second)) {
			t.Fatal("client never released")
		}
		time.Sleep(10 * time.Millisecond)
	}
}

func TestServeStopsOnCancel(t *testing.T) {
	obs, _, _ := newTestServer(t)
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatal(err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- obs.Serve(ctx, ln) }()

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Errorf("expected nil on cancel, got %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Serve did not return")
	}
}

func TestRunListenError(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatal(err)
	}
	defer ln.Close()

	obs := NewServer(ln.Addr().String(), engine.NewSession(1), nil, nil, 0)
	if err := obs.Run(context.Background()); err == nil {
		t.Fatal("expected listen error on a busy port")
	}
}
