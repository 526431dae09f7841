package render

import (
	"strings"
	"sync"
)

// OpKind names a recorded canvas call
type OpKind string

const (
	OpClear    OpKind = "clear"
	OpFillRect OpKind = "fill_rect"
	OpDrawRect OpKind = "draw_rect"
	OpHLine    OpKind = "hline"
	OpVLine    OpKind = "vline"
	OpText     OpKind = "text"
	OpShow     OpKind = "show"
)

// Op is one recorded draw call in framebuffer pixels
type Op struct {
	Kind  OpKind `json:"kind"`
	X     int    `json:"x,omitempty"`
	Y     int    `json:"y,omitempty"`
	W     int    `json:"w,omitempty"`
	H     int    `json:"h,omitempty"`
	Size  int    `json:"size,omitempty"`
	Color Color  `json:"color"`
	Text  string `json:"text,omitempty"`
}

// Recorder is a Canvas that keeps the draw list of the last frame
// Clear starts a new list; observers serve it as JSON for remote drawing
type Recorder struct {
	mu  sync.Mutex
	ops []Op
}

func NewRecorder() *Recorder {
	return &Recorder{ops: make([]Op, 0, 256)}
}

func (r *Recorder) add(op Op) {
	r.mu.Lock()
	r.ops = append(r.ops, op)
	r.mu.Unlock()
}

func (r *Recorder) Clear() {
	r.mu.Lock()
	r.ops = r.ops[:0]
	r.ops = append(r.ops, Op{Kind: OpClear, Color: Black})
	r.mu.Unlock()
}

func (r *Recorder) FillRect(x, y, w, h int, c Color) {
	r.add(Op{Kind: OpFillRect, X: x, Y: y, W: w, H: h, Color: c})
}

func (r *Recorder) DrawRect(x, y, w, h int, c Color) {
	r.add(Op{Kind: OpDrawRect, X: x, Y: y, W: w, H: h, Color: c})
}

func (r *Recorder) DrawHLine(x, y, w int, c Color) {
	r.add(Op{Kind: OpHLine, X: x, Y: y, W: w, Color: c})
}

func (r *Recorder) DrawVLine(x, y, h int, c Color) {
	r.add(Op{Kind: OpVLine, X: x, Y: y, H: h, Color: c})
}

func (r *Recorder) DrawText(x, y, size int, c Color, text string) {
	r.add(Op{Kind: OpText, X: x, Y: y, Size: size, Color: c, Text: text})
}

func (r *Recorder) Show() {
	r.add(Op{Kind: OpShow})
}

// Ops returns a copy of the current draw list
func (r *Recorder) Ops() []Op {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Op, len(r.ops))
	copy(out, r.ops)
	return out
}

// Texts returns every drawn string in order
func (r *Recorder) Texts() []string {
	var out []string
	for _, op := range r.Ops() {
		if op.Kind == OpText {
			out = append(out, op.Text)
		}
	}
	return out
}

// HasText reports whether any drawn string contains s
func (r *Recorder) HasText(s string) bool {
	for _, t := range r.Texts() {
		if strings.Contains(t, s) {
			return true
		}
	}
	return false
}

// Count returns how many ops of kind were recorded
func (r *Recorder) Count(kind OpKind) int {
	n := 0
	for _, op := range r.Ops() {
		if op.Kind == kind {
			n++
		}
	}
	return n
}
