package system

import (
	"log"

	"github.com/akinfelami/pico-mdr/component"
	"github.com/akinfelami/pico-mdr/engine"
	"github.com/akinfelami/pico-mdr/parameter"
)

// Agents whose touch the refinement handler honours, checked in this order
const (
	// RefineAgentPlain refines without feeding the counters
	RefineAgentPlain = 0
	// RefineAgentScoring also adds each refined value to its bin's four counters
	RefineAgentScoring = 1
)

// RefinedCell records one cell cleared by a confirm
type RefinedCell struct {
	Row   int `json:"row"`
	Col   int `json:"col"`
	Value int `json:"value"`
	Bin   int `json:"bin"`
}

// RefineResult describes what a confirm refined
// Agent is -1 and Cells empty when nothing happened
type RefineResult struct {
	Agent int
	Cells []RefinedCell
	Won   bool
}

// Refined reports whether any cell was refined
func (r RefineResult) Refined() bool {
	return len(r.Cells) > 0
}

// Bins returns the distinct bins triggered, in first-seen order
func (r RefineResult) Bins() []int {
	var seen [parameter.BinCount]bool
	bins := make([]int, 0, parameter.BinCount)
	for _, c := range r.Cells {
		if c.Bin < 0 || c.Bin >= parameter.BinCount || seen[c.Bin] {
			continue
		}
		seen[c.Bin] = true
		bins = append(bins, c.Bin)
	}
	return bins
}

// HandleCursorRefinement refines the bad cell under the cursor when an honoured agent touches it
// Every other bad cell the same agent touches this frame is refined with it; cells already refined are skipped
func HandleCursorRefinement(s *engine.Session) RefineResult {
	res := RefineResult{Agent: -1}
	if s.Play == engine.PlayWon {
		return res
	}

	row, col := s.Cursor.Row, s.Cursor.Col
	if !engine.InBounds(row, col) {
		return res
	}

	target := &s.Grid[row][col]
	if !target.Bad || target.Refined() {
		return res
	}

	var agent int
	switch {
	case target.TouchedBy(RefineAgentPlain):
		agent = RefineAgentPlain
	case target.TouchedBy(RefineAgentScoring):
		agent = RefineAgentScoring
	default:
		return res
	}

	res.Agent = agent
	res.Cells = append(res.Cells, refineCell(s, row, col, agent))

	for r := 0; r < parameter.Rows; r++ {
		for c := 0; c < parameter.Cols; c++ {
			cell := &s.Grid[r][c]
			if !cell.Bad || !cell.TouchedBy(agent) {
				continue
			}
			res.Cells = append(res.Cells, refineCell(s, r, c, agent))
		}
	}

	if s.BadRemaining <= 0 {
		s.BadRemaining = 0
		s.Play = engine.PlayWon
		res.Won = true
		log.Printf("refine: all bad cells cleared at frame %d", s.Frame)
	}
	return res
}

// refineCell zeroes one cell, updates the counters and starts its bin's box growing
func refineCell(s *engine.Session, row, col, agent int) RefinedCell {
	c := &s.Grid[row][col]
	rc := RefinedCell{Row: row, Col: col, Value: c.Number, Bin: c.Bin}

	if agent == RefineAgentScoring {
		s.Anims[c.Bin].Bin.AddAll(c.Number)
	}
	TriggerBox(&s.Anims[c.Bin])

	c.Number = 0
	c.State = component.CellRefined
	s.BadRemaining--
	s.RefinedTotal++
	return rc
}
