package system

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/akinfelami/pico-mdr/component"
	"github.com/akinfelami/pico-mdr/engine"
)

// quietSession returns a dealt session with every cell idle and good
func quietSession() *engine.Session {
	s := engine.NewSession(42)
	InitSession(s, DefaultInitOptions())
	for row := range s.Grid {
		for col := range s.Grid[row] {
			s.Grid[row][col].Bad = false
			s.Grid[row][col].Idle()
		}
	}
	s.BadRemaining = 10
	s.BadSeen = 10
	s.Play = engine.PlayPlaying
	return s
}

func placeBad(s *engine.Session, row, col, number, bin, agent int) {
	c := &s.Grid[row][col]
	c.Bad = true
	c.Number = number
	c.Bin = bin
	if agent >= 0 {
		c.Touch(agent)
	}
}

func TestHandleCursorRefinement(t *testing.T) {
	Convey("Given agent 1 touching bad cell (2,3) with value 7 in bin 1", t, func() {
		s := quietSession()
		placeBad(s, 2, 3, 7, 1, 1)
		s.Cursor = component.Cursor{Row: 2, Col: 3}
		So(s.Anims[1].State, ShouldEqual, component.AnimIdle)

		Convey("When the cursor confirms", func() {
			res := HandleCursorRefinement(s)

			Convey("The cell is refined and scored into bin 1", func() {
				So(res.Agent, ShouldEqual, 1)
				So(res.Cells, ShouldHaveLength, 1)
				So(res.Bins(), ShouldResemble, []int{1})
				So(s.Grid[2][3].Number, ShouldEqual, 0)
				So(s.Grid[2][3].Refined(), ShouldBeTrue)
				So(s.BadRemaining, ShouldEqual, 9)
				So(s.Anims[1].Bin, ShouldResemble, component.Bin{Woe: 7, Frolic: 7, Dread: 7, Malice: 7})
				So(s.Anims[1].State, ShouldEqual, component.AnimGrowing)
			})

			Convey("A second confirm in the same frame changes nothing", func() {
				again := HandleCursorRefinement(s)
				So(again.Refined(), ShouldBeFalse)
				So(s.BadRemaining, ShouldEqual, 9)
				So(s.Anims[1].Bin.Woe, ShouldEqual, 7)
				So(s.RefinedTotal, ShouldEqual, 1)
			})
		})
	})

	Convey("Given agent 0 touching several cells", t, func() {
		s := quietSession()
		placeBad(s, 2, 3, 5, 2, 0)
		placeBad(s, 4, 9, 8, 0, 0)
		placeBad(s, 6, 1, 3, 3, 1)
		s.Grid[1][1].Touch(0)
		s.Grid[1][1].Number = 4
		s.Cursor = component.Cursor{Row: 2, Col: 3}

		res := HandleCursorRefinement(s)

		Convey("Every bad cell touched by agent 0 is refined without scoring", func() {
			So(res.Agent, ShouldEqual, 0)
			So(res.Cells, ShouldHaveLength, 2)
			So(res.Bins(), ShouldResemble, []int{2, 0})
			So(s.Grid[4][9].Refined(), ShouldBeTrue)
			So(s.BadRemaining, ShouldEqual, 8)
			So(s.Anims[2].Bin, ShouldResemble, component.Bin{})
			So(s.Anims[2].State, ShouldEqual, component.AnimGrowing)
			So(s.Anims[0].State, ShouldEqual, component.AnimGrowing)
		})

		Convey("Good cells and other agents' cells are left alone", func() {
			So(s.Grid[1][1].Number, ShouldEqual, 4)
			So(s.Grid[1][1].Refined(), ShouldBeFalse)
			So(s.Grid[6][1].TouchedBy(1), ShouldBeTrue)
			So(s.Anims[3].State, ShouldEqual, component.AnimIdle)
		})
	})

	Convey("Given a cursor that cannot refine", t, func() {
		s := quietSession()

		Convey("A good cell is a no-op", func() {
			s.Grid[0][0].Touch(0)
			res := HandleCursorRefinement(s)
			So(res.Refined(), ShouldBeFalse)
			So(res.Agent, ShouldEqual, -1)
		})

		Convey("An untouched bad cell is a no-op", func() {
			placeBad(s, 0, 0, 9, 0, -1)
			So(HandleCursorRefinement(s).Refined(), ShouldBeFalse)
			So(s.BadRemaining, ShouldEqual, 10)
		})

		Convey("A bad cell touched only by agent 2 is a no-op", func() {
			placeBad(s, 0, 0, 9, 0, 2)
			So(HandleCursorRefinement(s).Refined(), ShouldBeFalse)
		})

		Convey("An out of range cursor is a no-op", func() {
			placeBad(s, 0, 0, 9, 0, 0)
			s.Cursor = component.Cursor{Row: -1, Col: 99}
			So(HandleCursorRefinement(s).Refined(), ShouldBeFalse)
			So(s.BadRemaining, ShouldEqual, 10)
		})
	})

	Convey("Given the last bad cell under the cursor", t, func() {
		s := quietSession()
		s.BadRemaining = 1
		placeBad(s, 3, 3, 2, 1, 0)
		s.Cursor = component.Cursor{Row: 3, Col: 3}

		res := HandleCursorRefinement(s)

		Convey("The session is won and further confirms are ignored", func() {
			So(res.Won, ShouldBeTrue)
			So(s.Play, ShouldEqual, engine.PlayWon)
			So(s.BadRemaining, ShouldEqual, 0)

			placeBad(s, 3, 4, 2, 1, 0)
			s.Cursor.Col = 4
			So(HandleCursorRefinement(s).Refined(), ShouldBeFalse)
		})
	})
}

func TestRefinedCellRegeneratesNextFrame(t *testing.T) {
	s := engine.NewSession(8)
	InitSession(s, DefaultInitOptions())
	s.Play = engine.PlayPlaying

	// Clear the grid of bad cells except the target so counts are exact
	for row := range s.Grid {
		for col := range s.Grid[row] {
			s.Grid[row][col].Bad = false
		}
	}
	placeBad(s, 2, 3, 7, 1, 1)
	s.BadRemaining = countBadUnrefined(&s.Grid)
	s.BadSeen = s.BadRemaining
	s.Cursor = component.Cursor{Row: 2, Col: 3}

	res := HandleCursorRefinement(s)
	if !res.Won || s.BadRemaining != 0 {
		t.Fatalf("refine result %+v, remaining %d", res, s.BadRemaining)
	}

	ResetFrame(s)
	if s.Grid[2][3].Refined() {
		t.Error("cell still refined after reset")
	}
	if s.BadRemaining != countBadUnrefined(&s.Grid) {
		t.Errorf("BadRemaining %d, grid has %d", s.BadRemaining, countBadUnrefined(&s.Grid))
	}
}
