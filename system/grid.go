package system

import (
	"log"

	"github.com/akinfelami/pico-mdr/component"
	"github.com/akinfelami/pico-mdr/engine"
	"github.com/akinfelami/pico-mdr/parameter"
	"github.com/akinfelami/pico-mdr/vmath"
)

// InitOptions selects how a session is dealt
type InitOptions struct {
	// Agents is the flock size, clamped to [1, MaxAgentCount]
	Agents int

	// GroupBadNumbers clusters 8-connected bad cells so each cluster feeds one bin
	GroupBadNumbers bool

	Flock *FlockSettings
}

// DefaultInitOptions returns the stock two-agent, ungrouped deal
func DefaultInitOptions() InitOptions {
	return InitOptions{
		Agents: parameter.DefaultAgentCount,
		Flock:  DefaultFlockSettings(),
	}
}

// InitSession deals the grid and spawns the flock from the session RNG
// Draw order: grid (row-major), group bins, then agents
func InitSession(s *engine.Session, opts InitOptions) {
	if opts.Flock == nil {
		opts.Flock = DefaultFlockSettings()
	}

	s.BadRemaining = InitGrid(&s.Grid, s.RNG)
	if opts.GroupBadNumbers {
		groups := GroupBadNumbers(&s.Grid, s.RNG)
		log.Printf("grid: %d bad groups", groups)
	}
	s.BadSeen = s.BadRemaining
	s.RefinedTotal = 0
	s.Boids = SpawnFlock(opts.Agents, opts.Flock, s.RNG)
	s.Cursor = component.Cursor{}
	for i := range s.Anims {
		s.Anims[i] = component.BoxAnim{}
	}

	log.Printf("session: seed=%#x bad=%d agents=%d", s.Seed, s.BadRemaining, len(s.Boids))
}

// InitGrid fills every slot with a fresh classification and returns the bad count
func InitGrid(g *engine.Grid, rng *vmath.FastRand) int {
	bad := 0
	for row := 0; row < parameter.Rows; row++ {
		for col := 0; col < parameter.Cols; col++ {
			c := &g[row][col]
			dealCell(c, rng)
			c.X, c.Y = parameter.CellOrigin(row, col)
			c.Size = 1
			c.Idle()
			if c.Bad {
				bad++
			}
		}
	}
	return bad
}

// dealCell draws number, classification and bin for one cell
// r%10 is the digit and a low nibble above the threshold marks it bad; only bad cells draw a bin
func dealCell(c *component.Cell, rng *vmath.FastRand) {
	r := rng.Rand()
	c.Number = r % 10
	c.Bad = r&0xF > parameter.BadNibbleThreshold
	c.Bin = 0
	if c.Bad {
		c.Bin = rng.Rand() % parameter.BinCount
	}
	c.Group = component.NoGroup
}

// RegenerateCell redeals a refined cell in place and keeps the bad counters current
func RegenerateCell(s *engine.Session, row, col int) {
	c := &s.Grid[row][col]
	dealCell(c, s.RNG)
	if c.Bad {
		s.BadRemaining++
		s.BadSeen++
	}
}

type gridPos struct {
	row, col int
}

// GroupBadNumbers labels 8-connected clusters of bad cells and gives each cluster one bin
// Iterative flood fill with an explicit stack and visited set; returns the number of groups
func GroupBadNumbers(g *engine.Grid, rng *vmath.FastRand) int {
	var visited [parameter.Rows][parameter.Cols]bool
	stack := make([]gridPos, 0, parameter.Rows*parameter.Cols)
	groups := 0

	for row := 0; row < parameter.Rows; row++ {
		for col := 0; col < parameter.Cols; col++ {
			if visited[row][col] || !g[row][col].Bad {
				continue
			}

			id := groups
			bin := rng.Rand() % parameter.BinCount
			groups++

			visited[row][col] = true
			stack = append(stack[:0], gridPos{row, col})
			for len(stack) > 0 {
				p := stack[len(stack)-1]
				stack = stack[:len(stack)-1]

				c := &g[p.row][p.col]
				c.Group = id
				c.Bin = bin

				for dr := -1; dr <= 1; dr++ {
					for dc := -1; dc <= 1; dc++ {
						if dr == 0 && dc == 0 {
							continue
						}
						nr, nc := p.row+dr, p.col+dc
						if !engine.InBounds(nr, nc) || visited[nr][nc] || !g[nr][nc].Bad {
							continue
						}
						visited[nr][nc] = true
						stack = append(stack, gridPos{nr, nc})
					}
				}
			}
		}
	}
	return groups
}

// ResetFrame regenerates cells refined last frame and clears per-frame touch state
func ResetFrame(s *engine.Session) {
	for row := 0; row < parameter.Rows; row++ {
		for col := 0; col < parameter.Cols; col++ {
			c := &s.Grid[row][col]
			if c.Refined() {
				RegenerateCell(s, row, col)
			}
			c.Idle()
			c.X, c.Y = parameter.CellOrigin(row, col)
			c.Size = 1
		}
	}
	s.Frame++
	s.March = (s.March + 1) % parameter.MarchPeriod
}
