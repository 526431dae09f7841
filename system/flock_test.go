package system

import (
	"testing"

	"github.com/akinfelami/pico-mdr/component"
	"github.com/akinfelami/pico-mdr/vmath"
)

func checkFlockBounds(t *testing.T, boids []component.Boid, fs *FlockSettings, frame int) {
	t.Helper()
	for i := range boids {
		b := &boids[i]
		if s := b.Speed(); s < fs.MinSpeed || s > fs.MaxSpeed {
			t.Fatalf("frame %d agent %d: speed %v outside [%v, %v]", frame, i,
				vmath.ToFloat(s), vmath.ToFloat(fs.MinSpeed), vmath.ToFloat(fs.MaxSpeed))
		}
		if b.Group == component.ScoutGroup0 || b.Group == component.ScoutGroup1 {
			if b.Bias < fs.BiasIncrement || b.Bias > fs.MaxBias {
				t.Fatalf("frame %d agent %d: bias %d outside [%d, %d]", frame, i, b.Bias, fs.BiasIncrement, fs.MaxBias)
			}
		}
	}
}

func TestUpdateBoidsKeepsSpeedAndBiasInRange(t *testing.T) {
	fs := DefaultFlockSettings()
	for seed := uint64(1); seed <= 20; seed++ {
		rng := vmath.NewFastRand(seed)
		for _, n := range []int{1, 2, 5, 10} {
			boids := SpawnFlock(n, fs, rng)
			for frame := 0; frame < 400; frame++ {
				UpdateBoids(boids, fs, rng)
				checkFlockBounds(t, boids, fs, frame)
			}
		}
	}
}

func TestUpdateBoidsClampsExtremeVelocities(t *testing.T) {
	fs := DefaultFlockSettings()
	rng := vmath.NewFastRand(99)

	tests := []struct {
		name   string
		vx, vy vmath.Fix
	}{
		{"fast diagonal", vmath.FromInt(40), vmath.FromInt(-40)},
		{"fast axis", vmath.FromInt(-90), 0},
		{"slow", vmath.FromFloat(0.1), vmath.FromFloat(0.2)},
		{"one ulp", 1, 0},
		{"just above max", vmath.FromInt(6) + 1, 0},
		{"just below min", vmath.FromInt(3) - 1, 0},
		{"equal components", vmath.FromFloat(4.8), vmath.FromFloat(4.8)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			boids := []component.Boid{{
				X: vmath.FromInt(320), Y: vmath.FromInt(240),
				VX: tt.vx, VY: tt.vy,
				Bias: fs.BiasStart,
			}}
			UpdateBoids(boids, fs, rng)
			checkFlockBounds(t, boids, fs, 0)
		})
	}
}

func TestUpdateBoidsCoincidentAgents(t *testing.T) {
	fs := DefaultFlockSettings()
	rng := vmath.NewFastRand(7)

	boids := make([]component.Boid, 4)
	for i := range boids {
		boids[i] = component.Boid{
			X: vmath.FromInt(320), Y: vmath.FromInt(240),
			Group: i % 2, Bias: fs.BiasStart,
		}
	}

	UpdateBoids(boids, fs, rng)
	checkFlockBounds(t, boids, fs, 0)
	for i := range boids {
		x, y := boids[i].Pixel()
		if x < 300 || x > 340 || y < 220 || y > 260 {
			t.Errorf("agent %d jumped to (%d,%d)", i, x, y)
		}
	}
}

func TestUpdateBoidsEdgeTurn(t *testing.T) {
	fs := DefaultFlockSettings()
	rng := vmath.NewFastRand(3)

	// Heading left inside the left margin: the turn impulse reduces leftward speed
	boids := []component.Boid{{
		X: vmath.FromInt(50), Y: vmath.FromInt(240),
		VX: vmath.FromInt(-4), VY: 0,
		Group: component.ScoutGroup0, Bias: fs.BiasStart,
	}}
	UpdateBoids(boids, fs, rng)
	if boids[0].VX <= vmath.FromInt(-4) {
		t.Errorf("vx = %v, want turned right of -4", vmath.ToFloat(boids[0].VX))
	}
}

func TestUpdateBoidsDeterministic(t *testing.T) {
	fs := DefaultFlockSettings()
	run := func() []component.Boid {
		rng := vmath.NewFastRand(42)
		boids := SpawnFlock(6, fs, rng)
		for i := 0; i < 200; i++ {
			UpdateBoids(boids, fs, rng)
		}
		return boids
	}
	a, b := run(), run()
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("agent %d diverged: %+v vs %+v", i, a[i], b[i])
		}
	}
}

func TestBiasRatchet(t *testing.T) {
	fs := DefaultFlockSettings()

	b := component.Boid{Group: component.ScoutGroup0, Bias: fs.MaxBias, VX: vmath.FromInt(4)}
	applyBias(&b, fs)
	if b.Bias != fs.MaxBias {
		t.Errorf("group 0 moving right: bias %d, want capped %d", b.Bias, fs.MaxBias)
	}

	b = component.Boid{Group: component.ScoutGroup0, Bias: fs.BiasIncrement, VX: vmath.FromInt(-4)}
	applyBias(&b, fs)
	if b.Bias != fs.BiasIncrement {
		t.Errorf("group 0 moving left: bias %d, want floor %d", b.Bias, fs.BiasIncrement)
	}

	b = component.Boid{Group: component.ScoutGroup1, Bias: fs.BiasStart, VX: vmath.FromInt(-4)}
	applyBias(&b, fs)
	if b.Bias != fs.BiasStart+fs.BiasIncrement {
		t.Errorf("group 1 moving left: bias %d, want %d", b.Bias, fs.BiasStart+fs.BiasIncrement)
	}
	if b.VX <= vmath.FromInt(-4) {
		t.Errorf("group 1 blend should pull vx toward +1, got %v", vmath.ToFloat(b.VX))
	}

	// Group 2 blends toward -1 and leaves its bias alone
	b = component.Boid{Group: component.ScoutGroup2, Bias: fs.BiasStart, VX: vmath.FromInt(4)}
	applyBias(&b, fs)
	if b.Bias != fs.BiasStart {
		t.Errorf("group 2 bias changed to %d", b.Bias)
	}
	if b.VX >= vmath.FromInt(4) {
		t.Errorf("group 2 blend should pull vx toward -1, got %v", vmath.ToFloat(b.VX))
	}
}

func TestSpawnFlock(t *testing.T) {
	fs := DefaultFlockSettings()
	rng := vmath.NewFastRand(11)

	boids := SpawnFlock(5, fs, rng)
	if len(boids) != 5 {
		t.Fatalf("len = %d, want 5", len(boids))
	}
	for i, b := range boids {
		if b.Group != i%2 {
			t.Errorf("agent %d group %d, want %d", i, b.Group, i%2)
		}
		if x, y := b.Pixel(); x != 320 || y != 240 {
			t.Errorf("agent %d spawned at (%d,%d)", i, x, y)
		}
		if b.VX < vmath.FromInt(-3) || b.VX >= vmath.FromInt(3) {
			t.Errorf("agent %d vx %v out of spawn range", i, vmath.ToFloat(b.VX))
		}
	}

	if n := len(SpawnFlock(0, fs, rng)); n != 1 {
		t.Errorf("SpawnFlock(0) len = %d, want 1", n)
	}
	if n := len(SpawnFlock(50, fs, rng)); n != 10 {
		t.Errorf("SpawnFlock(50) len = %d, want 10", n)
	}
}
