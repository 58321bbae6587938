package signal

import (
	"math"
	"testing"

	"github.com/cwbudde/algo-flange/dsp/core"
)

func TestWaveTableSineSweepStartsAtMinimum(t *testing.T) {
	const (
		length = 1000
		lo     = 10.0
		hi     = 90.0
	)

	table, err := WaveTable(ShapeSine, length, lo, hi, 3*math.Pi/2)
	if err != nil {
		t.Fatalf("WaveTable() error = %v", err)
	}

	if len(table) != length {
		t.Fatalf("len(table) = %d, want %d", len(table), length)
	}

	if math.Abs(table[0]-lo) > 1e-9 {
		t.Fatalf("table[0] = %g, want minimum %g", table[0], lo)
	}

	// Half a cycle later the sweep reaches its peak.
	if math.Abs(table[length/2]-hi) > 1e-9 {
		t.Fatalf("table[%d] = %g, want maximum %g", length/2, table[length/2], hi)
	}

	for i, v := range table {
		if v < lo-1e-9 || v > hi+1e-9 {
			t.Fatalf("table[%d] = %g outside [%g, %g]", i, v, lo, hi)
		}
	}
}

func TestWaveTableSineZeroPhaseStartsAtMidpoint(t *testing.T) {
	table, err := WaveTable(ShapeSine, 512, 0, 1, 0)
	if err != nil {
		t.Fatalf("WaveTable() error = %v", err)
	}

	if math.Abs(table[0]-0.5) > 1e-9 {
		t.Fatalf("table[0] = %g, want 0.5", table[0])
	}
}

func TestWaveTableTriangleShape(t *testing.T) {
	const length = 400

	table, err := WaveTable(ShapeTriangle, length, 0, 1, 0)
	if err != nil {
		t.Fatalf("WaveTable() error = %v", err)
	}

	if math.Abs(table[0]-0.5) > 1e-9 {
		t.Fatalf("table[0] = %g, want 0.5", table[0])
	}

	if math.Abs(table[length/4]-1) > 1e-9 {
		t.Fatalf("table[%d] = %g, want peak 1", length/4, table[length/4])
	}

	if math.Abs(table[3*length/4]-0) > 1e-9 {
		t.Fatalf("table[%d] = %g, want trough 0", 3*length/4, table[3*length/4])
	}
}

func TestWaveTableFullCycleContinuity(t *testing.T) {
	for _, shape := range []Shape{ShapeSine, ShapeTriangle} {
		table, err := WaveTable(shape, 1024, -1, 1, 3*math.Pi/2)
		if err != nil {
			t.Fatalf("WaveTable(%v) error = %v", shape, err)
		}

		step := math.Abs(table[0] - table[len(table)-1])
		if step > 4.0/float64(len(table))+1e-9 {
			t.Fatalf("%v table wraps discontinuously: |%g - %g| = %g",
				shape, table[len(table)-1], table[0], step)
		}
	}
}

func TestWaveTableValidation(t *testing.T) {
	if _, err := WaveTable(ShapeSine, 0, 0, 1, 0); err == nil {
		t.Fatal("WaveTable() expected error for zero length")
	}

	if _, err := WaveTable(ShapeSine, 16, math.NaN(), 1, 0); err == nil {
		t.Fatal("WaveTable() expected error for NaN range")
	}

	if _, err := WaveTable(Shape(99), 16, 0, 1, 0); err == nil {
		t.Fatal("WaveTable() expected error for unknown shape")
	}
}

func TestParseShape(t *testing.T) {
	tests := []struct {
		in      string
		want    Shape
		wantErr bool
	}{
		{"sine", ShapeSine, false},
		{"sin", ShapeSine, false},
		{"s", ShapeSine, false},
		{"triangle", ShapeTriangle, false},
		{"tri", ShapeTriangle, false},
		{"TRIANGLE", ShapeTriangle, false},
		{"", ShapeSine, true},
		{"square", ShapeSine, true},
	}

	for _, tt := range tests {
		got, err := ParseShape(tt.in)
		if (err != nil) != tt.wantErr {
			t.Fatalf("ParseShape(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
		}

		if err == nil && got != tt.want {
			t.Fatalf("ParseShape(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestGeneratorSine(t *testing.T) {
	g := NewGenerator(core.WithSampleRate(1000))

	out, err := g.Sine(250, 1, 8)
	if err != nil {
		t.Fatalf("Sine() error = %v", err)
	}

	// 250 Hz at 1 kHz: 0, 1, 0, -1, ...
	want := []float64{0, 1, 0, -1, 0, 1, 0, -1}
	for i := range want {
		if math.Abs(out[i]-want[i]) > 1e-9 {
			t.Fatalf("sample %d = %g, want %g", i, out[i], want[i])
		}
	}
}

func TestGeneratorImpulse(t *testing.T) {
	g := NewGenerator()

	out, err := g.Impulse(0.5, 16)
	if err != nil {
		t.Fatalf("Impulse() error = %v", err)
	}

	if out[0] != 0.5 {
		t.Fatalf("out[0] = %g, want 0.5", out[0])
	}

	for i := 1; i < len(out); i++ {
		if out[i] != 0 {
			t.Fatalf("out[%d] = %g, want 0", i, out[i])
		}
	}
}

func TestGeneratorWhiteNoiseDeterministic(t *testing.T) {
	coreOpts := []core.ProcessorOption{core.WithSampleRate(48000)}

	g1 := NewGeneratorWithOptions(coreOpts, WithSeed(42))
	g2 := NewGeneratorWithOptions(coreOpts, WithSeed(42))

	n1, err := g1.WhiteNoise(0.8, 256)
	if err != nil {
		t.Fatalf("WhiteNoise() error = %v", err)
	}

	n2, err := g2.WhiteNoise(0.8, 256)
	if err != nil {
		t.Fatalf("WhiteNoise() error = %v", err)
	}

	for i := range n1 {
		if n1[i] != n2[i] {
			t.Fatalf("sample %d differs between identical seeds: %g vs %g", i, n1[i], n2[i])
		}

		if n1[i] < -0.8 || n1[i] > 0.8 {
			t.Fatalf("sample %d = %g outside [-0.8, 0.8]", i, n1[i])
		}
	}
}
