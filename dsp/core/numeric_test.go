package core

import (
	"math"
	"testing"
)

func TestClamp(t *testing.T) {
	tests := []struct {
		name     string
		value    float64
		min, max float64
		want     float64
	}{
		{"inside", 0.5, 0, 1, 0.5},
		{"below", -2, 0, 1, 0},
		{"above", 3, 0, 1, 1},
		{"swapped bounds", 0.25, 1, 0, 0.25},
		{"negative range", -0.5, -0.95, 0.95, -0.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Clamp(tt.value, tt.min, tt.max)
			if got != tt.want {
				t.Fatalf("Clamp(%g, %g, %g) = %g, want %g", tt.value, tt.min, tt.max, got, tt.want)
			}
		})
	}
}

func TestNearlyEqual(t *testing.T) {
	if !NearlyEqual(1, 1+1e-13, 1e-12) {
		t.Fatal("NearlyEqual() = false for values within eps")
	}

	if NearlyEqual(1, 1.1, 1e-12) {
		t.Fatal("NearlyEqual() = true for values outside eps")
	}

	if !NearlyEqual(0, 0, 0) {
		t.Fatal("NearlyEqual() = false for exact zeros")
	}
}

func TestFlushDenormals(t *testing.T) {
	if got := FlushDenormals(1e-31); got != 0 {
		t.Fatalf("FlushDenormals(1e-31) = %g, want 0", got)
	}

	if got := FlushDenormals(1e-20); got != 1e-20 {
		t.Fatalf("FlushDenormals(1e-20) = %g, want unchanged", got)
	}

	if got := FlushDenormals(-1e-31); got != 0 {
		t.Fatalf("FlushDenormals(-1e-31) = %g, want 0", got)
	}
}

func TestLinearToDB(t *testing.T) {
	if got := LinearToDB(10); !NearlyEqual(got, 20, 1e-12) {
		t.Fatalf("LinearToDB(10) = %g, want 20", got)
	}

	if got := LinearToDB(1); !NearlyEqual(got, 0, 1e-12) {
		t.Fatalf("LinearToDB(1) = %g, want 0", got)
	}

	if got := LinearToDB(0); !math.IsInf(got, -1) {
		t.Fatalf("LinearToDB(0) = %g, want -Inf", got)
	}

	if got := LinearToDB(-1); !math.IsNaN(got) {
		t.Fatalf("LinearToDB(-1) = %g, want NaN", got)
	}
}
