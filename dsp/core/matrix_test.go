package core

import (
	"errors"
	"testing"
)

func TestNewMatrixValidation(t *testing.T) {
	for _, dims := range [][2]int{{0, 1}, {1, 0}, {-1, 3}} {
		if _, err := NewMatrix(dims[0], dims[1]); !errors.Is(err, ErrInvalidConfiguration) {
			t.Fatalf("NewMatrix(%d,%d) err = %v, want ErrInvalidConfiguration", dims[0], dims[1], err)
		}
	}
}

func TestMatrixRowAliasesStorage(t *testing.T) {
	m, err := NewMatrix(2, 3)
	if err != nil {
		t.Fatal(err)
	}
	m.Row(1)[2] = 7
	if got := m.At(1, 2); got != 7 {
		t.Fatalf("At(1,2) = %v, want 7", got)
	}
	if cap(m.Row(0)) != 3 {
		t.Fatalf("row capacity leaks into next row: cap=%d", cap(m.Row(0)))
	}
}

func TestMatrixFromRows(t *testing.T) {
	m, err := MatrixFromRows([][]float64{{1, 2}, {3, 4}, {5, 6}})
	if err != nil {
		t.Fatal(err)
	}
	if m.Rows() != 3 || m.Cols() != 2 {
		t.Fatalf("shape = %dx%d, want 3x2", m.Rows(), m.Cols())
	}
	col := m.Col(1)
	if col[0] != 2 || col[1] != 4 || col[2] != 6 {
		t.Fatalf("Col(1) = %v", col)
	}
}

func TestMatrixFromRaggedRows(t *testing.T) {
	_, err := MatrixFromRows([][]float64{{1, 2}, {3}})
	if !errors.Is(err, ErrInvalidConfiguration) {
		t.Fatalf("err = %v, want ErrInvalidConfiguration", err)
	}
	if _, err := MatrixFromRows(nil); !errors.Is(err, ErrInvalidConfiguration) {
		t.Fatalf("empty err = %v, want ErrInvalidConfiguration", err)
	}
}

func TestMatrixCloneAndEqual(t *testing.T) {
	m, _ := MatrixFromRows([][]float64{{1, 2}, {3, 4}})
	c := m.Clone()
	if !m.Equal(c) {
		t.Fatal("clone not equal to source")
	}
	c.Set(0, 0, -1)
	if m.Equal(c) {
		t.Fatal("clone shares storage with source")
	}
	if m.At(0, 0) != 1 {
		t.Fatalf("source mutated: %v", m.At(0, 0))
	}
}

func TestMatrixAtPanicsOutOfRange(t *testing.T) {
	m, _ := NewMatrix(1, 1)
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic")
		}
	}()
	_ = m.At(1, 0)
}
