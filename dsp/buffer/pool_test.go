package buffer

import (
	"sync"
	"testing"
)

func TestPoolGetShapesRows(t *testing.T) {
	p := NewPool()

	s := p.Get(3, 8, 0, -2)
	if s.Len() != 4 {
		t.Fatalf("Len() = %d, want 4", s.Len())
	}
	for i, want := range []int{3, 8, 0, 0} {
		if got := len(s.Row(i)); got != want {
			t.Fatalf("len(Row(%d)) = %d, want %d", i, got, want)
		}
		for j, v := range s.Row(i) {
			if v != 0 {
				t.Fatalf("Row(%d)[%d] = %v, want 0", i, j, v)
			}
		}
	}
	p.Put(s)
}

func TestPoolReuseIsZeroed(t *testing.T) {
	p := NewPool()

	s := p.Get(4, 4)
	s.Row(0)[0] = 42
	s.Row(1)[3] = 43
	p.Put(s)

	s2 := p.Get(2, 4)
	for i := 0; i < s2.Len(); i++ {
		for j, v := range s2.Row(i) {
			if v != 0 {
				t.Fatalf("reused Row(%d)[%d] = %v, want 0", i, j, v)
			}
		}
	}
	p.Put(s2)
}

func TestReshapeKeepsCapacity(t *testing.T) {
	var s Scratch
	s.reshape([]int{16, 16})
	first := &s.Row(0)[0]

	s.reshape([]int{8})
	if &s.Row(0)[0] != first {
		t.Fatal("reshape should reuse the backing array when capacity suffices")
	}

	s.reshape([]int{4, 4, 4})
	if s.Len() != 3 || len(s.Row(2)) != 4 {
		t.Fatalf("unexpected shape after growing row count: %d rows", s.Len())
	}
}

func TestScratchZero(t *testing.T) {
	p := NewPool()
	s := p.Get(2, 3)
	s.Row(0)[1] = 1
	s.Row(1)[2] = -1
	s.Zero()
	for i := 0; i < s.Len(); i++ {
		for j, v := range s.Row(i) {
			if v != 0 {
				t.Fatalf("Row(%d)[%d] = %v, want 0", i, j, v)
			}
		}
	}
}

func TestPoolConcurrentUse(t *testing.T) {
	p := NewPool()

	var wg sync.WaitGroup
	for g := range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for range 100 {
				s := p.Get(g+1, 32)
				for i := range s.Row(1) {
					if s.Row(1)[i] != 0 {
						t.Errorf("dirty scratch in goroutine %d", g)
						return
					}
					s.Row(1)[i] = float64(g)
				}
				p.Put(s)
			}
		}()
	}
	wg.Wait()
}

func TestPoolPutNilSafe(_ *testing.T) {
	p := NewPool()
	p.Put(nil)
}
