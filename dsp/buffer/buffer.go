package buffer

// Scratch is a set of reusable float64 rows.
type Scratch struct {
	rows [][]float64
}

// Len returns the number of rows.
func (s *Scratch) Len() int {
	return len(s.rows)
}

// Row returns row i. The slice stays valid until the Scratch is put back.
func (s *Scratch) Row(i int) []float64 {
	return s.rows[i]
}

// Zero clears every row.
func (s *Scratch) Zero() {
	for _, r := range s.rows {
		clear(r)
	}
}

// reshape sets the row count and lengths, reusing backing arrays whose
// capacity suffices. Every row is zero afterwards.
func (s *Scratch) reshape(lengths []int) {
	if cap(s.rows) < len(lengths) {
		grown := make([][]float64, len(lengths))
		copy(grown, s.rows[:cap(s.rows)])
		s.rows = grown
	}
	s.rows = s.rows[:len(lengths)]

	for i, n := range lengths {
		n = max(n, 0)
		if cap(s.rows[i]) >= n {
			s.rows[i] = s.rows[i][:n]
			clear(s.rows[i])
		} else {
			s.rows[i] = make([]float64, n)
		}
	}
}
