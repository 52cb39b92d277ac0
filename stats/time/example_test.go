package time_test

import (
	"fmt"

	timestats "github.com/cwbudde/algo-beamform/stats/time"
)

func ExampleCalculate() {
	s := timestats.Calculate([]float64{1, -1, 1, -3})
	fmt.Printf("rms=%.2f peak=%.0f@%d\n", s.RMS, s.Peak, s.PeakPos)

	// Output:
	// rms=1.73 peak=3@3
}

func ExampleWindow() {
	s, _ := timestats.Window([]float64{5, 0, 2, 0, 5}, 1, 4)
	fmt.Printf("peak=%.0f@%d\n", s.Peak, s.PeakPos)

	// Output:
	// peak=2@2
}
