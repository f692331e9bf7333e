package perft

import (
	"time"

	"github.com/montanaflynn/stats"

	"github.com/hailam/chesscore/internal/board"
)

// Timing summarizes repeated perft runs of the same position.
type Timing struct {
	Runs   []time.Duration
	Mean   time.Duration
	Median time.Duration
	StdDev time.Duration
	Min    time.Duration
	Max    time.Duration
	NPS    float64 // nodes per second at the mean run time
}

// Measure runs perft repeat times and returns the node count of one run
// with timing statistics over all of them.
func (c *Counter) Measure(pos *board.Position, depth, repeat int) (uint64, Timing, error) {
	repeat = max(repeat, 1)
	var (
		nodes uint64
		t     Timing
	)
	for i := 0; i < repeat; i++ {
		start := time.Now()
		n, err := c.Count(pos, depth)
		if err != nil {
			return 0, Timing{}, err
		}
		t.Runs = append(t.Runs, time.Since(start))
		nodes = n
	}

	summary, err := summarize(t.Runs)
	if err != nil {
		return 0, Timing{}, err
	}
	if summary.Mean > 0 {
		summary.NPS = float64(nodes) / summary.Mean.Seconds()
	}
	return nodes, summary, nil
}

func summarize(runs []time.Duration) (Timing, error) {
	data := make(stats.Float64Data, len(runs))
	for i, d := range runs {
		data[i] = float64(d)
	}

	mean, err := data.Mean()
	if err != nil {
		return Timing{}, err
	}
	median, err := data.Median()
	if err != nil {
		return Timing{}, err
	}
	stddev, err := data.StandardDeviation()
	if err != nil {
		return Timing{}, err
	}
	lo, err := data.Min()
	if err != nil {
		return Timing{}, err
	}
	hi, err := data.Max()
	if err != nil {
		return Timing{}, err
	}

	return Timing{
		Runs:   runs,
		Mean:   time.Duration(mean),
		Median: time.Duration(median),
		StdDev: time.Duration(stddev),
		Min:    time.Duration(lo),
		Max:    time.Duration(hi),
	}, nil
}
