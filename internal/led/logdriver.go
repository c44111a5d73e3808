package led

import (
	"github.com/rs/zerolog/log"
)

// Log discards frames, logging a compact summary (first pixel and average)
// at debug level. Useful headless.
type Log struct {
	Count int
}

func (d *Log) Write(rgb []byte) error {
	d.Count++
	n := len(rgb) / 3
	if n == 0 {
		return nil
	}
	var r, g, b int
	for i := 0; i < n; i++ {
		r += int(rgb[i*3])
		g += int(rgb[i*3+1])
		b += int(rgb[i*3+2])
	}
	log.Debug().
		Int("frame", d.Count).
		Ints("avg", []int{r / n, g / n, b / n}).
		Ints("first", []int{int(rgb[0]), int(rgb[1]), int(rgb[2])}).
		Msg("frame")
	return nil
}

func (d *Log) Close() error { return nil }
