package pipeline

import (
	"io"
	"math"

	"github.com/charmbracelet/log"
)

func newTestLogger(w io.Writer) *log.Logger {
	return log.NewWithOptions(w, log.Options{Level: log.DebugLevel})
}

func nanValue() float64 { return math.NaN() }
