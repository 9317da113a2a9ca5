package main

import (
	"fmt"
	"io"
	"time"

	"mofmt/internal/pipeline"
)

// printStageTimings prints the per-stage durations of a single input.
func printStageTimings(out io.Writer, timings pipeline.Timings) {
	if out == nil {
		return
	}
	labels := []struct {
		stage pipeline.Stage
		label string
	}{
		{pipeline.StageRead, "read"},
		{pipeline.StageFormat, "formatted"},
		{pipeline.StageVerify, "verified"},
		{pipeline.StageWrite, "written"},
	}
	for _, l := range labels {
		if !timings.Has(l.stage) {
			continue
		}
		if _, err := fmt.Fprintf(out, "%s %.1f ms\n", l.label, toMillis(timings.Duration(l.stage))); err != nil {
			panic(err)
		}
	}
	if _, err := fmt.Fprintf(out, "total %.1f ms\n", toMillis(timings.Sum(pipeline.StageRead, pipeline.StageFormat, pipeline.StageVerify, pipeline.StageWrite))); err != nil {
		panic(err)
	}
}

func toMillis(d time.Duration) float64 {
	return float64(d) / float64(time.Millisecond)
}
