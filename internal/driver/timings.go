package driver

import (
	"encoding/json"
	"fmt"

	"mofmt/internal/diag"
	"mofmt/internal/observ"
)

type timingPayload struct {
	Kind    string               `json:"kind"`
	Files   int                  `json:"files,omitempty"`
	TotalMS float64              `json:"total_ms"`
	Phases  []observ.PhaseReport `json:"phases"`
}

// TimingDiagnostic packs the timer report into an info diagnostic whose
// note carries the JSON payload, for machine-readable output.
func TimingDiagnostic(timer *observ.Timer, files int) (diag.Diagnostic, bool) {
	if timer == nil {
		return diag.Diagnostic{}, false
	}
	report := timer.Report()
	payload := timingPayload{
		Kind:    "format",
		Files:   files,
		TotalMS: report.TotalMS,
		Phases:  report.Phases,
	}
	data, err := json.Marshal(payload)
	if err != nil {
		return diag.Diagnostic{}, false
	}
	msg := fmt.Sprintf("timings (%s): total %.2f ms", payload.Kind, payload.TotalMS)
	if files > 0 {
		msg = fmt.Sprintf("%s, %d files", msg, files)
	}
	d := diag.New(diag.SevInfo, diag.ObsTimings, noSpan, msg)
	return d.WithNote(noSpan, string(data)), true
}
