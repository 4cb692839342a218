package export

import (
	"encoding/json"
	"io"

	"github.com/san-kum/dpend/internal/dynamo"
)

type ExportData struct {
	Integrator  string             `json:"integrator"`
	Params      map[string]float64 `json:"params"`
	Dt          float64            `json:"dt"`
	Duration    float64            `json:"duration"`
	Steps       int                `json:"steps"`
	EnergyDrift float64            `json:"energy_drift"`
	Times       []float64          `json:"times"`
	States      [][]float64        `json:"states"`
	Metrics     map[string]float64 `json:"metrics,omitempty"`
}

// WriteJSON writes the run as a single indented JSON document. States are
// packed as [θ1, θ2, ω1, ω2].
func WriteJSON(w io.Writer, meta Meta, result *dynamo.Result) error {
	data := ExportData{
		Integrator:  meta.Integrator,
		Params:      meta.Params.Map(),
		Dt:          meta.Dt,
		Duration:    meta.Duration,
		Steps:       result.StepsTaken,
		EnergyDrift: result.EnergyDrift,
		Times:       result.Times,
		States:      make([][]float64, len(result.States)),
		Metrics:     result.Metrics,
	}
	for i, s := range result.States {
		data.States[i] = s
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(data)
}
