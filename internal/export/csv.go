package export

import (
	"encoding/csv"
	"io"
	"strconv"

	"github.com/san-kum/dpend/internal/dynamo"
	"github.com/san-kum/dpend/internal/pendulum"
)

var csvHeader = []string{"time", "theta1", "theta2", "omega1", "omega2", "x2", "y2", "energy"}

// WriteCSV writes one row per recorded sample: the state, the second bob's
// position and the total energy.
func WriteCSV(w io.Writer, meta Meta, result *dynamo.Result) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return err
	}

	row := make([]string, len(csvHeader))
	for i, x := range result.States {
		s, err := pendulum.StateFromVector(x)
		if err != nil {
			return err
		}
		pos := pendulum.BobPositions(s, meta.Params)

		row[0] = formatFloat(result.Times[i])
		row[1] = formatFloat(s.Theta1)
		row[2] = formatFloat(s.Theta2)
		row[3] = formatFloat(s.Omega1)
		row[4] = formatFloat(s.Omega2)
		row[5] = formatFloat(pos.Bob2.X)
		row[6] = formatFloat(pos.Bob2.Y)
		row[7] = formatFloat(pendulum.Energy(s, meta.Params))

		if err := cw.Write(row); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', 9, 64)
}
