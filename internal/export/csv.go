package export

import (
	"encoding/csv"
	"io"
	"strconv"

	"github.com/san-kum/slopefield/internal/flow"
)

// WriteCSV writes one row per trail sample: segment id, index within the
// segment, position and radius.
func WriteCSV(w io.Writer, segments []*flow.Segment) error {
	cw := csv.NewWriter(w)

	if err := cw.Write([]string{"segment", "index", "x", "y", "z", "radius"}); err != nil {
		return err
	}

	for _, seg := range segments {
		id := strconv.FormatUint(uint64(seg.ID()), 10)
		for i, s := range seg.Samples() {
			row := []string{
				id,
				strconv.Itoa(i),
				strconv.FormatFloat(s.Pos[0], 'f', 6, 64),
				strconv.FormatFloat(s.Pos[1], 'f', 6, 64),
				strconv.FormatFloat(s.Pos[2], 'f', 6, 64),
				strconv.FormatFloat(s.Radius, 'f', 6, 64),
			}
			if err := cw.Write(row); err != nil {
				return err
			}
		}
	}

	cw.Flush()
	return cw.Error()
}
