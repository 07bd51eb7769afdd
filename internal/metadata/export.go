package metadata

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// SaveJSON writes the entry, including its visuals, as indented JSON.
func (e *Entry) SaveJSON(path string) error {
	data, err := json.MarshalIndent(e, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal entry %s: %w", e.EntryID, err)
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}

// csvHeader lists the flattened per-visual columns.
var csvHeader = []string{
	"entry_id", "title", "visual_id", "page", "x0", "y0", "x1", "y1",
	"bbox_unit", "caption", "visual_type", "location",
}

// SaveCSV writes one row per visual with the entry fields repeated,
// which is the shape downstream analysis notebooks expect.
func (e *Entry) SaveCSV(path string) error {
	f, err := os.Create(path) //nolint:gosec // G304: output path comes from CLI flags
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer func() { _ = f.Close() }()

	return e.WriteCSV(f)
}

// WriteCSV streams the per-visual rows to an arbitrary writer.
func (e *Entry) WriteCSV(out io.Writer) error {
	w := csv.NewWriter(out)
	if err := w.Write(csvHeader); err != nil {
		return err
	}
	for _, v := range e.Visuals {
		location := ""
		if v.Location != nil {
			location = v.Location.Full()
		}
		row := []string{
			e.EntryID,
			e.Title,
			v.ID,
			strconv.Itoa(v.PageNumber),
			formatCoord(v.BBox[0]),
			formatCoord(v.BBox[1]),
			formatCoord(v.BBox[2]),
			formatCoord(v.BBox[3]),
			v.BBoxUnit,
			strings.Join(v.Captions, " | "),
			v.VisualType,
			location,
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

func formatCoord(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
