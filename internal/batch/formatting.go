package batch

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/MeKo-Tech/salient/internal/saliency"
)

// formatBatchResults renders the batch results in the given format.
func formatBatchResults(results []ImageResult, format string) (string, error) {
	switch format {
	case "json":
		return formatJSON(results)
	case "csv":
		return formatCSV(results)
	default: // text
		return formatText(results), nil
	}
}

type imageResultJSON struct {
	File      string               `json:"file"`
	Detection *saliency.ResultJSON `json:"detection,omitempty"`
	Error     string               `json:"error,omitempty"`
}

// formatJSON renders one entry per image with either a detection summary or
// an error message.
func formatJSON(results []ImageResult) (string, error) {
	out := struct {
		Images []imageResultJSON `json:"images"`
	}{
		Images: make([]imageResultJSON, 0, len(results)),
	}

	for _, r := range results {
		entry := imageResultJSON{File: r.File}
		if r.Err != nil {
			entry.Error = r.Err.Error()
		} else if r.Res != nil {
			summary := saliency.Summary(r.Res)
			entry.Detection = &summary
		}
		out.Images = append(out.Images, entry)
	}

	bts, err := json.MarshalIndent(out, "", "  ")
	return string(bts), err
}

// formatCSV renders one row per image.
func formatCSV(results []ImageResult) (string, error) {
	rows := [][]string{
		{"file", "grid_side", "depth", "square_side", "components", "degenerate", "error"},
	}

	for _, r := range results {
		row := []string{r.File, "0", "0", "0", "0", "false", ""}
		if r.Res != nil {
			row[1] = strconv.Itoa(r.Res.GridSide)
			row[2] = strconv.Itoa(r.Res.Depth)
			row[3] = strconv.Itoa(r.Res.Side)
			row[4] = strconv.Itoa(r.Res.Components)
			row[5] = strconv.FormatBool(r.Res.Degenerate)
		}
		if r.Err != nil {
			row[6] = r.Err.Error()
		}
		rows = append(rows, row)
	}

	var output strings.Builder
	writer := csv.NewWriter(&output)
	for _, row := range rows {
		if err := writer.Write(row); err != nil {
			return "", err
		}
	}
	writer.Flush()
	return output.String(), writer.Error()
}

// formatText renders a readable per-image summary.
func formatText(results []ImageResult) string {
	var output strings.Builder
	for i, r := range results {
		if i > 0 {
			output.WriteString("\n")
		}
		fmt.Fprintf(&output, "# %s\n", r.File)
		if r.Err != nil {
			fmt.Fprintf(&output, "error: %v\n", r.Err)
			continue
		}
		if r.Res != nil {
			output.WriteString(saliency.FormatText(r.Res))
		}
	}
	return output.String()
}
