// Package output implements the result-CSV writer and preview
// summariser (spec §4.10/§6 / C10): thin boundary adapters over a
// completed run's []value.Value, deliberately out of the core's
// scope but specified by the interface the core requires.
package output

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"math"

	"github.com/sarchlab/mcrecipe/errkind"
	"github.com/sarchlab/mcrecipe/value"
)

// WriteCSV writes results to w following spec §6's Result CSV rules:
// a scalar or boolean output is a single "Result" column; a vector
// output of length k is "Period_1,...,Period_k", one row per trial,
// and a row whose vector length differs from the first trial's is
// skipped rather than failing the whole write.
func WriteCSV(w io.Writer, results []value.Value) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	if len(results) == 0 {
		return cw.Write([]string{"Result"})
	}

	switch results[0].Kind() {
	case value.KindVector:
		first, _ := results[0].AsVector()
		header := make([]string, len(first))
		for i := range header {
			header[i] = fmt.Sprintf("Period_%d", i+1)
		}
		if err := cw.Write(header); err != nil {
			return errkind.New(errkind.OutputFileWriteFailed, "writing csv header: %v", err)
		}
		for _, r := range results {
			v, err := r.AsVector()
			if err != nil || len(v) != len(first) {
				continue
			}
			row := make([]string, len(v))
			for i, x := range v {
				row[i] = fmt.Sprintf("%g", x)
			}
			if err := cw.Write(row); err != nil {
				return errkind.New(errkind.OutputFileWriteFailed, "writing csv row: %v", err)
			}
		}

	default:
		if err := cw.Write([]string{"Result"}); err != nil {
			return errkind.New(errkind.OutputFileWriteFailed, "writing csv header: %v", err)
		}
		for _, r := range results {
			cell, err := scalarCell(r)
			if err != nil {
				return err
			}
			if err := cw.Write([]string{cell}); err != nil {
				return errkind.New(errkind.OutputFileWriteFailed, "writing csv row: %v", err)
			}
		}
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return errkind.New(errkind.OutputFileWriteFailed, "flushing csv: %v", err)
	}
	return nil
}

func scalarCell(v value.Value) (string, error) {
	switch v.Kind() {
	case value.KindScalar:
		s, _ := v.AsScalar()
		return fmt.Sprintf("%g", s), nil
	case value.KindBool:
		b, _ := v.AsBool()
		if b {
			return "true", nil
		}
		return "false", nil
	default:
		return "", errkind.New(errkind.OutputFileWriteFailed,
			"result of kind %s has no single-column CSV representation", v.Kind())
	}
}

// previewDoc is the single-line JSON object spec §6 describes for
// --preview mode.
type previewDoc struct {
	Status  string `json:"status"`
	Type    string `json:"type,omitempty"`
	Value   any    `json:"value,omitempty"`
	Message string `json:"message,omitempty"`
}

// Preview renders v as the single-line success JSON object of spec
// §6, rounding scalars (and vector elements) to 4 decimal places.
func Preview(v value.Value) (string, error) {
	doc := previewDoc{Status: "success"}
	switch v.Kind() {
	case value.KindScalar:
		s, _ := v.AsScalar()
		doc.Type = "scalar"
		doc.Value = round4(s)
	case value.KindVector:
		vec, _ := v.AsVector()
		rounded := make([]float64, len(vec))
		for i, x := range vec {
			rounded[i] = round4(x)
		}
		doc.Type = "vector"
		doc.Value = rounded
	case value.KindBool:
		b, _ := v.AsBool()
		doc.Type = "boolean"
		doc.Value = b
	case value.KindString:
		s, _ := v.AsString()
		doc.Type = "string"
		doc.Value = s
	}
	data, err := json.Marshal(doc)
	if err != nil {
		return "", errkind.New(errkind.UnknownError, "marshaling preview: %v", err)
	}
	return string(data), nil
}

// PreviewError renders err as the single-line error JSON object of
// spec §6, used when the recipe fails to compile or run in preview mode.
func PreviewError(err error) string {
	doc := previewDoc{Status: "error", Message: err.Error()}
	data, marshalErr := json.Marshal(doc)
	if marshalErr != nil {
		return fmt.Sprintf(`{"status":"error","message":%q}`, err.Error())
	}
	return string(data)
}

func round4(x float64) float64 {
	return math.Round(x*10000) / 10000
}
