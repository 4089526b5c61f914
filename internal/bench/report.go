package bench

import (
	"bytes"
	"fmt"
	"io"
)

// WriteReport renders one row per tag and a pooled "Macro Avg" row. The
// layout matches the reference evaluation tool's tab separated output.
func WriteReport(w io.Writer, stats *Stats, threshold float64) error {
	var buf bytes.Buffer

	fmt.Fprintf(&buf, "\nEvaluation (IoU >= %.2f):\n", threshold)
	fmt.Fprintln(&buf, "Tag\tGT\tPred\tCorrect\tPrecision\tRecall\t\tF1")
	for _, tag := range stats.Tags() {
		writeRow(&buf, tag, ComputeMetrics(stats.Get(tag)))
	}

	fmt.Fprintln(&buf)
	writeRow(&buf, "Macro Avg", ComputeMetrics(stats.Total()))

	_, err := w.Write(buf.Bytes())
	return err
}

func writeRow(buf *bytes.Buffer, label string, m Metrics) {
	fmt.Fprintf(buf, "%s\t%d\t%d\t%d\t%.3f\t\t%.3f\t\t%.3f\n",
		label, m.GroundTruth, m.Predicted, m.TruePositives, m.Precision, m.Recall, m.F1)
}
