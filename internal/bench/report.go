package bench

import (
	"fmt"
	"io"
	"text/tabwriter"
	"time"
)

// WriteText writes r as an aligned table.
func WriteText(w io.Writer, r *Report) error {
	fmt.Fprintf(w, "input: %s (%s, %d iterations)\n", r.Input, FormatBytes(r.InputBytes), r.Iterations)
	fmt.Fprintf(w, "entropy: %.4f bits/byte, order-0 bound %s\n\n", r.Entropy, FormatBytes(int64(r.EntropyBound())))

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "CODEC\tSIZE\tRATIO\tENCODE\t±\tDECODE\t±\tTHROUGHPUT")
	for _, res := range r.Results {
		fmt.Fprintf(tw, "%s\t%s\t%.4f\t%s\t%s\t%s\t%s\t%s/s\n",
			res.Codec,
			FormatBytes(res.CompressedBytes),
			res.Ratio(),
			seconds(res.Encode.Mean),
			seconds(res.Encode.StdDev),
			seconds(res.Decode.Mean),
			seconds(res.Decode.StdDev),
			FormatBytes(int64(res.EncodeThroughput())),
		)
	}
	return tw.Flush()
}

// WriteMarkdown writes r as a Markdown report.
func WriteMarkdown(w io.Writer, r *Report) error {
	fmt.Fprintf(w, "# Compression benchmark: %s\n\n", r.Input)
	fmt.Fprintf(w, "Generated: %s\n\n", time.Now().Format(time.RFC3339))

	fmt.Fprintln(w, "## Input")
	fmt.Fprintln(w)
	fmt.Fprintf(w, "- **Size:** %s\n", FormatBytes(r.InputBytes))
	fmt.Fprintf(w, "- **Entropy:** %.4f bits/byte\n", r.Entropy)
	fmt.Fprintf(w, "- **Order-0 bound:** %s\n", FormatBytes(int64(r.EntropyBound())))
	fmt.Fprintf(w, "- **Iterations:** %d per codec\n", r.Iterations)
	fmt.Fprintln(w)

	fmt.Fprintln(w, "## Results")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "| Codec | Size | Ratio | Encode (mean ± sd) | Decode (mean ± sd) |")
	fmt.Fprintln(w, "|-------|------|-------|--------------------|--------------------|")
	for _, res := range r.Results {
		fmt.Fprintf(w, "| %s | %s | %.4f | %s ± %s | %s ± %s |\n",
			res.Codec,
			FormatBytes(res.CompressedBytes),
			res.Ratio(),
			seconds(res.Encode.Mean), seconds(res.Encode.StdDev),
			seconds(res.Decode.Mean), seconds(res.Decode.StdDev),
		)
	}
	_, err := fmt.Fprintln(w)
	return err
}

// FormatBytes formats bytes as a human-readable string.
func FormatBytes(bytes int64) string {
	const unit = 1024
	if bytes < unit {
		return fmt.Sprintf("%d B", bytes)
	}
	div, exp := int64(unit), 0
	for n := bytes / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %ciB", float64(bytes)/float64(div), "KMGTPE"[exp])
}

func seconds(s float64) string {
	return time.Duration(s * float64(time.Second)).Round(time.Microsecond).String()
}
