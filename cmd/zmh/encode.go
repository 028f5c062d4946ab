package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ziphuff/zmh"
	"github.com/ziphuff/zmh/internal/bench"
)

var encodeCmd = &cobra.Command{
	Use:   "encode FILE...",
	Short: "Encode files into FILE.zmh",
	Long: `Encode each FILE and write the result next to it as FILE.zmh.

The input is read twice, once to count byte frequencies and once to
write codes. Remote inputs are served from the read cache on the second
pass.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runEncode,
}

func init() {
	rootCmd.AddCommand(encodeCmd)
}

func runEncode(cmd *cobra.Command, args []string) error {
	for _, arg := range args {
		if err := encodeOne(cmd, arg); err != nil {
			return err
		}
	}
	return nil
}

func encodeOne(cmd *cobra.Command, raw string) error {
	c, key, err := openCompressor(cmd.Context(), raw)
	if err != nil {
		return err
	}
	defer c.Close()

	res, err := c.EncodeKey(cmd.Context(), key)
	if err != nil {
		return fmt.Errorf("encoding %s: %w", raw, err)
	}

	out := cmd.OutOrStdout()
	if res.OriginalBytes == 0 {
		fmt.Fprintf(out, "%s: empty, wrote empty %s\n", raw, zmh.EncodedName(key))
		return nil
	}
	fmt.Fprintf(out, "%s -> %s: %s -> %s (ratio %.3f, %.3f bits/byte, %d symbols)\n",
		raw, zmh.EncodedName(key),
		bench.FormatBytes(res.OriginalBytes), bench.FormatBytes(res.EncodedBytes),
		res.Ratio(), res.BitsPerSymbol(), res.Symbols)
	return nil
}
