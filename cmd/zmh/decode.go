package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ziphuff/zmh"
	"github.com/ziphuff/zmh/internal/bench"
)

var decodeCmd = &cobra.Command{
	Use:   "decode FILE.zmh...",
	Short: "Restore files from FILE.zmh",
	Long: `Decode each FILE.zmh and write the original bytes to FILE.

An empty FILE.zmh restores an empty FILE.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runDecode,
}

func init() {
	rootCmd.AddCommand(decodeCmd)
}

func runDecode(cmd *cobra.Command, args []string) error {
	for _, arg := range args {
		if err := decodeOne(cmd, arg); err != nil {
			return err
		}
	}
	return nil
}

func decodeOne(cmd *cobra.Command, raw string) error {
	c, key, err := openCompressor(cmd.Context(), raw)
	if err != nil {
		return err
	}
	defer c.Close()

	res, err := c.DecodeKey(cmd.Context(), key)
	if err != nil {
		return fmt.Errorf("decoding %s: %w", raw, err)
	}

	if res.EncodedBytes == 0 {
		fmt.Fprintf(cmd.ErrOrStderr(), "warning: %s is empty\n", raw)
		return nil
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s -> %s: %s -> %s\n",
		raw, zmh.DecodedName(key),
		bench.FormatBytes(res.EncodedBytes), bench.FormatBytes(res.OriginalBytes))
	return nil
}
