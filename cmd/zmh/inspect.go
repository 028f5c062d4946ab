package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ziphuff/zmh/internal/modeldump"
)

var inspectCmd = &cobra.Command{
	Use:   "inspect FILE.zmh",
	Short: "Print the code table of an encoded file",
	Long: `Read only the header of FILE.zmh and print its code table.

Formats: text, json, cbor, msgpack. Binary formats are written as-is,
so redirect them to a file.`,
	Args: cobra.ExactArgs(1),
	RunE: runInspect,
}

var (
	inspectFormat string
)

func init() {
	inspectCmd.Flags().StringVar(&inspectFormat, "format", "text", "output format (text, json, cbor, msgpack)")
	rootCmd.AddCommand(inspectCmd)
}

func runInspect(cmd *cobra.Command, args []string) error {
	format, err := modeldump.ParseFormat(inspectFormat)
	if err != nil {
		return err
	}

	c, key, err := openCompressor(cmd.Context(), args[0])
	if err != nil {
		return err
	}
	defer c.Close()

	r, err := c.Store().Open(cmd.Context(), key)
	if err != nil {
		return fmt.Errorf("opening %s: %w", args[0], err)
	}
	defer r.Close()

	table, err := c.Inspect(cmd.Context(), r)
	if err != nil {
		return fmt.Errorf("reading header of %s: %w", args[0], err)
	}
	return modeldump.Write(cmd.OutOrStdout(), table, format)
}
