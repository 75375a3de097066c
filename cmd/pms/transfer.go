package main

import (
	"fmt"
	"os"

	"pms/internal/codec"

	"github.com/spf13/cobra"
)

func (a *app) importCmd() *cobra.Command {
	var format string
	cmd := &cobra.Command{
		Use:   "import FILE",
		Short: "Load a YAML or JSON hierarchy; everything is created or nothing is",
		Long: `Reads a document of cities with their neighborhoods, streets and police
stations, plus top-level stations without a city, and creates all of it in a
single transaction. The format follows the file extension unless --format is
given. Use "-" to read standard input.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]

			var (
				c   codec.Codec
				err error
			)
			switch {
			case format != "":
				c, err = codec.ForFormat(format)
			case path == "-":
				c, err = codec.ForFormat("yaml")
			default:
				c, err = codec.ForPath(path)
			}
			if err != nil {
				return err
			}

			in := cmd.InOrStdin()
			if path != "-" {
				f, err := os.Open(path)
				if err != nil {
					return fmt.Errorf("open %s: %w", path, err)
				}
				defer f.Close()
				in = f
			}

			_, err = a.dir.ImportFrom(cmd.Context(), c, in)
			return err
		},
	}
	cmd.Flags().StringVar(&format, "format", "", "document format: yaml or json")
	return cmd
}

func (a *app) exportCmd() *cobra.Command {
	var format string
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the whole registry as a YAML or JSON hierarchy to stdout",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			c, err := codec.ForFormat(format)
			if err != nil {
				return err
			}
			return a.dir.ExportTo(cmd.Context(), c, cmd.OutOrStdout())
		},
	}
	cmd.Flags().StringVar(&format, "format", "yaml", "document format: yaml or json")
	return cmd
}
