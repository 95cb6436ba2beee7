package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/bft-labs/curvemark/internal/cliconfig"
	"github.com/bft-labs/curvemark/pkg/curvemark"
)

func newAnalyzeCmd(cfg *cliconfig.Config, cfgPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "analyze <path.json>",
		Short: "Analyze one path file and print the marker batches",
		Long: "Reads a JSON path (\"-\" for stdin), prints the delete-all batch and, " +
			"when any point is flagged, the marker batch, one JSON document per line.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := resolveConfig(cmd, cfg, *cfgPath); err != nil {
				return err
			}
			if err := cfg.ValidateMarker(); err != nil {
				return err
			}
			data, err := readInput(cmd.InOrStdin(), args[0])
			if err != nil {
				return err
			}
			path, err := curvemark.DecodePath(data)
			if err != nil {
				return err
			}

			res := curvemark.Evaluate(path, cfg.MarkerConfig())

			zl := cliconfig.Logger(cfg.LogLevel)
			zl.Info().
				Int("poses", path.Len()).
				Int("flagged", len(res.Analysis.Flagged)).
				Ints("degenerate", res.Analysis.Degenerate).
				Msg("analyzed path")

			out := cmd.OutOrStdout()
			if err := writeBatch(out, res.Clear); err != nil {
				return err
			}
			if res.Batch != nil {
				return writeBatch(out, *res.Batch)
			}
			return nil
		},
	}
}

func readInput(stdin io.Reader, name string) ([]byte, error) {
	if name == "-" {
		return io.ReadAll(stdin)
	}
	data, err := os.ReadFile(name)
	if err != nil {
		return nil, fmt.Errorf("read path file: %w", err)
	}
	return data, nil
}

func writeBatch(w io.Writer, b curvemark.MarkerBatch) error {
	data, err := curvemark.EncodeBatch(b)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(w, "%s\n", data)
	return err
}
