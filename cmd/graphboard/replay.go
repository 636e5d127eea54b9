package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"graphboard-backend/application/scripts"
	"graphboard-backend/infrastructure/persistence/decorators"
	"graphboard-backend/infrastructure/persistence/memory"
)

func newReplayCmd() *cobra.Command {
	var verbose bool

	cmd := &cobra.Command{
		Use:   "replay <file.yaml>",
		Short: "Apply a gesture script to an empty graph and print the result as JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := os.Open(args[0])
			if err != nil {
				return fmt.Errorf("failed to open script: %w", err)
			}
			defer f.Close()

			script, err := scripts.Parse(f)
			if err != nil {
				return err
			}

			logger := zap.NewNop()
			if verbose {
				if logger, err = zap.NewDevelopment(); err != nil {
					return err
				}
				defer func() { _ = logger.Sync() }()
			}

			store := decorators.NewLoggingStore(memory.NewGraphStore(), logger)
			snap := scripts.NewRunner(store, nil, logger).Run(cmd.Context(), script)

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(snap)
		},
	}

	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "log every applied step to stderr")
	return cmd
}
