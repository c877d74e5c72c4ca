package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/rshade/datalens/internal/dataset"
	"github.com/rshade/datalens/internal/logging"
)

// mergeParams holds the flags of the merge command.
type mergeParams struct {
	on    string
	how   string
	out   string
	force bool
}

// newMergeCmd creates the join command.
func newMergeCmd() *cobra.Command {
	var params mergeParams

	cmd := &cobra.Command{
		Use:   "merge LEFT RIGHT",
		Short: "Join two CSV files on a key column",
		Example: `  # Inner join to stdout
  datalens merge orders.csv customers.csv --on customer_id

  # Left join into a file
  datalens merge orders.csv customers.csv --on customer_id --how left --out joined.csv`,
		Args: cobra.ExactArgs(2), //nolint:mnd // LEFT and RIGHT.
		RunE: func(cmd *cobra.Command, args []string) error {
			return executeMerge(cmd, args[0], args[1], params)
		},
	}

	cmd.Flags().StringVar(&params.on, "on", "", "key column present in both files")
	cmd.Flags().StringVar(&params.how, "how", dataset.JoinInner,
		"join method: "+strings.Join(dataset.JoinMethods, ", "))
	cmd.Flags().StringVar(&params.out, "out", "", "write the result to a file instead of stdout")
	cmd.Flags().BoolVar(&params.force, "force", false, "overwrite --out without asking")
	_ = cmd.MarkFlagRequired("on")

	return cmd
}

func executeMerge(cmd *cobra.Command, leftPath, rightPath string, params mergeParams) error {
	ctx := commandContext(cmd)

	left, right, err := loadPair(ctx, leftPath, rightPath)
	if err != nil {
		return err
	}
	merged, err := left.Merge(right, params.on, params.how)
	if err != nil {
		return fmt.Errorf("merge failed: %w", err)
	}

	logging.FromContext(ctx).Info().
		Str("component", "cli").
		Str("operation", "merge").
		Str("how", params.how).
		Int("rows", merged.Nrow()).
		Msg("merge complete")

	if params.out == "" {
		return merged.Write(cmd.OutOrStdout())
	}
	if !params.force && fileExists(params.out) {
		res := ConfirmOverwriteWithStdin(cmd.ErrOrStderr(), params.out)
		if !res.Accepted {
			return fmt.Errorf("%w: %s (use --force to overwrite)", ErrOutputExists, params.out)
		}
	}
	if err = merged.Save(ctx, params.out); err != nil {
		return err
	}
	cmd.PrintErrf("✅ Merge complete. Shape: %s, written to %s\n", merged.ShapeString(), params.out)
	return nil
}

// loadPair reads both files concurrently.
func loadPair(ctx context.Context, leftPath, rightPath string) (*dataset.Dataset, *dataset.Dataset, error) {
	var left, right *dataset.Dataset
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		left, err = dataset.Load(gctx, leftPath)
		return err
	})
	g.Go(func() error {
		var err error
		right, err = dataset.Load(gctx, rightPath)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}
	return left, right, nil
}
