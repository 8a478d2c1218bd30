package main

import (
	"context"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"dawang/internal/catalog"
	"dawang/internal/config"
)

var (
	programsDepartment string
	programsAll        bool
)

// programsCmd lists the programs a department may join
var programsCmd = &cobra.Command{
	Use:   "programs",
	Short: "List convergence programs, optionally for one department",
	Long: `Fetches the program list from the advisory service and narrows it to the
given department. Without --department every program is listed.

With --all the curated "available" list and the full catalog are fetched
concurrently and printed side by side.`,
	Args: cobra.NoArgs,
	RunE: runPrograms,
}

func init() {
	programsCmd.Flags().StringVar(&programsDepartment, "department", "", "Home department to filter by")
	programsCmd.Flags().BoolVar(&programsAll, "all", false, "Fetch both the available list and the full catalog")
}

func runPrograms(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithTimeout(cmd.Context(), cfg.GetServiceTimeout())
	defer cancel()

	loader := catalog.NewLoader(newClient(), cfg.Catalog.Source == config.CatalogSourceAvailable)
	out := cmd.OutOrStdout()

	if programsAll {
		listing, err := loader.LoadAll(ctx, programsDepartment)
		if err != nil {
			logger.Error("Failed to load programs", zap.Error(err))
			return err
		}
		fmt.Fprintln(out, "== available ==")
		printPrograms(out, listing.Available)
		fmt.Fprintln(out, "\n== catalog ==")
		printPrograms(out, listing.Catalog)
		return nil
	}

	programs, err := loader.Load(ctx, programsDepartment)
	if err != nil {
		logger.Error("Failed to load programs", zap.Error(err))
		return err
	}
	printPrograms(out, programs)
	return nil
}

func printPrograms(w io.Writer, programs []catalog.Program) {
	if len(programs) == 0 {
		fmt.Fprintln(w, "(none)")
		return
	}
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	for _, p := range programs {
		fmt.Fprintf(tw, "%s\t%s\t%s\n", p.Name, p.Type, p.ID)
	}
	_ = tw.Flush()
}
