package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"dawang/internal/advisor"
)

var (
	routeDepartment string
	routeProgram    string
)

// routeCmd asks the service which topic a question belongs to
var routeCmd = &cobra.Command{
	Use:   "route [question]",
	Short: "Show which topic the service routes a question to",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runRoute,
}

// healthCmd probes the service
var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Check that the advisory service is reachable",
	Args:  cobra.NoArgs,
	RunE:  runHealth,
}

func init() {
	routeCmd.Flags().StringVar(&routeDepartment, "department", "", "Home department")
	routeCmd.Flags().StringVar(&routeProgram, "program", "", "Target program display name")
}

func runRoute(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithTimeout(cmd.Context(), cfg.GetServiceTimeout())
	defer cancel()

	resp, err := newClient().Route(ctx, advisor.RouteRequest{
		Question:        joinArgs(args),
		ProfileDept:     routeDepartment,
		SelectedProgram: routeProgram,
	})
	if err != nil {
		logger.Error("Route failed", zap.Error(err))
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s (matched=%t)\n", resp.Label, resp.Success)
	return nil
}

func runHealth(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithTimeout(cmd.Context(), cfg.GetServiceTimeout())
	defer cancel()

	c := newClient()
	status, err := c.Health(ctx)
	if err != nil {
		logger.Error("Health check failed", zap.String("url", c.BaseURL()), zap.Error(err))
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s: %s\n", c.BaseURL(), status)
	return nil
}
