package main

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/rpggio/siteledger/internal/client"
	"github.com/rpggio/siteledger/internal/reconcile"
	"github.com/spf13/cobra"
)

func newDashboardCmd(rt *runtime) *cobra.Command {
	var (
		serverURL string
		timeout   time.Duration
		filter    reconcile.Filter
		impact    bool
	)
	cmd := &cobra.Command{
		Use:   "dashboard",
		Short: "Reconcile work logs from a running server and print JSON",
		Long: `Fetches projects, attendance and materials from a running siteledger
server and runs the reconciliation locally, the way the site dashboards do.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if cmd.Flags().Changed("server") {
				rt.cfg.Client.ServerURL = serverURL
			}
			if cmd.Flags().Changed("timeout") {
				rt.cfg.Client.Timeout = timeout
			}

			c := client.New(rt.cfg.Client.ServerURL, rt.cfg.Client.Timeout)
			engine := reconcile.NewEngine(c, c, c, rt.logger)

			var out any
			var err error
			if impact {
				out, err = engine.MaterialImpact(cmd.Context())
			} else {
				out, err = engine.Dashboard(cmd.Context(), filter)
			}
			if err != nil {
				return fmt.Errorf("reconcile: %w", err)
			}

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(out)
		},
	}
	cmd.Flags().StringVar(&serverURL, "server", "", "server base URL")
	cmd.Flags().DurationVar(&timeout, "timeout", 0, "per-request timeout")
	cmd.Flags().StringVar(&filter.Status, "status", "", "filter by status (draft, submitted, approved, All Status)")
	cmd.Flags().StringVar(&filter.Search, "search", "", "filter by project name substring")
	cmd.Flags().StringVar(&filter.Date, "date", "", "filter by day (YYYY-MM-DD)")
	cmd.Flags().BoolVar(&impact, "impact", false, "print the material impact report instead")
	return cmd
}
