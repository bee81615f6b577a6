package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/espprov/espprov-go/pkg/history"
)

func newHistoryCmd(a *app) *cobra.Command {
	var (
		filter history.Filter
		failed bool
		since  time.Duration
	)
	list := &cobra.Command{
		Use:   "list",
		Short: "List recorded provisioning attempts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			store, err := a.openHistory(cmd.Context(), true)
			if err != nil {
				return err
			}
			if store == nil {
				return a.out.attempts(nil)
			}
			if failed {
				filter.Outcome = history.OutcomeFailed
			}
			if since > 0 {
				filter.Since = time.Now().Add(-since)
			}
			attempts, err := store.List(cmd.Context(), filter)
			if err != nil {
				return err
			}
			return a.out.attempts(attempts)
		},
	}
	lf := list.Flags()
	lf.StringVar(&filter.Device, "device", "", "Only this device")
	lf.StringVar(&filter.SSID, "ssid", "", "Only this network")
	lf.BoolVar(&failed, "failed", false, "Only failed attempts")
	lf.DurationVar(&since, "since", 0, "Only attempts newer than this")
	lf.IntVar(&filter.Limit, "limit", 20, "Maximum rows (0 = all)")

	var olderThan time.Duration
	prune := &cobra.Command{
		Use:   "prune",
		Short: "Delete old attempts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			store, err := a.openHistory(cmd.Context(), false)
			if err != nil {
				return err
			}
			if store == nil {
				return fmt.Errorf("history is disabled")
			}
			n, err := store.Prune(cmd.Context(), time.Now().Add(-olderThan))
			if err != nil {
				return err
			}
			fmt.Fprintf(a.out.w, "Pruned %d attempts\n", n)
			return nil
		},
	}
	prune.Flags().DurationVar(&olderThan, "older-than", 30*24*time.Hour, "Age cutoff")

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Inspect the provisioning attempt history",
		Args:  cobra.NoArgs,
		RunE:  list.RunE,
	}
	cmd.Flags().AddFlagSet(lf)
	cmd.AddCommand(list, prune)
	return cmd
}
