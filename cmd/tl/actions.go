package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	ra "github.com/zulandar/threadline/internal/reportactions"
	"github.com/zulandar/threadline/internal/store"
)

func newActionsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "actions",
		Short: "Inspect the action streams of a report",
	}

	cmd.AddCommand(newActionsListCmd())
	cmd.AddCommand(newActionsChainCmd())
	cmd.AddCommand(newActionsLastCmd())
	cmd.AddCommand(newActionsCombinedCmd())
	cmd.AddCommand(newActionsVisibleCmd())
	cmd.AddCommand(newActionsSortCmd())
	return cmd
}

// loadSnapshot connects, loads the stored snapshot and resolves reportID.
func loadSnapshot(configPath, reportID string) (*ra.Snapshot, error) {
	if reportID == "" {
		return nil, fmt.Errorf("--report is required")
	}
	cfg, gormDB, err := connectFromConfig(configPath)
	if err != nil {
		return nil, err
	}
	snap, err := store.Load(gormDB, cfg)
	if err != nil {
		return nil, err
	}
	if err := store.CheckReport(snap, reportID); err != nil {
		return nil, err
	}
	return snap, nil
}

func newActionsListCmd() *cobra.Command {
	var (
		configPath string
		reportID   string
		all        bool
		asc        bool
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List a report's actions in display order",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runActionsList(cmd, configPath, reportID, all, asc)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", defaultConfigPath, "path to Threadline config file")
	cmd.Flags().StringVarP(&reportID, "report", "r", "", "report ID (required)")
	cmd.Flags().BoolVar(&all, "all", false, "include actions hidden from the viewer")
	cmd.Flags().BoolVar(&asc, "asc", false, "oldest first")
	return cmd
}

func runActionsList(cmd *cobra.Command, configPath, reportID string, all, asc bool) error {
	snap, err := loadSnapshot(configPath, reportID)
	if err != nil {
		return err
	}
	printActions(cmd.OutOrStdout(), snap, snap.Report(reportID), snap.SortedForDisplay(reportID, all), asc)
	return nil
}

func newActionsChainCmd() *cobra.Command {
	var (
		configPath string
		reportID   string
		anchor     string
	)

	cmd := &cobra.Command{
		Use:   "chain",
		Short: "Show the gap-free run of actions around an anchor",
		Long:  "Prints the contiguous, link-verified slice of the display stream containing --anchor (the newest action when omitted).",
		RunE: func(cmd *cobra.Command, args []string) error {
			snap, err := loadSnapshot(configPath, reportID)
			if err != nil {
				return err
			}
			printActions(cmd.OutOrStdout(), snap, snap.Report(reportID), snap.ContinuousChain(reportID, anchor), false)
			return nil
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", defaultConfigPath, "path to Threadline config file")
	cmd.Flags().StringVarP(&reportID, "report", "r", "", "report ID (required)")
	cmd.Flags().StringVar(&anchor, "anchor", "", "action ID the chain must contain")
	return cmd
}

func newActionsLastCmd() *cobra.Command {
	var (
		configPath string
		reportID   string
	)

	cmd := &cobra.Command{
		Use:   "last",
		Short: "Show the last visible action and its summary",
		RunE: func(cmd *cobra.Command, args []string) error {
			snap, err := loadSnapshot(configPath, reportID)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			last := snap.LastVisibleAction(reportID, nil)
			if last == nil {
				fmt.Fprintln(out, "No visible actions.")
				return nil
			}
			msg := snap.LastVisibleMessage(reportID, nil, last)
			fmt.Fprintf(out, "Action:   %s (%s)\n", last.ID, last.Name)
			fmt.Fprintf(out, "Created:  %s\n", last.Created)
			fmt.Fprintf(out, "Actor:    %d\n", last.ActorAccountID)
			fmt.Fprintf(out, "Message:  %s\n", msg.Text)
			if closed := snap.LastClosedAction(reportID); closed != nil {
				fmt.Fprintf(out, "Closed:   %s\n", closed.Created)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", defaultConfigPath, "path to Threadline config file")
	cmd.Flags().StringVarP(&reportID, "report", "r", "", "report ID (required)")
	return cmd
}

func newActionsCombinedCmd() *cobra.Command {
	var (
		configPath string
		reportID   string
		all        bool
	)

	cmd := &cobra.Command{
		Use:   "combined",
		Short: "Show a report merged with its single transaction thread",
		RunE: func(cmd *cobra.Command, args []string) error {
			snap, err := loadSnapshot(configPath, reportID)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if thread := snap.OneTransactionThreadReportID(reportID); thread != "" {
				fmt.Fprintf(out, "Transaction thread: %s\n\n", thread)
			}
			printActions(out, snap, snap.Report(reportID), snap.CombinedActions(reportID, all), false)
			return nil
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", defaultConfigPath, "path to Threadline config file")
	cmd.Flags().StringVarP(&reportID, "report", "r", "", "report ID (required)")
	cmd.Flags().BoolVar(&all, "all", false, "include actions hidden from the viewer")
	return cmd
}

func newActionsVisibleCmd() *cobra.Command {
	var (
		configPath string
		reportID   string
	)

	cmd := &cobra.Command{
		Use:   "visible",
		Short: "Summarize what the viewer can see of a report",
		RunE: func(cmd *cobra.Command, args []string) error {
			snap, err := loadSnapshot(configPath, reportID)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			sorted := snap.SortedForDisplay(reportID, false)
			first := ra.FirstVisibleActionID(sorted, snap.Viewer.Offline)
			if first == "" {
				first = "-"
			}
			fmt.Fprintf(out, "Visible actions:       %d of %d\n", len(sorted), len(snap.ReportActions(reportID)))
			fmt.Fprintf(out, "Has visible content:   %t\n", snap.HasVisibleActions(reportID, nil))
			fmt.Fprintf(out, "First visible action:  %s\n", first)
			fmt.Fprintf(out, "Join request pending:  %t\n", snap.IsActionableJoinRequestPending(reportID))
			return nil
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", defaultConfigPath, "path to Threadline config file")
	cmd.Flags().StringVarP(&reportID, "report", "r", "", "report ID (required)")
	return cmd
}

func newActionsSortCmd() *cobra.Command {
	var asc bool

	cmd := &cobra.Command{
		Use:   "sort <batch.json>",
		Short: "Sort a raw JSON batch of actions",
		Long:  "Decodes a JSON array or an object keyed by action ID (\"-\" reads stdin) and prints it in display order. No config or database is needed.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runActionsSort(cmd, args[0], asc)
		},
	}

	cmd.Flags().BoolVar(&asc, "asc", false, "oldest first")
	return cmd
}

func runActionsSort(cmd *cobra.Command, path string, asc bool) error {
	var (
		data []byte
		err  error
	)
	if path == "-" {
		data, err = io.ReadAll(cmd.InOrStdin())
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return fmt.Errorf("read batch: %w", err)
	}

	actions, err := ra.DecodeActions(data)
	if err != nil {
		return err
	}
	printActions(cmd.OutOrStdout(), nil, nil, ra.Sort(actions, true), asc)
	return nil
}
