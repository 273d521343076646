package main

import (
	"errors"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"filingdesk/internal/store"
)

var verifyCmd = &cobra.Command{
	Use:   "verify <report-id>",
	Short: "Recompute a saved report's fingerprint and compare it",
	Long: `Verify loads a saved report, recomputes the content fingerprint from
its stored markup and compares it against the checksum recorded at save time.
A mismatch means the stored content was altered after rendering.`,
	Args: cobra.ExactArgs(1),
	RunE: runVerify,
}

func runVerify(cmd *cobra.Command, args []string) error {
	s, err := store.Open(cfg.Store.DatabasePath, logger)
	if err != nil {
		return err
	}
	defer s.Close()

	rep, err := s.Load(args[0])
	if err != nil {
		if errors.Is(err, store.ErrIntegrityMismatch) {
			return fmt.Errorf("report %s: %w", args[0], err)
		}
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "report %s verified (checksum %s)\n", rep.ID, rep.Checksum)
	return nil
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List saved reports",
	Args:  cobra.NoArgs,
	RunE:  runList,
}

func runList(cmd *cobra.Command, args []string) error {
	s, err := store.Open(cfg.Store.DatabasePath, logger)
	if err != nil {
		return err
	}
	defer s.Close()

	reports, err := s.List()
	if err != nil {
		return err
	}
	if len(reports) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "no saved reports")
		return nil
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tENTITY\tFILING\tCREATED")
	for _, r := range reports {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", r.ID, r.EntityName, r.FilingType, r.CreatedAt.Format("2006-01-02 15:04"))
	}
	return w.Flush()
}
