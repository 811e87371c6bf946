package main

import (
	"encoding/json"

	"school_reports_backend/internal/service"

	"github.com/spf13/cobra"
)

func newTardiesCommand(opts *options) *cobra.Command {
	var courses []uint
	var from, to, xlsx string
	var concurrency int

	cmd := &cobra.Command{
		Use:   "tardies",
		Short: "Print tardy statistics as JSON, or export them with --xlsx",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			src, err := opts.source()
			if err != nil {
				return err
			}
			svc := service.NewTardyService(src, concurrency)
			filter := service.TardyFilter{CourseIDs: courses, From: from, To: to}

			if xlsx != "" {
				doc, err := svc.Workbook(cmd.Context(), filter)
				if err != nil {
					return err
				}
				return writeOutput(cmd, doc, xlsx)
			}

			stats, err := svc.Stats(cmd.Context(), filter)
			if err != nil {
				return err
			}
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(stats)
		},
	}
	cmd.Flags().UintSliceVar(&courses, "course", nil, "course ids (repeatable, default: every course)")
	cmd.Flags().StringVar(&from, "from", "", "first date, YYYY-MM-DD")
	cmd.Flags().StringVar(&to, "to", "", "last date, YYYY-MM-DD")
	cmd.Flags().StringVar(&xlsx, "xlsx", "", "write the tardy workbook to this file instead")
	cmd.Flags().IntVar(&concurrency, "concurrency", 4, "courses fetched at once")
	return cmd
}
