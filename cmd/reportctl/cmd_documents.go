package main

import (
	"encoding/json"
	"fmt"
	"os"

	"school_reports_backend/internal/model"
	"school_reports_backend/internal/service"

	"github.com/spf13/cobra"
)

func newReportCardCommand(opts *options) *cobra.Command {
	var studentID uint
	var out, headTeacher string

	cmd := &cobra.Command{
		Use:   "report-card",
		Short: "Print the report card PDF of a student",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			src, err := opts.source()
			if err != nil {
				return err
			}
			layouts, err := opts.registry()
			if err != nil {
				return err
			}

			svc := service.NewReportService(src, layouts, opts.templateService(), nil, headTeacher)
			doc, err := svc.StudentReportCard(cmd.Context(), studentID, 0)
			if err != nil {
				return err
			}
			return writeOutput(cmd, doc, out)
		},
	}
	cmd.Flags().UintVar(&studentID, "student", 0, "student id")
	cmd.Flags().StringVarP(&out, "out", "o", "", "output file (default: document filename)")
	cmd.Flags().StringVar(&headTeacher, "head-teacher", "", "name printed as head teacher")
	_ = cmd.MarkFlagRequired("student")
	return cmd
}

func newCourseGradesCommand(opts *options) *cobra.Command {
	var courseID uint
	var out string

	cmd := &cobra.Command{
		Use:   "course-grades",
		Short: "Export the grades of a course as a workbook",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			src, err := opts.source()
			if err != nil {
				return err
			}
			layouts, err := opts.registry()
			if err != nil {
				return err
			}

			svc := service.NewReportService(src, layouts, nil, nil, "")
			doc, err := svc.CourseGradesWorkbook(cmd.Context(), courseID, 0)
			if err != nil {
				return err
			}
			return writeOutput(cmd, doc, out)
		},
	}
	cmd.Flags().UintVar(&courseID, "course", 0, "course id")
	cmd.Flags().StringVarP(&out, "out", "o", "", "output file (default: document filename)")
	_ = cmd.MarkFlagRequired("course")
	return cmd
}

func newAccidentCommand(opts *options) *cobra.Command {
	var in, out string

	cmd := &cobra.Command{
		Use:   "accident",
		Short: "Print an accident declaration from a JSON file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(in)
			if err != nil {
				return err
			}
			var report model.AccidentReport
			if err := json.Unmarshal(data, &report); err != nil {
				return fmt.Errorf("decode %s: %w", in, err)
			}

			src, err := opts.source()
			if err != nil {
				return err
			}
			layouts, err := opts.registry()
			if err != nil {
				return err
			}

			svc := service.NewAccidentService(src, layouts, opts.templateService(), nil)
			doc, err := svc.Declare(cmd.Context(), report, 0)
			if err != nil {
				return err
			}
			return writeOutput(cmd, doc, out)
		},
	}
	cmd.Flags().StringVar(&in, "in", "", "accident declaration JSON")
	cmd.Flags().StringVarP(&out, "out", "o", "", "output file (default: document filename)")
	_ = cmd.MarkFlagRequired("in")
	return cmd
}
