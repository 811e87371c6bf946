package main

import (
	"fmt"
	"os"

	"school_reports_backend/internal/config"
	"school_reports_backend/internal/document"
	"school_reports_backend/internal/repository"
	"school_reports_backend/internal/service"
	"school_reports_backend/pkg/logger"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var version = "dev"

// options are the flags every command shares.
type options struct {
	dump      string
	layouts   string
	templates string
	debug     bool
}

func (o *options) source() (*repository.DumpSource, error) {
	if o.dump == "" {
		return nil, fmt.Errorf("--dump is required")
	}
	f, err := os.Open(o.dump)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return repository.LoadDump(f)
}

func (o *options) registry() (*document.Registry, error) {
	return document.NewRegistry(o.layouts)
}

// templateService reads <templates>/<layout>.pdf. Without --templates every
// document is printed on a blank page.
func (o *options) templateService() *service.TemplateService {
	if o.templates == "" {
		return nil
	}
	storage := &service.StorageService{Provider: &service.LocalStorageProvider{
		Config: &config.StorageConfig{LocalPath: o.templates},
	}}
	return service.NewTemplateService(storage, "")
}

func newRootCommand() *cobra.Command {
	opts := &options{}
	cmd := &cobra.Command{
		Use:          "reportctl",
		Short:        "Print school report documents from a JSON dump",
		Version:      version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if opts.debug {
				l, err := zap.NewDevelopment()
				if err != nil {
					return err
				}
				logger.Log = l
			}
			return nil
		},
	}

	flags := cmd.PersistentFlags()
	flags.StringVar(&opts.dump, "dump", "", "JSON dump of the school API (estudiantes, calificaciones, atrasos, electivos)")
	flags.StringVar(&opts.layouts, "layouts", "", "directory with layout overrides (<name>.yaml)")
	flags.StringVar(&opts.templates, "templates", "", "directory with background PDFs (<layout>.pdf)")
	flags.BoolVar(&opts.debug, "debug", false, "enable debug logging")

	cmd.AddCommand(newReportCardCommand(opts))
	cmd.AddCommand(newCourseGradesCommand(opts))
	cmd.AddCommand(newAccidentCommand(opts))
	cmd.AddCommand(newTardiesCommand(opts))
	return cmd
}

// writeOutput writes doc to out, or to its own filename when out is empty.
func writeOutput(cmd *cobra.Command, doc *service.Document, out string) error {
	if out == "" {
		out = doc.Filename
	}
	if err := os.WriteFile(out, doc.Data, 0644); err != nil {
		return fmt.Errorf("write %s: %w", out, err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "wrote %s (%d bytes)\n", out, len(doc.Data))
	return nil
}
