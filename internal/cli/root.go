// Package cli exposes the publisher as a cobra command tree.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/rodaine/table"
	"github.com/spf13/cobra"

	"github.com/lballo/Site-laura-4/internal/commands"
	publishcmd "github.com/lballo/Site-laura-4/internal/commands/publish"
	"github.com/lballo/Site-laura-4/internal/generator"
	"github.com/lballo/Site-laura-4/internal/publisher"
	"github.com/lballo/Site-laura-4/internal/runtimeconfig"
)

// Version is overridden at build time with -ldflags "-X".
var Version = "dev"

type options struct {
	configPath string
	logLevel   string
	stdout     io.Writer
	stderr     io.Writer
}

// Execute runs the command tree with args and returns the process exit code.
func Execute(args []string, stdout, stderr io.Writer) int {
	cmd := NewRootCommand(stdout, stderr)
	cmd.SetArgs(args)
	if err := cmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintf(stderr, "error: %v\n", err)
		return 1
	}
	return 0
}

// NewRootCommand builds the publisher command tree.
func NewRootCommand(stdout, stderr io.Writer) *cobra.Command {
	opts := &options{stdout: stdout, stderr: stderr}

	root := &cobra.Command{
		Use:           "publisher",
		Short:         "Publish Notion articles as static site pages",
		SilenceUsage:  true,
		SilenceErrors: true,

		DisableAutoGenTag: true,
	}
	root.SetOut(stdout)
	root.SetErr(stderr)

	root.PersistentFlags().StringVarP(&opts.configPath, "config", "c", "", "path to a YAML configuration file")
	root.PersistentFlags().StringVar(&opts.logLevel, "log-level", "", "override the configured log level")

	root.AddCommand(publishCmd(opts), previewCmd(opts), versionCmd(opts))
	return root
}

func (o *options) load() (runtimeconfig.Config, error) {
	cfg, err := runtimeconfig.Load(o.configPath)
	if err != nil {
		return cfg, err
	}
	if level := strings.TrimSpace(o.logLevel); level != "" {
		cfg.Logging.Level = level
	}
	return cfg, nil
}

func publishCmd(opts *options) *cobra.Command {
	var dryRun bool

	cmd := &cobra.Command{
		Use:   "publish",
		Short: "Publish and retire the articles flagged in the content source",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := opts.load()
			if err != nil {
				return err
			}
			module, err := Bootstrap(cmd.Context(), cfg, opts.stderr)
			if err != nil {
				return err
			}
			defer module.Close()

			var result *publisher.Result
			handlerOpts := []commands.HandlerOption[publishcmd.PublishCommand]{}
			if cfg.Publisher.Timeout > 0 {
				handlerOpts = append(handlerOpts, commands.WithTimeout[publishcmd.PublishCommand](cfg.Publisher.Timeout))
			}
			handler := publishcmd.NewPublishHandler(
				module.Publisher,
				commands.CommandLogger(module.Provider, "publish"),
				func(r *publisher.Result) { result = r },
				handlerOpts...,
			)

			runErr := handler.Execute(cmd.Context(), publishcmd.PublishCommand{DryRun: dryRun})
			if result != nil {
				printResult(opts.stdout, result)
			}
			return runErr
		},
	}
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "render every article without writing files or updating the source")
	return cmd
}

func previewCmd(opts *options) *cobra.Command {
	var pattern, out string

	cmd := &cobra.Command{
		Use:   "preview <file.md|dir>",
		Short: "Render local markdown articles with the site template",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.load()
			if err != nil {
				return err
			}
			if err := cfg.Logging.Validate(); err != nil {
				return err
			}
			provider, flush, err := NewLoggerProvider(cfg.Logging, opts.stderr)
			if err != nil {
				return err
			}
			defer flush()

			var previews []publishcmd.Preview
			handler := publishcmd.NewPreviewHandler(publishcmd.PreviewDeps{
				Config:   cfg.PublisherConfig(),
				SiteFS:   generator.NewOSFS(cfg.Paths.Root),
				Provider: provider,
			}, func(p []publishcmd.Preview) { previews = p })

			err = handler.Execute(cmd.Context(), publishcmd.PreviewCommand{Path: args[0], Pattern: pattern, Output: out})
			printPreviews(opts.stdout, previews)
			return err
		},
	}
	cmd.Flags().StringVar(&pattern, "pattern", "", "glob selecting markdown files inside a directory")
	cmd.Flags().StringVarP(&out, "out", "o", "", "directory receiving the rendered pages")
	return cmd
}

func versionCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the publisher version",
		Args:  cobra.NoArgs,
		Run: func(*cobra.Command, []string) {
			fmt.Fprintf(opts.stdout, "publisher %s\n", Version)
		},
	}
}

func printResult(w io.Writer, result *publisher.Result) {
	if result.Empty() {
		fmt.Fprintln(w, result.Summary())
		return
	}
	tbl := table.New("ACTION", "STATUS", "SLUG", "READING", "DETAIL").WithWriter(w)
	for _, a := range result.Articles {
		reading := ""
		if a.ReadingTime > 0 {
			reading = fmt.Sprintf("%d min", a.ReadingTime)
		}
		tbl.AddRow(a.Action, a.Status, a.Slug, reading, detail(a))
	}
	tbl.Print()

	prefix := ""
	if result.DryRun {
		prefix = "[dry run] "
	}
	fmt.Fprintf(w, "\n%s%s (%d articles in catalog)\n", prefix, result.Summary(), result.CatalogSize)
}

func detail(a publisher.ArticleResult) string {
	switch {
	case a.Err != nil && errors.Is(a.Err, publisher.ErrEmptyDocument):
		return "empty document"
	case a.Err != nil:
		return a.Err.Error()
	case a.Action == publisher.ActionRetire && !a.Removed:
		return "no file: " + a.Path
	}
	return a.Path
}

func printPreviews(w io.Writer, previews []publishcmd.Preview) {
	if len(previews) == 0 {
		return
	}
	tbl := table.New("SOURCE", "SLUG", "READING", "OUTPUT").WithWriter(w)
	for _, p := range previews {
		if p.Err != nil {
			tbl.AddRow(p.Source, "-", "-", p.Err.Error())
			continue
		}
		output := p.Path
		if output == "" {
			output = "-"
		}
		tbl.AddRow(p.Source, p.Document.Metadata.Slug, p.Document.ReadingTimeLabel(), output)
	}
	tbl.Print()
}
