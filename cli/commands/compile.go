package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/satishbabariya/sqlkit/cli/internal/ui"
	"github.com/satishbabariya/sqlkit/cli/internal/watch"
	"github.com/satishbabariya/sqlkit/query/compiler"
)

var compileCmd = &cobra.Command{
	Use:   "compile <file.yaml>",
	Short: "Compile query documents to SQL",
	Long: `Compile every query document in a YAML file and print the SQL with
its bound parameters.

The dialect defaults to the configured provider. With --watch the file is
recompiled whenever it changes. --format markdown renders each statement as
a fenced sql block followed by a parameter table.`,
	Args: cobra.ExactArgs(1),
	RunE: runCompile,
}

var (
	compileDialect string
	compileWatch   bool
	compileFormat  string
)

func init() {
	compileCmd.Flags().StringVarP(&compileDialect, "dialect", "d", "", "Target dialect: postgres, mysql or sqlite")
	compileCmd.Flags().BoolVarP(&compileWatch, "watch", "w", false, "Recompile when the file changes")
	compileCmd.Flags().StringVarP(&compileFormat, "format", "f", "text", "Output format: text or markdown")

	rootCmd.AddCommand(compileCmd)
}

func runCompile(cmd *cobra.Command, args []string) error {
	path := args[0]
	if compileFormat != "text" && compileFormat != "markdown" {
		return fmt.Errorf("unknown output format %q (want text or markdown)", compileFormat)
	}
	provider := compileDialect
	if provider == "" {
		provider = cfg.Provider
	}
	comp, err := compiler.New(provider)
	if err != nil {
		return err
	}

	out := ui.New(cmd.OutOrStdout())
	render := func() error { return compileFile(out, comp, path, compileFormat == "markdown") }
	if !compileWatch {
		return render()
	}
	return runCompileWatch(cmd.Context(), out, path, render)
}

func compileFile(out *ui.Printer, comp *compiler.Compiler, path string, markdown bool) error {
	queries, err := loadQueries(path)
	if err != nil {
		return err
	}
	for _, nq := range queries {
		compiled, err := comp.Compile(nq.query)
		if err != nil {
			return fmt.Errorf("%s: %w", nq.label, err)
		}
		if markdown {
			if err := out.Markdown(nq.label, compiled.SQL, compiled.Params); err != nil {
				return err
			}
			continue
		}
		out.Section(nq.label)
		out.SQL(compiled.SQL)
		if err := out.Params(compiled.Params); err != nil {
			return err
		}
	}
	return nil
}

func runCompileWatch(ctx context.Context, out *ui.Printer, path string, render func() error) error {
	out.Header("sqlkit", "Watch Mode")

	// Errors after the first run are printed and the watch continues.
	started := false
	watcher, err := watch.NewWatcher(path, func() error {
		err := render()
		if err != nil && started {
			out.Error("%v", err)
			err = nil
		}
		started = true
		return err
	})
	if err != nil {
		return err
	}
	defer watcher.Stop()

	if err := watcher.Start(); err != nil {
		return err
	}
	out.Success("Watching %s for changes... (Press Ctrl+C to stop)", path)

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()
	<-ctx.Done()
	return nil
}
