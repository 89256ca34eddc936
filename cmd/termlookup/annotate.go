package main

import (
	"context"
	"fmt"
	"io"
	"io/fs"
	"os"
	"os/signal"
	"path/filepath"
	"sort"
	"strings"

	"github.com/gobwas/glob"
	"github.com/spf13/cobra"

	"github.com/cognicore/termlookup/internal/textproc"
	"github.com/cognicore/termlookup/pkg/lookup"
	"github.com/cognicore/termlookup/pkg/lookup/config"
	"github.com/cognicore/termlookup/pkg/lookup/logging"
	"github.com/cognicore/termlookup/pkg/lookup/report"
)

var (
	annotateConfig string
	annotateGlob   string
	annotateJSON   bool
)

var annotateCmd = &cobra.Command{
	Use:   "annotate PATH...",
	Short: "Annotate notes",
	Long: `Annotate plain text or HTML notes. Directories are walked and files are
selected with --glob.

Examples:
  termlookup annotate --config lookup.yaml note.txt
  termlookup annotate --config lookup.yaml --glob "**/*.html" --json notes/`,
	Args: cobra.MinimumNArgs(1),
	RunE: runAnnotate,
}

func init() {
	annotateCmd.Flags().StringVarP(&annotateConfig, "config", "c", "lookup.yaml", "lookup configuration file")
	annotateCmd.Flags().StringVar(&annotateGlob, "glob", "*.{txt,html,htm}", "file pattern used inside directories")
	annotateCmd.Flags().BoolVar(&annotateJSON, "json", false, "write one JSON report per line")
}

func runAnnotate(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	files, err := collectFiles(args, annotateGlob)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		return fmt.Errorf("no input files match %q", annotateGlob)
	}

	engine, err := buildEngine(ctx, annotateConfig)
	if err != nil {
		return err
	}
	defer engine.Close()

	return annotateFiles(ctx, engine, files, cmd.OutOrStdout(), annotateJSON)
}

func buildEngine(ctx context.Context, configPath string) (*lookup.Engine, error) {
	loader := config.Loader{ConfigPath: configPath}
	components, err := loader.Load(ctx)
	if err != nil {
		return nil, err
	}
	engine, err := components.Engine(nil)
	if err != nil {
		components.Close()
		return nil, err
	}
	return engine, nil
}

func annotateFiles(ctx context.Context, engine *lookup.Engine, files []string, w io.Writer, asJSON bool) error {
	log := logging.New("annotate")
	builder := report.New()
	log.Info().Str("run", builder.RunID()).Int("files", len(files)).Msg("annotating")

	for _, path := range files {
		data, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		text := string(data)
		if textproc.LooksLikeHTML(path, text) {
			text = textproc.StripHTML(text)
		}

		doc := textproc.Document(filepath.Base(path), text)
		res, err := engine.ProcessDocument(ctx, doc)
		if err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}

		r := builder.Build(doc, res)
		if asJSON {
			err = report.WriteJSON(w, r)
		} else {
			err = report.WriteText(w, r)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

// collectFiles expands directories to the files matching pattern. Files
// named directly are always kept.
func collectFiles(paths []string, pattern string) ([]string, error) {
	g, err := glob.Compile(pattern, '/')
	if err != nil {
		return nil, fmt.Errorf("bad --glob %q: %w", pattern, err)
	}

	var files []string
	for _, p := range paths {
		info, err := os.Stat(p)
		if err != nil {
			return nil, err
		}
		if !info.IsDir() {
			files = append(files, p)
			continue
		}
		err = filepath.WalkDir(p, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() {
				return nil
			}
			rel, err := filepath.Rel(p, path)
			if err != nil {
				return err
			}
			rel = filepath.ToSlash(rel)
			if g.Match(rel) || (!strings.Contains(pattern, "/") && g.Match(d.Name())) {
				files = append(files, path)
			}
			return nil
		})
		if err != nil {
			return nil, err
		}
	}
	sort.Strings(files)
	return files, nil
}
