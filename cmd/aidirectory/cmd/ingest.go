package cmd

import (
	"fmt"
	"os"

	"github.com/goccy/go-yaml"
	"github.com/spf13/cobra"

	"github.com/aidirectory/aidirectory/internal/config"
	"github.com/aidirectory/aidirectory/pkg/entities"
	"github.com/aidirectory/aidirectory/pkg/errors"
	"github.com/aidirectory/aidirectory/pkg/pipeline"
	"github.com/aidirectory/aidirectory/pkg/store/files"
)

var (
	ingestWorkers int
	ingestStrict  bool
)

// ingestCmd processes source record files into the canonical store.
var ingestCmd = &cobra.Command{
	Use:   "ingest [files...]",
	Short: "Process source record files into the directory",
	Long: `Ingest reads source records from YAML files and runs each through the
reconciliation pipeline: normalize, resolve identity, gate by confidence,
merge under trust-tier precedence, and commit.

Ambiguous records are held and reported, never auto-resolved.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runIngest,
}

func init() {
	ingestCmd.Flags().IntVarP(&ingestWorkers, "workers", "w", 0, "concurrent workers (default 8)")
	ingestCmd.Flags().BoolVar(&ingestStrict, "strict", false, "fail when any record is held as ambiguous")
	rootCmd.AddCommand(ingestCmd)
}

func runIngest(cmd *cobra.Command, args []string) error {
	s, err := files.Open(config.DataDir())
	if err != nil {
		return err
	}

	var recs []entities.SourceRecord
	for _, path := range args {
		loaded, err := loadRecords(path)
		if err != nil {
			return err
		}
		recs = append(recs, loaded...)
	}

	workers := ingestWorkers
	if workers == 0 {
		workers = config.Workers()
	}

	p := pipeline.New(s)
	results, summary, err := p.ProcessBatch(cmd.Context(), recs, workers)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Run %s: %d records\n", summary.RunID, len(recs))
	fmt.Fprintf(out, "  created:    %d\n", summary.Created)
	fmt.Fprintf(out, "  merged:     %d\n", summary.Merged)
	fmt.Fprintf(out, "  discovered: %d\n", summary.Discovered)
	fmt.Fprintf(out, "  held:       %d\n", summary.Held)
	fmt.Fprintf(out, "  failed:     %d\n", summary.Failed)

	for i, r := range results {
		switch {
		case r.Err != nil:
			fmt.Fprintf(out, "record %d: error: %v\n", i, r.Err)
		case r.Outcome.Kind == pipeline.Ambiguous:
			fmt.Fprintf(out, "record %d: ambiguous between %v\n", i, r.Outcome.Candidates)
		case r.Outcome.Kind == pipeline.Discovered && r.Outcome.Slug == "":
			fmt.Fprintf(out, "record %d: discovery hint %q\n", i, r.Outcome.Name)
		}
	}

	if ingestStrict && summary.Held > 0 {
		return fmt.Errorf("%d records held: %w", summary.Held, errors.ErrAmbiguous)
	}
	return nil
}

// loadRecords reads one YAML file holding a list of source records.
func loadRecords(path string) ([]entities.SourceRecord, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.WrapIO("read", path, err)
	}

	var recs []entities.SourceRecord
	if err := yaml.Unmarshal(data, &recs); err != nil {
		return nil, errors.WrapParse("yaml", path, err)
	}
	return recs, nil
}
