package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aidirectory/aidirectory/internal/config"
	"github.com/aidirectory/aidirectory/pkg/errors"
	"github.com/aidirectory/aidirectory/pkg/pipeline"
	"github.com/aidirectory/aidirectory/pkg/store/files"
)

var validateStrict bool

// validateCmd runs the integrity validator over the full dataset.
var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check referential and provenance integrity",
	Long: `Validate checks every canonical entity for integrity defects: populated
fields without provenance, provenance without values, slug references to
entities that do not exist, and schema violations.

Validation is read-only. It reports every defect and repairs nothing.`,
	RunE: runValidate,
}

func init() {
	validateCmd.Flags().BoolVar(&validateStrict, "strict", false, "exit non-zero when defects are found")
	rootCmd.AddCommand(validateCmd)
}

func runValidate(cmd *cobra.Command, _ []string) error {
	s, err := files.Open(config.DataDir())
	if err != nil {
		return err
	}

	report, err := pipeline.New(s).ValidateAll(cmd.Context())
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Validated %d entities: %d defects\n", report.Entities, len(report.Defects))
	for _, d := range report.Defects {
		fmt.Fprintf(out, "  %s\n", d)
	}

	if validateStrict && !report.Clean() {
		return errors.New("dataset has integrity defects")
	}
	return nil
}
