package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aidirectory/aidirectory/internal/config"
	"github.com/aidirectory/aidirectory/pkg/enrich"
	"github.com/aidirectory/aidirectory/pkg/infer"
	"github.com/aidirectory/aidirectory/pkg/pipeline"
	"github.com/aidirectory/aidirectory/pkg/store/files"
)

var (
	enrichLimit     int
	enrichRulesOnly bool
)

// enrichCmd fills schema gaps with machine-inferred values.
var enrichCmd = &cobra.Command{
	Use:   "enrich [slugs...]",
	Short: "Infer tags and propose values for unset fields",
	Long: `Enrich runs two inferred-tier producers over each entity. The rule-based
tag engine infers tags from keywords and structured fields at zero cost.
The Gemini enricher then proposes values for remaining unset schema
fields. Both contributions are gated by per-field confidence before
merging and never displace values written by human-curated sources.

With no arguments, every entity is considered. The Gemini step requires
GEMINI_API_KEY or GOOGLE_API_KEY; --rules-only skips it.`,
	RunE: runEnrich,
}

func init() {
	enrichCmd.Flags().IntVar(&enrichLimit, "limit", 0, "stop after this many entities (0 = all)")
	enrichCmd.Flags().BoolVar(&enrichRulesOnly, "rules-only", false, "run rule-based tag inference only, no model calls")
	rootCmd.AddCommand(enrichCmd)
}

func runEnrich(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	s, err := files.Open(config.DataDir())
	if err != nil {
		return err
	}

	var enricher *enrich.Enricher
	if !enrichRulesOnly {
		var opts []enrich.Option
		if model := config.EnrichModel(); model != "" {
			opts = append(opts, enrich.WithModel(model))
		}
		enricher, err = enrich.New(ctx, opts...)
		if err != nil {
			return err
		}
	}

	targets, err := enrichTargets(s, args)
	if err != nil {
		return err
	}

	engine := infer.New()
	p := pipeline.New(s)
	out := cmd.OutOrStdout()
	enriched := 0

	for _, slug := range targets {
		if enrichLimit > 0 && enriched >= enrichLimit {
			break
		}

		entity, err := s.Entity(slug)
		if err != nil {
			return err
		}

		// Rule-based tags first, so the model sees them as known facts.
		if rec, ok := engine.Record(entity); ok {
			outcome, err := p.Process(ctx, rec)
			if err != nil {
				return err
			}
			if len(outcome.Changed) > 0 {
				fmt.Fprintf(out, "%s: tags inferred\n", slug)
			}
			if entity, err = s.Entity(slug); err != nil {
				return err
			}
		}

		if enricher == nil || len(enrich.Gaps(entity)) == 0 {
			continue
		}

		rec, err := enricher.Enrich(ctx, entity)
		if err != nil {
			fmt.Fprintf(out, "%s: enrichment failed: %v\n", slug, err)
			continue
		}

		outcome, err := p.Process(ctx, rec)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "%s: %d fields accepted\n", slug, len(outcome.Changed))
		enriched++
	}

	fmt.Fprintf(out, "Enriched %d entities\n", enriched)
	return nil
}

// enrichTargets resolves the slugs to enrich: the arguments when given,
// otherwise every entity in the store.
func enrichTargets(s *files.Store, args []string) ([]string, error) {
	if len(args) > 0 {
		return args, nil
	}

	list, err := s.List()
	if err != nil {
		return nil, err
	}
	slugs := make([]string, 0, len(list))
	for _, e := range list {
		slugs = append(slugs, e.Slug)
	}
	return slugs, nil
}
