package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jonathan/resume-analyzer/internal/config"
	"github.com/jonathan/resume-analyzer/internal/knowledge"
	"github.com/jonathan/resume-analyzer/internal/logging"
)

var indexCmd = &cobra.Command{
	Use:   "index",
	Short: "Inspect or sync the skill taxonomy",
	Long: `Print taxonomy statistics, look up a single entry, search by name or alias, or push a JSONL taxonomy into the PostgreSQL store.

With no selector flags the command prints summary statistics for the loaded taxonomy.`,
	RunE: runIndexCmd,
}

var (
	indexConfigPath string
	indexTaxonomy   string
	indexSearch     string
	indexSkillID    string
	indexSyncDB     bool
	indexVerbose    bool
	indexJSONLogs   bool
)

func init() {
	indexCmd.Flags().StringVar(&indexConfigPath, "config", "", "Path to analyzer.config.json (values can be overridden by other flags)")
	indexCmd.Flags().StringVarP(&indexTaxonomy, "taxonomy", "t", "", "Path to skill taxonomy JSONL")
	indexCmd.Flags().StringVarP(&indexSearch, "search", "s", "", "Search entries by name or alias substring")
	indexCmd.Flags().StringVar(&indexSkillID, "id", "", "Show one entry by skill ID")
	indexCmd.Flags().BoolVar(&indexSyncDB, "sync-db", false, "Upsert the JSONL taxonomy into the DATABASE_URL store")
	indexCmd.Flags().BoolVarP(&indexVerbose, "verbose", "v", false, "Debug-level logging")
	indexCmd.Flags().BoolVar(&indexJSONLogs, "json-logs", false, "JSON log encoding instead of console")

	rootCmd.AddCommand(indexCmd)
}

func runIndexCmd(cmd *cobra.Command, _ []string) error {
	cfg, err := loadCommandConfig(indexConfigPath)
	if err != nil {
		return err
	}

	if cmd.Flags().Changed("taxonomy") {
		cfg.Taxonomy = indexTaxonomy
	}
	if cmd.Flags().Changed("verbose") {
		cfg.Verbose = indexVerbose
	}
	if cmd.Flags().Changed("json-logs") {
		cfg.JSONLogs = indexJSONLogs
	}

	cfg = cfg.MergeWithDefaults(analyzerDefaults())
	cfg.FromEnv()

	logger, err := logging.New(cfg.JSONLogs, cfg.Verbose)
	if err != nil {
		return fmt.Errorf("failed to build logger: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	ctx := context.Background()

	if indexSyncDB {
		return syncTaxonomy(ctx, cfg, logger, os.Stdout)
	}

	index, closeIndex, err := openIndex(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer closeIndex()

	switch {
	case indexSkillID != "":
		return showSkill(index, indexSkillID, os.Stdout)
	case indexSearch != "":
		return searchIndex(index, indexSearch, os.Stdout)
	default:
		printStats(index.Stats(), os.Stdout)
		return nil
	}
}

// syncTaxonomy pushes a JSONL taxonomy into the PostgreSQL store so serve
// deployments can load it without shipping the file.
func syncTaxonomy(ctx context.Context, cfg config.Config, logger *zap.Logger, out io.Writer) error {
	if cfg.DatabaseURL == "" {
		return fmt.Errorf("--sync-db requires DATABASE_URL to be set")
	}

	index, err := knowledge.LoadFile(cfg.Taxonomy, logger)
	if err != nil {
		return fmt.Errorf("failed to load taxonomy: %w", err)
	}

	store, err := knowledge.ConnectStore(ctx, cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("failed to connect to taxonomy database: %w", err)
	}
	defer store.Close()

	skills := index.Skills()
	for _, skill := range skills {
		if err := store.UpsertSkill(ctx, skill); err != nil {
			return fmt.Errorf("failed to upsert %s: %w", skill.ID, err)
		}
	}

	fmt.Fprintf(out, "Synced %d skills to the database\n", len(skills))
	return nil
}

func printStats(stats knowledge.Stats, out io.Writer) {
	fmt.Fprintf(out, "Entries:        %d\n", stats.Entries)
	fmt.Fprintf(out, "  technical:    %d\n", stats.Technical)
	fmt.Fprintf(out, "  soft:         %d\n", stats.Soft)
	fmt.Fprintf(out, "Embedded:       %d (%d dims)\n", stats.Embedded, stats.Dimensions)
	fmt.Fprintf(out, "Aliases:        %d\n", stats.Aliases)
	fmt.Fprintf(out, "Related edges:  %d (avg %.1f per entry)\n", stats.RelatedEdges, stats.AvgRelated)
	if stats.Skipped > 0 {
		fmt.Fprintf(out, "Skipped lines:  %d\n", stats.Skipped)
	}
}

func showSkill(index *knowledge.Index, id string, out io.Writer) error {
	skill, ok := index.Get(id)
	if !ok {
		return fmt.Errorf("%w: %s", knowledge.ErrNotFound, id)
	}

	fmt.Fprintf(out, "%s (%s)\n", skill.Name, skill.Category)
	fmt.Fprintf(out, "ID:      %s\n", skill.ID)
	if len(skill.Aliases) > 0 {
		fmt.Fprintf(out, "Aliases: %s\n", strings.Join(skill.Aliases, ", "))
	}
	if len(skill.Embedding) > 0 {
		fmt.Fprintf(out, "Vector:  %d dims\n", len(skill.Embedding))
	}
	for _, rel := range index.Related(skill.ID) {
		fmt.Fprintf(out, "  related: %-24s %.2f\n", rel.ID, rel.Weight)
	}
	return nil
}

func searchIndex(index *knowledge.Index, query string, out io.Writer) error {
	results := index.Search(query, 20)
	if len(results) == 0 {
		return fmt.Errorf("no skills matching %q", query)
	}

	for _, skill := range results {
		fmt.Fprintf(out, "%-28s %-10s %s\n", skill.ID, skill.Category, skill.Name)
	}
	return nil
}
