// Command build_taxonomy compiles the skill taxonomy JSONL from a seed CSV.
//
// The seed lists one skill per row as id,name,category,aliases with aliases
// pipe-separated. With -embed, canonical names are embedded through the
// configured provider and same-category related edges are derived from
// embedding similarity, so the resolver can match phrasings the seed never
// listed.
//
// Usage:
//
//	go run cmd/tools/build_taxonomy/main.go -seed data/skills_seed.csv
//
// Embedding requires GEMINI_API_KEY or OPENAI_API_KEY to be set unless
// -provider local is given.
package main

import (
	"bufio"
	"context"
	"encoding/csv"
	"encoding/json"
	"flag"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"go.uber.org/zap"

	"github.com/jonathan/resume-analyzer/internal/embedding"
	"github.com/jonathan/resume-analyzer/internal/knowledge"
	"github.com/jonathan/resume-analyzer/internal/types"
)

// embedBatchSize keeps each EmbedBatch call under the Gemini batch limit.
const embedBatchSize = 100

func main() {
	seedPath := flag.String("seed", "", "Seed CSV with id,name,category,aliases columns")
	outPath := flag.String("out", "data/skills.jsonl", "Output taxonomy JSONL path")
	embed := flag.Bool("embed", false, "Embed canonical names and derive related edges")
	providerName := flag.String("provider", "", "Embedding provider: gemini, openai or local (default: detect from environment)")
	relatedK := flag.Int("related-k", 4, "Related edges to keep per skill")
	minWeight := flag.Float64("min-weight", 0.35, "Minimum similarity for a related edge")
	flag.Parse()

	if *seedPath == "" {
		fmt.Fprintln(os.Stderr, "ERROR: -seed is required")
		flag.Usage()
		os.Exit(1)
	}

	fmt.Println("=== Taxonomy Build ===")
	fmt.Println()

	skills, skipped, err := readSeed(*seedPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: Failed to read seed: %v\n", err)
		os.Exit(1)
	}
	if len(skills) == 0 {
		fmt.Fprintf(os.Stderr, "ERROR: No usable rows in %s\n", *seedPath)
		os.Exit(1)
	}

	fmt.Printf("  ✓ Parsed %d skills from %s\n", len(skills), *seedPath)
	if skipped > 0 {
		fmt.Printf("  ✗ Skipped %d malformed rows\n", skipped)
	}

	ctx := context.Background()

	if *embed {
		provider, err := buildProvider(ctx, *providerName)
		if err != nil {
			fmt.Fprintf(os.Stderr, "ERROR: %v\n", err)
			os.Exit(1)
		}
		defer provider.Close()

		if err := embedSkills(ctx, provider, skills); err != nil {
			fmt.Fprintf(os.Stderr, "ERROR: Embedding failed: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("  ✓ Embedded %d names via %s (%d dims)\n", len(skills), provider.Name(), provider.Dimensions())

		edges := linkRelated(skills, *relatedK, *minWeight)
		fmt.Printf("  ✓ Derived %d related edges\n", edges)
	}

	if err := writeTaxonomy(*outPath, skills); err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: Failed to write %s: %v\n", *outPath, err)
		os.Exit(1)
	}
	fmt.Printf("  ✓ Wrote %s\n", *outPath)

	// Load the file back through the real loader so schema problems surface
	// here instead of at analyze time.
	fmt.Println()
	fmt.Println("=== Verification ===")

	index, err := knowledge.LoadFile(*outPath, zap.NewNop())
	if err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: Written taxonomy failed to load: %v\n", err)
		os.Exit(1)
	}

	stats := index.Stats()
	fmt.Printf("  Entries:       %d (%d technical, %d soft)\n", stats.Entries, stats.Technical, stats.Soft)
	fmt.Printf("  Embedded:      %d (%d dims)\n", stats.Embedded, stats.Dimensions)
	fmt.Printf("  Aliases:       %d\n", stats.Aliases)
	fmt.Printf("  Related edges: %d\n", stats.RelatedEdges)
	if stats.Skipped > 0 {
		fmt.Fprintf(os.Stderr, "ERROR: %d written lines failed schema validation\n", stats.Skipped)
		os.Exit(1)
	}

	fmt.Println()
	fmt.Println("=== Build Complete ===")
}

// readSeed parses the CSV into skills, skipping a header row and reporting
// malformed rows without aborting the whole build.
func readSeed(path string) ([]types.Skill, int, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, 0, err
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1
	records, err := reader.ReadAll()
	if err != nil {
		return nil, 0, err
	}

	var skills []types.Skill
	seen := make(map[string]bool)
	skipped := 0

	for i, record := range records {
		if i == 0 && len(record) > 0 && strings.EqualFold(strings.TrimSpace(record[0]), "id") {
			continue
		}
		skill, err := parseRow(record)
		if err != nil {
			fmt.Printf("  ✗ row %d: %v\n", i+1, err)
			skipped++
			continue
		}
		if seen[skill.ID] {
			fmt.Printf("  ✗ row %d: duplicate id %s\n", i+1, skill.ID)
			skipped++
			continue
		}
		seen[skill.ID] = true
		skills = append(skills, skill)
	}
	return skills, skipped, nil
}

func parseRow(record []string) (types.Skill, error) {
	if len(record) < 3 {
		return types.Skill{}, fmt.Errorf("want at least id,name,category, got %d fields", len(record))
	}

	id := strings.TrimSpace(record[0])
	name := strings.TrimSpace(record[1])
	category := types.SkillCategory(strings.ToLower(strings.TrimSpace(record[2])))

	if name == "" {
		return types.Skill{}, fmt.Errorf("empty name")
	}
	if !category.Valid() {
		return types.Skill{}, fmt.Errorf("unknown category %q", strings.TrimSpace(record[2]))
	}
	if id == "" {
		id = "skill:" + slugify(name)
	}

	skill := types.Skill{ID: id, Name: name, Category: category}
	if len(record) > 3 {
		for _, alias := range strings.Split(record[3], "|") {
			if alias = strings.TrimSpace(alias); alias != "" {
				skill.Aliases = append(skill.Aliases, alias)
			}
		}
	}
	return skill, nil
}

func slugify(name string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(name) {
		switch {
		case r >= 'a' && r <= 'z' || r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == ' ' || r == '-' || r == '_' || r == '/':
			b.WriteByte('-')
		}
	}
	return strings.Trim(b.String(), "-")
}

func buildProvider(ctx context.Context, name string) (embedding.Provider, error) {
	if name == "" {
		switch {
		case os.Getenv("GEMINI_API_KEY") != "":
			name = embedding.ProviderGemini
		case os.Getenv("OPENAI_API_KEY") != "":
			name = embedding.ProviderOpenAI
		default:
			return nil, fmt.Errorf("-embed requires GEMINI_API_KEY or OPENAI_API_KEY, or -provider local")
		}
	}

	apiKey := os.Getenv("GEMINI_API_KEY")
	if name == embedding.ProviderOpenAI {
		apiKey = os.Getenv("OPENAI_API_KEY")
	}
	return embedding.NewProvider(ctx, &embedding.Config{Provider: name}, apiKey)
}

// embedSkills fills in Embedding for every skill, batching requests so no
// single call exceeds the provider's batch limit.
func embedSkills(ctx context.Context, provider embedding.Provider, skills []types.Skill) error {
	names := make([]string, len(skills))
	for i, skill := range skills {
		names[i] = skill.Name
	}

	for start := 0; start < len(names); start += embedBatchSize {
		end := min(start+embedBatchSize, len(names))
		vectors, err := provider.EmbedBatch(ctx, names[start:end])
		if err != nil {
			return fmt.Errorf("batch %d-%d: %w", start, end-1, err)
		}
		for i, vec := range vectors {
			skills[start+i].Embedding = vec
		}
	}
	return nil
}

// linkRelated derives weighted same-category edges from embedding similarity.
// Edges below minWeight are dropped and each skill keeps at most k neighbors.
func linkRelated(skills []types.Skill, k int, minWeight float64) int {
	total := 0
	for i := range skills {
		if len(skills[i].Embedding) == 0 {
			continue
		}

		var edges []types.RelatedSkill
		for j := range skills {
			if i == j || skills[j].Category != skills[i].Category || len(skills[j].Embedding) == 0 {
				continue
			}
			weight := embedding.Cosine(skills[i].Embedding, skills[j].Embedding)
			if weight < minWeight {
				continue
			}
			edges = append(edges, types.RelatedSkill{
				ID:     skills[j].ID,
				Weight: math.Round(math.Min(weight, 1)*100) / 100,
			})
		}

		sort.Slice(edges, func(a, b int) bool {
			if edges[a].Weight != edges[b].Weight {
				return edges[a].Weight > edges[b].Weight
			}
			return edges[a].ID < edges[b].ID
		})
		if len(edges) > k {
			edges = edges[:k]
		}

		skills[i].Related = edges
		total += len(edges)
	}
	return total
}

func writeTaxonomy(path string, skills []types.Skill) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}

	w := bufio.NewWriter(f)
	for _, skill := range skills {
		line, err := json.Marshal(skill)
		if err != nil {
			f.Close()
			return err
		}
		w.Write(line)
		w.WriteByte('\n')
	}
	if err := w.Flush(); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
