package knowledge

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/jonathan/resume-analyzer/internal/types"
)

// DefaultSimilarityThreshold is the minimum cosine similarity for a
// nearest-embedding lookup to count as a match
const DefaultSimilarityThreshold = 0.50

// ErrNotFound reports a skill ID absent from the taxonomy
var ErrNotFound = errors.New("skill not found")

// Index is the immutable in-memory view of the skill taxonomy
type Index struct {
	skills  []types.Skill
	byID    map[string]int
	byName  map[string]int
	byAlias map[string]int
	norms   []float64
	dims    int
	aliases int
	skipped int
}

// NewIndex builds an index from loaded taxonomy entries. The skipped count
// records malformed records the loader dropped and is surfaced in Stats.
func NewIndex(skills []types.Skill, skipped int) (*Index, error) {
	idx := &Index{
		skills:  skills,
		byID:    make(map[string]int, len(skills)),
		byName:  make(map[string]int, len(skills)),
		byAlias: make(map[string]int),
		norms:   make([]float64, len(skills)),
		skipped: skipped,
	}

	for i, s := range skills {
		if _, dup := idx.byID[s.ID]; dup {
			return nil, fmt.Errorf("duplicate skill id %q", s.ID)
		}
		idx.byID[s.ID] = i

		name := NormalizeTerm(s.Name)
		if name == "" {
			return nil, fmt.Errorf("skill %q has an empty normalized name", s.ID)
		}
		if _, dup := idx.byName[name]; !dup {
			idx.byName[name] = i
		}

		for _, alias := range s.Aliases {
			key := NormalizeTerm(alias)
			if key == "" {
				continue
			}
			if _, dup := idx.byAlias[key]; !dup {
				idx.byAlias[key] = i
				idx.aliases++
			}
		}

		if len(s.Embedding) > 0 {
			if idx.dims == 0 {
				idx.dims = len(s.Embedding)
			} else if idx.dims != len(s.Embedding) {
				return nil, fmt.Errorf("mixed embedding dimensions: skill %q has %d, index has %d",
					s.ID, len(s.Embedding), idx.dims)
			}
			var sum float64
			for _, v := range s.Embedding {
				sum += float64(v) * float64(v)
			}
			idx.norms[i] = math.Sqrt(sum)
		}
	}

	return idx, nil
}

// Resolve looks a term up by normalized exact match, canonical names first,
// then aliases
func (idx *Index) Resolve(term string) (types.Skill, types.MatchSource, bool) {
	key := NormalizeTerm(term)
	if key == "" {
		return types.Skill{}, "", false
	}
	if i, ok := idx.byName[key]; ok {
		return idx.skills[i], types.MatchExact, true
	}
	if i, ok := idx.byAlias[key]; ok {
		return idx.skills[i], types.MatchAlias, true
	}
	return types.Skill{}, "", false
}

// Nearest scans all embedded entries for the highest cosine similarity to
// vec. It returns no match when the best similarity is below threshold, when
// vec is empty, or when its width differs from the index.
func (idx *Index) Nearest(vec []float32, threshold float64) (types.Skill, float64, bool) {
	if len(vec) == 0 || len(vec) != idx.dims {
		return types.Skill{}, 0, false
	}

	var vecNorm float64
	for _, v := range vec {
		vecNorm += float64(v) * float64(v)
	}
	vecNorm = math.Sqrt(vecNorm)
	if vecNorm == 0 {
		return types.Skill{}, 0, false
	}

	best := -1
	bestSim := 0.0
	for i := range idx.skills {
		if idx.norms[i] == 0 {
			continue
		}
		var dot float64
		emb := idx.skills[i].Embedding
		for j := range vec {
			dot += float64(vec[j]) * float64(emb[j])
		}
		sim := dot / (vecNorm * idx.norms[i])
		if best == -1 || sim > bestSim {
			best = i
			bestSim = sim
		}
	}

	if best == -1 || bestSim < threshold {
		return types.Skill{}, bestSim, false
	}
	return idx.skills[best], bestSim, true
}

// Get returns a skill by its stable ID
func (idx *Index) Get(id string) (types.Skill, bool) {
	i, ok := idx.byID[id]
	if !ok {
		return types.Skill{}, false
	}
	return idx.skills[i], true
}

// Related returns the weighted related-skill edges for a skill ID
func (idx *Index) Related(id string) []types.RelatedSkill {
	i, ok := idx.byID[id]
	if !ok {
		return nil
	}
	edges := make([]types.RelatedSkill, len(idx.skills[i].Related))
	copy(edges, idx.skills[i].Related)
	return edges
}

// Search returns up to limit skills whose normalized name or alias contains
// the normalized query, ordered by name for stable output
func (idx *Index) Search(query string, limit int) []types.Skill {
	q := NormalizeTerm(query)
	if q == "" || limit <= 0 {
		return nil
	}

	seen := make(map[string]struct{})
	var out []types.Skill
	for _, s := range idx.skills {
		if _, dup := seen[s.ID]; dup {
			continue
		}
		if strings.Contains(NormalizeTerm(s.Name), q) {
			out = append(out, s)
			seen[s.ID] = struct{}{}
			continue
		}
		for _, alias := range s.Aliases {
			if strings.Contains(NormalizeTerm(alias), q) {
				out = append(out, s)
				seen[s.ID] = struct{}{}
				break
			}
		}
	}

	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	if len(out) > limit {
		out = out[:limit]
	}
	return out
}

// Count returns the number of indexed entries
func (idx *Index) Count() int {
	return len(idx.skills)
}

// Skills returns a copy of every indexed entry in load order, for taxonomy
// export and sync tooling
func (idx *Index) Skills() []types.Skill {
	out := make([]types.Skill, len(idx.skills))
	copy(out, idx.skills)
	return out
}

// Dimensions returns the embedding width of the index, 0 when no entry
// carries an embedding
func (idx *Index) Dimensions() int {
	return idx.dims
}

// Stats describes the loaded taxonomy
type Stats struct {
	Entries      int     `json:"entries"`
	Embedded     int     `json:"embedded"`
	Dimensions   int     `json:"dimensions"`
	Aliases      int     `json:"aliases"`
	Technical    int     `json:"technical"`
	Soft         int     `json:"soft"`
	RelatedEdges int     `json:"related_edges"`
	AvgRelated   float64 `json:"avg_related"`
	Skipped      int     `json:"skipped,omitempty"`
}

// Stats computes summary statistics over the index
func (idx *Index) Stats() Stats {
	st := Stats{
		Entries:    len(idx.skills),
		Dimensions: idx.dims,
		Aliases:    idx.aliases,
		Skipped:    idx.skipped,
	}
	for i, s := range idx.skills {
		if idx.norms[i] > 0 {
			st.Embedded++
		}
		switch s.Category {
		case types.CategoryTechnical:
			st.Technical++
		case types.CategorySoft:
			st.Soft++
		}
		st.RelatedEdges += len(s.Related)
	}
	if st.Entries > 0 {
		st.AvgRelated = float64(st.RelatedEdges) / float64(st.Entries)
	}
	return st
}
