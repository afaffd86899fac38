package knowledge

import (
	"bufio"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"go.uber.org/zap"

	"github.com/jonathan/resume-analyzer/internal/schemas"
	"github.com/jonathan/resume-analyzer/internal/types"
)

//go:embed taxonomy_record.schema.json
var recordSchemaJSON string

// LoadError represents a fatal failure to load the taxonomy source. Unlike
// malformed individual records, which are skipped, a LoadError means no
// usable index could be produced.
type LoadError struct {
	Source string
	Cause  error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("failed to load taxonomy from %s: %v", e.Source, e.Cause)
}

func (e *LoadError) Unwrap() error {
	return e.Cause
}

// record is the wire shape of one taxonomy JSONL line
type record struct {
	ID        string               `json:"id"`
	Name      string               `json:"name"`
	Category  string               `json:"category"`
	Aliases   []string             `json:"aliases"`
	Embedding []float32            `json:"embedding"`
	Related   []types.RelatedSkill `json:"related"`
}

// LoadFile builds an index from a taxonomy JSONL file. A missing or
// unreadable file is fatal; individual malformed records are skipped with a
// warning and counted in the index stats.
func LoadFile(path string, logger *zap.Logger) (*Index, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &LoadError{Source: path, Cause: err}
	}
	defer f.Close()

	idx, err := LoadReader(f, logger)
	if err != nil {
		return nil, &LoadError{Source: path, Cause: err}
	}
	return idx, nil
}

// LoadReader builds an index from JSONL taxonomy content
func LoadReader(r io.Reader, logger *zap.Logger) (*Index, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	schema, err := schemas.Compile("taxonomy_record", recordSchemaJSON)
	if err != nil {
		return nil, err
	}

	scanner := bufio.NewScanner(r)
	// embedding lines run long: 768 floats is tens of kilobytes
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)

	var (
		skills  []types.Skill
		skipped int
		line    int
	)
	for scanner.Scan() {
		line++
		raw := strings.TrimSpace(scanner.Text())
		if raw == "" {
			continue
		}

		if err := schema.Validate([]byte(raw)); err != nil {
			skipped++
			logger.Warn("skipping malformed taxonomy record",
				zap.Int("line", line),
				zap.String("reason", firstValidationMessage(err)))
			continue
		}

		var rec record
		if err := json.Unmarshal([]byte(raw), &rec); err != nil {
			skipped++
			logger.Warn("skipping malformed taxonomy record",
				zap.Int("line", line),
				zap.Error(err))
			continue
		}

		skills = append(skills, types.Skill{
			ID:        rec.ID,
			Name:      rec.Name,
			Category:  types.SkillCategory(rec.Category),
			Aliases:   rec.Aliases,
			Embedding: rec.Embedding,
			Related:   rec.Related,
		})
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read taxonomy: %w", err)
	}
	if len(skills) == 0 {
		return nil, fmt.Errorf("no valid taxonomy records found (%d skipped)", skipped)
	}

	idx, err := NewIndex(skills, skipped)
	if err != nil {
		return nil, err
	}

	logger.Info("taxonomy loaded",
		zap.Int("entries", idx.Count()),
		zap.Int("skipped", skipped),
		zap.Int("dimensions", idx.Dimensions()))
	return idx, nil
}

// firstValidationMessage condenses a validation error for a one-line warning
func firstValidationMessage(err error) string {
	var ve *schemas.ValidationError
	if errors.As(err, &ve) && len(ve.Errors) > 0 {
		return fmt.Sprintf("%s: %s", ve.Errors[0].Field, ve.Errors[0].Message)
	}
	return err.Error()
}
