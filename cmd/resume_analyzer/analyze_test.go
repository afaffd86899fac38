package main

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/resume-analyzer/internal/config"
	"github.com/jonathan/resume-analyzer/internal/types"
)

func analyzeTestConfig(t *testing.T) config.Config {
	t.Helper()

	dir := t.TempDir()
	return config.Config{
		Resume:    writeDoc(t, dir, "resume.txt", testResumeText),
		Job:       writeDoc(t, dir, "job.txt", testJobText),
		Taxonomy:  writeTaxonomy(t),
		Provider:  "none",
		Threshold: 0.5,
	}
}

func TestAnalyzeOnce_JSONToWriter(t *testing.T) {
	cfg := analyzeTestConfig(t)
	cfg.Output = "-"

	var buf bytes.Buffer
	require.NoError(t, analyzeOnce(context.Background(), cfg, "", &buf))

	var result types.AnalysisReport
	require.NoError(t, json.Unmarshal(buf.Bytes(), &result))

	assert.NotEmpty(t, result.ID)
	assert.NotEmpty(t, result.Composite.Grade)
	assert.Greater(t, result.Composite.Total, 0.0)
	assert.NotEmpty(t, result.Results)
	assert.Greater(t, result.Breakdown.MatchRate, 0.0)
	// No provider configured, so semantic fit ran its lexical fallback
	assert.True(t, result.SemanticFit.Degraded)
}

func TestAnalyzeOnce_HumanSummary(t *testing.T) {
	cfg := analyzeTestConfig(t)

	var buf bytes.Buffer
	require.NoError(t, analyzeOnce(context.Background(), cfg, "", &buf))

	output := buf.String()
	assert.Contains(t, output, "COMPOSITE SCORE")
	assert.NotContains(t, output, "RESUME SKILL PROFILE")
}

func TestAnalyzeOnce_VerbosePrintsStages(t *testing.T) {
	cfg := analyzeTestConfig(t)
	cfg.Verbose = true

	var buf bytes.Buffer
	require.NoError(t, analyzeOnce(context.Background(), cfg, "", &buf))

	output := buf.String()
	assert.Contains(t, output, "RESUME SKILL PROFILE")
	assert.Contains(t, output, "JOB SKILL PROFILE")
	assert.Contains(t, output, "KEYWORD COVERAGE")
	assert.Contains(t, output, "COMPOSITE SCORE")
}

func TestAnalyzeOnce_MergesExternalResults(t *testing.T) {
	cfg := analyzeTestConfig(t)
	cfg.Output = "-"

	externalPath := filepath.Join(t.TempDir(), "external.json")
	external := `[{"dimension": "file_layout", "score": 8, "max_points": 10, "findings": ["margins tight"]}]`
	require.NoError(t, os.WriteFile(externalPath, []byte(external), 0o644))

	var buf bytes.Buffer
	require.NoError(t, analyzeOnce(context.Background(), cfg, externalPath, &buf))

	var result types.AnalysisReport
	require.NoError(t, json.Unmarshal(buf.Bytes(), &result))

	var found bool
	for _, r := range result.Results {
		if r.Dimension == "file_layout" {
			found = true
			assert.Equal(t, 8.0, r.Score)
		}
	}
	assert.True(t, found, "external file_layout result should be merged")

	_, ok := result.Composite.Dimension("file_layout")
	assert.True(t, ok, "external dimension should contribute to the composite")
}

func TestAnalyzeOnce_MissingResume(t *testing.T) {
	cfg := analyzeTestConfig(t)
	cfg.Resume = filepath.Join(t.TempDir(), "absent.txt")

	err := analyzeOnce(context.Background(), cfg, "", &bytes.Buffer{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read resume")
}

func TestWriteReport_JSONFile(t *testing.T) {
	cfg := analyzeTestConfig(t)
	cfg.Output = filepath.Join(t.TempDir(), "report.json")

	var buf bytes.Buffer
	require.NoError(t, analyzeOnce(context.Background(), cfg, "", &buf))

	data, err := os.ReadFile(cfg.Output)
	require.NoError(t, err)

	var result types.AnalysisReport
	require.NoError(t, json.Unmarshal(data, &result))
	assert.NotEmpty(t, result.ID)

	assert.Contains(t, buf.String(), "Report written to")
	assert.Contains(t, buf.String(), "Score:")
}

func TestWriteReport_Workbook(t *testing.T) {
	cfg := analyzeTestConfig(t)
	cfg.Output = filepath.Join(t.TempDir(), "report.xlsx")

	var buf bytes.Buffer
	require.NoError(t, analyzeOnce(context.Background(), cfg, "", &buf))

	info, err := os.Stat(cfg.Output)
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(0))
	assert.Contains(t, buf.String(), "Workbook written to")
}

func TestAnalyzeCommand_FlagValidation(t *testing.T) {
	dir := t.TempDir()
	resume := writeDoc(t, dir, "resume.txt", testResumeText)
	job := writeDoc(t, dir, "job.txt", testJobText)

	rootCmd.SetArgs([]string{"analyze"})
	err := rootCmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--resume is required")

	rootCmd.SetArgs([]string{"analyze", "-r", resume, "-j", job, "--job-url", "https://example.com/posting"})
	err = rootCmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "mutually exclusive")
}
