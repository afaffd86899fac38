package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

const testResumeText = `Jane Smith
jane@example.com | 555-0100

EXPERIENCE
Senior Backend Engineer, Initech
Jan 2019 - Present
- Built Python services with Django and PostgreSQL
- Led stakeholder communication across three teams

EDUCATION
B.S. Computer Science, 2014 - 2018
`

const testJobText = `Backend Engineer

We are hiring a backend engineer with strong Python and PostgreSQL
experience. Django knowledge is a plus. Strong communication skills
required.
`

// writeTaxonomy writes a small embedding-free taxonomy JSONL and returns
// its path. Without vectors, analysis runs the lexical fallback, so no
// provider is needed.
func writeTaxonomy(t *testing.T) string {
	t.Helper()

	lines := `{"id":"skill:python","name":"Python","category":"technical","aliases":["python3"]}
{"id":"skill:django","name":"Django","category":"technical"}
{"id":"skill:postgresql","name":"PostgreSQL","category":"technical","aliases":["postgres"]}
{"id":"skill:communication","name":"Communication","category":"soft"}
`
	path := filepath.Join(t.TempDir(), "skills.jsonl")
	require.NoError(t, os.WriteFile(path, []byte(lines), 0o644))
	return path
}

// writeDoc writes content under dir and returns the file path.
func writeDoc(t *testing.T, dir, name, content string) string {
	t.Helper()

	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}
