// Package main provides the resume-analyzer CLI: scoring, batch export,
// the REST API server, and taxonomy inspection.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "resume_analyzer",
	Short: "Resume vs. job-description compatibility scoring",
	Long:  "Resume Analyzer scores how well a resume matches a job description: skill extraction against a taxonomy, embedding-based semantic fit, role-mismatch penalties, and a weighted composite grade.",
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
