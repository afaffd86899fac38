package main

import (
	"os"
	"testing"

	"github.com/joho/godotenv"
)

// TestMain loads .env if one is present so provider detection tests see
// the same environment the CLI would
func TestMain(m *testing.M) {
	_ = godotenv.Load()

	os.Exit(m.Run())
}
