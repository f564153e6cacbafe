// Command stategraph dispatches the tutorial demos: list them, or run
// one by number or name against live providers.
package main

import (
	"os"

	"github.com/joho/godotenv"
)

func main() {
	// Keys (ANTHROPIC_API_KEY, OPENAI_API_KEY, PERPLEXITY_API_KEY)
	// usually live in a .env during development. A missing file is
	// fine; a missing key surfaces as an auth error on first use.
	_ = godotenv.Load()

	if err := newRootCmd(os.Stdin, os.Stdout).Execute(); err != nil {
		os.Exit(1)
	}
}
