package main

import (
	"fmt"
	"os"
)

// go run ./cmd/seocompetitor analyze
// go run ./cmd/seocompetitor analyze ./seo/reports/competitors.json --insights
// go run ./cmd/seocompetitor history https://practo.com --limit 5
func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
