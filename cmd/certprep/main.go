// Package main implements the entry point for the certprep API server,
// which schedules spaced-repetition reviews and generates adaptive study
// plans for certification exam preparation.
package main

import "os"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
