// Command everdiff computes and renders the semantic difference between two
// YAML document streams: identity-based pairing, pre-patching, structural
// comparison with array-move detection, and path-based change filtering.
package main

import (
	"fmt"
	"os"
)

func main() {
	os.Exit(run())
}

func run() int {
	rootCmd := newRootCmd()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		return 2
	}

	return rootExitCode
}
