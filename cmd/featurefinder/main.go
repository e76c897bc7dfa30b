// FeatureFinder - LC-MS feature (UMC) detection tool
package main

import (
	"fmt"
	"os"

	"github.com/ChrisMcGann/FeatureFinder/cmd/featurefinder/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
