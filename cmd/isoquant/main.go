// isoquant - relative isotope abundance quantitation for proteomics
package main

import (
	"fmt"
	"os"

	"github.com/benchlab/isoquant/cmd/isoquant/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
