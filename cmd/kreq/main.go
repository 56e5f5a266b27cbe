// kreq reports the CPU and memory requests declared by cluster workloads and
// compares them against worker-node capacity.
//
// Installation:
//
//	go build -o kreq ./cmd/kreq
//	mv kreq /usr/local/bin/
//
// Usage:
//
//	kreq                  # all namespaces
//	kreq -n kube-system   # one namespace
//	kreq --wide           # include node resources and utilization
//	kreq -o json          # machine-readable output
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	version = "dev"

	namespaceFlag string
	wideFlag      bool
	outputFmt     string
	verboseFlag   bool
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "kreq",
		Short: "Report container resource requests against node capacity",
		Long: `kreq summarizes the resources.requests declared by every container and,
with --wide, compares their totals against worker-node allocatable capacity.

Examples:
  # Report requests across all namespaces
  kreq

  # Report a single namespace
  kreq -n kube-system

  # Include node resources and request utilization
  kreq --wide

  # Output as JSON
  kreq -o json`,
		Version: version,
		RunE:    runReport,
	}

	cmd.Flags().StringVarP(&namespaceFlag, "namespace", "n", "", "Only report pods in this namespace (default: all namespaces)")
	cmd.Flags().BoolVar(&wideFlag, "wide", false, "Include per-node resources and request utilization")
	cmd.Flags().StringVarP(&outputFmt, "output", "o", "table", "Output format: table, json, yaml")
	cmd.Flags().BoolVarP(&verboseFlag, "verbose", "v", false, "Enable debug logging to stderr")

	return cmd
}
