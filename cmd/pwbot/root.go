package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

var (
	flagDeploy  bool
	flagProject string
	flagVersion int
	flagSpider  string
	flagArgs    []string

	rootCmd = &cobra.Command{
		Use:   "pwbot",
		Short: "Schedule and monitor pricewatch crawl jobs",
		Long: `pwbot schedules crawl jobs against the pricewatch store.

discover  schedule a job that crawls seed urls for new listings
track     schedule a job that re-crawls known skus/asins or urls
jobs      list a project's jobs`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}
)

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&flagDeploy, "deploy", "d", false, "add a new version before scheduling")
	rootCmd.PersistentFlags().StringVarP(&flagProject, "project", "p", "", "project name")
	rootCmd.PersistentFlags().IntVarP(&flagVersion, "version", "v", 0, "version to schedule under (default: active version)")
	rootCmd.PersistentFlags().StringVarP(&flagSpider, "spider", "s", "", "spider/target-type selector")
	rootCmd.PersistentFlags().StringArrayVarP(&flagArgs, "arg", "a", nil, "argument as name=value (repeatable)")

	rootCmd.AddCommand(discoverCmd)
	rootCmd.AddCommand(trackCmd)
	rootCmd.AddCommand(jobsCmd)
}

// parseArgPairs turns repeated -a name=value flags into a map.
func parseArgPairs(pairs []string) (map[string]string, error) {
	kwargs := make(map[string]string, len(pairs))
	for _, pair := range pairs {
		name, value, ok := strings.Cut(pair, "=")
		if !ok || name == "" {
			return nil, fmt.Errorf("invalid -a argument %q, expected name=value", pair)
		}
		kwargs[name] = value
	}
	return kwargs, nil
}

// fail prints an operational error and exits 1. Usage errors never reach
// here; cobra reports those and main exits 2.
func fail(err error) {
	fmt.Fprintln(os.Stderr, "pwbot:", err)
	os.Exit(1)
}
