package main

import (
	"context"
	"fmt"

	"github.com/jas0nkim/pricewatch/internal/usecase"
	"github.com/jas0nkim/pricewatch/pkg/utils"
	"github.com/spf13/cobra"
)

var discoverCmd = &cobra.Command{
	Use:   "discover",
	Short: "Schedule a job that crawls seed urls for new listings",
	Run: func(cmd *cobra.Command, args []string) {
		if err := runDiscover(cmd.Context()); err != nil {
			fail(err)
		}
	},
}

func runDiscover(ctx context.Context) error {
	kwargs, err := parseArgPairs(flagArgs)
	if err != nil {
		return err
	}
	urls := utils.SplitTargets(kwargs["urls"])
	delete(kwargs, "urls")

	scheduler, err := newScheduler(ctx)
	if err != nil {
		return err
	}
	defer scheduler.Close()

	if err := deployIfRequested(ctx, scheduler, flagProject); err != nil {
		return err
	}

	jobID, err := scheduler.Schedule(ctx, usecase.ScheduleRequest{
		Project: flagProject,
		Spider:  flagSpider,
		Version: flagVersion,
		URLs:    urls,
		Extra:   kwargs,
	})
	if err != nil {
		return err
	}
	fmt.Println(jobID)
	return nil
}
