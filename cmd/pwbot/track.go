package main

import (
	"context"
	"fmt"

	"github.com/jas0nkim/pricewatch/internal/usecase"
	"github.com/jas0nkim/pricewatch/pkg/utils"
	"github.com/spf13/cobra"
)

var trackCmd = &cobra.Command{
	Use:   "track",
	Short: "Schedule a job that re-crawls known skus/asins or urls",
	Run: func(cmd *cobra.Command, args []string) {
		if err := runTrack(cmd.Context()); err != nil {
			fail(err)
		}
	},
}

func runTrack(ctx context.Context) error {
	kwargs, err := parseArgPairs(flagArgs)
	if err != nil {
		return err
	}
	req := usecase.ScheduleRequest{
		Project: flagProject,
		Spider:  flagSpider,
		Version: flagVersion,
		Domain:  kwargs["domain"],
	}
	// asins is the historical spelling for amazon-family targets
	if skus, ok := kwargs["skus"]; ok {
		req.SKUs = utils.SplitTargets(skus)
	} else if asins, ok := kwargs["asins"]; ok {
		req.SKUs = utils.SplitTargets(asins)
	}
	if urls, ok := kwargs["urls"]; ok {
		req.URLs = utils.SplitTargets(urls)
	}
	delete(kwargs, "domain")
	delete(kwargs, "skus")
	delete(kwargs, "asins")
	delete(kwargs, "urls")
	req.Extra = kwargs

	scheduler, err := newScheduler(ctx)
	if err != nil {
		return err
	}
	defer scheduler.Close()

	if err := deployIfRequested(ctx, scheduler, flagProject); err != nil {
		return err
	}

	jobID, err := scheduler.Schedule(ctx, req)
	if err != nil {
		return err
	}
	fmt.Println(jobID)
	return nil
}
