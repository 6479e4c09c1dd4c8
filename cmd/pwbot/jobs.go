package main

import (
	"context"
	"fmt"
	"sort"

	"github.com/jas0nkim/pricewatch/internal/entity"
	"github.com/spf13/cobra"
)

var jobsCmd = &cobra.Command{
	Use:   "jobs",
	Short: "List a project's jobs",
	Run: func(cmd *cobra.Command, args []string) {
		if err := runJobs(cmd.Context()); err != nil {
			fail(err)
		}
	},
}

func runJobs(ctx context.Context) error {
	scheduler, err := newScheduler(ctx)
	if err != nil {
		return err
	}
	defer scheduler.Close()

	jobs, err := scheduler.ListJobs(ctx, flagProject, nil)
	if err != nil {
		return err
	}

	ordered := make([]*entity.Job, 0, len(jobs))
	for _, job := range jobs {
		ordered = append(ordered, job)
	}
	sort.Slice(ordered, func(i, j int) bool {
		return ordered[i].CreatedAt.Before(ordered[j].CreatedAt)
	})

	for _, job := range ordered {
		fmt.Printf("%s  v%-4d %-10s %-12s %s\n",
			job.ID, job.Version, job.Status, job.Spider, job.CreatedAt.Format("2006-01-02 15:04:05"))
	}
	return nil
}
