package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/rotaplan/oncall/config"
	"github.com/rotaplan/oncall/core/schedule"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Report how evenly shifts are distributed across people",
	RunE:  runStats,
}

func init() {
	statsCmd.Flags().StringVar(&startExpr, "start-date", "", `start date: YYYY-MM-DD, relative (+2w, +3m) or "today"`)
	statsCmd.Flags().StringVar(&endExpr, "end-date", "", "end date: YYYY-MM-DD or relative to the start date")
	rootCmd.AddCommand(statsCmd)
}

func runStats(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return err
	}
	sc := cfg.Schedule

	opts := schedule.RangeOptions{ConfigStart: sc.StartDate, DurationMonths: sc.DurationMonths}
	if startExpr != "" {
		start, err := schedule.ResolveDateExpr(startExpr, schedule.Midnight(time.Now()))
		if err != nil {
			return err
		}
		opts.StartOverride = &start
	}
	if endExpr != "" {
		ref := schedule.Midnight(time.Now())
		if opts.StartOverride != nil {
			ref = *opts.StartOverride
		}
		end, err := schedule.ResolveDateExpr(endExpr, ref)
		if err != nil {
			return err
		}
		opts.EndOverride = &end
	}
	rng, err := schedule.CalculateRange(opts, time.Time{})
	if err != nil {
		return err
	}

	sched := schedule.Build(sc.OrderedLayers(), rng)
	sum := schedule.Summarize(sched)
	if sum.Total == 0 {
		return schedule.ErrNoShifts
	}

	fmt.Printf("%s: %s to %s\n", sc.Name, rng.Start.Format("2006-01-02"), rng.End.Format("2006-01-02"))
	for _, pc := range sum.PerPerson {
		fmt.Printf("  %-20s %d\n", pc.Person, pc.Shifts)
	}
	fmt.Printf("total %d, mean %.2f, stddev %.2f, min %d, max %d\n",
		sum.Total, sum.Mean, sum.StdDev, sum.Min, sum.Max)
	return nil
}
