package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rotaplan/oncall/app"
	"github.com/rotaplan/oncall/core/schedule"
	"github.com/rotaplan/oncall/infra/logger"
)

var (
	cfgPath   string
	startExpr string
	endExpr   string
	outputDir string
	genICS    bool
)

var rootCmd = &cobra.Command{
	Use:           "oncall",
	Short:         "Generate rotating on-call schedules from layer configurations",
	RunE:          runGenerate,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgPath, "config", "c", "schedule.yaml", "schedule configuration file (YAML or JSON)")
	rootCmd.Flags().StringVar(&startExpr, "start-date", "", `start date: YYYY-MM-DD, relative (+2w, +3m) or "today"`)
	rootCmd.Flags().StringVar(&endExpr, "end-date", "", "end date: YYYY-MM-DD or relative to the start date")
	rootCmd.Flags().StringVarP(&outputDir, "output-dir", "o", "", "output directory (defaults to the config basename)")
	rootCmd.Flags().BoolVar(&genICS, "generate-ics", false, "additionally emit one iCalendar feed per person")
}

// Execute runs the CLI.
func Execute() error { return rootCmd.Execute() }

func runGenerate(cmd *cobra.Command, args []string) error {
	logg := logger.New("generate")
	svc, err := app.New(app.Options{
		ConfigPath:  cfgPath,
		StartExpr:   startExpr,
		EndExpr:     endExpr,
		OutputDir:   outputDir,
		GenerateICS: genICS,
		Log:         logg,
	})
	if err != nil {
		return err
	}

	res, err := svc.Run()
	if err != nil {
		if errors.Is(err, schedule.ErrNoShifts) {
			logg.Errorf("configuration produced no shifts (dummy layers or empty teams?)")
		}
		return err
	}

	logg.Infof("schedule generated: %s", res.Workbook)
	logg.Infof("period: %s to %s (%d days), %d people, %d shifts",
		res.Range.Start.Format("2006-01-02"), res.Range.End.Format("2006-01-02"),
		res.Range.Days(), res.People, res.TotalShifts)
	if res.Timeline != "" {
		logg.Infof("timeline generated: %s", res.Timeline)
	}
	if len(res.ICSFiles) > 0 {
		logg.Infof("generated %d calendar feeds", len(res.ICSFiles))
		for _, p := range res.ICSFiles {
			fmt.Println(p)
		}
	}
	return nil
}
