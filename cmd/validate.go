package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rotaplan/oncall/config"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check a schedule configuration without generating output",
	RunE:  runValidate,
}

func init() {
	rootCmd.AddCommand(validateCmd)
}

func runValidate(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return err
	}
	sc := cfg.Schedule
	fmt.Printf("%s: %d layer(s)\n", sc.Name, len(sc.Layers))
	for _, layer := range sc.OrderedLayers() {
		state := ""
		if layer.Dummy {
			state = " [dummy]"
		}
		fmt.Printf("  %s%s: %d people, %d weekday window(s)\n",
			layer.DisplayName(), state, len(layer.RotationTeam), len(layer.TimeWindows))
	}
	return nil
}
