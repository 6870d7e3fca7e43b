package root

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"lento/internal/ui"
)

const Version = "0.1.0"

var rootCmd = &cobra.Command{
	Use:           "lento",
	Short:         "Lento — daily quest engine for your habits, journal and focus time",
	Long:          "Lento assigns a deterministic set of daily and weekly quests from your activity data, tracks XP, and unlocks achievements. Same day, same device: same quests.",
	SilenceUsage:  true,
	SilenceErrors: true,
}

var (
	flagConfig string
	flagDB     string
	flagData   string
)

func Execute() {
	rootCmd.Version = Version
	rootCmd.SetVersionTemplate("{{.Name}} v{{.Version}}\n")

	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "config file (default ~/.lento.yaml)")
	rootCmd.PersistentFlags().StringVar(&flagDB, "db", "", "engine state database (default ~/.lento.db)")
	rootCmd.PersistentFlags().StringVar(&flagData, "data", "", "activity snapshot JSON exported by the host app")

	rootCmd.AddCommand(
		newTodayCmd(),
		newWeeklyCmd(),
		newRerollCmd(),
		newStatsCmd(),
		newAchievementsCmd(),
		newBoardCmd(),
		newDBCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, ui.Bad.Render("Error: ")+err.Error())
		os.Exit(1)
	}
}
