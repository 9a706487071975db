package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/uwuclxdy/plasmoid-updater/src/updater/orchestrator"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List installed components known to the updater",
	RunE:  runList,
}

func runList(cmd *cobra.Command, args []string) error {
	log := newLogger()
	engine := orchestrator.New(VersionInfo.Version, storeBaseURL(), log)

	components, err := engine.ListInstalled(viper.GetBool("system"))
	if err != nil {
		return err
	}

	if len(components) == 0 {
		fmt.Println("No installed components found.")
		return nil
	}

	for _, c := range components {
		fmt.Printf("%-40s %-12s %-10s %s\n", c.Name, c.Version, c.Kind.String(), c.Path)
	}
	return nil
}
