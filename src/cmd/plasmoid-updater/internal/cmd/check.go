package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/uwuclxdy/plasmoid-updater/src/updater/orchestrator"
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Check for available updates without installing them",
	RunE:  runCheck,
}

func runCheck(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig()
	if err != nil {
		return err
	}
	log := newLogger()
	engine := orchestrator.New(VersionInfo.Version, storeBaseURL(), log)

	result, err := engine.Check(context.Background(), cfg)
	if err != nil {
		return err
	}

	if len(result.Updates) == 0 {
		fmt.Println("All components are up to date.")
	} else {
		fmt.Printf("%d update(s) available:\n", len(result.Updates))
		for _, u := range result.Updates {
			fmt.Printf("  %s: %s -> %s\n", u.Installed.Name, u.Installed.Version, u.LatestVer)
		}
	}

	if len(result.Unresolved) > 0 {
		fmt.Printf("\n%d component(s) could not be matched to a store entry:\n", len(result.Unresolved))
		for _, d := range result.Unresolved {
			fmt.Printf("  %s: %s\n", d.Name, d.Reason)
		}
	}

	if len(result.CheckFailures) > 0 {
		fmt.Printf("\n%d component(s) failed to evaluate:\n", len(result.CheckFailures))
		for _, d := range result.CheckFailures {
			fmt.Printf("  %s: %s\n", d.Name, d.Reason)
		}
	}

	return nil
}
