package cmd

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/uwuclxdy/plasmoid-updater/src/updater/orchestrator"
	"github.com/uwuclxdy/plasmoid-updater/src/updater/types"
)

var updateCmd = &cobra.Command{
	Use:   "update",
	Short: "Install available updates",
	RunE:  runUpdate,
}

func init() {
	updateCmd.Flags().BoolP("yes", "y", false, "install every available update without prompting")
}

func runUpdate(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig()
	if err != nil {
		return err
	}
	yes, _ := cmd.Flags().GetBool("yes")
	cfg.Yes = yes

	log := newLogger()
	engine := orchestrator.New(VersionInfo.Version, storeBaseURL(), log)

	selector := &terminalSelector{reader: bufio.NewReader(os.Stdin)}

	summary, err := engine.Update(context.Background(), cfg, selector)
	if err != nil {
		return err
	}

	for _, name := range summary.Succeeded {
		fmt.Printf("updated: %s\n", name)
	}
	for _, f := range summary.Failed {
		fmt.Printf("failed: %s: %s\n", f.Name, f.Reason)
	}
	for _, name := range summary.Skipped {
		fmt.Printf("skipped: %s\n", name)
	}

	if len(summary.Failed) > 0 {
		return fmt.Errorf("%d update(s) failed", len(summary.Failed))
	}
	return nil
}

// terminalSelector is the interactive orchestrator.Selector backing the
// update subcommand: a plain stdin/stdout prompt loop, no TUI library,
// matching the CLI's otherwise non-interactive surface.
type terminalSelector struct {
	reader *bufio.Reader
}

func (s *terminalSelector) SelectUpdates(candidates []types.AvailableUpdate) ([]types.AvailableUpdate, error) {
	var selected []types.AvailableUpdate
	for _, u := range candidates {
		fmt.Printf("Install %s %s -> %s? [Y/n] ", u.Installed.Name, u.Installed.Version, u.LatestVer)
		line, err := s.reader.ReadString('\n')
		if err != nil {
			return selected, nil
		}
		if answeredNo(line) {
			continue
		}
		selected = append(selected, u)
	}
	return selected, nil
}

func (s *terminalSelector) ConfirmRestart() (bool, error) {
	fmt.Print("Restart plasmashell now? [y/N] ")
	line, err := s.reader.ReadString('\n')
	if err != nil {
		return false, nil
	}
	return answeredYes(line), nil
}

func answeredNo(line string) bool {
	line = strings.ToLower(strings.TrimSpace(line))
	return line == "n" || line == "no"
}

func answeredYes(line string) bool {
	line = strings.ToLower(strings.TrimSpace(line))
	return line == "y" || line == "yes"
}
