package cmd

import (
	"os"

	"github.com/uwuclxdy/plasmoid-updater/src/common/cli"
)

// loadWidgetsIDTable reads the --widgets-id-file flat file into the
// resolver's third-tier fallback table.
func loadWidgetsIDTable(path string) (map[string]uint64, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return cli.ParseWidgetsIDTable(f)
}
