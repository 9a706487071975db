// Command plasmoid-updater checks for and installs updates to locally
// installed KDE Plasma desktop components (plasmoids, themes, color
// schemes, wallpapers, and related kinds) from the KDE Store.
package main

import "github.com/uwuclxdy/plasmoid-updater/src/cmd/plasmoid-updater/internal/cmd"

func main() {
	cmd.Execute()
}
