package install

import (
	"os"

	"github.com/uwuclxdy/plasmoid-updater/src/updater/kind"
)

// locateComponentDir finds the directory within an extracted archive
// that actually holds the component, using a kind-specific structural
// predicate. Returns ("", false) if nothing matches.
//
// Expressed as a switch over Kind rather than per-kind types, per the
// spec's explicit "tagged sum + switch, not subtype polymorphism"
// instruction for this dispatch.
func locateComponentDir(root string, k kind.Kind) (string, bool) {
	if _, hasPackaging := k.PackagingType(); hasPackaging {
		if dir, ok := findFirstDirWithChild(root, "metadata.json"); ok {
			return dir, true
		}
		if dir, ok := findFirstDirWithChild(root, "metadata.desktop"); ok {
			return dir, true
		}
		return "", false
	}

	switch k {
	case kind.ColorScheme:
		// A color scheme is a single .colors/.colorscheme file, not its
		// containing directory (spec.md §4.9 step 3; original_source's
		// install_color_scheme copies the file itself).
		if f, ok := findColorSchemeFile(root); ok {
			return f, true
		}
		return "", false

	case kind.IconTheme:
		if dir, ok := findFirstDirWithChild(root, "index.theme"); ok {
			return dir, true
		}
		return "", false

	case kind.Wallpaper:
		if dir, ok := findFirstDirWithChild(root, "contents", "metadata.json"); ok {
			return dir, true
		}
		// A single-image wallpaper is the image file itself, not its
		// containing directory (original_source's install_wallpaper
		// single-file branch).
		if f, ok := findFirstFileWithExt(root, wallpaperExtensions...); ok {
			return f, true
		}
		return "", false

	case kind.AuroraeDecoration:
		if dir, ok := findFirstDirWithChild(root, "decoration.svg", "aurorae"); ok {
			return dir, true
		}
		return "", false

	case kind.GlobalTheme, kind.SplashScreen, kind.LoginManagerTheme:
		if dir, ok := findFirstDirWithChild(root, "metadata.desktop"); ok {
			return dir, true
		}
		return "", false

	case kind.PlasmaStyle:
		if dir, ok := findFirstDirWithChild(root, "metadata.desktop", "colors", "widgets"); ok {
			return dir, true
		}
		return "", false

	case kind.WindowSwitcher:
		if dir, ok := findFirstDirWithChild(root, "metadata.json", "contents"); ok {
			return dir, true
		}
		return "", false

	default:
		return "", false
	}
}

// findColorSchemeFile finds the first .colors/.colorscheme file in the
// tree — findFirstFile only matches exact basenames, so this extension
// search goes through findFirstFileWithExt instead.
func findColorSchemeFile(root string) (string, bool) {
	return findFirstFileWithExt(root, colorSchemeExtensions...)
}

// componentIsDirectory reports whether the thing found at path should be
// treated as a directory component (recursive copy) vs a single file.
func componentIsDirectory(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return info.IsDir()
}
