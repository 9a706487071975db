// Package kind holds the compile-time component-type taxonomy: the closed
// set of KDE Plasma component kinds and the constants that drive every
// other package's per-kind behavior (install paths, registry files,
// backup subdirectories, packaging type). All other code in this module
// dispatches on Kind rather than hard-coding kind-specific logic.
package kind

// Kind is one of the thirteen supported KDE Plasma component types.
type Kind int

const (
	PlasmaWidget Kind = iota
	WallpaperPlugin
	WindowEffect
	WindowScript
	WindowSwitcher
	GlobalTheme
	PlasmaStyle
	AuroraeDecoration
	ColorScheme
	SplashScreen
	LoginManagerTheme
	IconTheme
	Wallpaper
)

// All returns every kind in a stable order, for iteration during
// discovery and planning.
func All() []Kind {
	return []Kind{
		PlasmaWidget, WallpaperPlugin, WindowEffect, WindowScript,
		WindowSwitcher, GlobalTheme, PlasmaStyle, AuroraeDecoration,
		ColorScheme, SplashScreen, LoginManagerTheme, IconTheme, Wallpaper,
	}
}

// AllUser returns every kind that has a user-local install path. Login
// manager themes are system-only (sddm runs outside any user session).
func AllUser() []Kind {
	out := make([]Kind, 0, len(All())-1)
	for _, k := range All() {
		if k != LoginManagerTheme {
			out = append(out, k)
		}
	}
	return out
}

func (k Kind) String() string {
	switch k {
	case PlasmaWidget:
		return "Plasma Widget"
	case WallpaperPlugin:
		return "Wallpaper Plugin"
	case WindowEffect:
		return "Window Effect"
	case WindowScript:
		return "Window Script"
	case WindowSwitcher:
		return "Window Switcher"
	case GlobalTheme:
		return "Global Theme"
	case PlasmaStyle:
		return "Plasma Style"
	case AuroraeDecoration:
		return "Aurorae Decoration"
	case ColorScheme:
		return "Color Scheme"
	case SplashScreen:
		return "Splash Screen"
	case LoginManagerTheme:
		return "Login Manager Theme"
	case IconTheme:
		return "Icon Theme"
	case Wallpaper:
		return "Wallpaper"
	default:
		return "Unknown"
	}
}

// CategoryID returns the KDE Store category id used as the query key
// for this kind.
func (k Kind) CategoryID() uint16 {
	switch k {
	case PlasmaWidget:
		return 705
	case WallpaperPlugin:
		return 715
	case WindowEffect:
		return 719
	case WindowScript:
		return 720
	case WindowSwitcher:
		return 721
	case GlobalTheme:
		return 722
	case PlasmaStyle:
		return 709
	case AuroraeDecoration:
		return 114
	case ColorScheme:
		return 112
	case SplashScreen:
		return 708
	case LoginManagerTheme:
		return 101
	case IconTheme:
		return 132
	case Wallpaper:
		return 299
	default:
		return 0
	}
}

// MatchesTypeID reports whether a store-returned type_id belongs to this
// kind. PlasmaWidget is the parent of OCS subcategories 706-713 and 723
// (Applets, Clocks, Monitoring, etc.); every other kind only matches its
// own category id.
func (k Kind) MatchesTypeID(typeID uint16) bool {
	if k.CategoryID() == typeID {
		return true
	}
	if k == PlasmaWidget && ((typeID >= 706 && typeID <= 713) || typeID == 723) {
		return true
	}
	return false
}

// PackagingType returns the string passed to kpackagetool6 for kinds
// installed via that tool. Absence means "install by direct file copy".
func (k Kind) PackagingType() (string, bool) {
	switch k {
	case PlasmaWidget:
		return "Plasma/Applet", true
	case WallpaperPlugin:
		return "Plasma/Wallpaper", true
	case WindowEffect:
		return "KWin/Effect", true
	case WindowScript:
		return "KWin/Script", true
	case WindowSwitcher:
		return "KWin/WindowSwitcher", true
	default:
		return "", false
	}
}

// RegistryOnly reports whether this kind leaves no metadata on disk and
// is discovered solely by parsing the side-channel registry.
func (k Kind) RegistryOnly() bool {
	switch k {
	case IconTheme, Wallpaper, ColorScheme:
		return true
	default:
		return false
	}
}

// UserInstallSuffix returns the path suffix under the user's data home,
// or false for system-only kinds.
func (k Kind) UserInstallSuffix() (string, bool) {
	switch k {
	case PlasmaWidget:
		return "plasma/plasmoids", true
	case WallpaperPlugin:
		return "plasma/wallpapers", true
	case WindowEffect:
		return "kwin/effects", true
	case WindowScript:
		return "kwin/scripts", true
	case WindowSwitcher:
		return "kwin/tabbox", true
	case GlobalTheme, SplashScreen:
		return "plasma/look-and-feel", true
	case PlasmaStyle:
		return "plasma/desktoptheme", true
	case AuroraeDecoration:
		return "aurorae/themes", true
	case ColorScheme:
		return "color-schemes", true
	case LoginManagerTheme:
		return "", false
	case IconTheme:
		return "icons", true
	case Wallpaper:
		return "wallpapers", true
	default:
		return "", false
	}
}

// SystemInstallPath returns the fixed absolute system install path.
func (k Kind) SystemInstallPath() string {
	switch k {
	case PlasmaWidget:
		return "/usr/share/plasma/plasmoids"
	case WallpaperPlugin:
		return "/usr/share/plasma/wallpapers"
	case WindowEffect:
		return "/usr/share/kwin/effects"
	case WindowScript:
		return "/usr/share/kwin/scripts"
	case WindowSwitcher:
		return "/usr/share/kwin/tabbox"
	case GlobalTheme, SplashScreen:
		return "/usr/share/plasma/look-and-feel"
	case PlasmaStyle:
		return "/usr/share/plasma/desktoptheme"
	case AuroraeDecoration:
		return "/usr/share/aurorae/themes"
	case ColorScheme:
		return "/usr/share/color-schemes"
	case LoginManagerTheme:
		return "/usr/share/sddm/themes"
	case IconTheme:
		return "/usr/share/icons"
	case Wallpaper:
		return "/usr/share/wallpapers"
	default:
		return ""
	}
}

// BackupSubdir returns the backup subdirectory name for this kind.
func (k Kind) BackupSubdir() string {
	switch k {
	case PlasmaWidget:
		return "plasma-plasmoids"
	case WallpaperPlugin:
		return "plasma-wallpapers"
	case WindowEffect:
		return "kwin-effects"
	case WindowScript:
		return "kwin-scripts"
	case WindowSwitcher:
		return "kwin-tabbox"
	case GlobalTheme:
		return "plasma-look-and-feel"
	case PlasmaStyle:
		return "plasma-desktoptheme"
	case AuroraeDecoration:
		return "aurorae-themes"
	case ColorScheme:
		return "color-schemes"
	case SplashScreen:
		return "plasma-splash"
	case LoginManagerTheme:
		return "sddm-themes"
	case IconTheme:
		return "icons"
	case Wallpaper:
		return "wallpapers"
	default:
		return ""
	}
}

// SideChannelFile returns the knewstuff3 registry filename for this
// kind, or false if the kind has none.
func (k Kind) SideChannelFile() (string, bool) {
	switch k {
	case PlasmaWidget:
		return "plasmoids.knsregistry", true
	case WindowEffect:
		return "kwineffect.knsregistry", true
	case WindowScript:
		return "kwinscripts.knsregistry", true
	case WindowSwitcher:
		return "kwinswitcher.knsregistry", true
	case WallpaperPlugin:
		return "wallpaperplugin.knsregistry", true
	case GlobalTheme:
		return "lookandfeel.knsregistry", true
	case PlasmaStyle:
		return "plasma-themes.knsregistry", true
	case AuroraeDecoration:
		return "aurorae.knsregistry", true
	case ColorScheme:
		return "colorschemes.knsregistry", true
	case SplashScreen:
		return "ksplash.knsregistry", true
	case LoginManagerTheme:
		return "sddmtheme.knsregistry", true
	case IconTheme:
		return "icons.knsregistry", true
	case Wallpaper:
		return "wallpaper.knsregistry", true
	default:
		return "", false
	}
}

// RequiresShellRestart reports whether a successful update of a
// component of this kind should trigger a plasmashell restart under the
// Always restart policy.
func (k Kind) RequiresShellRestart() bool {
	switch k {
	case PlasmaWidget, PlasmaStyle, GlobalTheme, SplashScreen, WindowSwitcher:
		return true
	default:
		return false
	}
}
