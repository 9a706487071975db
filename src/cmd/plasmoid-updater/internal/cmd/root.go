package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/uwuclxdy/plasmoid-updater/src/common/cli"
	"github.com/uwuclxdy/plasmoid-updater/src/common/logs"
	"github.com/uwuclxdy/plasmoid-updater/src/common/version"
	updaterconfig "github.com/uwuclxdy/plasmoid-updater/src/updater/config"
)

// VersionInfo holds version information, set at build time via ldflags.
var VersionInfo = version.New()

// Linker variables - set via ldflags at build time.
var (
	Version        = "dev"
	ReleaseVersion = "0.0.0"
	BuildDate      = "unknown"
	GitCommit      = "unknown"
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "plasmoid-updater",
	Short: "Update installed KDE Plasma desktop components from the KDE Store",
	Long: `plasmoid-updater checks locally installed plasmoids, themes, color
schemes, wallpapers, and related KDE Plasma desktop components against the
KDE Store and installs the updates it finds.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if cmd.Name() == "version" {
			return nil
		}
		return initConfig()
	},
}

// Execute runs the root command; on failure it prints the error to
// stderr and exits the process with status 1.
func Execute() {
	VersionInfo.Version = Version
	VersionInfo.ReleaseVersion = ReleaseVersion
	VersionInfo.BuildDate = BuildDate
	VersionInfo.GitCommit = GitCommit

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	cli.RegisterConfigFlag(rootCmd, &cfgFile, "~/.config/plasmoid-updater/config.yaml")
	cli.RegisterLogFlags(rootCmd)

	rootCmd.PersistentFlags().Bool("system", false, "operate on system-wide install paths (requires elevated privileges)")
	rootCmd.PersistentFlags().StringSlice("exclude", nil, "component name or directory name to skip (repeatable)")
	rootCmd.PersistentFlags().String("widgets-id-file", "", "path to a flat-file directory-name to content-id fallback table")
	rootCmd.PersistentFlags().String("restart", "never", "post-update plasmashell restart policy: never, always, prompt")
	rootCmd.PersistentFlags().Int("threads", 0, "install worker pool size (0 = number of logical processors)")
	rootCmd.PersistentFlags().String("store-url", "", "override the KDE Store base URL")

	_ = viper.BindPFlag("system", rootCmd.PersistentFlags().Lookup("system"))
	_ = viper.BindPFlag("exclude", rootCmd.PersistentFlags().Lookup("exclude"))
	_ = viper.BindPFlag("widgets_id_file", rootCmd.PersistentFlags().Lookup("widgets-id-file"))
	_ = viper.BindPFlag("restart", rootCmd.PersistentFlags().Lookup("restart"))
	_ = viper.BindPFlag("threads", rootCmd.PersistentFlags().Lookup("threads"))
	_ = viper.BindPFlag("store_url", rootCmd.PersistentFlags().Lookup("store-url"))

	viper.SetDefault("restart", "never")

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(updateCmd)
	rootCmd.AddCommand(listCmd)
}

func initConfig() error {
	opts := cli.DefaultConfigOptions("config", "PLASMOID_UPDATER")
	opts.ConfigFile = cfgFile
	return cli.InitConfig(opts)
}

func newLogger() *logs.Logger {
	return cli.InitLogger("plasmoid-updater")
}

// buildConfig assembles an updater/config.Config from the bound Viper
// state. The engine never reads flags or files itself; this is the one
// place CLI state crosses into the engine's vocabulary.
func buildConfig() (updaterconfig.Config, error) {
	cfg := updaterconfig.New()
	cfg.System = viper.GetBool("system")
	cfg.ExcludedPackages = viper.GetStringSlice("exclude")
	cfg.Threads = viper.GetInt("threads")

	switch strings.ToLower(viper.GetString("restart")) {
	case "always":
		cfg.Restart = updaterconfig.RestartAlways
	case "prompt":
		cfg.Restart = updaterconfig.RestartPrompt
	default:
		cfg.Restart = updaterconfig.RestartNever
	}

	if path := viper.GetString("widgets_id_file"); path != "" {
		table, err := loadWidgetsIDTable(path)
		if err != nil {
			return updaterconfig.Config{}, err
		}
		cfg.WidgetsIDTable = table
	}

	return cfg, nil
}

func storeBaseURL() string {
	return viper.GetString("store_url")
}
