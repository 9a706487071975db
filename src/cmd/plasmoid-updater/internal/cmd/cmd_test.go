package cmd

import (
	"testing"

	"github.com/spf13/viper"

	updaterconfig "github.com/uwuclxdy/plasmoid-updater/src/updater/config"
)

func TestRootCommand_HasSubcommands(t *testing.T) {
	expected := []string{"version", "check", "update", "list"}
	commands := make(map[string]bool)
	for _, c := range rootCmd.Commands() {
		commands[c.Name()] = true
	}
	for _, name := range expected {
		if !commands[name] {
			t.Errorf("expected subcommand %q not found on root", name)
		}
	}
}

func TestRootCmd_PersistentFlags(t *testing.T) {
	flags := rootCmd.PersistentFlags()
	for _, name := range []string{"system", "exclude", "widgets-id-file", "restart", "threads", "store-url"} {
		if flags.Lookup(name) == nil {
			t.Errorf("expected persistent flag --%s on root", name)
		}
	}
}

func TestRootCmd_RestartFlagDefault(t *testing.T) {
	flag := rootCmd.PersistentFlags().Lookup("restart")
	if flag == nil {
		t.Fatal("expected --restart flag")
	}
	if flag.DefValue != "never" {
		t.Errorf("expected default restart value \"never\", got %q", flag.DefValue)
	}
}

func TestBuildConfigDefaultsToRestartNever(t *testing.T) {
	viper.Reset()
	defer viper.Reset()

	cfg, err := buildConfig()
	if err != nil {
		t.Fatalf("buildConfig() error: %v", err)
	}
	if cfg.Restart != updaterconfig.RestartNever {
		t.Errorf("expected restart policy never by default, got %v", cfg.Restart)
	}
}

func TestBuildConfigParsesRestartAlways(t *testing.T) {
	viper.Reset()
	defer viper.Reset()
	viper.Set("restart", "Always")

	cfg, err := buildConfig()
	if err != nil {
		t.Fatalf("buildConfig() error: %v", err)
	}
	if cfg.Restart != updaterconfig.RestartAlways {
		t.Errorf("expected restart policy always, got %v", cfg.Restart)
	}
}

func TestBuildConfigCarriesExcludedPackages(t *testing.T) {
	viper.Reset()
	defer viper.Reset()
	viper.Set("exclude", []string{"Some Widget", "other-dir"})

	cfg, err := buildConfig()
	if err != nil {
		t.Fatalf("buildConfig() error: %v", err)
	}
	if len(cfg.ExcludedPackages) != 2 {
		t.Errorf("expected 2 excluded packages, got %v", cfg.ExcludedPackages)
	}
}

func TestStoreBaseURLReadsViper(t *testing.T) {
	viper.Reset()
	defer viper.Reset()
	viper.Set("store_url", "https://example.test/ocs/v1")

	if got := storeBaseURL(); got != "https://example.test/ocs/v1" {
		t.Errorf("storeBaseURL() = %q, want https://example.test/ocs/v1", got)
	}
}

func TestVersionInfo_Defaults(t *testing.T) {
	if Version != "dev" {
		t.Errorf("expected default Version \"dev\", got %q", Version)
	}
	if BuildDate != "unknown" {
		t.Errorf("expected default BuildDate \"unknown\", got %q", BuildDate)
	}
}
