package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

type Config struct {
	baseURL string
	bind    string
	dataDir string
	port    int
	verbose bool
}

func (c *Config) validate() error {
	if c.port < 1 || c.port > 65535 {
		return fmt.Errorf("invalid port (must be between 1-65535 inclusive): %d", c.port)
	}
	return nil
}

func (c *Config) externalURL() string {
	if c.baseURL != "" {
		return strings.TrimSuffix(c.baseURL, "/")
	}
	return fmt.Sprintf("http://%s:%d", c.bind, c.port)
}

func newCmd(cfg *Config) *cobra.Command {
	v := viper.New()
	v.SetEnvPrefix("IMPOSTER")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	cmd := &cobra.Command{
		Use:           "imposter",
		Short:         "A pass-the-phone social deduction party game, served from a single binary.",
		Args:          cobra.ExactArgs(0),
		SilenceErrors: true,
		Version:       releaseVersion,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := cfg.validate(); err != nil {
				return err
			}
			return ServePage(cmd.Context(), cfg)
		},
	}

	fs := cmd.Flags()

	fs.SetNormalizeFunc(func(_ *pflag.FlagSet, name string) pflag.NormalizedName {
		return pflag.NormalizedName(strings.ReplaceAll(name, "_", "-"))
	})

	fs.StringVar(&cfg.baseURL, "base-url", "", "external URL used in QR codes, for use behind reverse proxy (env: IMPOSTER_BASE_URL)")
	fs.StringVarP(&cfg.bind, "bind", "b", "0.0.0.0", "address to bind to (env: IMPOSTER_BIND)")
	fs.StringVar(&cfg.dataDir, "data-dir", "data", "directory for snapshots and the stats database (env: IMPOSTER_DATA_DIR)")
	fs.IntVarP(&cfg.port, "port", "p", 8080, "port to listen on (env: IMPOSTER_PORT)")
	fs.BoolVarP(&cfg.verbose, "verbose", "v", false, "display additional output (env: IMPOSTER_VERBOSE)")

	fs.VisitAll(func(f *pflag.Flag) {
		_ = v.BindPFlag(f.Name, f)
		_ = v.BindEnv(f.Name)
		if !f.Changed && v.IsSet(f.Name) {
			_ = fs.Set(f.Name, fmt.Sprintf("%v", v.Get(f.Name)))
		}
	})

	cmd.CompletionOptions.HiddenDefaultCmd = true
	cmd.SetHelpCommand(&cobra.Command{Hidden: true})
	cmd.SetVersionTemplate("imposter v{{.Version}}\n")

	cmd.SilenceUsage = true

	return cmd
}
