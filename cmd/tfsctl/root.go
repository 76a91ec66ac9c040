package main

import (
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "tfsctl",
	Short: "Drive a tfs in-memory filesystem from the command line",
	Long: `tfsctl is a test and operations driver for the tfs engine: it
replays line-oriented operation scripts, exposes Prometheus metrics
for a long-running instance, and runs concurrency stress tests.`,
}

func init() {
	cobra.OnInitialize(initConfig)
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config-file", "", "path to a tfsctl config file")
	bindEnv(rootCmd.PersistentFlags())
	rootCmd.AddCommand(runCmd, serveCmd, stressCmd)
}

// bindEnv wires every persistent flag into viper so subcommands can
// resolve configuration from flags or TFSCTL_* environment variables
// uniformly, mirroring gcsfuse's cfg.BindFlags(rootCmd.PersistentFlags()).
func bindEnv(flags *pflag.FlagSet) {
	flags.VisitAll(func(f *pflag.Flag) {
		_ = viper.BindPFlag(f.Name, f)
	})
}

func initConfig() {
	viper.SetEnvPrefix("TFSCTL")
	viper.AutomaticEnv()
	if cfgFile == "" {
		return
	}
	viper.SetConfigFile(cfgFile)
	_ = viper.ReadInConfig() // absence of a config file is not fatal
}
