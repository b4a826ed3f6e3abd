// Package commands contains the gateway's command-line entry points.
package commands

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/K0LbAzzeR/dapi/config"
)

// ParseConfig overlays the config file, environment and bound flags onto
// conf and validates the result.
func ParseConfig(conf *config.Config) error {
	if file := viper.GetString("config"); file != "" {
		viper.SetConfigFile(file)
		if err := viper.ReadInConfig(); err != nil {
			return fmt.Errorf("reading config file: %w", err)
		}
	}
	if err := viper.Unmarshal(conf); err != nil {
		return err
	}
	if err := conf.ValidateBasic(); err != nil {
		return fmt.Errorf("error in config file: %w", err)
	}
	return nil
}

// RootCommand constructs the root command-line entry point for the gateway.
func RootCommand(conf *config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "dapid",
		Short: "Decentralized API gateway for the Dash network",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Name() == VersionCmd.Name() {
				return nil
			}
			if err := viper.BindPFlags(cmd.Flags()); err != nil {
				return err
			}
			viper.SetEnvPrefix("DAPI")
			viper.AutomaticEnv()
			return ParseConfig(conf)
		},
	}
	cmd.PersistentFlags().String("config", "", "path to config file")
	cmd.PersistentFlags().String("log-level", conf.LogLevel, "log level")
	cmd.PersistentFlags().String("log-format", conf.LogFormat,
		fmt.Sprintf("log format (%s | %s)", config.LogFormatPlain, config.LogFormatJSON))
	return cmd
}
