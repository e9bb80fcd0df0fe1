package cmd

import (
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/nsxbet/sql-parser/pkg/config"
	"github.com/nsxbet/sql-parser/pkg/logger"
)

var cfgFile string

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "sql-parser",
	Short: "A fault-tolerant MySQL parser",
	Long: `SQL Parser is a command-line tool that tokenizes, parses and rebuilds
MySQL scripts.

Parsing never stops at the first problem: every command works on the
statements that could be recovered and reports the diagnostics found
along the way.`,
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		initLogger()
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	// Global flags
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&cfgFile, "config", "", "config file (default is $HOME/.sql-parser.yaml)")
	flags.Bool("verbose", false, "enable verbose output")
	flags.Bool("debug", false, "enable debug output")
	flags.String("delimiter", ";", "statement delimiter")
	flags.StringSlice("sql-mode", nil, "sql_mode names (ANSI_QUOTES, NO_BACKSLASH_ESCAPES)")
	flags.Int("max-errors", 0, "maximum number of diagnostics to keep (0 for the default)")
	flags.Bool("strict", false, "fail on the first diagnostic")
	flags.StringP("output", "o", config.OutputText, "output format (text, json, yaml)")

	// Bind flags to viper
	_ = viper.BindPFlag("verbose", flags.Lookup("verbose"))
	_ = viper.BindPFlag("debug", flags.Lookup("debug"))
	_ = viper.BindPFlag("delimiter", flags.Lookup("delimiter"))
	_ = viper.BindPFlag("sql_mode", flags.Lookup("sql-mode"))
	_ = viper.BindPFlag("max_errors", flags.Lookup("max-errors"))
	_ = viper.BindPFlag("strict", flags.Lookup("strict"))
	_ = viper.BindPFlag("output", flags.Lookup("output"))
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	if cfgFile != "" {
		// Use config file from the flag.
		viper.SetConfigFile(cfgFile)
	} else {
		// Find home directory.
		home, err := os.UserHomeDir()
		cobra.CheckErr(err)

		// Search config in home directory with name ".sql-parser" (without extension).
		viper.AddConfigPath(home)
		viper.AddConfigPath(".")
		viper.SetConfigType("yaml")
		viper.SetConfigName(".sql-parser")
	}

	viper.SetEnvPrefix("SQLPARSER")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv() // read in environment variables that match

	// A missing config file is not an error; the flags and defaults apply.
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			slog.Warn("Failed to read config file", "file", viper.ConfigFileUsed(), "error", err)
		}
		return
	}
	slog.Debug("Using config file", "file", viper.ConfigFileUsed())
}

func initLogger() {
	level := slog.LevelWarn
	if viper.GetBool("debug") {
		level = slog.LevelDebug
	} else if viper.GetBool("verbose") {
		level = slog.LevelInfo
	}
	slog.SetDefault(logger.NewWithLevel(level).GetSlogLogger())
}

// loadConfig merges the config file, environment and flags into a
// config.Config.
func loadConfig() (*config.Config, error) {
	cfg := config.DefaultConfig()
	if d := viper.GetString("delimiter"); d != "" {
		cfg.Delimiter = d
	}
	cfg.SQLMode = viper.GetStringSlice("sql_mode")
	cfg.MaxErrors = viper.GetInt("max_errors")
	cfg.Strict = viper.GetBool("strict")
	cfg.ValidateSQL = viper.GetBool("validate")
	if o := viper.GetString("output"); o != "" {
		cfg.Output = o
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	slog.Debug("Loaded configuration", "delimiter", cfg.Delimiter, "sql_mode", cfg.SQLMode, "output", cfg.Output)
	return cfg, nil
}

// commandLogger returns the logger passed to the parser.
func commandLogger() logger.Interface {
	if viper.GetBool("debug") {
		return logger.NewWithLevel(slog.LevelDebug)
	}
	return logger.NewDiscard()
}
