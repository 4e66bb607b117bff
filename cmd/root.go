// Copyright © 2025 The failtrace authors

package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	cfgFile   string
	colorFlag string
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "failtrace",
	Short: "failtrace — annotated failure-trace rendering",
	Long: `failtrace renders captured failure traces as human-readable reports,
annotating each source line with the live values of the identifiers it
references using column-aligned connector glyphs.

Getting started:
  failtrace render trace.json     Render a captured trace dump
  failtrace render -a trace.json  Render with ASCII-only output
  failtrace roles                 Preview every theme role

Trace dumps record a failure chain (kind, message, cause/context links)
together with per-frame source locations and variable bindings.  Dumps are
JSON for interchange or msgpack for compactness; see the dump package for
the layout.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.failtrace.yaml)")
	rootCmd.PersistentFlags().StringVar(&colorFlag, "color", "auto",
		`Control colored output: "auto", "always", or "never".`)
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	if cfgFile != "" {
		// Use config file from the flag.
		viper.SetConfigFile(cfgFile)
	} else {
		// Find home directory.
		home, err := os.UserHomeDir()
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}

		// Search config in home directory with name ".failtrace" (without extension).
		viper.AddConfigPath(home)
		viper.SetConfigName(".failtrace")
	}

	viper.AutomaticEnv() // read in environment variables that match

	// If a config file is found, read it in.
	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}
