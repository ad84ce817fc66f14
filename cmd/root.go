// Package cmd is for command line interactions with the synbio application
package cmd

import (
	"log"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// stderr is for logging to stderr without a timestamp
var stderr = log.New(os.Stderr, "", 0)

// RootCmd represents the base command when called without any subcommands.
var RootCmd = &cobra.Command{
	Use: "synbio",
	Short: `Create assembly protocols from plasmid designs.
Designs are resolved into assemblies, instructions, reagents and pick-lists`,
	Version: "0.1.0",
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the RootCmd.
func Execute() {
	if err := RootCmd.Execute(); err != nil {
		log.Fatalf("%v", err)
	}
}

func init() {
	// settings is an optional settings file that overrides the defaults
	RootCmd.PersistentFlags().StringP("settings", "s", "", "settings YAML")
	RootCmd.PersistentFlags().BoolP("verbose", "v", false, "whether to log progress to stderr")
	viper.BindPFlag("settings", RootCmd.PersistentFlags().Lookup("settings"))
	viper.BindPFlag("verbose", RootCmd.PersistentFlags().Lookup("verbose"))
}
