package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/outreach-agent/internal/config"
)

var locationsCommand = &cobra.Command{
	Use:   "locations",
	Short: "List the supported search locations",
	Run: func(_ *cobra.Command, _ []string) {
		for _, name := range config.LocationNames() {
			fmt.Println(name)
		}
	},
}

func init() {
	rootCmd.AddCommand(locationsCommand)
}
