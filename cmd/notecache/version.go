package main

import (
	"fmt"

	"github.com/aretw0/notecache"
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of notecache",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("notecache version %s\n", notecache.Version)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
