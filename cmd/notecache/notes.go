package main

import (
	"errors"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/aretw0/notecache"
	"github.com/aretw0/notecache/pkg/core"
)

var notesCmd = &cobra.Command{
	Use:   "notes",
	Short: "Work with the notes of a cache directory without the server",
	Long: `The notes commands read and write the cache directory given by --cache
(or NOTECACHE_CACHE) directly. The directory must already exist.`,
}

// openService opens the store named by --cache.
func openService() *core.Service {
	dir := settings.GetString("cache")
	if dir == "" {
		fatal("Error", errors.New("option --cache is required"))
	}

	service, err := notecache.New(dir,
		notecache.WithMustExist(true),
		notecache.WithLogger(slog.Default()),
	)
	if err != nil {
		fatal("Error initializing store", err)
	}
	return service
}

func init() {
	rootCmd.AddCommand(notesCmd)
}
