package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var updateCmd = &cobra.Command{
	Use:   "update [name] [text]",
	Short: "Replace the text of an existing note",
	Long:  `Update replaces the whole text of a note. When text is omitted it is read from stdin.`,
	Args:  cobra.RangeArgs(1, 2),
	Run: func(cmd *cobra.Command, args []string) {
		name := args[0]
		text, err := noteText(args)
		if err != nil {
			fatal("Error reading stdin", err)
		}

		service := openService()
		if err := service.UpdateNote(context.Background(), name, text); err != nil {
			fatal("Error updating note", err)
		}
		fmt.Printf("Note updated: %s\n", name)
	},
}

func init() {
	notesCmd.AddCommand(updateCmd)
}
