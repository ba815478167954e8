package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var getCmd = &cobra.Command{
	Use:   "get [name]",
	Short: "Print the text of a note",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		service := openService()

		note, err := service.GetNote(context.Background(), args[0])
		if err != nil {
			fatal("Error reading note", err)
		}
		fmt.Print(note.Text)
	},
}

func init() {
	notesCmd.AddCommand(getCmd)
}
