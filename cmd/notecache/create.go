package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
)

var createCmd = &cobra.Command{
	Use:   "create [name] [text]",
	Short: "Create a new note",
	Long:  `Create stores a new note. When text is omitted it is read from stdin.`,
	Args:  cobra.RangeArgs(1, 2),
	Run: func(cmd *cobra.Command, args []string) {
		name := args[0]
		text, err := noteText(args)
		if err != nil {
			fatal("Error reading stdin", err)
		}

		service := openService()
		if err := service.CreateNote(context.Background(), name, text); err != nil {
			fatal("Error creating note", err)
		}
		fmt.Printf("Note created: %s\n", name)
	},
}

// noteText returns the second argument, or stdin when it is absent.
func noteText(args []string) (string, error) {
	if len(args) > 1 {
		return args[1], nil
	}
	data, err := io.ReadAll(os.Stdin)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func init() {
	notesCmd.AddCommand(createCmd)
}
