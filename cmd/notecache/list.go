package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/aretw0/notecache/pkg/core"
)

var (
	listMatch  string
	listOutput string
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all notes in the cache directory",
	Long: `List prints every note name, one per line. With --output json or yaml it
prints the notes with their text. --match filters names with a glob pattern (e.g. "*.txt").`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		service := openService()

		notes, err := service.ListNotesMatching(context.Background(), listMatch)
		if err != nil {
			fatal("Error listing notes", err)
		}

		switch listOutput {
		case "json":
			encoder := json.NewEncoder(os.Stdout)
			encoder.SetIndent("", "  ")
			if notes == nil {
				notes = []core.Note{}
			}
			if err := encoder.Encode(notes); err != nil {
				fatal("Error encoding JSON", err)
			}
		case "yaml":
			encoder := yaml.NewEncoder(os.Stdout)
			encoder.SetIndent(2)
			if err := encoder.Encode(notes); err != nil {
				fatal("Error encoding YAML", err)
			}
			if err := encoder.Close(); err != nil {
				fatal("Error encoding YAML", err)
			}
		case "text":
			for _, note := range notes {
				fmt.Println(note.Name)
			}
		default:
			fatal("Error", fmt.Errorf("unknown output format %q", listOutput))
		}
	},
}

func init() {
	notesCmd.AddCommand(listCmd)
	listCmd.Flags().StringVar(&listMatch, "match", "", "Only list notes whose name matches a glob pattern")
	listCmd.Flags().StringVarP(&listOutput, "output", "o", "text", "Output format (text, json, yaml)")
}
