package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var addMeta map[string]string

var addCmd = &cobra.Command{
	Use:   "add [content]",
	Short: "Store a conversation record",
	Args:  cobra.ExactArgs(1),
	RunE:  runAdd,
}

func init() {
	addCmd.Flags().StringToStringVar(&addMeta, "meta", nil, "metadata key=value pairs")
	rootCmd.AddCommand(addCmd)
}

func runAdd(cmd *cobra.Command, args []string) error {
	var metadata map[string]any
	if len(addMeta) > 0 {
		metadata = make(map[string]any, len(addMeta))
		for k, v := range addMeta {
			metadata[k] = v
		}
	}
	id, err := svc.Add(args[0], metadata)
	if err != nil {
		return fmt.Errorf("add failed: %w", err)
	}
	cmd.Printf("Stored record %d\n", id)
	return nil
}
