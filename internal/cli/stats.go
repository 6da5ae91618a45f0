package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

var statsJSON bool

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show corpus statistics",
	Args:  cobra.NoArgs,
	RunE:  runStats,
}

func init() {
	statsCmd.Flags().BoolVar(&statsJSON, "json", false, "output statistics as JSON")
	rootCmd.AddCommand(statsCmd)
}

func runStats(cmd *cobra.Command, args []string) error {
	st := svc.Stats()

	if statsJSON {
		data, err := json.MarshalIndent(st, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal stats: %w", err)
		}
		cmd.Println(string(data))
		return nil
	}

	cmd.Printf("Records: %d\n", st.TotalRecords)
	cmd.Printf("Words:   %d\n", st.TotalWords)
	cmd.Printf("Average: %d words/record\n", st.AverageWords)
	if st.LastAdded != nil {
		cmd.Printf("Last:    %s\n", st.LastAdded.Format("2006-01-02 15:04:05"))
	}
	return nil
}
