package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"recall/internal/domain"
)

var (
	searchTopK int
	searchJSON bool
)

var searchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Search stored conversation records",
	Long: `Ranks every stored record against the query by cosine similarity of
term-weighted vectors and prints the best matches.`,
	Args: cobra.ExactArgs(1),
	RunE: runSearch,
}

func init() {
	searchCmd.Flags().IntVarP(&searchTopK, "top-k", "n", 0, "maximum number of results (defaults to config top_k)")
	searchCmd.Flags().BoolVar(&searchJSON, "json", false, "output results as JSON")
	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
	topK := searchTopK
	if topK == 0 {
		topK = cfg.TopK
	}
	results := svc.Search(args[0], topK)

	if searchJSON {
		return outputSearchJSON(cmd, results)
	}
	return outputSearchText(cmd, results)
}

func outputSearchJSON(cmd *cobra.Command, results []domain.SearchResult) error {
	if results == nil {
		results = []domain.SearchResult{}
	}
	data, err := json.MarshalIndent(results, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal results: %w", err)
	}
	cmd.Println(string(data))
	return nil
}

func outputSearchText(cmd *cobra.Command, results []domain.SearchResult) error {
	if len(results) == 0 {
		cmd.Println("No results found.")
		return nil
	}
	cmd.Println("Results:")
	cmd.Println()
	for _, r := range results {
		cmd.Printf("  [%d] %s (%.2f)\n", r.Rank, snippet(r.Record.Content), r.Score)
		cmd.Printf("      id=%d added=%s\n", r.Record.ID, r.Record.Timestamp.Format("2006-01-02 15:04"))
		cmd.Println()
	}
	return nil
}

func snippet(content string) string {
	const width = 72
	if len(content) <= width {
		return content
	}
	return content[:width] + "…"
}
