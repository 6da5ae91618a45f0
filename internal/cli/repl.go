package cli

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"recall/internal/tui"
)

var replCmd = &cobra.Command{
	Use:   "repl",
	Short: "Start the interactive loop",
	Long: `Opens an interactive session. Line commands map onto the core:

  search <query>   rank stored records against the query
  add <content>    store a new conversation record
  stats            show corpus statistics
  quit             leave the session`,
	Args: cobra.NoArgs,
	RunE: runRepl,
}

func init() {
	rootCmd.AddCommand(replCmd)
}

func runRepl(cmd *cobra.Command, args []string) error {
	m := tui.New(svc, cfg.TopK)
	if _, err := tea.NewProgram(m).Run(); err != nil {
		return fmt.Errorf("interactive session failed: %w", err)
	}
	return nil
}
