package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show lab, quiz and tutor statistics from the journal",
	RunE: func(cmd *cobra.Command, args []string) error {
		cat, err := loadCatalog(cmd)
		if err != nil {
			return err
		}
		st, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer st.Close()

		stats, err := st.EventRepo().Stats(cmd.Context())
		if err != nil {
			return fmt.Errorf("query stats: %w", err)
		}

		fmt.Println("Labs")
		fmt.Println(strings.Repeat("─", 72))
		fmt.Printf("%-36s  %8s  %9s  %11s\n", "Lab", "Commands", "Succeeded", "Completions")
		fmt.Println(strings.Repeat("─", 72))
		if len(stats.Modules) == 0 {
			fmt.Println("No lab activity yet.")
		}
		for _, m := range stats.Modules {
			name := m.ModuleID
			if mod, ok := cat.Module(m.ModuleID); ok {
				name = mod.Title
			}
			fmt.Printf("%-36s  %8d  %9d  %11d\n", truncate(name, 36), m.Attempts, m.Successes, m.Completions)
		}

		fmt.Println()
		if stats.QuizAnswers == 0 {
			fmt.Println("Quizzes:  no answers yet")
		} else {
			fmt.Printf("Quizzes:  %d/%d answers correct (%.0f%%)\n",
				stats.QuizCorrect, stats.QuizAnswers, 100*float64(stats.QuizCorrect)/float64(stats.QuizAnswers))
		}
		fmt.Printf("Tutor:    %d calls, %d input / %d output tokens\n",
			stats.LLMCalls, stats.InputTokens, stats.OutputTokens)
		return nil
	},
}
