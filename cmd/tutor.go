package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/certlab/internal/console"
)

var tutorCmd = &cobra.Command{
	Use:   "tutor",
	Short: "Chat with the AI terminal tutor in line mode",
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer st.Close()

		t, err := newTutor(cmd.Context(), st.EventRepo())
		if err != nil {
			return fmt.Errorf("LLM provider: %w", err)
		}
		return console.RunTutor(cmd.Context(), t, cmd.InOrStdin(), cmd.OutOrStdout())
	},
}
