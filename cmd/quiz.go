package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/certlab/internal/console"
	"github.com/abhisek/certlab/internal/course"
)

var quizCmd = &cobra.Command{
	Use:   "quiz <lesson>",
	Short: "Take a lesson's quiz in line mode",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		l, ok := course.GetLesson(args[0])
		if !ok {
			return fmt.Errorf("no lesson %q", args[0])
		}
		if !l.HasQuiz() {
			return fmt.Errorf("lesson %q has no quiz", l.ID)
		}

		st, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer st.Close()

		console.RunQuiz(cmd.Context(), l, st.EventRepo(), cmd.InOrStdin(), cmd.OutOrStdout())
		return nil
	},
}
