package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/certlab/internal/catalog"
	"github.com/abhisek/certlab/internal/console"
	"github.com/abhisek/certlab/internal/store"
	"github.com/abhisek/certlab/internal/terminal"
)

var labCmd = &cobra.Command{
	Use:   "lab [module]",
	Short: "Run a hands-on lab in line mode, or list the labs",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cat, err := loadCatalog(cmd)
		if err != nil {
			return err
		}
		if len(args) == 0 {
			listLabs(cat)
			return nil
		}

		st, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer st.Close()

		sess, err := terminal.NewSession(
			terminal.NewResolver(cat),
			terminal.NewChecker(),
			args[0],
			terminal.WithJournal(store.SessionJournal{Events: st.EventRepo()}),
		)
		if err != nil {
			return err
		}
		return console.RunLab(cmd.Context(), sess, cmd.InOrStdin(), cmd.OutOrStdout())
	},
}

func listLabs(cat *catalog.Catalog) {
	checker := terminal.NewChecker()
	fmt.Printf("%-22s  %-40s  %8s  %s\n", "ID", "Title", "Commands", "Required")
	fmt.Println(strings.Repeat("─", 84))
	for _, m := range cat.Modules() {
		fmt.Printf("%-22s  %-40s  %8d  %d\n",
			m.ID, truncate(m.Title, 40), len(m.Commands), len(checker.Requirements(m.ID)))
	}
}
