package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/abhisek/certlab/internal/app"
	"github.com/abhisek/certlab/internal/llm"
	"github.com/abhisek/certlab/internal/logger"
	"github.com/abhisek/certlab/internal/tutor"
)

// runApp opens the store, builds dependencies, and launches the TUI.
func runApp(cmd *cobra.Command) error {
	cat, err := loadCatalog(cmd)
	if err != nil {
		return err
	}
	st, err := openStore(cmd)
	if err != nil {
		return err
	}
	defer st.Close()

	eventRepo := st.EventRepo()
	opts := app.Options{
		Catalog: cat,
		Events:  eventRepo,
	}
	opts.SkipWelcome, _ = cmd.Flags().GetBool("skip-welcome")

	t, err := newTutor(cmd.Context(), eventRepo)
	if err != nil {
		fmt.Fprintln(os.Stderr, "LLM provider not configured:", err)
		fmt.Fprintln(os.Stderr, "The AI terminal will be unavailable.")
	} else {
		opts.Tutor = t
	}

	// The TUI owns the terminal; logs only go to an explicit file.
	if f, _ := cmd.Flags().GetString("log-file"); f == "" {
		logger.Discard()
	}
	return app.Run(opts)
}

// newTutor builds the tutor from conf. An explicit --provider or
// CERTLAB_LLM_PROVIDER disables discovery of the vendors' own key variables.
func newTutor(ctx context.Context, rec llm.EventRecorder) (*tutor.Tutor, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	cfg, err := llm.ResolveConfig(llm.ConfigFromViper(conf), conf.IsSet(llm.KeyProvider))
	if err != nil {
		return nil, err
	}
	provider, err := llm.NewProvider(ctx, cfg, rec)
	if err != nil {
		return nil, err
	}
	logger.Logger.Debug("llm provider ready", "provider", provider.Name(), "model", provider.ModelID())
	return tutor.New(provider, tutor.DefaultConfig()), nil
}
