package cmd

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/abhisek/certlab/internal/catalog"
	"github.com/abhisek/certlab/internal/llm"
	"github.com/abhisek/certlab/internal/logger"
	"github.com/abhisek/certlab/internal/store"
)

// conf holds the LLM settings: CERTLAB_* variables overlaid by flags.
var conf = viper.New()

var logCloser io.Closer

var rootCmd = &cobra.Command{
	Use:   "certlab",
	Short: "Learn certificates and OpenSSL in a simulated terminal",
	Long: `CertLab is a terminal workshop on certificates and OpenSSL: short lessons,
quizzes, and hands-on labs where openssl commands run in a simulated shell.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("load .env: %w", err)
		}
		level, _ := cmd.Flags().GetString("log-level")
		file, _ := cmd.Flags().GetString("log-file")
		c, err := logger.Configure(level, file)
		if err != nil {
			return fmt.Errorf("open log file: %w", err)
		}
		logCloser = c
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logCloser != nil {
			_ = logCloser.Close()
		}
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd)
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.String("db", "", "Path to SQLite database file (overrides CERTLAB_DB env var)")
	flags.String("catalog", "", "Load lab commands from this YAML file instead of the built-in catalog")
	flags.String("log-level", "", "Log level: debug, info, warn or error (overrides CERTLAB_LOG_LEVEL)")
	flags.String("log-file", "", "Append logs to this file")
	flags.String("provider", "", "LLM provider for the AI terminal: anthropic, openai, gemini or openrouter")
	flags.String("model", "", "Model name for the selected provider")

	llm.BindEnv(conf)
	_ = conf.BindPFlag(llm.KeyProvider, flags.Lookup("provider"))
	_ = conf.BindPFlag(llm.KeyModel, flags.Lookup("model"))

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(lessonsCmd)
	rootCmd.AddCommand(labCmd)
	rootCmd.AddCommand(quizCmd)
	rootCmd.AddCommand(tutorCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(llmCmd)
	rootCmd.AddCommand(updateCmd)
	rootCmd.AddCommand(versionCmd)
}

// resolveDBPath returns the database path using --db flag (highest priority),
// then CERTLAB_DB env var, then the default XDG path.
func resolveDBPath(cmd *cobra.Command) (string, error) {
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		return p, store.EnsureDir(p)
	}
	return store.DefaultDBPath()
}

func openStore(cmd *cobra.Command) (*store.Store, error) {
	dbPath, err := resolveDBPath(cmd)
	if err != nil {
		return nil, fmt.Errorf("resolve database path: %w", err)
	}
	st, err := store.Open(dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	return st, nil
}

// loadCatalog returns the --catalog file when given, else the built-in one.
func loadCatalog(cmd *cobra.Command) (*catalog.Catalog, error) {
	path, _ := cmd.Flags().GetString("catalog")
	if path == "" {
		return catalog.Default(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}
	cat, err := catalog.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("catalog %s: %w", path, err)
	}
	return cat, nil
}
