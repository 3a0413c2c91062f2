// Package main provides the CLI entrypoint for trivtui.
package main

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/okoshkin/trivtui/internal/config"
	"github.com/okoshkin/trivtui/internal/deck"
	"github.com/okoshkin/trivtui/internal/identity"
	"github.com/okoshkin/trivtui/internal/model"
	"github.com/okoshkin/trivtui/internal/scoreboard"
	"github.com/okoshkin/trivtui/internal/store"
	"github.com/okoshkin/trivtui/internal/trivia"
	"github.com/okoshkin/trivtui/internal/tui"
)

const (
	defaultAmount = 10
	defaultType   = "multiple"
)

var (
	quizAmount int
	quizType   string
	quizURL    string
)

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "trivtui",
		Short:         "TUI trivia quiz",
		SilenceUsage:  true,
		SilenceErrors: false,
		RunE:          runQuizCmd,
	}

	rootCmd.Flags().IntVar(&quizAmount, "amount", defaultAmount, "questions per round")
	rootCmd.Flags().StringVar(&quizType, "type", defaultType, "question type (multiple)")
	rootCmd.Flags().StringVar(&quizURL, "url", trivia.DefaultEndpoint, "question bank endpoint")

	rootCmd.AddCommand(newConfigCmd())
	rootCmd.AddCommand(newScoresCmd())
	rootCmd.AddCommand(newNewPlayerCmd())

	return rootCmd
}

func runQuizCmd(cmd *cobra.Command, _ []string) error {
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	applyIntConfig(cmd, "amount", &quizAmount, fileCfg.Quiz.Amount)
	applyStringConfig(cmd, "type", &quizType, fileCfg.Quiz.Type)
	applyStringConfig(cmd, "url", &quizURL, fileCfg.Quiz.URL)

	cfg := model.Config{
		Amount: quizAmount,
		Type:   quizType,
		URL:    quizURL,
	}
	if err := validateConfig(cfg); err != nil {
		return err
	}

	st, err := store.Open(config.DefaultDBPath())
	if err != nil {
		return fmt.Errorf("failed to open db: %w", err)
	}
	defer func() {
		if cerr := st.Close(); cerr != nil {
			logErrf("failed to close db: %v\n", cerr)
		}
	}()

	ids := identity.NewStore(config.DefaultIdentityPath())
	client := trivia.NewClient(cfg.URL)
	builder := deck.New()

	model := tui.NewModel(cfg, ids, st, client, builder)
	program := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("failed to run TUI: %w", err)
	}
	return nil
}

func newConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Create/open config file",
		Args:  cobra.NoArgs,
		RunE:  runConfigCmd,
	}
}

func runConfigCmd(_ *cobra.Command, _ []string) error {
	path := config.DefaultConfigPath()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if _, err := os.Stat(path); err != nil {
		if !os.IsNotExist(err) {
			return fmt.Errorf("failed to stat config: %w", err)
		}
		if err := os.WriteFile(path, []byte(defaultConfigTemplate()), 0o644); err != nil {
			return fmt.Errorf("failed to write config: %w", err)
		}
	}

	editor := strings.TrimSpace(os.Getenv("EDITOR"))
	if editor == "" {
		editor = "vi"
	}
	parts := strings.Fields(editor)
	if len(parts) == 0 {
		return fmt.Errorf("editor command is empty")
	}
	cmd := exec.Command(parts[0], append(parts[1:], path)...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("failed to open editor: %w", err)
	}
	return nil
}

func newScoresCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "scores",
		Short: "Print the score log",
		Args:  cobra.NoArgs,
		RunE:  runScoresCmd,
	}
}

func runScoresCmd(cmd *cobra.Command, _ []string) error {
	st, err := store.Open(config.DefaultDBPath())
	if err != nil {
		return fmt.Errorf("failed to open db: %w", err)
	}
	defer func() {
		if cerr := st.Close(); cerr != nil {
			logErrf("failed to close db: %v\n", cerr)
		}
	}()

	entries, err := st.ListScores(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to load scores: %w", err)
	}
	var buf strings.Builder
	if err := scoreboard.Format(&buf, entries); err != nil {
		return fmt.Errorf("failed to format scores: %w", err)
	}
	width := terminalWidth()
	for _, line := range strings.Split(strings.TrimRight(buf.String(), "\n"), "\n") {
		if _, err := fmt.Fprintln(cmd.OutOrStdout(), truncateLine(line, width)); err != nil {
			return fmt.Errorf("failed to write scores: %w", err)
		}
	}
	return nil
}

func truncateLine(line string, width int) string {
	if width <= 0 {
		return line
	}
	runes := []rune(line)
	if len(runes) <= width {
		return line
	}
	return string(runes[:width])
}

func newNewPlayerCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "newplayer",
		Short: "Forget the stored player identity",
		Args:  cobra.NoArgs,
		RunE:  runNewPlayerCmd,
	}
}

func runNewPlayerCmd(cmd *cobra.Command, _ []string) error {
	ids := identity.NewStore(config.DefaultIdentityPath())
	if err := ids.Delete(identity.UsernameKey); err != nil {
		return fmt.Errorf("failed to delete identity: %w", err)
	}
	if _, err := fmt.Fprintln(cmd.OutOrStdout(), "Player identity cleared."); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func terminalWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 {
		return 80
	}
	return width
}

func applyStringConfig(cmd *cobra.Command, name string, target, value *string) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyIntConfig(cmd *cobra.Command, name string, target, value *int) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func defaultConfigTemplate() string {
	return fmt.Sprintf(`# trivtui configuration
# Uncomment a value to enable it. CLI flags override config values.

[quiz]
# amount = %d                          # Questions per round
# type = %q                    # Question type
# url = %q  # Question bank endpoint
`,
		defaultAmount,
		defaultType,
		trivia.DefaultEndpoint,
	)
}

func validateConfig(cfg model.Config) error {
	if cfg.Amount <= 0 {
		return fmt.Errorf("--amount must be > 0")
	}
	if cfg.Type == "" {
		return fmt.Errorf("--type must not be empty")
	}
	if cfg.URL == "" {
		return fmt.Errorf("--url must not be empty")
	}
	return nil
}

func logErrf(format string, args ...any) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}
