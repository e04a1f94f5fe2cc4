// Package main provides the CLI entrypoint for tuiwrite.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/term"

	"github.com/verte-zerg/tuiwrite/internal/config"
	"github.com/verte-zerg/tuiwrite/internal/logging"
	"github.com/verte-zerg/tuiwrite/internal/model"
	"github.com/verte-zerg/tuiwrite/internal/notes"
	"github.com/verte-zerg/tuiwrite/internal/stats"
	"github.com/verte-zerg/tuiwrite/internal/store"
	"github.com/verte-zerg/tuiwrite/internal/textfile"
	"github.com/verte-zerg/tuiwrite/internal/tui"
)

const defaultAutoSaveDelayMs = 1000

var (
	verbose bool
	logger  = zap.NewNop()

	editorAutoSaveDelay int
	editorExportDir     string

	statsDraft bool

	exportDir      string
	exportMarkdown bool
)

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:               "tuiwrite",
		Short:             "Minimal terminal writing tool",
		SilenceUsage:      true,
		SilenceErrors:     false,
		PersistentPreRunE: initLogger,
		PersistentPostRun: func(*cobra.Command, []string) {
			_ = logger.Sync()
		},
		RunE: runEditorCmd,
	}

	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	rootCmd.Flags().IntVar(&editorAutoSaveDelay, "autosave-delay", defaultAutoSaveDelayMs, "milliseconds of inactivity before the draft is saved")
	rootCmd.Flags().StringVar(&editorExportDir, "export-dir", config.DefaultExportDir(), "directory for exported files")

	rootCmd.AddCommand(newConfigCmd())
	rootCmd.AddCommand(newStatsCmd())
	rootCmd.AddCommand(newNotesCmd())
	rootCmd.AddCommand(newExportCmd())
	rootCmd.AddCommand(newImportCmd())
	rootCmd.AddCommand(newDeleteCmd())

	return rootCmd
}

func initLogger(_ *cobra.Command, _ []string) error {
	l, err := logging.New(config.DefaultLogPath(), verbose)
	if err != nil {
		return err
	}
	logger = l
	return nil
}

func runEditorCmd(cmd *cobra.Command, _ []string) error {
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	applyIntConfig(cmd, "autosave-delay", &editorAutoSaveDelay, fileCfg.Editor.AutoSaveDelayMs)
	applyStringConfig(cmd, "export-dir", &editorExportDir, fileCfg.Editor.ExportDir)

	cfg := model.EditorConfig{
		AutoSaveDelay: time.Duration(editorAutoSaveDelay) * time.Millisecond,
		ExportDir:     editorExportDir,
	}
	if err := validateConfig(cfg); err != nil {
		return err
	}

	st, ns, err := openNotes(fileCfg)
	if err != nil {
		return err
	}
	defer closeStore(st)

	snap := ns.LoadAll(context.Background())
	logger.Info("editor started",
		zap.Int("notes", len(snap.Notes)),
		zap.Bool("resumed_note", snap.CurrentNoteID != ""),
	)
	m := tui.NewModel(cfg, ns, snap, logger)
	program := tea.NewProgram(m, tea.WithAltScreen())
	_, err = program.Run()
	m.Close()
	if err != nil {
		return fmt.Errorf("failed to run TUI: %w", err)
	}
	return nil
}

func openNotes(fileCfg config.FileConfig) (*store.Store, *notes.Store, error) {
	st, err := store.Open(config.DefaultDBPath())
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open db: %w", err)
	}
	ns := notes.New(st,
		notes.WithLogger(logger),
		notes.WithDefaultSettings(fileCfg.InitialSettings()),
	)
	return st, ns, nil
}

func openNotesWithConfig() (*store.Store, *notes.Store, error) {
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load config: %w", err)
	}
	return openNotes(fileCfg)
}

func closeStore(st *store.Store) {
	if cerr := st.Close(); cerr != nil {
		logErrf("failed to close db: %v\n", cerr)
	}
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

func newStatsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stats [file]",
		Short: "Show writing stats for a file, stdin, or the saved draft",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runStatsCmd,
	}
	cmd.Flags().BoolVar(&statsDraft, "draft", false, "use the saved draft")
	return cmd
}

func runStatsCmd(cmd *cobra.Command, args []string) error {
	text, err := readStatsInput(cmd.InOrStdin(), args)
	if err != nil {
		return err
	}
	if err := stats.RenderStats(cmd.OutOrStdout(), stats.Compute(text)); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func readStatsInput(stdin io.Reader, args []string) (string, error) {
	if statsDraft {
		if len(args) > 0 {
			return "", fmt.Errorf("--draft does not take a file argument")
		}
		st, ns, err := openNotesWithConfig()
		if err != nil {
			return "", err
		}
		defer closeStore(st)
		return ns.LoadAll(context.Background()).Draft, nil
	}
	if len(args) == 1 {
		data, err := os.ReadFile(args[0])
		if err != nil {
			return "", fmt.Errorf("failed to read %s: %w", args[0], err)
		}
		return string(data), nil
	}
	if f, ok := stdin.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		return "", fmt.Errorf("no input: pass a file, pipe text, or use --draft")
	}
	data, err := io.ReadAll(stdin)
	if err != nil {
		return "", fmt.Errorf("failed to read stdin: %w", err)
	}
	return string(data), nil
}

func newNotesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "notes",
		Short: "List saved notes",
		Args:  cobra.NoArgs,
		RunE:  runNotesCmd,
	}
}

func runNotesCmd(cmd *cobra.Command, _ []string) error {
	st, ns, err := openNotesWithConfig()
	if err != nil {
		return err
	}
	defer closeStore(st)

	snap := ns.LoadAll(context.Background())
	out := cmd.OutOrStdout()
	if err := stats.RenderNotes(out, snap.Notes); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	if len(snap.Notes) == 0 {
		return nil
	}
	if _, err := fmt.Fprintln(out); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	if err := stats.RenderNotesSummary(out, snap.Notes); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func newExportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export [note-id]",
		Short: "Export the draft or a saved note",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runExportCmd,
	}
	cmd.Flags().StringVar(&exportDir, "dir", config.DefaultExportDir(), "output directory")
	cmd.Flags().BoolVar(&exportMarkdown, "markdown", false, "write markdown with front matter (saved notes only)")
	return cmd
}

func runExportCmd(cmd *cobra.Command, args []string) error {
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	applyStringConfig(cmd, "dir", &exportDir, fileCfg.Editor.ExportDir)

	st, ns, err := openNotes(fileCfg)
	if err != nil {
		return err
	}
	defer closeStore(st)

	snap := ns.LoadAll(context.Background())
	path, err := exportSnapshot(snap, args, exportDir, exportMarkdown, time.Now())
	if err != nil {
		return err
	}
	logger.Info("exported", zap.String("path", path))
	if _, err := fmt.Fprintln(cmd.OutOrStdout(), path); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func exportSnapshot(snap model.Snapshot, args []string, dir string, markdown bool, now time.Time) (string, error) {
	if len(args) == 0 {
		if markdown {
			return "", fmt.Errorf("--markdown requires a note id")
		}
		path, err := textfile.Export(dir, snap.Draft, now)
		if err != nil {
			return "", fmt.Errorf("failed to export draft: %w", err)
		}
		return path, nil
	}
	note, ok := notes.Find(snap.Notes, args[0])
	if !ok {
		return "", fmt.Errorf("note %q not found", args[0])
	}
	var (
		path string
		err  error
	)
	if markdown {
		path, err = textfile.ExportMarkdown(dir, note)
	} else {
		path, err = textfile.Export(dir, note.Content, now)
	}
	if err != nil {
		return "", fmt.Errorf("failed to export note: %w", err)
	}
	return path, nil
}

func newImportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "import <file>",
		Short: "Replace the draft with a .txt or .md file",
		Args:  cobra.ExactArgs(1),
		RunE:  runImportCmd,
	}
}

func runImportCmd(cmd *cobra.Command, args []string) error {
	text, err := textfile.Import(args[0])
	if err != nil {
		return err
	}
	st, ns, err := openNotesWithConfig()
	if err != nil {
		return err
	}
	defer closeStore(st)

	ctx := context.Background()
	if err := ns.PersistDraft(ctx, text); err != nil {
		return err
	}
	if err := ns.PersistCurrentID(ctx, ""); err != nil {
		return err
	}
	logger.Info("imported", zap.String("path", args[0]))
	words := stats.Compute(text).Words
	if _, err := fmt.Fprintf(cmd.OutOrStdout(), "Imported %d words into the draft\n", words); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func newDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <note-id>",
		Short: "Delete a saved note",
		Args:  cobra.ExactArgs(1),
		RunE:  runDeleteCmd,
	}
}

func runDeleteCmd(cmd *cobra.Command, args []string) error {
	st, ns, err := openNotesWithConfig()
	if err != nil {
		return err
	}
	defer closeStore(st)

	ctx := context.Background()
	snap := ns.LoadAll(ctx)
	note, ok := notes.Find(snap.Notes, args[0])
	if !ok {
		return fmt.Errorf("note %q not found", args[0])
	}
	if _, err := ns.Delete(ctx, note.ID, snap.Notes, snap.CurrentNoteID); err != nil {
		return err
	}
	logger.Info("note deleted", zap.String("id", note.ID))
	if _, err := fmt.Fprintf(cmd.OutOrStdout(), "Deleted %q\n", note.Title); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
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
	return fmt.Sprintf(`# tuiwrite configuration
# Uncomment a value to enable it. CLI flags override config values.
# Display settings below only seed the first run; later changes made in the
# editor are stored with your notes.

[editor]
# autosave-delay = %d     # Milliseconds of inactivity before the draft is saved
# export-dir = %q
# autosave = true          # Save the draft automatically
# dark-mode = false
# font-size = %d            # %d-%d, scales the writing column
# focus-mode = false       # Hide header and stats
`,
		defaultAutoSaveDelayMs,
		config.DefaultExportDir(),
		model.DefaultFontSize,
		model.MinFontSize,
		model.MaxFontSize,
	)
}

func validateConfig(cfg model.EditorConfig) error {
	if cfg.AutoSaveDelay <= 0 {
		return fmt.Errorf("--autosave-delay must be > 0")
	}
	if strings.TrimSpace(cfg.ExportDir) == "" {
		return fmt.Errorf("--export-dir must not be empty")
	}
	return nil
}

func logErrf(format string, args ...any) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}
