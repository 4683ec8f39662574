// Package cli implements the relnotes command line.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/ariel-frischer/relnotes/internal/build"
	"github.com/ariel-frischer/relnotes/internal/config"
	clierrors "github.com/ariel-frischer/relnotes/internal/errors"
	"github.com/ariel-frischer/relnotes/internal/git"
	"github.com/ariel-frischer/relnotes/internal/logging"
	"github.com/ariel-frischer/relnotes/internal/progress"
	"github.com/ariel-frischer/relnotes/internal/release"
)

// errInterrupted is returned when the command context is cancelled while the
// log is read. No document is printed in that case.
var errInterrupted = errors.New("interrupted")

// rootOptions holds the flag values of one command instance.
type rootOptions struct {
	configPath string
	backend    string
	gitCmd     string
	repoPath   string
	debug      bool
	noProgress bool
}

var rootCmd = newRootCmd()

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:   "relnotes <previous-tag> <current-tag>",
		Short: "Generate Markdown release notes from Conventional Commits",
		Long: `Generate Markdown release notes for the commits between two tags.

Commit subjects following Conventional Commits (feat, fix, perf, refactor, docs,
chore, build, ci, style, test, revert) are grouped under a heading per type;
everything else is listed under "Other". The document is written to stdout.

A range that cannot be read, for example because a tag does not exist, produces
the same output as a range with no commits. Use --debug to see why.

Configuration is loaded with the following priority (highest to lowest):
  1. Command-line flags
  2. Environment variables (RELNOTES_*)
  3. Project config (.relnotes.yml, or .relnotes.json)
  4. User config (~/.config/relnotes/config.yml)
  5. Built-in defaults`,
		Example: `  # Notes for everything since the previous release
  relnotes v1.4.0 v1.5.0

  # Read history in-process instead of running git
  relnotes --backend go-git v1.4.0 v1.5.0

  # Write notes for another checkout into a file
  relnotes --repo ../service v2.0.0 v2.1.0 > RELEASE_NOTES.md`,
		Version:       build.Version,
		Args:          requireTags,
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRelease(cmd, opts, args)
		},
	}
	cmd.SetVersionTemplate("relnotes " + build.String() + "\n")

	flags := cmd.Flags()
	flags.StringVarP(&opts.configPath, "config", "c", "", "Path to a config file (replaces .relnotes.yml)")
	flags.StringVar(&opts.backend, "backend", "", "History backend: exec or go-git (default exec)")
	flags.StringVar(&opts.gitCmd, "git-cmd", "", "Git executable used by the exec backend (default git)")
	flags.StringVarP(&opts.repoPath, "repo", "C", "", "Repository directory (default: current directory)")
	flags.BoolVar(&opts.debug, "debug", false, "Log debug information to stderr")
	flags.BoolVar(&opts.noProgress, "no-progress", false, "Never show the progress spinner")

	return cmd
}

// requireTags rejects calls with fewer than two positional arguments.
// Extra arguments are ignored.
func requireTags(_ *cobra.Command, args []string) error {
	if len(args) < 2 {
		return NewExitError(ExitUsage, clierrors.MissingTags(len(args)))
	}
	return nil
}

// Execute runs the root command and returns an error carrying the exit code.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	return executeCommand(ctx, rootCmd)
}

// executeCommand runs cmd and reports a failure on its stderr.
func executeCommand(ctx context.Context, cmd *cobra.Command) error {
	err := cmd.ExecuteContext(ctx)
	if err != nil {
		printError(cmd.ErrOrStderr(), err)
	}
	return err
}

func printError(w io.Writer, err error) {
	if cliErr := clierrors.AsCLIError(err); cliErr != nil {
		clierrors.FprintError(w, cliErr)
		return
	}
	fmt.Fprintf(w, "Error: %v\n", err)
}

func runRelease(cmd *cobra.Command, opts *rootOptions, args []string) error {
	previous, current := args[0], args[1]

	cfg, cfgErr := config.Load(opts.configPath)
	if cfgErr != nil {
		cfg = config.Defaults()
	}
	flagErr := applyFlags(cmd, opts, cfg)

	logging.Setup(cmd.ErrOrStderr(), cfg.Debug)
	git.SetDebugLogger(logging.Debugf)
	defer git.SetDebugLogger(nil)

	if cfgErr != nil {
		log.Warn().Msg(clierrors.InvalidConfig(cfgErr).Error())
	}
	if flagErr != nil {
		log.Warn().Err(flagErr).Msg("ignoring command-line overrides")
	}
	log.Debug().
		Str("backend", cfg.Backend).
		Str("git_cmd", cfg.GitCmd).
		Str("repo_path", cfg.RepoPath).
		Dur("fetch_timeout", cfg.FetchTimeout).
		Msg("configuration loaded")
	if cfg.Debug && !git.IsGitRepository(cfg.RepoPath) {
		log.Debug().Str("repo_path", cfg.RepoPath).Msg("not inside a git repository, expect an empty log")
	}

	runCtx := cmd.Context()
	if runCtx == nil {
		runCtx = context.Background()
	}
	ctx := runCtx
	if cfg.FetchTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, cfg.FetchTimeout)
		defer cancel()
	}

	spin := progress.NewSpinner(stderrFile(cmd), progress.FetchMessage, cfg.Progress)
	spin.Start()
	notes := release.Generate(ctx, newCommitSource(cfg), previous, current)
	spin.Stop()

	// fetch_timeout only cancels ctx; runCtx ends on Ctrl-C.
	if runCtx.Err() != nil {
		return NewExitError(ExitInterrupted, errInterrupted)
	}

	_, err := fmt.Fprintln(cmd.OutOrStdout(), notes)
	return err
}

// applyFlags layers explicitly set flags over cfg. When the result is invalid
// the flags are dropped and cfg keeps its loaded values.
func applyFlags(cmd *cobra.Command, opts *rootOptions, cfg *config.Configuration) error {
	merged := *cfg
	flags := cmd.Flags()

	if flags.Changed("backend") {
		merged.Backend = opts.backend
	}
	if flags.Changed("git-cmd") {
		merged.GitCmd = opts.gitCmd
	}
	if flags.Changed("repo") {
		merged.RepoPath = opts.repoPath
	}
	if flags.Changed("debug") {
		merged.Debug = opts.debug
	}
	if opts.noProgress {
		merged.Progress = false
	}

	if err := config.ValidateConfigValues(&merged, "flags"); err != nil {
		cfg.Debug = cfg.Debug || merged.Debug
		return err
	}
	*cfg = merged
	return nil
}

func newCommitSource(cfg *config.Configuration) git.CommitSource {
	if cfg.Backend == config.BackendGoGit {
		return git.NewRepoSource(cfg.RepoPath)
	}
	return git.NewExecSource(cfg.GitCmd, cfg.RepoPath)
}

// stderrFile returns the command's stderr when it is a real file, so the
// spinner can check for a terminal.
func stderrFile(cmd *cobra.Command) *os.File {
	f, _ := cmd.ErrOrStderr().(*os.File)
	return f
}
