package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"ftl-translator/internal/config"
	"ftl-translator/internal/memory"
	"ftl-translator/internal/pipeline"
	"ftl-translator/internal/report"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

// Execute runs the CLI application.
func Execute() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

type rootOptions struct {
	debug bool
}

func newRootCmd() *cobra.Command {
	cfg := config.Load()
	opts := &rootOptions{}

	rootCmd := &cobra.Command{
		Use:   "ftl-translator",
		Short: "Translatable files generator for FTL: Multiverse",
		Long: `Extracts the text of FTL: Multiverse event files into gettext templates,
builds language catalogs from an already translated copy of the game data and
injects catalogs back into the event files.`,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if opts.debug {
				zerolog.SetGlobalLevel(zerolog.DebugLevel)
			} else {
				zerolog.SetGlobalLevel(zerolog.InfoLevel)
			}
		},
	}

	rootCmd.PersistentFlags().BoolVar(&opts.debug, "debug", false, "Verbose per-file logging, disables progress bars")

	rootCmd.AddCommand(extractCmd(cfg, opts))
	rootCmd.AddCommand(populateCmd(cfg, opts))
	rootCmd.AddCommand(generateCmd(cfg, opts))
	rootCmd.AddCommand(injectCmd(cfg, opts))
	rootCmd.AddCommand(memoryCmd(cfg))

	return rootCmd
}

func extractCmd(cfg *config.Config, root *rootOptions) *cobra.Command {
	var src, output string

	cmd := &cobra.Command{
		Use:   "extract",
		Short: "Generate .pot templates from the reference game files",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := setupContext()
			defer cancel()

			if err := cfg.Validate(); err != nil {
				return err
			}
			p := pipeline.New(cfg, nil, !root.debug)
			stats, err := p.Extract(ctx, config.DataDir(src), output)
			if err != nil {
				return fmt.Errorf("extract templates: %w", err)
			}
			report.Extract(cmd.OutOrStdout(), stats)
			return nil
		},
	}

	cmd.Flags().StringVar(&src, "src", cfg.SrcDir, "Game files root, documents are read from <src>/data")
	cmd.Flags().StringVarP(&output, "output", "o", cfg.PODir, "Output directory for templates")

	return cmd
}

type populateOptions struct {
	translatedSrc string
	lang          string
	output        string
	useMemory     bool
}

func (o *populateOptions) bind(cmd *cobra.Command, cfg *config.Config) {
	cmd.Flags().StringVar(&o.translatedSrc, "t-src", "", "Translated game files root, documents are read from <t-src>/data")
	cmd.Flags().StringVar(&o.lang, "t-lang", "", "Language code of the translated game files (e.g. fr)")
	cmd.Flags().StringVarP(&o.output, "output", "o", cfg.PODir, "Directory holding the templates, catalogs are written next to them")
	cmd.Flags().BoolVar(&o.useMemory, "memory", false, "Record matched pairs in the PostgreSQL translation memory (DATABASE_URL)")
}

func populateCmd(cfg *config.Config, root *rootOptions) *cobra.Command {
	opts := &populateOptions{}

	cmd := &cobra.Command{
		Use:   "populate",
		Short: "Generate .po catalogs from translated game files and existing templates",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.translatedSrc == "" || opts.lang == "" {
				return fmt.Errorf("--t-src and --t-lang are both required")
			}

			ctx, cancel := setupContext()
			defer cancel()

			return runPopulate(ctx, cmd, cfg, opts, root.debug)
		},
	}
	opts.bind(cmd, cfg)

	return cmd
}

func generateCmd(cfg *config.Config, root *rootOptions) *cobra.Command {
	opts := &populateOptions{}
	var src string
	var skipPOT bool

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate templates and, when a translated copy is given, its catalogs",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.translatedSrc != "" && opts.lang == "" {
				return fmt.Errorf("--t-lang is required with --t-src")
			}
			if opts.translatedSrc == "" && opts.lang != "" {
				return fmt.Errorf("--t-src is required with --t-lang")
			}
			if skipPOT && opts.translatedSrc == "" {
				return fmt.Errorf("nothing to do: --skip-pot without --t-src")
			}

			ctx, cancel := setupContext()
			defer cancel()

			if !skipPOT {
				if err := cfg.Validate(); err != nil {
					return err
				}
				p := pipeline.New(cfg, nil, !root.debug)
				stats, err := p.Extract(ctx, config.DataDir(src), opts.output)
				if err != nil {
					return fmt.Errorf("extract templates: %w", err)
				}
				report.Extract(cmd.OutOrStdout(), stats)
			}

			if opts.translatedSrc == "" {
				return nil
			}
			return runPopulate(ctx, cmd, cfg, opts, root.debug)
		},
	}

	cmd.Flags().StringVar(&src, "src", cfg.SrcDir, "Game files root, documents are read from <src>/data")
	cmd.Flags().BoolVar(&skipPOT, "skip-pot", false, "Reuse the existing templates instead of regenerating them")
	opts.bind(cmd, cfg)

	return cmd
}

func runPopulate(ctx context.Context, cmd *cobra.Command, cfg *config.Config, opts *populateOptions, debug bool) error {
	if err := cfg.Validate(); err != nil {
		return err
	}

	var store memory.Store = memory.Nop{}
	if opts.useMemory {
		pg, err := connectMemory(ctx, cfg)
		if err != nil {
			return err
		}
		defer pg.Close()
		store = pg
	}

	p := pipeline.New(cfg, store, !debug)
	stats, err := p.Populate(ctx, config.DataDir(opts.translatedSrc), opts.output, opts.lang)
	if err != nil {
		return fmt.Errorf("populate catalogs: %w", err)
	}
	report.Populate(cmd.OutOrStdout(), stats)
	return nil
}

func injectCmd(cfg *config.Config, root *rootOptions) *cobra.Command {
	var input, output, ref string

	cmd := &cobra.Command{
		Use:   "inject",
		Short: "Write translated game files from .po catalogs",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := setupContext()
			defer cancel()

			if err := cfg.Validate(); err != nil {
				return err
			}
			p := pipeline.New(cfg, nil, !root.debug)
			stats, err := p.Inject(ctx, input, ref, output)
			if err != nil {
				return fmt.Errorf("inject translations: %w", err)
			}
			report.Inject(cmd.OutOrStdout(), stats)
			return nil
		},
	}

	cmd.Flags().StringVarP(&input, "input", "i", cfg.PODir, "Directory with the translated .po catalogs")
	cmd.Flags().StringVarP(&output, "output", "o", cfg.OutDir, "Output directory, one subdirectory per language")
	cmd.Flags().StringVar(&ref, "src", cfg.RefDataDir, "Directory with the reference documents")

	return cmd
}

func memoryCmd(cfg *config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "memory",
		Short: "Translation memory maintenance",
	}
	cmd.AddCommand(memoryExportCmd(cfg))
	return cmd
}

func memoryExportCmd(cfg *config.Config) *cobra.Command {
	var lang, output string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export the translation memory of a language as a TSV corpus",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if lang == "" {
				return fmt.Errorf("--lang is required")
			}
			if output == "" {
				output = fmt.Sprintf("memory_%s.tsv", lang)
			}

			ctx, cancel := setupContext()
			defer cancel()

			store, err := connectMemory(ctx, cfg)
			if err != nil {
				return err
			}
			defer store.Close()

			return store.ExportTSV(ctx, lang, output)
		},
	}

	cmd.Flags().StringVar(&lang, "lang", "", "Language code to export")
	cmd.Flags().StringVar(&output, "output", "", "Output TSV path (default memory_<lang>.tsv)")

	return cmd
}

// connectMemory opens the translation memory and runs its migration.
func connectMemory(ctx context.Context, cfg *config.Config) (*memory.PGStore, error) {
	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("translation memory requires DATABASE_URL")
	}

	store, err := memory.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		return nil, err
	}
	if err := store.EnsureSchema(ctx); err != nil {
		store.Close()
		return nil, err
	}
	return store, nil
}

// setupContext creates a context that is cancelled on SIGINT/SIGTERM.
func setupContext() (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(context.Background())

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		select {
		case <-sigCh:
			log.Warn().Msg("Received shutdown signal, cancelling...")
			cancel()
		case <-ctx.Done():
		}
		signal.Stop(sigCh)
	}()

	return ctx, cancel
}
