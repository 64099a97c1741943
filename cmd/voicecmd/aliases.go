package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"voicecmd/internal/config"
	"voicecmd/internal/db"
	"voicecmd/internal/logging"
)

func newAliasesCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "aliases",
		Short: "Manage operator company aliases stored in Postgres (DB_DSN)",
	}
	cmd.AddCommand(
		&cobra.Command{
			Use:   "list",
			Short: "List stored company aliases",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				return withStore(cmd.Context(), func(store *db.Store, _ *zap.Logger) error {
					records, err := store.ListAliases(cmd.Context())
					if err != nil {
						return err
					}
					return printAliases(cmd.OutOrStdout(), opts.output, records)
				})
			},
		},
		&cobra.Command{
			Use:   "add <alias> <ticker>",
			Short: "Add or update a company alias",
			Args:  cobra.ExactArgs(2),
			RunE: func(cmd *cobra.Command, args []string) error {
				return withStore(cmd.Context(), func(store *db.Store, logger *zap.Logger) error {
					rec, err := store.UpsertAlias(cmd.Context(), args[0], args[1])
					if err != nil {
						return err
					}
					logger.Info("company alias saved", zap.String("alias", rec.Alias), zap.String("ticker", rec.Ticker))
					_, err = fmt.Fprintf(cmd.OutOrStdout(), "%s -> %s\n", rec.Alias, rec.Ticker)
					return err
				})
			},
		},
		&cobra.Command{
			Use:   "remove <alias>",
			Short: "Remove a company alias",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				return withStore(cmd.Context(), func(store *db.Store, logger *zap.Logger) error {
					err := store.DeleteAlias(cmd.Context(), args[0])
					if errors.Is(err, db.ErrAliasNotFound) {
						return fmt.Errorf("%q: %w", args[0], err)
					}
					if err != nil {
						return err
					}
					logger.Info("company alias removed", zap.String("alias", args[0]))
					return nil
				})
			},
		},
	)
	return cmd
}

func withStore(ctx context.Context, fn func(*db.Store, *zap.Logger) error) error {
	cfg, err := config.LoadClientConfig()
	if err != nil {
		return err
	}
	if cfg.DBDSN == "" {
		return errors.New("DB_DSN is required for alias management")
	}
	logger, err := logging.New(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	store, err := db.New(ctx, cfg.DBDSN)
	if err != nil {
		return fmt.Errorf("connect db: %w", err)
	}
	defer store.Close()
	if err := store.Migrate(ctx); err != nil {
		return fmt.Errorf("migrate db: %w", err)
	}
	return fn(store, logger)
}

type aliasView struct {
	Alias  string `json:"alias" yaml:"alias"`
	Ticker string `json:"ticker" yaml:"ticker"`
}

func printAliases(w io.Writer, format string, records []db.AliasRecord) error {
	if format != "text" {
		views := make([]aliasView, 0, len(records))
		for _, r := range records {
			views = append(views, aliasView{Alias: r.Alias, Ticker: r.Ticker})
		}
		return encode(w, format, views)
	}
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ALIAS\tTICKER")
	for _, r := range records {
		fmt.Fprintf(tw, "%s\t%s\n", r.Alias, r.Ticker)
	}
	return tw.Flush()
}
