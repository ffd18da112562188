package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"github.com/vytor/flashreel/internal/app"
	"github.com/vytor/flashreel/internal/clock"
	"github.com/vytor/flashreel/internal/config"
	"github.com/vytor/flashreel/internal/db"
	"github.com/vytor/flashreel/internal/logger"
	"github.com/vytor/flashreel/internal/models"
	"github.com/vytor/flashreel/internal/services"
)

type cliEnv struct {
	cfg    config.Config
	dbPath string
}

func newRootCmd() *cobra.Command {
	env := &cliEnv{}

	root := &cobra.Command{
		Use:           "flashreel",
		Short:         "Administer the flashreel review store",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			env.cfg = config.Load()
			if env.dbPath != "" {
				env.cfg.DBPath = env.dbPath
			}
			if err := env.cfg.Validate(); err != nil {
				return fmt.Errorf("invalid configuration: %w", err)
			}
			logger.SetDefault(logger.New(
				logger.WithLevel(logger.ParseLevel(env.cfg.LogLevel)),
				logger.WithOutput(cmd.ErrOrStderr()),
				logger.WithColors(false),
			))
			return nil
		},
	}
	root.PersistentFlags().StringVar(&env.dbPath, "db", "", "database path (overrides DB_PATH)")

	root.AddCommand(
		env.migrateCmd(),
		env.dueCmd(),
		env.reviewCmd(),
		env.streakCmd(),
		env.importCmd(),
	)
	return root
}

// withApp opens the database, wires the services and closes everything afterwards.
func (e *cliEnv) withApp(cmd *cobra.Command, fn func(ctx context.Context, a *app.App) error) error {
	database, err := db.Open(e.cfg.DBPath)
	if err != nil {
		return err
	}
	defer database.Close()

	ctx := logger.NewContext(cmd.Context(), logger.Default().WithPrefix("cli"))
	return fn(ctx, app.New(e.cfg, database, clock.System()))
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func parseUser(raw string) (uuid.UUID, error) {
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, fmt.Errorf("--user must be a UUID: %w", err)
	}
	return id, nil
}

func (e *cliEnv) migrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending schema migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			// Open applies migrations.
			return e.withApp(cmd, func(ctx context.Context, a *app.App) error {
				fmt.Fprintln(cmd.OutOrStdout(), "migrations applied")
				return nil
			})
		},
	}
}

func (e *cliEnv) dueCmd() *cobra.Command {
	var user string
	var limit int
	cmd := &cobra.Command{
		Use:   "due",
		Short: "List the cards due for a user",
		RunE: func(cmd *cobra.Command, args []string) error {
			userID, err := parseUser(user)
			if err != nil {
				return err
			}
			return e.withApp(cmd, func(ctx context.Context, a *app.App) error {
				cards, err := a.Reviews.DueCards(ctx, userID, limit)
				if err != nil {
					return err
				}
				return printJSON(cmd.OutOrStdout(), cards)
			})
		},
	}
	cmd.Flags().StringVar(&user, "user", "", "user id")
	cmd.Flags().IntVar(&limit, "limit", 0, "maximum number of cards (0 = DUE_LIMIT)")
	_ = cmd.MarkFlagRequired("user")
	return cmd
}

func (e *cliEnv) reviewCmd() *cobra.Command {
	var user, card, key string
	var quality int
	cmd := &cobra.Command{
		Use:   "review",
		Short: "Record a review for a card",
		RunE: func(cmd *cobra.Command, args []string) error {
			userID, err := parseUser(user)
			if err != nil {
				return err
			}
			cardID, err := uuid.Parse(card)
			if err != nil {
				return fmt.Errorf("--card must be a UUID: %w", err)
			}
			in := services.ReviewInput{UserID: userID, CardID: cardID, Quality: quality}
			if key != "" {
				if in.IdempotencyKey, err = uuid.Parse(key); err != nil {
					return fmt.Errorf("--key must be a UUID: %w", err)
				}
			}
			return e.withApp(cmd, func(ctx context.Context, a *app.App) error {
				res, err := a.Reviews.SubmitReview(ctx, in)
				if err != nil {
					return err
				}
				return printJSON(cmd.OutOrStdout(), res)
			})
		},
	}
	cmd.Flags().StringVar(&user, "user", "", "user id")
	cmd.Flags().StringVar(&card, "card", "", "card id")
	cmd.Flags().IntVar(&quality, "quality", -1, "recall quality 0-5")
	cmd.Flags().StringVar(&key, "key", "", "idempotency key (UUID)")
	_ = cmd.MarkFlagRequired("user")
	_ = cmd.MarkFlagRequired("card")
	_ = cmd.MarkFlagRequired("quality")
	return cmd
}

func (e *cliEnv) streakCmd() *cobra.Command {
	var user string
	cmd := &cobra.Command{
		Use:   "streak",
		Short: "Show a user's study streak",
		RunE: func(cmd *cobra.Command, args []string) error {
			userID, err := parseUser(user)
			if err != nil {
				return err
			}
			return e.withApp(cmd, func(ctx context.Context, a *app.App) error {
				view, err := a.Stats.Streak(ctx, userID)
				if err != nil {
					return err
				}
				return printJSON(cmd.OutOrStdout(), view)
			})
		},
	}
	cmd.Flags().StringVar(&user, "user", "", "user id")
	_ = cmd.MarkFlagRequired("user")
	return cmd
}

func (e *cliEnv) importCmd() *cobra.Command {
	var user, file string
	cmd := &cobra.Command{
		Use:   "import",
		Short: "Import cards from a JSON file of {question, answer, hierarchy_id, media_url} objects",
		RunE: func(cmd *cobra.Command, args []string) error {
			userID, err := parseUser(user)
			if err != nil {
				return err
			}
			drafts, err := readDrafts(file)
			if err != nil {
				return err
			}
			return e.withApp(cmd, func(ctx context.Context, a *app.App) error {
				a.Start(ctx)
				n, err := a.Imports.ImportCards(ctx, userID, drafts)
				// Stop waits for the queued job to finish.
				a.Stop()
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "imported batch of %d cards\n", n)
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&user, "user", "", "user id")
	cmd.Flags().StringVar(&file, "file", "", "path to a JSON array of cards, - for stdin")
	_ = cmd.MarkFlagRequired("user")
	_ = cmd.MarkFlagRequired("file")
	return cmd
}

func readDrafts(path string) ([]models.CardDraft, error) {
	var r io.Reader = os.Stdin
	if path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		r = f
	}
	var drafts []models.CardDraft
	if err := json.NewDecoder(r).Decode(&drafts); err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return drafts, nil
}
