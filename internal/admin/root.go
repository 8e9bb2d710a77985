package admin

import (
	"bufio"
	"context"
	"database/sql"
	"errors"
	"io"

	"github.com/dmitrijs2005/aqidash/internal/buildinfo"
	"github.com/dmitrijs2005/aqidash/internal/server/config"
	"github.com/dmitrijs2005/aqidash/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/aqidash/internal/server/services"
	"github.com/spf13/cobra"
)

var errNoDSN = errors.New("a PostgreSQL DSN is required (-d or AQIDASH_DATABASE_DSN)")

var openPostgres = func(ctx context.Context, dsn string) (*sql.DB, repomanager.RepositoryManager, error) {
	return repomanager.OpenPostgres(ctx, dsn)
}

// NewRootCmd builds the admin command tree. cfg already carries the JSON and
// environment layers; command flags override it.
func NewRootCmd(cfg *config.Config, in io.Reader, out io.Writer) *cobra.Command {
	root := &cobra.Command{
		Use:           "aqidash-admin",
		Short:         "Administer the AQI dashboard credential store",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.SetOut(out)

	// consumed by config.LoadConfig; declared so the parser accepts it
	root.PersistentFlags().StringP("config", "c", "", "JSON config file")
	root.PersistentFlags().StringVarP(&cfg.DatabaseDSN, "dsn", "d", cfg.DatabaseDSN, "PostgreSQL DSN")

	root.AddCommand(newAddUserCmd(cfg, in, out), newVersionCmd(out))
	return root
}

func newAddUserCmd(cfg *config.Config, in io.Reader, out io.Writer) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "adduser",
		Short: "Register a dashboard user",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if cfg.DatabaseDSN == "" {
				return errNoDSN
			}

			ctx := cmd.Context()
			db, m, err := openPostgres(ctx, cfg.DatabaseDSN)
			if err != nil {
				return err
			}
			if db != nil {
				defer db.Close()
			}

			svc := services.NewAuthService(db, m, cfg)
			return AddUser(ctx, bufio.NewReader(in), out, svc)
		},
	}

	cmd.Flags().IntVarP(&cfg.PasswordHashCost, "cost", "k", cfg.PasswordHashCost, "bcrypt cost")
	cmd.Flags().BoolVar(&cfg.StrictSignup, "strict", cfg.StrictSignup, "enforce email format and password strength")
	return cmd
}

func newVersionCmd(out io.Writer) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print build information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			buildinfo.PrintBuildData(out)
		},
	}
}
