package cli

import (
	"context"
	"fmt"
	"io"

	"todoBoard/internal/app"
	"todoBoard/internal/config"
	"todoBoard/internal/middleware"
	"todoBoard/internal/service"

	"github.com/spf13/cobra"
)

// MsgEphemeral печатается в stderr, когда база открыта в памяти
const MsgEphemeral = "База в памяти: изменения пропадут после завершения команды"

type rootOptions struct {
	configPath string
	dbPath     string
}

type serviceRunFunc func(cmd *cobra.Command, svc *service.TaskService, args []string) error

func NewRootCmd() *cobra.Command {
	opts := &rootOptions{}

	root := &cobra.Command{
		Use:           "todo",
		Short:         "Список задач с канбан-доской поверх SQLite",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().StringVar(&opts.configPath, "config", "", "путь к config.yml (по умолчанию ./config.yml, если есть)")
	root.PersistentFlags().StringVar(&opts.dbPath, "db", "", `файл базы SQLite или ":memory:"; перекрывает store.path`)

	root.AddCommand(
		newAddCmd(opts),
		newShowCmd(opts),
		newUpdateCmd(opts),
		newEditCmd(opts),
		newStatusCmd(opts),
		newRemoveCmd(opts),
		newListCmd(opts),
		newSearchCmd(opts),
		newBoardCmd(opts),
		newOverdueCmd(opts),
		newClearCmd(opts),
		newExportCmd(opts),
		newHealthCmd(opts),
		newConfigCmd(opts),
	)
	return root
}

// Execute запускает команду и возвращает код выхода процесса
func Execute(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	root := NewRootCmd()
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)

	err := root.ExecuteContext(ctx)
	if err != nil {
		fmt.Fprintln(stderr, errorMessage(err))
	}
	return exitCode(err)
}

func (o *rootOptions) loadConfig() (*config.Config, error) {
	cfg, err := config.Load(o.configPath)
	if err != nil {
		return nil, err
	}
	if o.dbPath != "" {
		cfg.Store.Path = o.dbPath
	}
	return cfg, nil
}

// withService открывает хранилище на время одной команды
func (o *rootOptions) withService(run serviceRunFunc) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		cfg, err := o.loadConfig()
		if err != nil {
			return err
		}

		if cfg.Ephemeral() {
			fmt.Fprintln(cmd.ErrOrStderr(), MsgEphemeral)
		}

		ctx := cmd.Context()
		if ctx == nil {
			ctx = context.Background()
		}

		return app.Run(ctx, cfg, func(ctx context.Context, svc *service.TaskService) error {
			cmd.SetContext(ctx)
			return middleware.Chain(func(cmd *cobra.Command, args []string) error {
				return run(cmd, svc, args)
			}, middleware.RunID, middleware.Logging)(cmd, args)
		})
	}
}
