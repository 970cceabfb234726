package cli

import (
	"fmt"
	"io"
	"os"
	"time"

	"todoBoard/internal/export"
	"todoBoard/internal/logger"
	"todoBoard/internal/models/task"
	"todoBoard/internal/repository"
	"todoBoard/internal/service"
	"todoBoard/internal/worker"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// fieldFlags - общие флаги add/update/edit; пустое значение означает "не передано"
type fieldFlags struct {
	title    string
	priority string
	status   string
	due      string
}

func (f *fieldFlags) register(cmd *cobra.Command, withTitle bool, dueHint string) {
	if withTitle {
		cmd.Flags().StringVar(&f.title, "title", "", "новое название")
	}
	cmd.Flags().StringVar(&f.priority, "priority", "", "Low, Medium или High")
	cmd.Flags().StringVar(&f.status, "status", "", `"To Do", "In Progress" или "Done"`)
	cmd.Flags().StringVar(&f.due, "due", "", "срок, "+dueHint)
}

func (f *fieldFlags) options() []task.Option {
	return []task.Option{
		task.WithTitle(f.title),
		task.WithPriority(task.Priority(f.priority)),
		task.WithStatus(task.Status(f.status)),
		task.WithDueDate(f.due),
	}
}

func newAddCmd(opts *rootOptions) *cobra.Command {
	var fields fieldFlags
	cmd := &cobra.Command{
		Use:   "add TITLE",
		Short: "Добавить задачу",
		Args:  cobra.ExactArgs(1),
	}
	fields.register(cmd, false, "YYYY-MM-DD")

	cmd.RunE = opts.withService(func(cmd *cobra.Command, svc *service.TaskService, args []string) error {
		created, err := svc.Create(cmd.Context(), args[0], fields.options()...)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Создана задача #%d\n", created.ID)
		return nil
	})
	return cmd
}

func newShowCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show ID",
		Short: "Показать задачу",
		Args:  cobra.ExactArgs(1),
	}
	cmd.RunE = opts.withService(func(cmd *cobra.Command, svc *service.TaskService, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		found, err := svc.Get(cmd.Context(), id)
		if err != nil {
			return err
		}
		return renderTask(cmd.OutOrStdout(), found)
	})
	return cmd
}

func newUpdateCmd(opts *rootOptions) *cobra.Command {
	var fields fieldFlags
	cmd := &cobra.Command{
		Use:   "update ID",
		Short: "Изменить переданные поля задачи",
		Args:  cobra.ExactArgs(1),
	}
	fields.register(cmd, true, "YYYY-MM-DD")

	cmd.RunE = opts.withService(func(cmd *cobra.Command, svc *service.TaskService, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		updated, err := svc.Update(cmd.Context(), id, fields.options()...)
		if err != nil {
			return err
		}
		return renderTask(cmd.OutOrStdout(), updated)
	})
	return cmd
}

// edit ведёт себя как форма редактирования: дата в виде ГГГГ/ММ/ДД, пустые поля не меняются
func newEditCmd(opts *rootOptions) *cobra.Command {
	var fields fieldFlags
	cmd := &cobra.Command{
		Use:   "edit ID",
		Short: "Сохранить форму редактирования задачи",
		Args:  cobra.ExactArgs(1),
	}
	fields.register(cmd, true, "ГГГГ/ММ/ДД")

	cmd.RunE = opts.withService(func(cmd *cobra.Command, svc *service.TaskService, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		res, err := svc.SubmitEdit(cmd.Context(), id, fields.title, fields.priority, fields.status, fields.due)
		if err != nil {
			return err
		}
		if !res.Saved {
			return &service.BusinessError{Code: service.CodeValidation, Message: res.Message}
		}
		fmt.Fprintln(cmd.OutOrStdout(), res.Message)
		return nil
	})
	return cmd
}

func newStatusCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "status ID STATUS",
		Short: "Перенести задачу в другую колонку",
		Args:  cobra.ExactArgs(2),
	}
	cmd.RunE = opts.withService(func(cmd *cobra.Command, svc *service.TaskService, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		updated, err := svc.SetStatus(cmd.Context(), id, task.Status(args[1]))
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Задача #%d: %s\n", updated.ID, *updated.Status)
		return nil
	})
	return cmd
}

func newRemoveCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rm ID",
		Short: "Удалить задачу",
		Args:  cobra.ExactArgs(1),
	}
	cmd.RunE = opts.withService(func(cmd *cobra.Command, svc *service.TaskService, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		if err := svc.Delete(cmd.Context(), id); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Задача #%d удалена\n", id)
		return nil
	})
	return cmd
}

func newListCmd(opts *rootOptions) *cobra.Command {
	var (
		sortBy string
		asJSON bool
	)
	cmd := &cobra.Command{
		Use:   "list",
		Short: "Показать все задачи",
		Args:  cobra.NoArgs,
	}
	cmd.Flags().StringVar(&sortBy, "sort", "", "due или priority")
	cmd.Flags().BoolVar(&asJSON, "json", false, "вывести JSON")

	cmd.RunE = opts.withService(func(cmd *cobra.Command, svc *service.TaskService, args []string) error {
		tasks, err := listTasks(cmd, svc, sortBy)
		if err != nil {
			return err
		}
		if asJSON {
			return export.Write(cmd.OutOrStdout(), export.FormatJSON, tasks)
		}
		return renderTable(cmd.OutOrStdout(), tasks)
	})
	return cmd
}

func listTasks(cmd *cobra.Command, svc *service.TaskService, sortBy string) ([]*task.Task, error) {
	if sortBy == "" {
		return svc.List(cmd.Context())
	}
	if sortBy == "due" {
		sortBy = string(repository.SortByDueDate)
	}

	field, err := repository.ParseSortField(sortBy)
	if err != nil {
		return nil, service.NewValidationError("sort", fmt.Sprintf("ожидается due или priority, получено %q", sortBy))
	}
	if field == repository.SortByPriority {
		return svc.SortByPriority(cmd.Context())
	}
	return svc.SortByDueDate(cmd.Context())
}

func newSearchCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "search KEYWORD",
		Short: "Найти задачи по части названия",
		Args:  cobra.ExactArgs(1),
	}
	cmd.RunE = opts.withService(func(cmd *cobra.Command, svc *service.TaskService, args []string) error {
		found, err := svc.Search(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		return renderTable(cmd.OutOrStdout(), found)
	})
	return cmd
}

func newBoardCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "board",
		Short: "Канбан-доска по статусам",
		Args:  cobra.NoArgs,
	}
	cmd.RunE = opts.withService(func(cmd *cobra.Command, svc *service.TaskService, args []string) error {
		board, err := svc.Board(cmd.Context())
		if err != nil {
			return err
		}
		return renderBoard(cmd.OutOrStdout(), board)
	})
	return cmd
}

func newOverdueCmd(opts *rootOptions) *cobra.Command {
	var watch time.Duration
	cmd := &cobra.Command{
		Use:   "overdue",
		Short: "Незавершённые задачи с истёкшим сроком",
		Args:  cobra.NoArgs,
	}
	cmd.Flags().DurationVar(&watch, "watch", 0, "повторять проверку с этим интервалом до прерывания")

	cmd.RunE = opts.withService(func(cmd *cobra.Command, svc *service.TaskService, args []string) error {
		if watch > 0 {
			w := worker.NewOverdueWorker(svc, watch, overdueReport(cmd.OutOrStdout(), time.Now))
			w.Start(cmd.Context())
			return nil
		}

		late, err := svc.Overdue(cmd.Context(), time.Now())
		if err != nil {
			return err
		}
		return renderTable(cmd.OutOrStdout(), late)
	})
	return cmd
}

// overdueReport печатает очередной срез просроченных задач; ошибки вывода только логируются
func overdueReport(w io.Writer, now func() time.Time) func([]*task.Task) {
	return func(late []*task.Task) {
		if _, err := fmt.Fprintf(w, "-- %s --\n", now().Format("2006/01/02 15:04:05")); err != nil {
			logger.Error("CLI: Не удалось вывести отчёт о просрочке", err)
			return
		}
		if err := renderTable(w, late); err != nil {
			logger.Error("CLI: Не удалось вывести отчёт о просрочке", err, zap.Int("overdue", len(late)))
		}
	}
}

func newClearCmd(opts *rootOptions) *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Удалить все задачи",
		Args:  cobra.NoArgs,
	}
	cmd.Flags().BoolVar(&yes, "yes", false, "подтвердить удаление")

	cmd.RunE = opts.withService(func(cmd *cobra.Command, svc *service.TaskService, args []string) error {
		if !yes {
			return service.NewValidationError("yes", "очистка списка требует подтверждения флагом --yes")
		}
		removed, err := svc.DeleteAll(cmd.Context())
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Удалено задач: %d\n", removed)
		return nil
	})
	return cmd
}

func newExportCmd(opts *rootOptions) *cobra.Command {
	var (
		format string
		out    string
	)
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Выгрузить список в json, csv или pdf",
		Args:  cobra.NoArgs,
	}
	cmd.Flags().StringVar(&format, "format", "json", "json, csv или pdf")
	cmd.Flags().StringVar(&out, "out", "-", `файл назначения, "-" для stdout`)

	cmd.RunE = opts.withService(func(cmd *cobra.Command, svc *service.TaskService, args []string) error {
		f, err := export.ParseFormat(format)
		if err != nil {
			return service.NewValidationError("format", err.Error())
		}

		tasks, err := svc.List(cmd.Context())
		if err != nil {
			return err
		}

		if out == "" || out == "-" {
			return export.Write(cmd.OutOrStdout(), f, tasks)
		}

		file, err := os.Create(out)
		if err != nil {
			return fmt.Errorf("создание %s: %w", out, err)
		}
		if err := export.Write(file, f, tasks); err != nil {
			file.Close()
			return err
		}
		if err := file.Close(); err != nil {
			return fmt.Errorf("запись %s: %w", out, err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Выгружено задач: %d в %s\n", len(tasks), out)
		return nil
	})
	return cmd
}

func newHealthCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "health",
		Short: "Проверить доступность хранилища",
		Args:  cobra.NoArgs,
	}
	cmd.RunE = opts.withService(func(cmd *cobra.Command, svc *service.TaskService, args []string) error {
		if err := svc.HealthCheck(cmd.Context()); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "OK")
		return nil
	})
	return cmd
}

func newConfigCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Показать итоговую конфигурацию",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.loadConfig()
			if err != nil {
				return err
			}
			if err := cfg.Validate(); err != nil {
				return err
			}
			out, err := cfg.YAML()
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(out)
			return err
		},
	}
}
