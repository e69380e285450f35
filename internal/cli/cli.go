// Package cli команды temp-scraper: сбор таблицы, проверки страницы,
// регионы, история прогонов и HTTP сервер.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"tempScraper/internal/app"
	"tempScraper/internal/checks"
	"tempScraper/internal/cli/commands"
	"tempScraper/internal/config"
	"tempScraper/internal/database"
	"tempScraper/internal/logger"
	"tempScraper/internal/metrics"
	"tempScraper/internal/server"
	"tempScraper/internal/temperature"

	"github.com/jonboulle/clockwork"
	"github.com/spf13/cobra"
)

// ErrChecksFailed возвращается командой check, если хотя бы одна проверка не прошла
var ErrChecksFailed = errors.New("есть непройденные проверки")

type CLI struct {
	cfg   *config.Cfg
	log   *logger.Zap
	repo  *database.RunRepository
	clock clockwork.Clock
	out   io.Writer

	newBrowser  app.BrowserFactory
	regionsFile string
}

// New repo может быть nil, тогда история не пишется
func New(cfg *config.Cfg, log *logger.Zap, repo *database.RunRepository) *CLI {
	return &CLI{
		cfg:         cfg,
		log:         log,
		repo:        repo,
		clock:       clockwork.NewRealClock(),
		out:         os.Stdout,
		newBrowser:  app.PlaywrightFactory(cfg.Browser),
		regionsFile: cfg.Scraper.RegionsFile,
	}
}

// ExecuteContext выполняет команду из аргументов процесса
func (c *CLI) ExecuteContext(ctx context.Context) error {
	return c.Root().ExecuteContext(ctx)
}

func (c *CLI) Root() *cobra.Command {
	root := &cobra.Command{
		Use:           "temp-scraper",
		Short:         "temp-scraper собирает таблицу температур по странам и выгружает ее в CSV по регионам.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.SetOut(c.out)
	root.PersistentFlags().StringVar(&c.regionsFile, "regions", c.regionsFile, "Файл регионов в JSON5. По умолчанию встроенная таблица.")

	root.AddCommand(c.scrapeCmd(), c.checkCmd(), c.regionsCmd(), c.runsCmd(), c.serveCmd())
	return root
}

func (c *CLI) scrapeCmd() *cobra.Command {
	var fromHTML string

	cmd := &cobra.Command{
		Use:   "scrape [--from-html <page.html>]",
		Short: "Собирает таблицу один раз и пишет общий и региональные CSV.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			regions, err := c.regions()
			if err != nil {
				return err
			}

			scraper := app.NewScraper(regions, nil, c.history(), c.clock, app.Options{
				BaseDir:     c.cfg.Output.BaseDir,
				MetricsFile: c.cfg.Output.MetricsFile,
			}, c.log.Logger)

			var src app.Source
			if fromHTML != "" {
				src = app.NewFileSource(fromHTML, c.log.Logger)
			} else {
				src = app.NewLiveSource(c.newBrowser, app.PageOptions(c.cfg.Scraper), c.log.Logger)
			}

			return commands.NewScrapeHandler(scraper, regions, c.log.Logger, c.out).Run(cmd.Context(), src)
		},
	}
	cmd.Flags().StringVar(&fromHTML, "from-html", "", "Разобрать сохраненную страницу вместо запуска браузера.")
	return cmd
}

func (c *CLI) checkCmd() *cobra.Command {
	var only []string

	cmd := &cobra.Command{
		Use:   "check [--only <name>...]",
		Short: "Проверяет живую страницу: заголовок, сортировки, поиск и экспорт.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			regions, err := c.regions()
			if err != nil {
				return err
			}

			var history commands.CheckHistory
			if c.repo != nil {
				history = c.repo
			}

			h := commands.NewCheckHandler(regions, c.sessionFactory(), history, c.clock, commands.CheckOptions{
				BaseDir:     c.cfg.Output.BaseDir,
				MetricsFile: c.cfg.Output.MetricsFile,
				SourceURL:   c.cfg.Scraper.URL,
			}, c.log.Logger, c.out)

			failed, err := h.Run(cmd.Context(), only)
			if err != nil {
				return err
			}
			if failed > 0 {
				return fmt.Errorf("%w: %d", ErrChecksFailed, failed)
			}
			return nil
		},
	}
	cmd.Flags().StringSliceVar(&only, "only", nil, "Выполнить только указанные проверки.")
	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "Список доступных проверок.",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			for _, ch := range checks.DefaultChecks() {
				fmt.Fprintf(c.out, "%-46s %s\n", ch.Name, ch.Description)
			}
		},
	})
	return cmd
}

func (c *CLI) regionsCmd() *cobra.Command {
	var verbose bool

	cmd := &cobra.Command{
		Use:   "regions [country...]",
		Short: "Показывает таблицу регионов или регион указанных стран.",
		RunE: func(cmd *cobra.Command, args []string) error {
			regions, err := c.regions()
			if err != nil {
				return err
			}

			h := commands.NewRegionsHandler(c.out)
			if len(args) > 0 {
				h.Classify(regions, args)
				return nil
			}
			h.Show(regions, verbose)
			return nil
		},
	}
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Вывести списки стран.")
	return cmd
}

func (c *CLI) runsCmd() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "runs [id]",
		Short: "История прогонов. С ID выводит детали прогона.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if c.repo == nil {
				return errors.New("история недоступна: DB_HOST не задан")
			}

			h := commands.NewRunsHandler(c.repo, c.log.Logger, c.out)
			if len(args) == 1 {
				return h.Show(args[0])
			}
			return h.List(limit)
		},
	}
	cmd.Flags().IntVar(&limit, "limit", 20, "Сколько последних прогонов показать.")
	return cmd
}

func (c *CLI) serveCmd() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve [--addr host:port]",
		Short: "HTTP сервер: /health, /metrics, история прогонов и POST /api/scrape.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			regions, err := c.regions()
			if err != nil {
				return err
			}

			m := metrics.New()
			scraper := app.NewScraper(regions, m, c.history(), c.clock, app.Options{
				BaseDir:     c.cfg.Output.BaseDir,
				MetricsFile: c.cfg.Output.MetricsFile,
			}, c.log.Logger)
			scrape := func(ctx context.Context) (*app.Report, error) {
				return scraper.Run(ctx, app.NewLiveSource(c.newBrowser, app.PageOptions(c.cfg.Scraper), c.log.Logger))
			}

			var store server.RunStore
			if c.repo != nil {
				store = c.repo
			}

			return server.New(c.log, store, scrape, m.Registry()).Run(cmd.Context(), addr)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", c.cfg.App.Addr(), "Адрес HTTP сервера.")
	return cmd
}

func (c *CLI) regions() (*temperature.RegionTable, error) {
	if c.regionsFile == "" {
		return temperature.DefaultRegionTable(), nil
	}
	return temperature.LoadRegionTable(c.regionsFile)
}

func (c *CLI) history() app.History {
	if c.repo == nil {
		return nil
	}
	return c.repo
}

func (c *CLI) sessionFactory() checks.SessionFactory {
	opts := app.PageOptions(c.cfg.Scraper)
	return func(ctx context.Context) (checks.Session, error) {
		s, err := app.OpenSession(ctx, c.newBrowser, opts, c.log.Logger)
		if err != nil {
			return nil, err
		}
		return s, nil
	}
}
