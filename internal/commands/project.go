package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"

	"github.com/haulbook/haulbook/internal/accounts"
	"github.com/haulbook/haulbook/internal/config"
	"github.com/haulbook/haulbook/internal/database"
	"github.com/haulbook/haulbook/internal/logger"
	"github.com/haulbook/haulbook/internal/metrics"
	"github.com/haulbook/haulbook/internal/notify"
	"github.com/haulbook/haulbook/internal/store/memory"
	"github.com/haulbook/haulbook/internal/store/postgres"
	"github.com/haulbook/haulbook/internal/workflow"
)

// project holds what a command needs from an initialized project directory.
// It is loaded lazily so init can run without one.
type project struct {
	dir        string
	metricsOut string

	root     string
	cfg      *config.Config
	env      *config.Env
	log      zerolog.Logger
	registry *prometheus.Registry
	metrics  *metrics.Metrics

	closers []io.Closer
}

func (p *project) load() error {
	if p.cfg != nil {
		return nil
	}

	root, err := filepath.Abs(p.dir)
	if err != nil {
		return fmt.Errorf("resolving path: %w", err)
	}

	cfg, err := config.Load(filepath.Join(root, config.FileName))
	if err != nil {
		return err
	}
	env, err := config.LoadEnv()
	if err != nil {
		return err
	}
	env.Apply(cfg)

	logCfg := logger.DefaultConfig()
	logCfg.Level = cfg.Logging.Level
	logCfg.Format = cfg.Logging.Format
	closer, err := logger.Setup(logCfg)
	if err != nil {
		return err
	}
	p.closers = append(p.closers, closer)

	p.registry = prometheus.NewRegistry()
	m, err := metrics.New(p.registry)
	if err != nil {
		return err
	}

	p.root = root
	p.cfg = cfg
	p.env = env
	p.log = logger.WithComponent("cli")
	p.metrics = m
	return nil
}

// run loads the project, calls fn and then releases everything the project
// opened, writing metrics even when fn fails.
func (p *project) run(fn func() error) (err error) {
	if err := p.load(); err != nil {
		return err
	}
	defer func() {
		err = errors.Join(err, p.close())
	}()
	return fn()
}

func (p *project) accounts() (*accounts.Service, error) {
	path := p.cfg.Accounts.Chart
	if !filepath.IsAbs(path) {
		path = filepath.Join(p.root, path)
	}
	return accounts.LoadFile(path)
}

func (p *project) postingsRoot() string {
	if filepath.IsAbs(p.cfg.Postings.Root) {
		return p.cfg.Postings.Root
	}
	return filepath.Join(p.root, p.cfg.Postings.Root)
}

// store opens the configured contract store.
func (p *project) store(ctx context.Context) (workflow.Store, error) {
	switch p.cfg.Store.Driver {
	case config.DriverPostgres:
		db, err := database.New(ctx, p.env.ConnectionString())
		if err != nil {
			return nil, err
		}
		p.closers = append(p.closers, db)
		s := postgres.New(db)
		if err := s.Migrate(ctx); err != nil {
			return nil, err
		}
		return s, nil
	default:
		p.log.Warn().Msg("memory store selected; finalized contracts are not kept after exit")
		return memory.New(), nil
	}
}

func (p *project) workflowOptions() []workflow.Option {
	wlog := logger.WithComponent("workflow")
	return []workflow.Option{
		workflow.WithLogger(wlog),
		workflow.WithRecorder(p.metrics),
		workflow.WithNotifier(notify.NewMulti(
			notify.NewActivityLog(p.root, wlog),
			notify.NewLogger(logger.WithComponent("notify")),
		)),
	}
}

func (p *project) close() error {
	var errs []error
	if p.metricsOut != "" && p.registry != nil {
		if err := prometheus.WriteToTextfile(p.metricsOut, p.registry); err != nil {
			errs = append(errs, fmt.Errorf("writing metrics: %w", err))
		}
	}
	for i := len(p.closers) - 1; i >= 0; i-- {
		if err := p.closers[i].Close(); err != nil {
			errs = append(errs, err)
		}
	}
	p.closers = nil
	return errors.Join(errs...)
}
