package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/abhisek/circlet/internal/catalog"
	"github.com/abhisek/circlet/internal/config"
	"github.com/abhisek/circlet/internal/logging"
	"github.com/abhisek/circlet/internal/metrics"
	"github.com/abhisek/circlet/internal/progress"
	"github.com/abhisek/circlet/internal/store"
	"github.com/abhisek/circlet/internal/tutorial"
)

// runtime holds everything a command needs, built from the resolved config.
type runtime struct {
	cfg      config.Config
	logger   *zap.Logger
	catalog  *catalog.Registry
	progress *progress.Store
	metrics  *metrics.Metrics

	// events is nil unless the SQLite backend is in use.
	events store.EventLog

	closers []func() error
}

func setup(ctx context.Context, v *viper.Viper) (*runtime, error) {
	cfg, err := config.Load(v)
	if err != nil {
		return nil, err
	}

	logger, err := logging.New(logging.Config{Level: cfg.Log.Level, File: cfg.Log.File})
	if err != nil {
		return nil, err
	}

	rt := &runtime{
		cfg:     cfg,
		logger:  logger,
		catalog: catalog.Default(),
	}
	rt.closers = append(rt.closers, func() error {
		_ = logger.Sync()
		return nil
	})

	kv, err := rt.openKV(ctx)
	if err != nil {
		rt.Close()
		return nil, err
	}
	rt.progress = progress.New(kv, logger)

	reg := prometheus.NewRegistry()
	rt.metrics = metrics.MustNew(reg)
	if cfg.MetricsAddr != "" {
		rt.serveMetrics(reg)
	}

	logger.Debug("runtime ready",
		zap.String("store", cfg.Store),
		zap.String("config_file", cfg.ConfigFile),
	)
	return rt, nil
}

func (rt *runtime) openKV(ctx context.Context) (store.KV, error) {
	switch rt.cfg.Store {
	case config.StoreMemory:
		return store.NewMemory(), nil

	case config.StoreRedis:
		client, err := store.NewRedisClient(ctx, store.RedisOptions{
			Addr:     rt.cfg.Redis.Addr,
			Password: rt.cfg.Redis.Password,
			DB:       rt.cfg.Redis.DB,
		})
		if err != nil {
			return nil, err
		}
		r := store.NewRedis(client, rt.cfg.Redis.Prefix)
		rt.closers = append(rt.closers, r.Close)
		return r, nil

	default:
		path, err := rt.dbPath()
		if err != nil {
			return nil, fmt.Errorf("resolve DB path: %w", err)
		}
		st, err := store.Open(path)
		if err != nil {
			return nil, fmt.Errorf("open store: %w", err)
		}
		rt.closers = append(rt.closers, st.Close)
		rt.events = st
		return st, nil
	}
}

// dbPath returns the --db/CIRCLET_DB value, or the default XDG path.
func (rt *runtime) dbPath() (string, error) {
	if p := rt.cfg.DB; p != "" {
		return p, store.EnsureDir(p)
	}
	return store.DefaultDBPath()
}

func (rt *runtime) serveMetrics(reg *prometheus.Registry) {
	srv := &http.Server{
		Addr:              rt.cfg.MetricsAddr,
		Handler:           metrics.Handler(reg),
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			rt.logger.Warn("metrics server stopped", zap.Error(err))
		}
	}()
	rt.logger.Info("serving metrics", zap.String("addr", rt.cfg.MetricsAddr))

	rt.closers = append(rt.closers, func() error {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		return srv.Shutdown(ctx)
	})
}

func (rt *runtime) engineOptions() []tutorial.Option {
	opts := []tutorial.Option{
		tutorial.WithLogger(rt.logger),
		tutorial.WithMetrics(rt.metrics),
	}
	if rt.cfg.StartGuard > 0 {
		opts = append(opts, tutorial.WithStartGuardWindow(rt.cfg.StartGuard))
	}
	if rt.events != nil {
		opts = append(opts, tutorial.WithEventLog(rt.events))
	}
	return opts
}

// Close releases resources in reverse order of acquisition.
func (rt *runtime) Close() {
	for i := len(rt.closers) - 1; i >= 0; i-- {
		if err := rt.closers[i](); err != nil {
			rt.logger.Warn("close", zap.Error(err))
		}
	}
}
