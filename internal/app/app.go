package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"golang.org/x/sync/errgroup"
	"k8s.io/client-go/kubernetes"
	"k8s.io/client-go/tools/clientcmd"

	"github.com/skillcoder/cni-repair-controller/internal/adapters/outbound/k8s"
	"github.com/skillcoder/cni-repair-controller/internal/config"
	"github.com/skillcoder/cni-repair-controller/internal/httpserver"
	"github.com/skillcoder/cni-repair-controller/internal/infra/cronparser"
	"github.com/skillcoder/cni-repair-controller/internal/infra/metrics"
	"github.com/skillcoder/cni-repair-controller/internal/infra/pinger"
	"github.com/skillcoder/cni-repair-controller/internal/infra/shutdown"
	"github.com/skillcoder/cni-repair-controller/internal/logic/repair"
)

// MetricsNamespace prefixes every metric of the controller.
const MetricsNamespace = "linkerd_cni_repair_controller"

type App struct {
	logger      *slog.Logger
	appState    appstater
	pingers     pingerServer
	signals     signalHandler
	adminServer appServer
	watcher     *k8s.PodWatcher
	enqueuer    *repair.Enqueuer
	worker      *repair.Worker
	scheduler   *cronparser.Scheduler
}

// NewClientset builds a clientset from the configured kubeconfig and master
// URL, falling back to the in-cluster config when both are empty.
func NewClientset(cfg *config.Config) (*kubernetes.Clientset, error) {
	kubeConfig, err := clientcmd.BuildConfigFromFlags(
		cfg.KubeMaster,
		cfg.KubeConfig,
	)
	if err != nil {
		return nil, fmt.Errorf("build k8s config: %w", err)
	}

	clientset, err := kubernetes.NewForConfig(kubeConfig)
	if err != nil {
		return nil, fmt.Errorf("create clientset: %w", err)
	}

	return clientset, nil
}

// New creates a new application instance with all dependencies wired.
func New(
	logger *slog.Logger,
	cfg *config.Config,
	appState appstater,
	pingers pingerServer,
	registry *prometheus.Registry,
	clientset kubernetes.Interface,
) (*App, error) {
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	pipelineMetrics := metrics.New(registry, MetricsNamespace)

	var (
		scheduler *cronparser.Scheduler
		resync    <-chan struct{}
	)

	if cfg.ResyncSchedule != "" {
		var err error

		scheduler, err = cronparser.NewScheduler(logger, cfg.ResyncSchedule, cfg.ResyncTZ.String())
		if err != nil {
			return nil, fmt.Errorf("create resync scheduler: %w", err)
		}

		resync = scheduler.Ticks()
	}

	queue := repair.NewQueue(repair.QueueCapacity)

	app := &App{
		logger:      logger,
		appState:    appState,
		pingers:     pingers,
		signals:     shutdown.New(logger, appState),
		adminServer: httpserver.New(logger, appState, registry, cfg.AdminPort),
		watcher:     k8s.NewPodWatcher(logger, clientset, cfg.NodeName, resync),
		enqueuer:    repair.NewEnqueuer(logger, queue, pipelineMetrics),
		worker: repair.NewWorker(
			logger,
			queue,
			k8s.NewRemover(logger, clientset, cfg.Mode),
			k8s.NewEventPublisher(logger, clientset),
			pipelineMetrics,
			cfg.Mode,
			cfg.PodName,
		),
		scheduler: scheduler,
	}

	for _, p := range []pinger.Pinger{app.adminServer, app.watcher, app.worker} {
		if err := appState.RegisterPinger(p); err != nil {
			return nil, fmt.Errorf("register pinger: %w", err)
		}
	}

	// shut down in reverse order: the admin server answers probes until the end
	appState.RegisterShutdowner(app.adminServer)
	appState.RegisterShutdowner(pingers)
	appState.RegisterShutdowner(app.worker)

	if scheduler != nil {
		appState.RegisterShutdowner(scheduler)
	}

	return app, nil
}

// Run starts every component and blocks until the context is cancelled, a
// termination signal arrives or a task fails.
func (a *App) Run(originCtx context.Context) error {
	ctx, cancel := context.WithCancel(originCtx)
	defer cancel()

	go a.signals.HandleSignals(ctx, cancel)

	if err := a.appState.SetStarting(ctx); err != nil {
		return fmt.Errorf("set starting: %w", err)
	}

	err := a.run(ctx)

	// stop the pinger loop before waiting for it
	cancel()

	shutdownErr := a.appState.Shutdown(originCtx)
	if shutdownErr != nil {
		a.logger.ErrorContext(originCtx, "graceful shutdown failed", "reason", shutdownErr)
	}

	return errors.Join(err, shutdownErr)
}

func (a *App) run(ctx context.Context) error {
	if err := a.adminServer.Start(ctx); err != nil {
		return fmt.Errorf("start admin server: %w", err)
	}

	if err := a.pingers.Start(ctx); err != nil {
		return fmt.Errorf("start pingers: %w", err)
	}

	g, gctx := errgroup.WithContext(ctx)

	pods, err := a.watcher.Watch(gctx)
	if err != nil {
		if ctx.Err() != nil {
			a.logger.InfoContext(ctx, "stopped before pod cache synced")

			return nil
		}

		return fmt.Errorf("watch pods: %w", err)
	}

	g.Go(func() error {
		a.worker.Run(gctx)

		return nil
	})

	g.Go(func() error {
		return a.enqueuer.Run(gctx, pods)
	})

	if a.scheduler != nil {
		g.Go(func() error {
			a.scheduler.Run(gctx)

			return nil
		})
	}

	select {
	case <-gctx.Done():
	case <-a.worker.Ready():
		if err := a.appState.SetRunning(ctx); err != nil {
			a.logger.WarnContext(ctx, "set running", "reason", err)
		}

		a.logger.InfoContext(ctx, "controller started")
	}

	if err := g.Wait(); err != nil {
		return fmt.Errorf("run pipeline: %w", err)
	}

	a.logger.InfoContext(ctx, "pipeline stopped")

	return nil
}
