package plugin

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"

	"github.com/kornellapacz/vis-plug/internal/plugin/git"
)

const (
	// DefaultParallelLimit caps how many git processes a batch phase spawns
	// at once. The plugin list is human-curated, but an uncapped fan-out is
	// still an easy way to exhaust file descriptors on a long list.
	DefaultParallelLimit = 8

	// DefaultOperationTimeout bounds each external git invocation.
	DefaultOperationTimeout = 2 * time.Minute
)

// Notifier is the host-provided sink for human-readable progress and result
// messages. The manager never writes to process standard streams itself.
type Notifier interface {
	Notify(message string)
}

// NotifierFunc adapts a function to the Notifier interface.
type NotifierFunc func(string)

// Notify calls the underlying function.
func (f NotifierFunc) Notify(message string) { f(message) }

// NopNotifier discards all messages.
type NopNotifier struct{}

// Notify discards the message.
func (NopNotifier) Notify(string) {}

// OpResult is the outcome of one per-plugin operation inside a batch.
type OpResult struct {
	Name string `yaml:"name"`
	Op   string `yaml:"op"`
	Err  error  `yaml:"-"`
}

// InstallSummary aggregates the outcome of an InstallAll batch.
type InstallSummary struct {
	// Cloned is the number of repositories newly cloned.
	Cloned int

	// Failed is the number of per-plugin failures (clone or checkout).
	Failed int

	// NoOp is true when the batch had nothing to do.
	NoOp bool

	// Results holds one entry per failed operation.
	Results []OpResult
}

// UpdateSummary aggregates the outcome of an UpdateAll batch.
type UpdateSummary struct {
	// Updated is the number of installed repositories pulled successfully.
	Updated int

	// Failed is the number of per-plugin failures (pull or checkout).
	Failed int

	// NoOp is true when no plugin was installed.
	NoOp bool

	// Results holds one entry per failed operation.
	Results []OpResult
}

// Manager orchestrates install, update, checkout and status operations over
// the registry's resolved plugin list. Batch calls block until the whole
// batch completes: a bounded parallel phase for the independent repository
// operations, a barrier, then a sequential checkout phase that re-applies
// pinned refs. No per-plugin failure ever aborts the rest of a batch.
type Manager struct {
	registry   *Registry
	git        git.Operations
	notifier   Notifier
	logger     *slog.Logger
	tracer     trace.Tracer
	parallel   int
	timeout    time.Duration
	cloneDepth int
}

// Option configures a Manager.
type Option func(*Manager)

// WithGitOperations overrides the git backend (used by tests).
func WithGitOperations(ops git.Operations) Option {
	return func(m *Manager) { m.git = ops }
}

// WithNotifier sets the host message sink.
func WithNotifier(n Notifier) Option {
	return func(m *Manager) { m.notifier = n }
}

// WithLogger sets the structured logger.
func WithLogger(l *slog.Logger) Option {
	return func(m *Manager) { m.logger = l }
}

// WithParallelLimit caps the parallel phase fan-out.
func WithParallelLimit(n int) Option {
	return func(m *Manager) {
		if n > 0 {
			m.parallel = n
		}
	}
}

// WithOperationTimeout bounds each external git invocation.
func WithOperationTimeout(d time.Duration) Option {
	return func(m *Manager) {
		if d > 0 {
			m.timeout = d
		}
	}
}

// WithCloneDepth enables shallow clones of the given depth.
func WithCloneDepth(depth int) Option {
	return func(m *Manager) { m.cloneDepth = depth }
}

// NewManager creates a Manager over the given registry.
func NewManager(registry *Registry, opts ...Option) *Manager {
	m := &Manager{
		registry: registry,
		git:      git.NewExecOperations(),
		notifier: NopNotifier{},
		logger:   slog.Default(),
		tracer:   otel.GetTracerProvider().Tracer("visplug.plugin"),
		parallel: DefaultParallelLimit,
		timeout:  DefaultOperationTimeout,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Registry returns the registry the manager operates on.
func (m *Manager) Registry() *Registry {
	return m.registry
}

// batchOutcome carries one parallel-phase result across the fan-in barrier.
type batchOutcome struct {
	plugin *Plugin
	err    *Error
}

// InstallAll clones every resolved plugin that is not yet installed, then
// re-applies pinned refs to all resolved plugins. Already-installed plugins
// are not touched by the clone phase, which makes the call idempotent.
// Silent mode suppresses per-plugin notifications but not the final summary.
func (m *Manager) InstallAll(ctx context.Context, silent bool) (*InstallSummary, error) {
	ctx, span := m.tracer.Start(ctx, SpanInstallAll)
	defer span.End()

	summary := &InstallSummary{}

	plugins := m.registry.Plugins()
	span.SetAttributes(attribute.Int(AttrBatchSize, len(plugins)))

	if len(plugins) == 0 {
		summary.NoOp = true
		m.notifier.Notify("no plugins configured")
		span.SetStatus(codes.Ok, "empty registry")
		return summary, nil
	}

	if err := m.ensureRoots(); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return summary, err
	}

	var missing []*Plugin
	for _, p := range plugins {
		if !p.Installed() {
			missing = append(missing, p)
		}
	}

	// Parallel clone phase. Goroutines always return nil so the whole batch
	// runs to completion; failures travel through the outcome channel.
	outcomes := make(chan batchOutcome, len(missing))
	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(m.parallel)

	for _, p := range missing {
		p := p
		g.Go(func() error {
			opCtx, cancel := context.WithTimeout(gCtx, m.timeout)
			defer cancel()

			err := m.git.Clone(opCtx, p.URL, p.Path, git.CloneOptions{Depth: m.cloneDepth})
			if err != nil {
				// Drop any partially created tree so the installed
				// predicate stays truthful.
				_ = os.RemoveAll(p.Path)
				outcomes <- batchOutcome{plugin: p, err: NewCloneError(p.Name, p.URL, err)}
				return nil
			}

			outcomes <- batchOutcome{plugin: p}
			return nil
		})
	}

	_ = g.Wait()
	close(outcomes)

	for outcome := range outcomes {
		if outcome.err != nil {
			summary.Failed++
			summary.Results = append(summary.Results, OpResult{
				Name: outcome.plugin.Name, Op: "clone", Err: outcome.err,
			})
			m.logger.Warn("clone failed", "plugin", outcome.plugin.Name, "error", outcome.err)
			if !silent {
				m.notifier.Notify(fmt.Sprintf("failed to install %s: %v", outcome.plugin.Name, outcome.err))
			}
			continue
		}

		summary.Cloned++
		m.logger.Info("cloned plugin", "plugin", outcome.plugin.Name, "url", outcome.plugin.URL)
		if !silent {
			m.notifier.Notify(fmt.Sprintf("installed %s", outcome.plugin.Name))
		}
	}

	// Checkout phase, strictly after the barrier: pinned refs are re-applied
	// to every resolved plugin, including ones installed long before this call.
	for _, p := range plugins {
		if err := m.checkoutPinned(ctx, p); err != nil {
			summary.Failed++
			summary.Results = append(summary.Results, OpResult{Name: p.Name, Op: "checkout", Err: err})
			m.logger.Warn("checkout failed", "plugin", p.Name, "error", err)
			if !silent {
				m.notifier.Notify(fmt.Sprintf("failed to check out %s: %v", p.Name, err))
			}
		}
	}

	summary.NoOp = len(missing) == 0 && summary.Failed == 0
	if summary.NoOp {
		m.notifier.Notify("all plugins already installed")
	} else {
		m.notifier.Notify(fmt.Sprintf("installed %d plugins, %d failures", summary.Cloned, summary.Failed))
	}

	span.SetAttributes(
		attribute.Int(AttrBatchCloned, summary.Cloned),
		attribute.Int(AttrBatchFailed, summary.Failed),
	)
	span.SetStatus(codes.Ok, "install batch completed")
	return summary, nil
}

// UpdateAll pulls every installed plugin, then re-applies pinned refs to all
// resolved plugins. Plugins that are not installed are skipped silently;
// update is a no-op for them, not an error.
func (m *Manager) UpdateAll(ctx context.Context) (*UpdateSummary, error) {
	ctx, span := m.tracer.Start(ctx, SpanUpdateAll)
	defer span.End()

	summary := &UpdateSummary{}

	plugins := m.registry.Plugins()
	span.SetAttributes(attribute.Int(AttrBatchSize, len(plugins)))

	var installed []*Plugin
	for _, p := range plugins {
		if p.Installed() {
			installed = append(installed, p)
		}
	}

	if len(installed) == 0 {
		summary.NoOp = true
		m.notifier.Notify("no plugins installed, nothing to update")
		span.SetStatus(codes.Ok, "nothing installed")
		return summary, nil
	}

	outcomes := make(chan batchOutcome, len(installed))
	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(m.parallel)

	for _, p := range installed {
		p := p
		g.Go(func() error {
			opCtx, cancel := context.WithTimeout(gCtx, m.timeout)
			defer cancel()

			if err := m.git.Pull(opCtx, p.Path); err != nil {
				outcomes <- batchOutcome{plugin: p, err: NewPullError(p.Name, err)}
				return nil
			}

			outcomes <- batchOutcome{plugin: p}
			return nil
		})
	}

	_ = g.Wait()
	close(outcomes)

	for outcome := range outcomes {
		if outcome.err != nil {
			summary.Failed++
			summary.Results = append(summary.Results, OpResult{
				Name: outcome.plugin.Name, Op: "pull", Err: outcome.err,
			})
			m.logger.Warn("pull failed", "plugin", outcome.plugin.Name, "error", outcome.err)
			m.notifier.Notify(fmt.Sprintf("failed to update %s: %v", outcome.plugin.Name, outcome.err))
			continue
		}

		summary.Updated++
		m.logger.Info("updated plugin", "plugin", outcome.plugin.Name)
		m.notifier.Notify(fmt.Sprintf("updated %s", outcome.plugin.Name))
	}

	for _, p := range plugins {
		if err := m.checkoutPinned(ctx, p); err != nil {
			summary.Failed++
			summary.Results = append(summary.Results, OpResult{Name: p.Name, Op: "checkout", Err: err})
			m.logger.Warn("checkout failed", "plugin", p.Name, "error", err)
			m.notifier.Notify(fmt.Sprintf("failed to check out %s: %v", p.Name, err))
		}
	}

	m.notifier.Notify(fmt.Sprintf("updated %d plugins, %d failures", summary.Updated, summary.Failed))

	span.SetAttributes(
		attribute.Int(AttrBatchUpdated, summary.Updated),
		attribute.Int(AttrBatchFailed, summary.Failed),
	)
	span.SetStatus(codes.Ok, "update batch completed")
	return summary, nil
}

// Checkout re-pins a single plugin to ref and checks it out immediately.
// The pin overrides any configured branch for the lifetime of the registry.
func (m *Manager) Checkout(ctx context.Context, name, ref string) error {
	ctx, span := m.tracer.Start(ctx, SpanCheckout)
	defer span.End()

	if err := m.registry.Pin(name, ref); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}

	p := m.registry.Find(name)
	span.SetAttributes(PluginAttributes(p)...)

	if !p.Installed() {
		err := WrapError(ErrCodeCheckoutFailed, "working tree does not exist", ErrNotInstalled).
			WithPlugin(name)
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}

	opCtx, cancel := context.WithTimeout(ctx, m.timeout)
	defer cancel()

	if err := m.git.Checkout(opCtx, p.Path, ref); err != nil {
		cerr := NewCheckoutError(name, ref, err)
		span.RecordError(cerr)
		span.SetStatus(codes.Error, cerr.Error())
		return cerr
	}
	span.SetStatus(codes.Ok, "checkout completed")

	m.notifier.Notify(fmt.Sprintf("checked out %s at %s", name, ref))
	return nil
}

// checkoutPinned applies a plugin's pinned ref to its working tree. A plugin
// without a pinned ref, or without a working tree, is left untouched: a
// fresh clone stays on the remote's default branch.
func (m *Manager) checkoutPinned(ctx context.Context, p *Plugin) error {
	ref := p.Ref()
	if ref == "" {
		return nil
	}
	if !p.Installed() {
		return nil
	}

	opCtx, cancel := context.WithTimeout(ctx, m.timeout)
	defer cancel()

	if err := m.git.Checkout(opCtx, p.Path, ref); err != nil {
		return NewCheckoutError(p.Name, ref, err)
	}
	return nil
}

// ensureRoots creates the two category root directories, idempotently.
func (m *Manager) ensureRoots() error {
	for _, c := range []Category{CategoryPlugin, CategoryTheme} {
		dir := m.registry.CategoryDir(c)
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return WrapError(ErrCodeFilesystemFailed, "failed to create install directory", err).
				WithContext("dir", dir)
		}
	}
	return nil
}
