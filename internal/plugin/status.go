package plugin

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"golang.org/x/sync/errgroup"
)

// State is the freshness classification of one plugin.
type State string

const (
	// StateNotInstalled means the working tree does not exist.
	StateNotInstalled State = "not-installed"

	// StateInstalled means the working tree exists (freshness unknown).
	StateInstalled State = "installed"

	// StateUpToDate means local and remote head hashes are equal.
	StateUpToDate State = "up-to-date"

	// StateNeedsUpdate means local and remote head hashes differ.
	StateNeedsUpdate State = "needs-update"

	// StateError means a hash query failed.
	StateError State = "error"
)

// Status is one plugin's row in a list or outdated report.
type Status struct {
	Name      string `yaml:"name"`
	ShortURL  string `yaml:"short_url"`
	Installed bool   `yaml:"installed"`
	State     State  `yaml:"state"`
	Error     string `yaml:"error,omitempty"`
}

// List reports installed/not-installed for every resolved plugin. It
// inspects the filesystem only; no git process is ever spawned.
func (m *Manager) List() []Status {
	plugins := m.registry.Plugins()
	statuses := make([]Status, len(plugins))

	for i, p := range plugins {
		installed := p.Installed()
		state := StateNotInstalled
		if installed {
			state = StateInstalled
		}
		statuses[i] = Status{
			Name:      p.Name,
			ShortURL:  p.ShortURL,
			Installed: installed,
			State:     state,
		}
	}

	return statuses
}

// Outdated compares local and remote head hashes for every installed
// plugin, in parallel. Hash comparison is exact string equality on full
// hashes; detached-HEAD versus branch-tip ambiguity is not resolved.
// Plugins that are not installed report not-installed without any hash
// query, so no network call is spent on a meaningless comparison. Nothing
// is mutated.
func (m *Manager) Outdated(ctx context.Context) []Status {
	ctx, span := m.tracer.Start(ctx, SpanOutdated)
	defer span.End()

	plugins := m.registry.Plugins()
	statuses := make([]Status, len(plugins))
	span.SetAttributes(attribute.Int(AttrBatchSize, len(plugins)))

	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(m.parallel)

	for i, p := range plugins {
		i, p := i, p

		if !p.Installed() {
			statuses[i] = Status{
				Name:     p.Name,
				ShortURL: p.ShortURL,
				State:    StateNotInstalled,
			}
			continue
		}

		// Each goroutine owns a distinct slice index, so no lock is needed
		// around the writes.
		g.Go(func() error {
			status := Status{
				Name:      p.Name,
				ShortURL:  p.ShortURL,
				Installed: true,
			}

			local, remote, err := m.headHashes(gCtx, p)
			switch {
			case err != nil:
				status.State = StateError
				status.Error = err.Error()
			case local == remote:
				status.State = StateUpToDate
			default:
				status.State = StateNeedsUpdate
			}

			statuses[i] = status
			return nil
		})
	}

	_ = g.Wait()

	span.SetStatus(codes.Ok, "outdated check completed")
	return statuses
}

// headHashes queries the local and remote head hashes for one plugin.
func (m *Manager) headHashes(ctx context.Context, p *Plugin) (local, remote string, err error) {
	opCtx, cancel := context.WithTimeout(ctx, m.timeout)
	defer cancel()

	local, err = m.git.LocalHead(opCtx, p.Path)
	if err != nil {
		return "", "", NewQueryError(p.Name, err)
	}

	remote, err = m.git.RemoteHead(opCtx, p.URL)
	if err != nil {
		return "", "", NewQueryError(p.Name, err)
	}

	return local, remote, nil
}
