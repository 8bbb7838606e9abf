package plugin

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"time"
)

// DefaultSelfUpdateTimeout bounds the artifact fetch.
const DefaultSelfUpdateTimeout = 30 * time.Second

// SelfUpdater fetches a replacement copy of the manager's own entry
// artifact from a fixed remote URL and overwrites the target path in
// place. Overwrite-in-place is operationally risky, so the target path is
// always injected by the caller and the write goes through a temp file
// plus rename; a failed fetch never truncates the existing artifact.
//
// Unlike batch operations, a self-update failure is reported with its full
// cause: it is a single, user-initiated, high-stakes action.
type SelfUpdater struct {
	client     *http.Client
	sourceURL  string
	targetPath string
}

// NewSelfUpdater creates a SelfUpdater that fetches sourceURL and installs
// it at targetPath. A nil client gets a default with a bounded timeout.
func NewSelfUpdater(client *http.Client, sourceURL, targetPath string) *SelfUpdater {
	if client == nil {
		client = &http.Client{Timeout: DefaultSelfUpdateTimeout}
	}
	return &SelfUpdater{
		client:     client,
		sourceURL:  sourceURL,
		targetPath: targetPath,
	}
}

// Run performs the fetch-and-replace.
func (s *SelfUpdater) Run(ctx context.Context) error {
	if s.sourceURL == "" {
		return NewSelfUpdateError("no self-update URL configured", nil)
	}
	if s.targetPath == "" {
		return NewSelfUpdateError("no self-update target path configured", nil)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.sourceURL, nil)
	if err != nil {
		return NewSelfUpdateError("failed to build request", err)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return NewSelfUpdateError("failed to fetch replacement artifact", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return NewSelfUpdateError("unexpected response fetching replacement artifact", nil).
			WithContext("status", resp.StatusCode).
			WithContext("url", s.sourceURL)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return NewSelfUpdateError("failed to read replacement artifact", err)
	}
	if len(body) == 0 {
		return NewSelfUpdateError("replacement artifact is empty", nil)
	}

	mode := os.FileMode(0o644)
	if info, err := os.Stat(s.targetPath); err == nil {
		mode = info.Mode().Perm()
	}

	tmp, err := os.CreateTemp(filepath.Dir(s.targetPath), ".visplug-update-*")
	if err != nil {
		return NewSelfUpdateError("failed to create temp file", err)
	}
	tmpPath := tmp.Name()

	if _, err := tmp.Write(body); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return NewSelfUpdateError("failed to write replacement artifact", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return NewSelfUpdateError("failed to write replacement artifact", err)
	}

	if err := os.Chmod(tmpPath, mode); err != nil {
		os.Remove(tmpPath)
		return NewSelfUpdateError("failed to set artifact permissions", err)
	}

	if err := os.Rename(tmpPath, s.targetPath); err != nil {
		os.Remove(tmpPath)
		return NewSelfUpdateError(fmt.Sprintf("failed to replace %s", s.targetPath), err)
	}

	return nil
}
