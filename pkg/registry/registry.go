// Package registry maps dataset names to CSV files in a data directory.
package registry

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	skyerrors "github.com/oxygene76/skycalc/pkg/errors"
	"github.com/oxygene76/skycalc/pkg/table"
)

const extension = ".csv"

// DatasetHandle points a dataset name at its file. Handles are replaced, never
// updated, when the directory is rescanned.
type DatasetHandle struct {
	Name string
	Path string
}

// Info describes a dataset without loading its rows.
type Info struct {
	Name       string   `json:"name" yaml:"name"`
	Path       string   `json:"path" yaml:"path"`
	Columns    []string `json:"columns" yaml:"columns"`
	NumColumns int      `json:"num_columns" yaml:"num_columns"`
}

// Registry scans a directory for tabular files.
type Registry struct {
	dir    string
	logger *slog.Logger

	mu       sync.RWMutex
	datasets map[string]DatasetHandle
}

// New creates a registry for dir and scans it. A missing directory is created.
func New(dir string, logger *slog.Logger) (*Registry, error) {
	if logger == nil {
		logger = slog.Default()
	}
	r := &Registry{
		dir:      dir,
		logger:   logger,
		datasets: make(map[string]DatasetHandle),
	}
	if err := r.Rescan(); err != nil {
		return nil, err
	}
	return r, nil
}

// Dir returns the scanned directory.
func (r *Registry) Dir() string {
	return r.dir
}

// Rescan rebuilds the name mapping from the directory contents.
func (r *Registry) Rescan() error {
	if _, err := os.Stat(r.dir); os.IsNotExist(err) {
		r.logger.Warn("data directory does not exist, creating it", "dir", r.dir)
		if err := os.MkdirAll(r.dir, 0755); err != nil {
			return fmt.Errorf("failed to create data directory %s: %w", r.dir, err)
		}
	}

	entries, err := os.ReadDir(r.dir)
	if err != nil {
		return fmt.Errorf("failed to read data directory %s: %w", r.dir, err)
	}

	found := make(map[string]DatasetHandle)
	for _, e := range entries {
		if e.IsDir() || filepath.Ext(e.Name()) != extension {
			continue
		}
		name := strings.TrimSuffix(e.Name(), extension)
		found[name] = DatasetHandle{Name: name, Path: filepath.Join(r.dir, e.Name())}
	}

	r.mu.Lock()
	r.datasets = found
	r.mu.Unlock()

	r.logger.Debug("datasets scanned", "dir", r.dir, "count", len(found))
	return nil
}

// List returns the dataset names in sorted order.
func (r *Registry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.datasets))
	for n := range r.datasets {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Lookup returns the handle for name.
func (r *Registry) Lookup(name string) (DatasetHandle, error) {
	r.mu.RLock()
	h, ok := r.datasets[name]
	r.mu.RUnlock()
	if !ok {
		return DatasetHandle{}, skyerrors.Wrapf(skyerrors.ErrDatasetNotFound,
			"%q (available: %s)", name, strings.Join(r.List(), ", "))
	}
	return h, nil
}

// Info reads only the header of the dataset.
func (r *Registry) Info(name string) (Info, error) {
	h, err := r.Lookup(name)
	if err != nil {
		return Info{}, err
	}
	cols, err := table.ReadHeader(h.Path)
	if err != nil {
		return Info{}, fmt.Errorf("failed to read %s: %w", h.Path, err)
	}
	return Info{
		Name:       h.Name,
		Path:       h.Path,
		Columns:    cols,
		NumColumns: len(cols),
	}, nil
}

// Load reads the full dataset.
func (r *Registry) Load(name string) (*table.Table, error) {
	h, err := r.Lookup(name)
	if err != nil {
		return nil, err
	}
	t, err := table.ReadCSVFile(h.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to load dataset %s: %w", name, err)
	}
	return t, nil
}
