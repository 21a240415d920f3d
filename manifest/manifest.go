// Package manifest handles funge.toml run configuration.
package manifest

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// FileName is the name of the configuration file looked up by FindAndLoad.
const FileName = "funge.toml"

// Manifest represents a funge.toml configuration.
type Manifest struct {
	Run     Run     `toml:"run"`
	Log     Log     `toml:"log"`
	Journal Journal `toml:"journal"`

	// Dir is the directory containing the funge.toml file (set at load time).
	Dir string `toml:"-"`
}

// Run configures interpreter behavior.
type Run struct {
	Program  string  `toml:"program"`
	Seed     *uint64 `toml:"seed"`
	MaxSteps uint64  `toml:"max-steps"`
	Banner   *string `toml:"banner"`
	Trace    bool    `toml:"trace"`
}

// Log configures commonlog output.
type Log struct {
	Verbosity int    `toml:"verbosity"`
	File      string `toml:"file"`
}

// Journal configures the run journal database.
type Journal struct {
	Enabled bool   `toml:"enabled"`
	Path    string `toml:"path"`
}

// Default returns the configuration used when no funge.toml exists.
func Default() *Manifest {
	m := &Manifest{}
	m.applyDefaults()
	return m
}

func (m *Manifest) applyDefaults() {
	if m.Run.Program == "" {
		m.Run.Program = "random"
	}
	if m.Journal.Path == "" {
		m.Journal.Path = filepath.Join(".funge", "journal.db")
	}
}

// Load parses a funge.toml file from the given directory.
func Load(dir string) (*Manifest, error) {
	path := filepath.Join(dir, FileName)
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("cannot read %s: %w", path, err)
	}

	var m Manifest
	if err := toml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parse error in %s: %w", path, err)
	}

	m.Dir, err = filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("cannot resolve path %s: %w", dir, err)
	}

	if m.Log.Verbosity < 0 {
		return nil, fmt.Errorf("%s: log verbosity must not be negative", path)
	}
	m.applyDefaults()

	return &m, nil
}

// FindAndLoad walks up from startDir to find a funge.toml file,
// then loads and returns the manifest. Returns nil if no manifest is found.
func FindAndLoad(startDir string) (*Manifest, error) {
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return nil, err
	}

	for {
		path := filepath.Join(dir, FileName)
		if _, err := os.Stat(path); err == nil {
			return Load(dir)
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			// Reached root
			return nil, nil
		}
		dir = parent
	}
}

// JournalPath returns the journal database path. Relative paths are
// resolved against the manifest directory.
func (m *Manifest) JournalPath() string {
	if filepath.IsAbs(m.Journal.Path) || m.Dir == "" {
		return m.Journal.Path
	}
	return filepath.Join(m.Dir, m.Journal.Path)
}

// LogPath returns the log file path, or nil to log to stderr.
func (m *Manifest) LogPath() *string {
	if m.Log.File == "" {
		return nil
	}
	path := m.Log.File
	if !filepath.IsAbs(path) && m.Dir != "" {
		path = filepath.Join(m.Dir, path)
	}
	return &path
}
