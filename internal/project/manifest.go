package project

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

const noManifestMessage = "no artic.toml found\nplease specify the entry file explicitly, e.g.:\n  articc check path/to/main.art"

// Manifest is the decoded contents of a module's artic.toml: its package
// name, the entry file to run the pipeline on, and diagnostic limits.
type Manifest struct {
	Path string // absolute path to artic.toml
	Root string // directory containing artic.toml

	Package PackageConfig `toml:"package"`
	Diag    DiagConfig    `toml:"diagnostics"`
}

type PackageConfig struct {
	Name  string `toml:"name"`
	Entry string `toml:"entry"`
}

type DiagConfig struct {
	MaxDiagnostics int `toml:"max-diagnostics"`
}

const defaultMaxDiagnostics = 100

// FindManifest walks up from startDir looking for artic.toml, the same way
// the teacher's CLI walks up looking for its own project file.
func FindManifest(startDir string) (string, bool, error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, fmt.Errorf("failed to resolve start directory: %w", err)
	}
	for {
		candidate := filepath.Join(dir, "artic.toml")
		if _, err := os.Stat(candidate); err == nil {
			return candidate, true, nil
		} else if !errors.Is(err, os.ErrNotExist) {
			return "", false, fmt.Errorf("failed to stat %q: %w", candidate, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", false, nil
}

// LoadManifest finds and decodes the nearest artic.toml above startDir. The
// bool result is false (with a nil error) when no manifest exists; callers
// fall back to an explicit entry-file argument using noManifestMessage.
func LoadManifest(startDir string) (*Manifest, bool, error) {
	path, ok, err := FindManifest(startDir)
	if err != nil || !ok {
		return nil, ok, err
	}
	m, err := decodeManifest(path)
	if err != nil {
		return nil, true, err
	}
	return m, true, nil
}

// NoManifestMessage is the hint shown when LoadManifest finds nothing.
func NoManifestMessage() string { return noManifestMessage }

func decodeManifest(path string) (*Manifest, error) {
	var m Manifest
	meta, err := toml.DecodeFile(path, &m)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if !meta.IsDefined("package") {
		return nil, fmt.Errorf("%s: missing [package]", path)
	}
	if strings.TrimSpace(m.Package.Name) == "" {
		return nil, fmt.Errorf("%s: missing [package].name", path)
	}
	if strings.TrimSpace(m.Package.Entry) == "" {
		return nil, fmt.Errorf("%s: missing [package].entry", path)
	}
	if m.Diag.MaxDiagnostics <= 0 {
		m.Diag.MaxDiagnostics = defaultMaxDiagnostics
	}
	m.Path = path
	m.Root = filepath.Dir(path)
	return &m, nil
}

// EntryPath resolves the manifest's entry file to an absolute path.
func (m *Manifest) EntryPath() string {
	return filepath.Join(m.Root, filepath.FromSlash(m.Package.Entry))
}
