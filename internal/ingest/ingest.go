package ingest

import (
	"archive/zip"
	"fmt"
	"io"
	"io/fs"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/dshills/critic/internal/lang"
)

// Unit is one source file ready for analysis.
type Unit struct {
	// Path is the display path: relative inside directories and archives,
	// as given for single files.
	Path     string
	Language string
	Content  string
}

// Options controls which files are ingested.
type Options struct {
	MaxFileSizeMB int
	Ignore        []string
}

// defaultIgnore is the built-in skip list for directory walks.
var defaultIgnore = []string{
	".git", ".svn", ".hg", "__pycache__", "node_modules", ".venv",
	"venv", "env", ".env", "build", "dist", "target", "bin", "obj",
	".DS_Store", "Thumbs.db", "*.pyc", "*.pyo", "*.so", "*.dll", "*.exe",
	"*.dylib", "*.a", "*.o",
}

// Load ingests source units from a path: a single file, a directory tree, a
// .zip archive, or a git URL (cloned shallowly into a temp directory).
func Load(path string, opts Options) ([]Unit, error) {
	if opts.Ignore == nil {
		opts.Ignore = defaultIgnore
	}

	switch {
	case isGitURL(path):
		return loadGit(path, opts)
	case strings.HasSuffix(strings.ToLower(path), ".zip"):
		return loadZip(path, opts)
	}

	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("reading input path: %w", err)
	}
	if info.IsDir() {
		return loadDir(path, opts)
	}
	return loadFile(path, info.Size(), opts)
}

func isGitURL(path string) bool {
	if strings.HasPrefix(path, "git@") {
		return true
	}
	if strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://") {
		return strings.HasSuffix(path, ".git") ||
			strings.Contains(path, "github.com/") ||
			strings.Contains(path, "gitlab.com/") ||
			strings.Contains(path, "bitbucket.org/")
	}
	return false
}

func loadFile(path string, size int64, opts Options) ([]Unit, error) {
	if exceedsLimit(size, opts) {
		return nil, fmt.Errorf("file %s exceeds the %d MB size limit", path, opts.MaxFileSizeMB)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading file: %w", err)
	}
	return []Unit{{
		Path:     path,
		Language: lang.FromPath(path),
		Content:  string(data),
	}}, nil
}

func loadDir(root string, opts Options) ([]Unit, error) {
	var units []Unit
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		rel, relErr := filepath.Rel(root, path)
		if relErr != nil {
			rel = path
		}
		if d.IsDir() {
			if path != root && ignored(d.Name(), rel, opts.Ignore) {
				return filepath.SkipDir
			}
			return nil
		}
		if ignored(d.Name(), rel, opts.Ignore) || !lang.IsSupported(path) {
			return nil
		}
		info, err := d.Info()
		if err != nil {
			return nil
		}
		if exceedsLimit(info.Size(), opts) {
			logrus.WithField("path", rel).Debug("skipping oversized file")
			return nil
		}
		data, err := os.ReadFile(path)
		if err != nil {
			logrus.WithField("path", rel).WithError(err).Debug("skipping unreadable file")
			return nil
		}
		units = append(units, Unit{
			Path:     rel,
			Language: lang.FromPath(path),
			Content:  string(data),
		})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walking directory: %w", err)
	}
	if len(units) == 0 {
		return nil, fmt.Errorf("no supported source files found under %s", root)
	}
	return units, nil
}

func loadZip(path string, opts Options) ([]Unit, error) {
	r, err := zip.OpenReader(path)
	if err != nil {
		return nil, fmt.Errorf("opening archive: %w", err)
	}
	defer r.Close()

	var units []Unit
	for _, f := range r.File {
		if f.FileInfo().IsDir() {
			continue
		}
		if ignored(filepath.Base(f.Name), f.Name, opts.Ignore) || !lang.IsSupported(f.Name) {
			continue
		}
		if exceedsLimit(int64(f.UncompressedSize64), opts) {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			continue
		}
		data, err := io.ReadAll(rc)
		rc.Close()
		if err != nil {
			continue
		}
		units = append(units, Unit{
			Path:     f.Name,
			Language: lang.FromPath(f.Name),
			Content:  string(data),
		})
	}
	if len(units) == 0 {
		return nil, fmt.Errorf("no supported source files found in %s", path)
	}
	return units, nil
}

// loadGit clones the repository shallowly into a temp directory and walks it.
// The clone is removed before returning.
func loadGit(url string, opts Options) ([]Unit, error) {
	tmp, err := os.MkdirTemp("", "critic-clone-")
	if err != nil {
		return nil, fmt.Errorf("creating temp directory: %w", err)
	}
	defer os.RemoveAll(tmp)

	logrus.WithField("url", url).Info("cloning repository")
	cmd := exec.Command("git", "clone", "--depth", "1", url, tmp)
	out, err := cmd.CombinedOutput()
	if err != nil {
		return nil, fmt.Errorf("cloning %s: %w: %s", url, err, strings.TrimSpace(string(out)))
	}
	return loadDir(tmp, opts)
}

func exceedsLimit(size int64, opts Options) bool {
	return opts.MaxFileSizeMB > 0 && size > int64(opts.MaxFileSizeMB)*1024*1024
}

// ignored matches a file or directory against the skip list: exact base-name
// entries, glob entries, and substring matches on the relative path.
func ignored(base, rel string, patterns []string) bool {
	for _, pat := range patterns {
		if pat == base {
			return true
		}
		if strings.ContainsAny(pat, "*?[") {
			if ok, err := filepath.Match(pat, base); err == nil && ok {
				return true
			}
			continue
		}
		if strings.Contains(rel, pat) {
			return true
		}
	}
	return false
}
