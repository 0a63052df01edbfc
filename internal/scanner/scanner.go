// Package scanner discovers OpenMP C source files under a benchmark tree.
// It respects a .cfgsignore file with gitignore-style patterns and skips
// common build directories.
package scanner

import (
	"os"
	"path/filepath"
	"strings"

	ignore "github.com/sabhiram/go-gitignore"

	"github.com/BanisharifM/CFGs/pkg/omp"
)

// FileInfo describes one discovered OpenMP source file.
type FileInfo struct {
	Path     string // relative to the scan root
	FullPath string // absolute path
	Size     int64
}

// Options configures the scanner.
type Options struct {
	// IgnoreFileName is the gitignore-style ignore file read from the scan
	// root. Default: .cfgsignore.
	IgnoreFileName string

	// MaxFileSize skips files larger than this many bytes. 0 means the
	// default of 1 MB.
	MaxFileSize int64

	// Extensions lists accepted file extensions. Default: .c only.
	Extensions []string
}

// DefaultOptions returns scanner options with sensible defaults.
func DefaultOptions() Options {
	return Options{
		IgnoreFileName: ".cfgsignore",
		MaxFileSize:    1 << 20,
		Extensions:     []string{".c"},
	}
}

var skipDirs = map[string]struct{}{
	".git":  {},
	".hg":   {},
	".svn":  {},
	"build": {},
	"dist":  {},
	"bin":   {},
	"obj":   {},
}

// Scanner discovers OpenMP sources.
type Scanner struct {
	opts Options
}

// New creates a Scanner.
func New(opts Options) *Scanner {
	if opts.IgnoreFileName == "" {
		opts.IgnoreFileName = ".cfgsignore"
	}
	if opts.MaxFileSize == 0 {
		opts.MaxFileSize = 1 << 20
	}
	if len(opts.Extensions) == 0 {
		opts.Extensions = []string{".c"}
	}
	return &Scanner{opts: opts}
}

// Scan walks root and returns every matching source file that contains at
// least one OpenMP directive introducer. Unreadable entries are skipped.
func (s *Scanner) Scan(root string) ([]FileInfo, error) {
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return nil, err
	}

	gi := s.loadIgnore(absRoot)

	var results []FileInfo
	err = filepath.WalkDir(absRoot, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return nil // skip unreadable entries
		}

		rel, relErr := filepath.Rel(absRoot, path)
		if relErr != nil {
			return nil
		}

		if d.IsDir() {
			if path == absRoot {
				return nil
			}
			if _, skip := skipDirs[d.Name()]; skip {
				return filepath.SkipDir
			}
			if strings.HasPrefix(d.Name(), ".") {
				return filepath.SkipDir
			}
			if gi != nil && gi.MatchesPath(rel+"/") {
				return filepath.SkipDir
			}
			return nil
		}

		if !s.matchesExtension(path) {
			return nil
		}
		if gi != nil && gi.MatchesPath(rel) {
			return nil
		}

		info, infoErr := d.Info()
		if infoErr != nil || info.Size() > s.opts.MaxFileSize {
			return nil
		}

		content, readErr := os.ReadFile(path)
		if readErr != nil {
			return nil
		}
		if !strings.Contains(string(content), omp.Introducer) {
			return nil
		}

		results = append(results, FileInfo{
			Path:     rel,
			FullPath: path,
			Size:     info.Size(),
		})
		return nil
	})
	if err != nil {
		return nil, err
	}
	return results, nil
}

func (s *Scanner) matchesExtension(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, want := range s.opts.Extensions {
		if ext == want {
			return true
		}
	}
	return false
}

func (s *Scanner) loadIgnore(root string) *ignore.GitIgnore {
	gi, err := ignore.CompileIgnoreFile(filepath.Join(root, s.opts.IgnoreFileName))
	if err != nil {
		return nil
	}
	return gi
}
