// SPDX-License-Identifier: MPL-2.0

package discovery

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"iter"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/addonscan/addonscan/pkg/manifest"
	"github.com/addonscan/addonscan/pkg/types"
)

var (
	// ErrScanRootNotFound is the cause attached to the scan_root_not_found diagnostic.
	ErrScanRootNotFound = errors.New("scan root does not exist")
	// ErrScanRootNotDirectory is returned when the scan root is a file.
	ErrScanRootNotDirectory = errors.New("scan root is not a directory")
	// ErrInvalidExcludePattern is returned by New for malformed exclude globs.
	ErrInvalidExcludePattern = errors.New("invalid exclude pattern")
)

type (
	// Option configures a Scanner.
	Option func(*Scanner)

	// Scanner discovers add-on manifests below a root directory. A Scanner
	// holds no state between scans; every call walks the tree from scratch.
	Scanner struct {
		root       types.FilesystemPath
		exclude    []string
		validator  *Validator
		logger     *slog.Logger
		onDiagnose func(Diagnostic)
	}

	// scan is the state of one walk.
	scan struct {
		*Scanner
		root   string
		result *Result
	}
)

// WithExclude adds doublestar patterns, matched against slash-separated paths
// relative to the root, for directories and files the walk must skip.
func WithExclude(patterns ...string) Option {
	return func(s *Scanner) {
		s.exclude = append(s.exclude, patterns...)
	}
}

// WithValidator replaces the default validator.
func WithValidator(v *Validator) Option {
	return func(s *Scanner) {
		if v != nil {
			s.validator = v
		}
	}
}

// WithLogger sets the logger used for operator notes. Defaults to slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(s *Scanner) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithDiagnosticHandler registers fn to receive every diagnostic as soon as
// it is produced, in addition to it being stored on the Result.
func WithDiagnosticHandler(fn func(Diagnostic)) Option {
	return func(s *Scanner) {
		s.onDiagnose = fn
	}
}

// New creates a Scanner for root. Exclude patterns are validated eagerly so
// a bad glob fails here rather than silently never matching.
func New(root types.FilesystemPath, opts ...Option) (*Scanner, error) {
	if err := root.Validate(); err != nil {
		return nil, err
	}

	s := &Scanner{
		root:      root,
		validator: NewValidator(),
		logger:    slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.validator.logger = s.logger

	for _, pat := range s.exclude {
		if !doublestar.ValidatePattern(pat) {
			return nil, fmt.Errorf("%w: %q", ErrInvalidExcludePattern, pat)
		}
	}

	return s, nil
}

// Root returns the root the scanner was created with.
func (s *Scanner) Root() types.FilesystemPath {
	return s.root
}

// Scan walks the tree, reads every manifest candidate and validates the
// records once the walk is complete.
//
// A missing root is not an error: the result is empty and carries a single
// scan_root_not_found diagnostic. Unreadable subdirectories and files are
// reported as diagnostics and skipped. The returned error is reserved for
// failures that make the whole scan meaningless (unreadable root, cancelled
// context); no partial result accompanies it.
func (s *Scanner) Scan(ctx context.Context) (*Result, error) {
	root := resolveRoot(string(s.root))
	sc := &scan{
		Scanner: s,
		root:    root,
		result: &Result{
			Root:        root,
			Records:     []*manifest.Record{},
			Diagnostics: []Diagnostic{},
		},
	}

	info, err := os.Stat(root)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		s.logger.Warn("scan root does not exist", "root", root)
		sc.diagnose(Diagnostic{
			Severity: SeverityWarning,
			Code:     CodeScanRootNotFound,
			Message:  fmt.Sprintf("scan root %s does not exist", root),
			Path:     root,
			Cause:    ErrScanRootNotFound,
		})
		return sc.result, nil
	case err != nil:
		return nil, fmt.Errorf("failed to access scan root: %w", err)
	case !info.IsDir():
		return nil, fmt.Errorf("%w: %s", ErrScanRootNotDirectory, root)
	}

	if err := filepath.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
		return sc.visit(ctx, path, d, walkErr)
	}); err != nil {
		return nil, fmt.Errorf("failed to scan %s: %w", root, err)
	}

	for _, rec := range sc.result.Records {
		for _, diag := range s.validator.Validate(rec) {
			sc.diagnose(diag)
		}
	}

	return sc.result, nil
}

// All returns the validated records of a fresh scan as a sequence. A scan
// failure is yielded once as (nil, err) and ends the sequence; nothing is
// yielded after that. Breaking out of the loop stops delivery.
func (s *Scanner) All(ctx context.Context) iter.Seq2[*manifest.Record, error] {
	return func(yield func(*manifest.Record, error) bool) {
		result, err := s.Scan(ctx)
		if err != nil {
			yield(nil, err)
			return
		}
		for _, rec := range result.Records {
			if !yield(rec, nil) {
				return
			}
		}
	}
}

func (sc *scan) visit(ctx context.Context, path string, d fs.DirEntry, walkErr error) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if walkErr != nil {
		if path == sc.root {
			return walkErr
		}
		sc.logger.Warn("skipping inaccessible path", "path", path, "error", walkErr)
		sc.diagnose(Diagnostic{
			Severity: SeverityWarning,
			Code:     CodePathSkipped,
			Message:  fmt.Sprintf("skipping inaccessible path %s: %v", path, walkErr),
			Path:     path,
			Cause:    walkErr,
		})
		if d != nil && d.IsDir() {
			return filepath.SkipDir
		}
		return nil
	}

	rel, err := filepath.Rel(sc.root, path)
	if err != nil {
		return nil //nolint:nilerr // paths outside the root cannot be reported relative to it
	}

	if d.IsDir() {
		if path == sc.root {
			return nil
		}
		if strings.HasPrefix(d.Name(), ".") || sc.excluded(rel+"/") || sc.excluded(rel) {
			return filepath.SkipDir
		}
		return nil
	}

	if !manifest.IsCandidate(d.Name()) || !isRegular(path, d) || sc.excluded(rel) {
		return nil
	}

	sc.read(path)
	return nil
}

func (sc *scan) read(path string) {
	rec, skip, err := manifest.ReadFile(types.FilesystemPath(path))
	if err != nil {
		sc.logger.Warn("failed to read manifest candidate", "path", path, "error", err)
		sc.diagnose(Diagnostic{
			Severity: SeverityWarning,
			Code:     CodeManifestReadFailed,
			Message:  fmt.Sprintf("failed to read %s: %v", path, err),
			Path:     path,
			Cause:    err,
		})
		return
	}

	switch skip {
	case manifest.SkipUndecodable:
		return
	case manifest.SkipNotManifest:
		sc.logger.Debug("file is not a manifest", "path", path)
		sc.diagnose(Diagnostic{
			Severity: SeverityInfo,
			Code:     CodeNotAManifest,
			Message:  fmt.Sprintf("%s is not a manifest", filepath.Base(path)),
			Path:     path,
		})
		return
	}

	sc.locate(rec)
	sc.result.Records = append(sc.result.Records, rec)
}

// locate fills the fields that depend on the scan root.
func (sc *scan) locate(rec *manifest.Record) {
	dir := string(rec.RootPath)
	if rel, err := filepath.Rel(sc.root, dir); err == nil {
		rec.RelativePath = rel
	} else {
		rec.RelativePath = dir
	}
	rec.Bundled = filepath.Dir(dir) != sc.root
}

func (sc *scan) excluded(rel string) bool {
	normalized := filepath.ToSlash(rel)
	for _, pat := range sc.exclude {
		if matched, err := doublestar.Match(pat, normalized); err == nil && matched {
			return true
		}
	}
	return false
}

func (sc *scan) diagnose(d Diagnostic) {
	sc.result.Diagnostics = append(sc.result.Diagnostics, d)
	if sc.onDiagnose != nil {
		sc.onDiagnose(d)
	}
}

// isRegular reports whether the entry is a regular file, following symlinks.
func isRegular(path string, d fs.DirEntry) bool {
	if d.Type().IsRegular() {
		return true
	}
	if d.Type()&fs.ModeSymlink == 0 {
		return false
	}
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}

// resolveRoot makes root absolute and resolves symlinks so that paths built
// during the walk compare equal to it. A root that cannot be resolved is
// returned in absolute, cleaned form.
func resolveRoot(root string) string {
	abs, err := filepath.Abs(root)
	if err != nil {
		abs = filepath.Clean(root)
	}
	if resolved, err := filepath.EvalSymlinks(abs); err == nil {
		return resolved
	}
	return abs
}
