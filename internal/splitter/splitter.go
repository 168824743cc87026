// Package splitter groups the envelopes of a directory of X12 files
// into one zip archive per client.
package splitter

import (
	"compress/gzip"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/arcward/isasplit"
	"github.com/arcward/isasplit/internal/config"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

// ErrStopped is returned by Run when OnProgress asked to stop
var ErrStopped = errors.New("split stopped")

// Progress is the number of files processed so far, out of Max
type Progress struct {
	Max   int
	Value int
}

// ProgressAction is returned by an OnProgress callback
type ProgressAction int

const (
	Continue ProgressAction = iota
	Stop
)

// Splitter reads every file under a source directory, and writes each
// envelope with a client to <destination>/<client id>.zip
type Splitter struct {
	src string
	dst string
	cfg *config.Config
	log *slog.Logger

	// OnProgress, if set, is called once before the first file and then
	// after every file. Calls are never concurrent.
	OnProgress func(Progress) ProgressAction
}

// New creates a Splitter. A nil cfg uses config.DefaultConfig, and
// a nil logger discards everything except the run's error log.
func New(src string, dst string, cfg *config.Config, logger *slog.Logger) *Splitter {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Splitter{src: src, dst: dst, cfg: cfg, log: logger}
}

// run holds the state of a single call to Run
type run struct {
	*Splitter
	errLog   *slog.Logger
	archives *archiveRegistry

	mu        sync.Mutex
	progress  Progress
	envelopes int
	unmatched int
	skipped   []SkippedFile
}

func (s *Splitter) validateDirs() error {
	if strings.TrimSpace(s.src) == "" {
		return fmt.Errorf("invalid source directory '%s'", s.src)
	}
	if strings.TrimSpace(s.dst) == "" {
		return fmt.Errorf("invalid target directory '%s'", s.dst)
	}
	info, err := os.Stat(s.src)
	if err != nil || !info.IsDir() {
		return fmt.Errorf("source directory '%s' not found", s.src)
	}
	if _, err = os.Stat(s.dst); err == nil {
		return fmt.Errorf("target directory '%s' already exists", s.dst)
	} else if !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return nil
}

// Run splits every regular file under the source directory. Files with
// an invalid ISA header are logged and skipped; any other error stops
// the run. The destination directory must not already exist.
func (s *Splitter) Run(ctx context.Context) (manifest *Manifest, err error) {
	started := time.Now()
	if err = s.cfg.Validate(); err != nil {
		return nil, err
	}
	if err = s.validateDirs(); err != nil {
		return nil, err
	}
	files, err := s.sourceFiles()
	if err != nil {
		return nil, err
	}
	if err = os.MkdirAll(s.dst, 0o755); err != nil {
		return nil, err
	}

	logFile, err := os.Create(filepath.Join(s.dst, s.cfg.ErrorLog))
	if err != nil {
		return nil, err
	}
	gz := gzip.NewWriter(logFile)
	defer func() {
		err = errors.Join(err, gz.Close(), logFile.Close())
	}()

	r := &run{
		Splitter: s,
		errLog:   slog.New(slog.NewTextHandler(gz, nil)),
		archives: newArchiveRegistry(s.dst, s.cfg.CompressionLevel),
		progress: Progress{Max: len(files)},
	}
	s.log.Info("splitting", "source", s.src, "destination", s.dst, "files", len(files))

	runErr := r.processAll(ctx, files)
	archives, closeErr := r.archives.closeAll()
	if runErr != nil {
		r.errLog.Error("split failed", "error", runErr)
	}

	manifest = r.manifest(started, archives)
	if s.cfg.Manifest != "" && runErr == nil && closeErr == nil {
		if e := manifest.write(filepath.Join(s.dst, s.cfg.Manifest)); e != nil {
			closeErr = errors.Join(closeErr, fmt.Errorf("writing manifest: %w", e))
		}
	}
	s.log.Info(
		"split finished",
		"clients", len(manifest.Clients),
		"envelopes", manifest.Envelopes,
		"skipped", len(manifest.Skipped),
	)
	return manifest, errors.Join(runErr, closeErr)
}

// sourceFiles returns all regular files under the source directory,
// sorted by path. Symlinks to regular files are included; symlinked
// directories are not descended into.
func (s *Splitter) sourceFiles() ([]string, error) {
	var files []string
	err := filepath.WalkDir(
		s.src, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			switch {
			case d.Type().IsRegular():
				files = append(files, path)
			case d.Type()&fs.ModeSymlink != 0:
				// dangling links are ignored
				if info, err := os.Stat(path); err == nil && info.Mode().IsRegular() {
					files = append(files, path)
				}
			}
			return nil
		},
	)
	slices.Sort(files)
	return files, err
}

func (r *run) processAll(ctx context.Context, files []string) error {
	runCtx, cancel := context.WithCancelCause(ctx)
	defer cancel(nil)

	if r.report(false) == Stop {
		return ErrStopped
	}

	g, gctx := errgroup.WithContext(runCtx)
	g.SetLimit(r.cfg.Workers)
	for _, path := range files {
		if gctx.Err() != nil {
			break
		}
		g.Go(
			func() error {
				if gctx.Err() != nil {
					return nil
				}
				if err := r.processFile(path); err != nil {
					return err
				}
				if r.report(true) == Stop {
					cancel(ErrStopped)
				}
				return nil
			},
		)
	}
	if err := g.Wait(); err != nil {
		return err
	}
	return context.Cause(runCtx)
}

// report calls OnProgress, after counting a finished file if fileDone
func (r *run) report(fileDone bool) ProgressAction {
	r.mu.Lock()
	defer r.mu.Unlock()
	if fileDone {
		r.progress.Value++
	}
	if r.OnProgress == nil {
		return Continue
	}
	return r.OnProgress(r.progress)
}

func (r *run) processFile(path string) error {
	rel, err := filepath.Rel(r.src, path)
	if err != nil {
		return err
	}
	rel = filepath.ToSlash(rel)

	doc, err := isasplit.ReadFile(path)
	if err != nil {
		var formatErr *isasplit.FormatError
		if errors.As(err, &formatErr) {
			r.log.Warn("skipping file", "file", rel, "reason", formatErr.Reason)
			r.errLog.Warn("skipping file", "file", rel, "error", formatErr)
			r.skip(SkippedFile{File: rel, Reason: formatErr.Reason})
			return nil
		}
		return err
	}

	envelopes := slices.Collect(doc.Envelopes())
	var unmatched int
	for _, e := range envelopes {
		if !e.HasClient || e.Client.ID == "" {
			unmatched++
			r.log.Debug(
				"envelope has no client",
				"file", rel,
				"index", e.Index,
				"transaction_set", e.TransactionSet,
			)
			continue
		}
		name := rel + "/" + strconv.Itoa(e.Index)
		if r.cfg.SingleEnvelopeEntry && len(envelopes) == 1 {
			name = rel
		}
		if err = r.archives.add(e.Client, name, e.Data()); err != nil {
			return err
		}
	}
	r.log.Debug("split file", "file", rel, "envelopes", len(envelopes), "unmatched", unmatched)

	r.mu.Lock()
	r.envelopes += len(envelopes)
	r.unmatched += unmatched
	r.mu.Unlock()
	return nil
}

func (r *run) skip(f SkippedFile) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.skipped = append(r.skipped, f)
}

func (r *run) manifest(started time.Time, archives []*clientArchive) *Manifest {
	r.mu.Lock()
	defer r.mu.Unlock()
	m := &Manifest{
		RunID:       uuid.NewString(),
		Source:      r.src,
		Destination: r.dst,
		Started:     formatTime(started),
		Finished:    formatTime(time.Now()),
		Files:       r.progress.Value,
		Envelopes:   r.envelopes,
		Unmatched:   r.unmatched,
		Skipped:     slices.Clone(r.skipped),
		Clients:     make([]ClientSummary, 0, len(archives)),
	}
	sortSkipped(m.Skipped)
	for _, a := range archives {
		m.Clients = append(
			m.Clients, ClientSummary{
				ID:        DecodeLatin1(a.client.ID),
				Name:      DecodeLatin1(a.client.Name),
				Archive:   filepath.Base(a.path),
				Envelopes: a.entries,
			},
		)
	}
	return m
}
