package splitter

import (
	"archive/zip"
	"compress/flate"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/arcward/isasplit"
)

// clientArchive is the zip file holding every envelope of one client
type clientArchive struct {
	mu      sync.Mutex
	client  isasplit.Client
	path    string
	file    *os.File
	zw      *zip.Writer
	entries int
}

func (a *clientArchive) add(name string, data string) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	w, err := a.zw.CreateHeader(&zip.FileHeader{Name: name, Method: zip.Deflate})
	if err != nil {
		return fmt.Errorf("%s: %w", a.path, err)
	}
	if _, err = io.WriteString(w, data); err != nil {
		return fmt.Errorf("%s: %s: %w", a.path, name, err)
	}
	a.entries++
	return nil
}

func (a *clientArchive) close() error {
	a.mu.Lock()
	defer a.mu.Unlock()
	return errors.Join(a.zw.Close(), a.file.Close())
}

// archiveRegistry creates one clientArchive per client ID, on first use
type archiveRegistry struct {
	mu       sync.Mutex
	dir      string
	level    int
	archives map[string]*clientArchive
	// names maps each archive file name in use to its client ID
	names map[string]string
}

func newArchiveRegistry(dir string, level int) *archiveRegistry {
	return &archiveRegistry{
		dir:      dir,
		level:    level,
		archives: make(map[string]*clientArchive),
		names:    make(map[string]string),
	}
}

// fileName returns an unused archive name for id. An ID whose sanitized
// name already belongs to another client gets a suffix derived from a
// hash of the raw ID.
func (r *archiveRegistry) fileName(id string) string {
	name := archiveName(id)
	if _, taken := r.names[name]; !taken {
		return name
	}
	sum := sha256.Sum256([]byte(id))
	base := strings.TrimSuffix(name, ".zip") + "-" + hex.EncodeToString(sum[:4])
	name = base + ".zip"
	for i := 2; ; i++ {
		if _, taken := r.names[name]; !taken {
			return name
		}
		name = fmt.Sprintf("%s-%d.zip", base, i)
	}
}

// get returns the archive for the client, creating it if needed. Creation
// is serialized, so concurrent callers for the same client always
// share one archive.
func (r *archiveRegistry) get(client isasplit.Client) (*clientArchive, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if a, ok := r.archives[client.ID]; ok {
		return a, nil
	}

	name := r.fileName(client.ID)
	path := filepath.Join(r.dir, name)
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return nil, err
	}
	zw := zip.NewWriter(f)
	level := r.level
	zw.RegisterCompressor(
		zip.Deflate, func(out io.Writer) (io.WriteCloser, error) {
			return flate.NewWriter(out, level)
		},
	)
	a := &clientArchive{client: client, path: path, file: f, zw: zw}
	r.archives[client.ID] = a
	r.names[name] = client.ID
	return a, nil
}

func (r *archiveRegistry) add(client isasplit.Client, name string, data string) error {
	a, err := r.get(client)
	if err != nil {
		return err
	}
	return a.add(name, data)
}

// closeAll closes every archive, returning the sorted list of archives
func (r *archiveRegistry) closeAll() ([]*clientArchive, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var errs []error
	archives := make([]*clientArchive, 0, len(r.archives))
	for _, a := range r.archives {
		errs = append(errs, a.close())
		archives = append(archives, a)
	}
	sortArchives(archives)
	return archives, errors.Join(errs...)
}

// archiveName returns the file name of a client's archive. IDs come from
// the source files, so anything that could escape the destination
// directory, or that Windows rejects in a file name, is replaced.
func archiveName(id string) string {
	name := strings.Map(
		func(r rune) rune {
			switch {
			case r < 0x20, strings.ContainsRune(`/\:*?"<>|`, r):
				return '_'
			}
			return r
		}, id,
	)
	if name == "." || name == ".." {
		name = strings.Repeat("_", len(name))
	}
	return name + ".zip"
}
