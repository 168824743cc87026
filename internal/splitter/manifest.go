package splitter

import (
	"os"
	"sort"
	"time"

	"github.com/goccy/go-yaml"
	"golang.org/x/text/encoding/charmap"
)

// Manifest summarizes a split run. It's written to the destination
// directory once all archives are closed.
type Manifest struct {
	RunID       string          `yaml:"run_id"`
	Source      string          `yaml:"source"`
	Destination string          `yaml:"destination"`
	Started     string          `yaml:"started"`
	Finished    string          `yaml:"finished"`
	Files       int             `yaml:"files"`
	Envelopes   int             `yaml:"envelopes"`
	Unmatched   int             `yaml:"unmatched"`
	Skipped     []SkippedFile   `yaml:"skipped"`
	Clients     []ClientSummary `yaml:"clients"`
}

// SkippedFile is a source file with an invalid ISA header
type SkippedFile struct {
	File   string `yaml:"file"`
	Reason string `yaml:"reason"`
}

type ClientSummary struct {
	ID        string `yaml:"id"`
	Name      string `yaml:"name"`
	Archive   string `yaml:"archive"`
	Envelopes int    `yaml:"envelopes"`
}

func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}

func (m *Manifest) write(path string) error {
	data, err := yaml.Marshal(m)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// ReadManifest loads a manifest written by Run
func ReadManifest(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	m := &Manifest{}
	if err = yaml.Unmarshal(data, m); err != nil {
		return nil, err
	}
	return m, nil
}

func sortArchives(archives []*clientArchive) {
	sort.Slice(
		archives, func(i, j int) bool {
			return archives[i].client.ID < archives[j].client.ID
		},
	)
}

func sortSkipped(skipped []SkippedFile) {
	sort.Slice(
		skipped, func(i, j int) bool {
			return skipped[i].File < skipped[j].File
		},
	)
}

// DecodeLatin1 converts text read from an X12 file, where every byte is
// one ISO-8859-1 character, to UTF-8 for display
func DecodeLatin1(s string) string {
	decoded, err := charmap.ISO8859_1.NewDecoder().String(s)
	if err != nil {
		return s
	}
	return decoded
}
