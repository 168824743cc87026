package cli

import (
	"errors"

	"github.com/arcward/isasplit"
	"github.com/arcward/isasplit/internal/splitter"
	"github.com/goccy/go-yaml"
	"github.com/spf13/cobra"
)

type inspectedFile struct {
	File       string              `yaml:"file"`
	Error      string              `yaml:"error,omitempty"`
	Delimiters *inspectedDelims    `yaml:"delimiters,omitempty"`
	Envelopes  []inspectedEnvelope `yaml:"envelopes,omitempty"`
}

type inspectedDelims struct {
	SegmentTerminator  string `yaml:"segment_terminator"`
	ElementSeparator   string `yaml:"element_separator"`
	ComponentSeparator string `yaml:"component_separator"`
}

type inspectedEnvelope struct {
	Index          int                     `yaml:"index"`
	TransactionSet isasplit.TransactionSet `yaml:"transaction_set"`
	Length         int                     `yaml:"length"`
	Client         *isasplit.Client        `yaml:"client,omitempty"`
}

func newInspectCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "inspect <file>...",
		Short: "Show the envelopes and clients found in X12 files",
		Args:  cobra.MinimumNArgs(1),
		RunE:  runInspect,
	}
}

func runInspect(cmd *cobra.Command, args []string) error {
	results := make([]inspectedFile, 0, len(args))
	for _, path := range args {
		result, err := inspectFile(path)
		if err != nil {
			return err
		}
		results = append(results, result)
	}
	data, err := yaml.Marshal(results)
	if err != nil {
		return err
	}
	_, err = cmd.OutOrStdout().Write(data)
	return err
}

// inspectFile parses path. Invalid ISA headers are reported in the result,
// other errors are returned.
func inspectFile(path string) (inspectedFile, error) {
	result := inspectedFile{File: path}
	doc, err := isasplit.ReadFile(path)
	if err != nil {
		var formatErr *isasplit.FormatError
		if errors.As(err, &formatErr) {
			result.Error = formatErr.Reason
			return result, nil
		}
		return result, err
	}

	d := doc.Delimiters
	result.Delimiters = &inspectedDelims{
		SegmentTerminator:  splitter.DecodeLatin1(string([]byte{d.SegmentTerminator})),
		ElementSeparator:   splitter.DecodeLatin1(string([]byte{d.ElementSeparator})),
		ComponentSeparator: splitter.DecodeLatin1(string([]byte{d.ComponentSeparator})),
	}
	for e := range doc.Envelopes() {
		ie := inspectedEnvelope{
			Index:          e.Index,
			TransactionSet: e.TransactionSet,
			Length:         len(e.Data()),
		}
		if e.HasClient {
			ie.Client = &isasplit.Client{
				ID:   splitter.DecodeLatin1(e.Client.ID),
				Name: splitter.DecodeLatin1(e.Client.Name),
			}
		}
		result.Envelopes = append(result.Envelopes, ie)
	}
	return result, nil
}
