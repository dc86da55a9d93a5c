// Package specfile decodes authored conversation documents into the
// in-memory spec model. Decoding is deliberately tolerant: structural
// soundness is the compiler's job, so a document with duplicate or
// dangling identifiers still decodes.
package specfile

import (
	"fmt"
	"os"
	"sort"

	"gopkg.in/yaml.v3"

	"tebogen/flow"
	"tebogen/validate"
)

// Document is the YAML shape of a conversation spec.
type Document struct {
	Name       string                         `yaml:"name"`
	Entry      flow.StepID                    `yaml:"entry"`
	Validators map[string]validate.Definition `yaml:"validators"`
	Groups     []flow.Group                   `yaml:"groups"`
	Steps      []flow.Step                    `yaml:"steps"`
}

// Load reads and decodes a spec document from disk.
func Load(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading spec document: %w", err)
	}
	return Parse(data)
}

// Parse decodes a spec document from raw YAML.
func Parse(data []byte) (*Document, error) {
	var doc Document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decoding spec document: %w", err)
	}
	return &doc, nil
}

// Spec converts the document into the spec model.
func (d *Document) Spec() *flow.Spec {
	return flow.NewSpec(d.Name, d.Entry, d.Groups, d.Steps)
}

// RegisterValidators adds the document's declared validators to the
// registry, in name order so repeated loads behave identically.
func (d *Document) RegisterValidators(reg *validate.Registry) error {
	names := make([]string, 0, len(d.Validators))
	for name := range d.Validators {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		if err := reg.RegisterDefinition(name, d.Validators[name]); err != nil {
			return err
		}
	}
	return nil
}
