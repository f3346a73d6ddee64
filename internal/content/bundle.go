// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package content loads assessment content bundles and serves them as an
// immutable Snapshot: domains, axes, items, the meta-dimension table, the
// archetype catalog and candidate/measure position vectors.
//
// A bundle is a directory of YAML files:
//
//	bundle.yaml          manifest (id, name, version, optional shrinkage_k)
//	domains.yaml         []types.Domain
//	axes.yaml            []types.Axis
//	items.yaml           []types.AssessmentItem
//	metadimensions.yaml  []types.MetaDimension   (optional)
//	archetypes.yaml      []types.Archetype       (optional)
//	entities.yaml        []types.PositionVector  (optional)
//
// Content defects are reported when the bundle is loaded, never while scoring.
package content

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/ballot-builder/pkg/types"
)

// File names inside a bundle directory.
const (
	manifestFile       = "bundle.yaml"
	domainsFile        = "domains.yaml"
	axesFile           = "axes.yaml"
	itemsFile          = "items.yaml"
	metaDimensionsFile = "metadimensions.yaml"
	archetypesFile     = "archetypes.yaml"
	entitiesFile       = "entities.yaml"
)

// Manifest describes a bundle.
type Manifest struct {
	ID      string `json:"id" yaml:"id"`
	Name    string `json:"name" yaml:"name"`
	Version string `json:"version" yaml:"version"`

	// ShrinkageK overrides the configured scoring prior for this bundle when > 0.
	ShrinkageK float64 `json:"shrinkage_k,omitempty" yaml:"shrinkage_k,omitempty"`
}

// Bundle is the raw, unvalidated content of a bundle.
type Bundle struct {
	Manifest       Manifest
	Domains        []types.Domain
	Axes           []types.Axis
	Items          []types.AssessmentItem
	MetaDimensions []types.MetaDimension
	Archetypes     []types.Archetype
	Entities       []types.PositionVector
}

// Load reads the bundle in dir and returns a validated Snapshot.
func Load(dir string) (*Snapshot, error) {
	b, err := ReadBundle(dir)
	if err != nil {
		return nil, err
	}
	snap, err := New(b)
	if err != nil {
		return nil, fmt.Errorf("loading bundle %s: %w", dir, err)
	}
	return snap, nil
}

// ReadBundle parses the YAML files in dir without validating them.
func ReadBundle(dir string) (Bundle, error) {
	var b Bundle

	required := []struct {
		name string
		dst  any
	}{
		{manifestFile, &b.Manifest},
		{domainsFile, &b.Domains},
		{axesFile, &b.Axes},
		{itemsFile, &b.Items},
	}
	for _, f := range required {
		if err := readYAML(filepath.Join(dir, f.name), f.dst); err != nil {
			return Bundle{}, err
		}
	}

	optional := []struct {
		name string
		dst  any
	}{
		{metaDimensionsFile, &b.MetaDimensions},
		{archetypesFile, &b.Archetypes},
		{entitiesFile, &b.Entities},
	}
	for _, f := range optional {
		err := readYAML(filepath.Join(dir, f.name), f.dst)
		if err != nil && !errors.Is(err, os.ErrNotExist) {
			return Bundle{}, err
		}
	}

	return b, nil
}

func readYAML(path string, dst any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, dst); err != nil {
		return fmt.Errorf("parsing %s: %w", path, err)
	}
	return nil
}
