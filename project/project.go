// Package project reads dependency metadata from pyproject.toml files.
package project

import (
	"errors"
	"fmt"
	"slices"

	toml "github.com/pelletier/go-toml/v2"

	"github.com/huti-dev/huti/pathutil"
)

// FileName is the project metadata file this package reads.
const FileName = "pyproject.toml"

// ErrNoProject is returned when no pyproject.toml exists at or above the
// start directory.
var ErrNoProject = errors.New("pyproject.toml not found")

// PyProject holds the [project] table fields this package cares about.
type PyProject struct {
	// File is the path the metadata was read from.
	File pathutil.Path
	// Name is the distribution name.
	Name string
	// Version is the declared version, empty when dynamic.
	Version string
	// Requires are the base requirement strings.
	Requires []string
	// Optional maps extra group names to their requirement strings.
	Optional map[string][]string
}

type document struct {
	Project struct {
		Name                 string              `toml:"name"`
		Version              string              `toml:"version"`
		Dependencies         []string            `toml:"dependencies"`
		OptionalDependencies map[string][]string `toml:"optional-dependencies"`
	} `toml:"project"`
}

// Load parses the pyproject.toml at file.
func Load(file pathutil.Path) (*PyProject, error) {
	text, err := file.ReadText()
	if err != nil {
		return nil, err
	}
	var doc document
	if err := toml.Unmarshal([]byte(text), &doc); err != nil {
		return nil, fmt.Errorf("parse %s: %w", file, err)
	}
	return &PyProject{
		File:     file,
		Name:     doc.Project.Name,
		Version:  doc.Project.Version,
		Requires: doc.Project.Dependencies,
		Optional: doc.Project.OptionalDependencies,
	}, nil
}

// Find walks up from start looking for a pyproject.toml and parses the
// first one found.
func Find(start pathutil.Path) (*PyProject, error) {
	file, ok := start.FindUp(FileName, false, false)
	if !ok {
		return nil, fmt.Errorf("%w: searched from %s", ErrNoProject, start)
	}
	return Load(file)
}

// Dependencies maps "dependencies" to the base requirements plus one entry
// per optional-dependencies group.
func (p *PyProject) Dependencies() map[string][]string {
	out := map[string][]string{"dependencies": p.Requires}
	for group, reqs := range p.Optional {
		out[group] = reqs
	}
	return out
}

// Requirements returns the union of base and optional requirement strings,
// sorted and without duplicates.
func (p *PyProject) Requirements() []string {
	all := slices.Clone(p.Requires)
	for _, reqs := range p.Optional {
		all = append(all, reqs...)
	}
	slices.Sort(all)
	return slices.Compact(all)
}
