// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package runrecord

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/goccy/go-yaml"
	"github.com/matt-FFFFFF/cukefmt/internal/ctxlog"
	"github.com/matt-FFFFFF/cukefmt/internal/stepresult"
	"github.com/spf13/afero"
)

var (
	// ErrInvalidRecord is returned when a record cannot be parsed or validated.
	ErrInvalidRecord = errors.New("invalid run record")
	// ErrReadRecord is returned when a record file cannot be read.
	ErrReadRecord = errors.New("failed to read run record")
)

// Record is a recorded run.
type Record struct {
	Name     string     `yaml:"name"`
	Features []*Feature `yaml:"features"`
}

// Feature is a recorded feature.
type Feature struct {
	Name       string      `yaml:"name"`
	Background *Scenario   `yaml:"background,omitempty"`
	Scenarios  []*Scenario `yaml:"scenarios"`
}

// Scenario is a recorded scenario, or the background of a feature.
type Scenario struct {
	Name  string  `yaml:"name"`
	Steps []*Step `yaml:"steps"`
}

// Step is a recorded step and its outcome.
type Step struct {
	Keyword  string `yaml:"keyword"`
	Name     string `yaml:"name"`
	Status   string `yaml:"status"`
	Error    string `yaml:"error,omitempty"`
	Duration string `yaml:"duration,omitempty"`
}

// String returns the keyword and step text.
func (s *Step) String() string {
	if s.Keyword == "" {
		return s.Name
	}

	return s.Keyword + " " + s.Name
}

// Result converts the recorded outcome into a step result.
func (s *Step) Result() (*stepresult.Result, error) {
	status, err := stepresult.ParseStatus(s.Status)
	if err != nil {
		return nil, fmt.Errorf("%w: step %q: %w", ErrInvalidRecord, s.String(), err)
	}

	r := &stepresult.Result{
		Status:  status,
		Keyword: s.Keyword,
		Step:    s.Name,
	}

	if s.Duration != "" {
		d, err := time.ParseDuration(s.Duration)
		if err != nil {
			return nil, fmt.Errorf("%w: step %q: duration: %w", ErrInvalidRecord, s.String(), err)
		}

		r.Duration = d
	}

	if status == stepresult.StatusFailed && s.Error != "" {
		r.Err = errors.New(s.Error)
	}

	return r, nil
}

// Parse decodes and validates a YAML record.
func Parse(data []byte) (*Record, error) {
	var rec Record
	if err := yaml.Unmarshal(data, &rec); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidRecord, err)
	}

	if err := rec.Validate(); err != nil {
		return nil, err
	}

	return &rec, nil
}

// Validate checks every step of the record has a known status and duration.
func (r *Record) Validate() error {
	for _, f := range r.Features {
		if f == nil {
			return fmt.Errorf("%w: empty feature", ErrInvalidRecord)
		}

		scenarios := f.Scenarios
		if f.Background != nil {
			scenarios = append([]*Scenario{f.Background}, scenarios...)
		}

		for _, sc := range scenarios {
			if sc == nil {
				return fmt.Errorf("%w: empty scenario in feature %q", ErrInvalidRecord, f.Name)
			}

			for _, st := range sc.Steps {
				if st == nil {
					return fmt.Errorf("%w: empty step in scenario %q", ErrInvalidRecord, sc.Name)
				}

				if _, err := st.Result(); err != nil {
					return err
				}
			}
		}
	}

	return nil
}

// Load reads and parses the record at path from the filesystem returned by FsFactory.
func Load(ctx context.Context, path string) (*Record, error) {
	ctxlog.Debug(ctx, "runrecord", "detail", "loading record", "path", path)

	data, err := afero.ReadFile(FsFactory(), path)
	if err != nil {
		return nil, errors.Join(ErrReadRecord, err)
	}

	return Parse(data)
}
