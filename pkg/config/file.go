// SPDX-FileCopyrightText: 2025 Deutsche Telekom IT GmbH
//
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/telekom/kestrel/internal/logger"
	"gopkg.in/yaml.v3"
)

// TargetsFile is the document read from [Config.TargetsFile].
//
//	targets:
//	  - example.com
//	  - 192.0.2.1
type TargetsFile struct {
	Targets []string `yaml:"targets"`
}

// FileLoader reads targets from a local YAML file.
type FileLoader struct {
	path string
	fsys fs.FS
}

func NewFileLoader(path string) *FileLoader {
	return &FileLoader{
		path: path,
		fsys: os.DirFS(filepath.Dir(path)),
	}
}

// Load returns the targets listed in the file.
// An empty list is an error since nothing could be probed.
func (f *FileLoader) Load(ctx context.Context) (targets []string, err error) {
	log := logger.FromContext(ctx).With("path", f.path)

	file, err := f.fsys.Open(filepath.Base(f.path))
	if err != nil {
		log.ErrorContext(ctx, "Failed to open targets file", "error", err)
		return nil, fmt.Errorf("%w: failed to open: %w", ErrInvalidTargetsFile, err)
	}
	defer func() {
		cerr := file.Close()
		if cerr != nil {
			log.ErrorContext(ctx, "Failed to close targets file", "error", cerr)
		}
		err = errors.Join(cerr, err)
	}()

	b, err := io.ReadAll(file)
	if err != nil {
		log.ErrorContext(ctx, "Failed to read targets file", "error", err)
		return nil, fmt.Errorf("%w: failed to read: %w", ErrInvalidTargetsFile, err)
	}

	var doc TargetsFile
	if err := yaml.Unmarshal(b, &doc); err != nil {
		log.ErrorContext(ctx, "Failed to parse targets file", "error", err)
		return nil, fmt.Errorf("%w: failed to parse: %w", ErrInvalidTargetsFile, err)
	}
	if len(doc.Targets) == 0 {
		return nil, fmt.Errorf("%w: no targets listed in %s", ErrInvalidTargetsFile, f.path)
	}

	log.DebugContext(ctx, "Loaded targets", "count", len(doc.Targets))
	return doc.Targets, nil
}
