// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package runrecord

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/hashicorp/go-getter/v2"
	"github.com/matt-FFFFFF/cukefmt/internal/ctxlog"
	"github.com/spf13/afero"
)

// ErrGetRecord is returned when a record cannot be fetched.
var ErrGetRecord = errors.New("failed to get run record")

const (
	goGetterPathSeparator = "//"
	goGetterRefSeparator  = "?"
	minimumGetterParts    = 3 // Minimum parts in a go-getter URL: scheme, host, and path
)

// Fetch downloads a record using Hashicorp's go-getter syntax, e.g. a local
// path, or git::https://host/repo//run.yaml?ref=main, and loads it with Load.
// The download lands in a temporary directory on the filesystem returned by
// FsFactory, which must therefore be backed by the OS filesystem.
func Fetch(ctx context.Context, url string) (*Record, error) {
	src, fileName, err := resolveSource(url)
	if err != nil {
		return nil, err
	}

	dir, cleanup, err := download(ctx, src)
	if err != nil {
		return nil, err
	}

	defer cleanup()

	return Load(ctx, filepath.Join(dir, fileName))
}

// resolveSource returns the go-getter source of the directory holding the
// record, and the record's file name within it. Remote sources are always
// fetched as a directory, see https://github.com/hashicorp/go-getter/issues/98.
func resolveSource(url string) (string, string, error) {
	if url == "" {
		return "", "", fmt.Errorf("%w: empty URL", ErrGetRecord)
	}

	wd, err := os.Getwd()
	if err != nil {
		return "", "", errors.Join(ErrGetRecord, err)
	}

	local, err := getter.Detect(&getter.Request{Src: url, Pwd: wd}, &getter.FileGetter{})
	if err != nil {
		return "", "", errors.Join(ErrGetRecord, err)
	}

	if local {
		return filepath.Dir(url), filepath.Base(url), nil
	}

	src, fileName := splitFileNameFromGetterURL(url)
	if src == "" || fileName == "" {
		return "", "", fmt.Errorf("%w: invalid URL format: %s", ErrGetRecord, url)
	}

	return src, fileName, nil
}

// download fetches the go-getter source src into a fresh temporary directory.
// The returned cleanup func removes that directory.
func download(ctx context.Context, src string) (string, func(), error) {
	fs := FsFactory()

	tmpDir, err := afero.TempDir(fs, "", "cukefmt-getter-*")
	if err != nil {
		return "", nil, errors.Join(ErrGetRecord, err)
	}

	cleanup := func() {
		if err := fs.RemoveAll(tmpDir); err != nil {
			ctxlog.Debug(ctx, "runrecord", "detail", "removing download directory", "dir", tmpDir, "error", err)
		}
	}

	wd, err := os.Getwd()
	if err != nil {
		cleanup()
		return "", nil, errors.Join(ErrGetRecord, err)
	}

	client := getter.Client{
		DisableSymlinks: true,
	}

	ctxlog.Debug(ctx, "runrecord", "detail", "fetching record", "src", src, "dir", tmpDir)

	res, err := client.Get(ctx, &getter.Request{
		Src:     src,
		Dst:     filepath.Join(tmpDir, "g"),
		Pwd:     wd,
		GetMode: getter.ModeDir,
	})
	if err != nil {
		cleanup()
		return "", nil, errors.Join(ErrGetRecord, err)
	}

	return res.Dst, cleanup, nil
}

// splitFileNameFromGetterURL splits a go-getter URL into the directory URL
// and the file name, keeping any ref query on the directory URL.
func splitFileNameFromGetterURL(url string) (string, string) {
	var ref string

	parts := strings.Split(url, goGetterPathSeparator)
	if len(parts) < minimumGetterParts {
		return "", ""
	}

	last := parts[len(parts)-1]
	if path, query, ok := strings.Cut(last, goGetterRefSeparator); ok {
		ref = query
		last = path
	}

	if filepath.Clean(last) == filepath.Dir(last) {
		return "", ""
	}

	fileName := filepath.Base(last)
	parts[len(parts)-1] = filepath.Dir(last)

	if parts[len(parts)-1] == "." {
		parts = parts[:len(parts)-1]
	}

	newURL := strings.Join(parts, goGetterPathSeparator)

	if ref != "" {
		newURL += goGetterRefSeparator + ref
	}

	return newURL, fileName
}
