// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/arc

//go:build linux

package arc

import (
	"bytes"
	"errors"

	"golang.org/x/sys/unix"
)

// setXattr sets extended attribute on path without following symlinks.
func setXattr(path, name string, value []byte) error {
	return unix.Lsetxattr(path, name, value, 0)
}

// readXattrs returns extended attributes of path without following symlinks.
// Filesystems without xattr support yield nil.
func readXattrs(path string) (map[string]string, error) {
	size, err := unix.Llistxattr(path, nil)
	if errors.Is(err, unix.ENOTSUP) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if size == 0 {
		return nil, nil
	}

	list := make([]byte, size)
	n, err := unix.Llistxattr(path, list)
	if err != nil {
		return nil, err
	}

	var out map[string]string
	for _, raw := range bytes.Split(list[:n], []byte{0}) {
		if len(raw) == 0 {
			continue
		}

		name := string(raw)
		value, err := readXattr(path, name)
		if err != nil {
			return nil, err
		}
		if out == nil {
			out = make(map[string]string)
		}
		out[name] = string(value)
	}

	return out, nil
}

// readXattr reads one attribute value.
func readXattr(path, name string) ([]byte, error) {
	size, err := unix.Lgetxattr(path, name, nil)
	if err != nil {
		return nil, err
	}

	value := make([]byte, size)
	n, err := unix.Lgetxattr(path, name, value)
	if err != nil {
		return nil, err
	}

	return value[:n], nil
}
