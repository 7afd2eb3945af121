// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/arc

//go:build !linux

package arc

import "errors"

func setXattr(string, string, []byte) error {
	return errors.ErrUnsupported
}

func readXattrs(string) (map[string]string, error) {
	return nil, nil
}
