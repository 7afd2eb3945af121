// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/arc

package arc

import (
	"context"
	"errors"
)

// ProgressFunc receives one report per regular-file entry. A non-nil
// return cancels the running operation; the operation then returns an
// error matching ErrCancelled.
type ProgressFunc func(Progress) error

// ErrStop is a convenience value for ProgressFunc to request cancellation.
var ErrStop = errors.New("stop requested")

// progressCounter issues 1-based progress reports against a fixed total.
type progressCounter struct {
	ctx   context.Context
	fn    ProgressFunc
	total int
	index int
}

func newProgressCounter(ctx context.Context, fn ProgressFunc, total int) *progressCounter {
	return &progressCounter{ctx: ctx, fn: fn, total: total}
}

// step advances index and reports label. Context cancellation and
// callback errors are both reported as ErrCancelled.
func (p *progressCounter) step(label string) error {
	p.index++
	if err := checkContext(p.ctx, label); err != nil {
		return err
	}
	if p.fn == nil {
		return nil
	}

	if err := p.fn(Progress{Path: label, Index: p.index, Total: p.total}); err != nil {
		return cancelledError(label, err)
	}

	return nil
}

// checkContext converts ctx cancellation into ErrCancelled.
func checkContext(ctx context.Context, label string) error {
	if ctx == nil {
		return nil
	}
	if err := ctx.Err(); err != nil {
		return cancelledError(label, err)
	}

	return nil
}
