// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/arc

package arc

import (
	"log/slog"
	"slices"

	"github.com/google/uuid"
	"github.com/woozymasta/pathrules"
)

// Option configures Builder, Extractor and Session.
type Option func(*config)

// config is shared operation configuration.
type config struct {
	logger       *slog.Logger
	excludeRules []pathrules.Rule
	excludeOpts  pathrules.MatcherOptions
}

// WithLogger sets logger for operation events. Nil keeps logging disabled.
func WithLogger(logger *slog.Logger) Option {
	return func(c *config) {
		c.logger = logger
	}
}

// WithExclude sets path rules for entries left out of Create and Extract.
// Patterns match archive-relative slash paths. Zero DefaultAction means include.
func WithExclude(rules []pathrules.Rule, opts pathrules.MatcherOptions) Option {
	return func(c *config) {
		c.excludeRules = slices.Clone(rules)
		c.excludeOpts = opts
	}
}

func newConfig(opts []Option) config {
	var c config
	for _, opt := range opts {
		if opt != nil {
			opt(&c)
		}
	}

	return c
}

// log returns the logger, falling back to a discard logger if nil.
func (c *config) log() *slog.Logger {
	if c.logger == nil {
		return slog.New(slog.DiscardHandler)
	}

	return c.logger
}

// excludeMatcher compiles configured exclude rules.
func (c *config) excludeMatcher() (*excludeMatcher, error) {
	return newExcludeMatcher(c.excludeRules, c.excludeOpts)
}

// operationLogger returns logger scoped to one operation with unique op_id.
func (c *config) operationLogger(op, archive string) *slog.Logger {
	return c.log().With(
		slog.String("op", op),
		slog.String("op_id", uuid.NewString()),
		slog.String("archive", archive),
	)
}
