// Package tui runs a panel in the terminal: a menu lists every binding with its
// current value, selecting one prompts for new raw input, and each commit goes
// through the form's binder before the refreshed request target is printed.
package tui

import (
	"context"
	"errors"
	"fmt"

	"github.com/goliatone/go-paramform/pkg/binding"
	"github.com/goliatone/go-paramform/pkg/query"
	"github.com/goliatone/go-paramform/pkg/schema"
)

// Form is the part of a panel form the session drives.
type Form interface {
	Bindings() []binding.Binding
	Commit(name string, raw any) binding.Outcome
	Target() string
}

// Session is an interactive edit loop over a Form.
type Session struct {
	driver    PromptDriver
	theme     Theme
	doneLabel string
}

// New constructs a session with the survey driver unless overridden.
func New(options ...Option) *Session {
	s := &Session{
		driver:    NewSurveyDriver(),
		doneLabel: "Done",
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(s)
	}
	return s
}

// Name reports the renderer identifier.
func (s *Session) Name() string {
	return "tui"
}

// Run loops until the user picks the done entry and returns the final target.
func (s *Session) Run(ctx context.Context, form Form) (string, error) {
	if ctx == nil {
		return "", errors.New("tui: context is required")
	}
	if form == nil {
		return "", errors.New("tui: form is nil")
	}

	if err := s.driver.Info(ctx, s.theme.InfoPrefix+form.Target()); err != nil {
		return "", err
	}

	selected := 0
	for {
		if err := ctx.Err(); err != nil {
			return "", err
		}

		bindings := form.Bindings()
		if len(bindings) == 0 {
			return "", ErrNoParameters
		}
		options := make([]string, 0, len(bindings)+1)
		for _, b := range bindings {
			options = append(options, menuEntry(b))
		}
		options = append(options, s.doneLabel)

		idx, err := s.driver.Select(ctx, SelectConfig{
			Message:      "Parameter",
			Options:      options,
			DefaultIndex: selected,
		})
		if err != nil {
			return "", err
		}
		if idx == len(bindings) {
			return form.Target(), nil
		}
		if idx < 0 || idx > len(bindings) {
			_ = s.driver.Info(ctx, fmt.Sprintf("%sInvalid selection", s.theme.ErrorPrefix))
			continue
		}
		selected = idx

		b := bindings[idx]
		raw, err := s.promptValue(ctx, b)
		if err != nil {
			return "", err
		}

		if form.Commit(b.Name, raw) == binding.Rejected {
			_ = s.driver.Info(ctx, fmt.Sprintf("%sIgnored %s: %q is not a number", s.theme.ErrorPrefix, b.Label, raw))
			continue
		}
		if err := s.driver.Info(ctx, s.theme.InfoPrefix+form.Target()); err != nil {
			return "", err
		}
	}
}

func (s *Session) promptValue(ctx context.Context, b binding.Binding) (any, error) {
	if b.Type == schema.ValueTypeCheckbox {
		current, _ := b.Value.(bool)
		return s.driver.Confirm(ctx, ConfirmConfig{
			Message: b.Label,
			Default: current,
		})
	}
	return s.driver.Input(ctx, InputConfig{
		Message: b.Label,
		Default: query.FormatValue(b.Value),
		Help:    helpFor(b),
	})
}

func menuEntry(b binding.Binding) string {
	return fmt.Sprintf("%s: %s", b.Label, query.FormatValue(b.Value))
}

func helpFor(b binding.Binding) string {
	switch b.Type {
	case schema.ValueTypeRange:
		if b.Min != nil && b.Max != nil {
			return fmt.Sprintf("Number between %s and %s", query.FormatValue(*b.Min), query.FormatValue(*b.Max))
		}
		return "Number"
	case schema.ValueTypeNumber:
		return "Number"
	default:
		return ""
	}
}
