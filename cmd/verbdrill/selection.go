package main

import (
	"fmt"

	"github.com/spf13/pflag"

	"github.com/at-ishikawa/verbdrill/internal/scheduler"
)

// SelectionFlag overrides drill.selection from the command line.
type SelectionFlag string

// Set implements pflag.Value.
func (s *SelectionFlag) Set(v string) error {
	switch scheduler.Policy(v) {
	case scheduler.PolicyUniform, scheduler.PolicyWeighted:
		*s = SelectionFlag(v)
	default:
		return fmt.Errorf("invalid value %q, valid values are %q or %q", v, scheduler.PolicyUniform, scheduler.PolicyWeighted)
	}
	return nil
}

// String implements pflag.Value.
func (s *SelectionFlag) String() string {
	if s == nil {
		return ""
	}
	return string(*s)
}

// Type implements pflag.Value.
func (s *SelectionFlag) Type() string {
	return "SelectionFlag"
}

var (
	_ pflag.Value = (*SelectionFlag)(nil)
)
