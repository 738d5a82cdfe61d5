package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/pflag"
)

// enumValue is a pflag.Value restricted to a fixed set of choices, matched
// case-insensitively and stored in canonical form.
type enumValue struct {
	value   string
	choices []string
}

var _ pflag.Value = (*enumValue)(nil)

func newEnumValue(def string, choices ...string) *enumValue {
	return &enumValue{value: def, choices: choices}
}

func (e *enumValue) String() string { return e.value }

func (e *enumValue) Set(s string) error {
	for _, c := range e.choices {
		if strings.EqualFold(s, c) {
			e.value = c
			return nil
		}
	}
	return fmt.Errorf("must be one of %s", strings.Join(e.choices, "|"))
}

func (e *enumValue) Type() string { return strings.Join(e.choices, "|") }
