package cmd

import (
	"strconv"

	"github.com/spf13/pflag"
)

// optionalBool is a flag that distinguishes "not given" from false and
// takes its value as a separate argument (--primary true).
type optionalBool struct {
	value *bool
}

var _ pflag.Value = (*optionalBool)(nil)

func (b *optionalBool) String() string {
	if b.value == nil {
		return ""
	}
	return strconv.FormatBool(*b.value)
}

func (b *optionalBool) Set(s string) error {
	v, err := strconv.ParseBool(s)
	if err != nil {
		return err
	}
	b.value = &v
	return nil
}

func (b *optionalBool) Type() string {
	return "true|false"
}

// optionalString records whether a string flag was given at all.
type optionalString struct {
	value *string
}

var _ pflag.Value = (*optionalString)(nil)

func (s *optionalString) String() string {
	if s.value == nil {
		return ""
	}
	return *s.value
}

func (s *optionalString) Set(v string) error {
	s.value = &v
	return nil
}

func (s *optionalString) Type() string {
	return "string"
}
