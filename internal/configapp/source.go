package configapp

import (
	"os"
	"strings"
)

// EmailSection is the section name the email settings live under.
const EmailSection = "EmailSettings"

const sectionSeparator = ":"

// Source looks up raw configuration values by key.
// An empty value is treated the same as a missing one by Validate.
type Source interface {
	Lookup(key string) (string, bool)
}

// MapSource is a Source backed by a plain map.
type MapSource map[string]string

func (m MapSource) Lookup(key string) (string, bool) {
	v, ok := m[key]
	return v, ok
}

type section struct {
	src    Source
	prefix string
}

// Section addresses keys of src under "name:" so that Lookup("host") reads
// "name:host".
//
//nolint:ireturn // callers only need the lookup behaviour
func Section(src Source, name string) Source {
	return section{src: src, prefix: name + sectionSeparator}
}

func (s section) Lookup(key string) (string, bool) {
	return s.src.Lookup(s.prefix + key)
}

// EnvSource reads keys from the process environment. "EmailSettings:host"
// becomes EMAILSETTINGS_HOST.
type EnvSource struct {
	// Getenv defaults to os.LookupEnv.
	Getenv func(string) (string, bool)
}

func (e EnvSource) Lookup(key string) (string, bool) {
	lookup := e.Getenv
	if lookup == nil {
		lookup = os.LookupEnv
	}
	return lookup(EnvKey(key))
}

// EnvKey converts a configuration key into its environment variable name.
func EnvKey(key string) string {
	return strings.ToUpper(strings.ReplaceAll(key, sectionSeparator, "_"))
}

type chain []Source

// Chain returns a Source that asks each source in order and returns the
// first non-empty value.
//
//nolint:ireturn // callers only need the lookup behaviour
func Chain(sources ...Source) Source {
	return chain(sources)
}

func (c chain) Lookup(key string) (string, bool) {
	found := false
	for _, s := range c {
		v, ok := s.Lookup(key)
		if ok && v != "" {
			return v, true
		}
		found = found || ok
	}
	return "", found
}
