// Package config loads marker configuration from YAML or JSON files and
// from front matter maps, and turns it into marker.Options.
package config

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/dlclark/regexp2"
	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"

	"github.com/aretw0/flexmark/pkg/marker"
)

// ColorPlaceholder is replaced by the resolved colour in templates.
const ColorPlaceholder = "{color}"

// File is the on-disk configuration. Zero fields keep the defaults.
type File struct {
	// Dictionary entries override the default dictionary letter by letter.
	Dictionary map[string]string `yaml:"dictionary" json:"dictionary" mapstructure:"dictionary"`
	// TagName is the element name of mark nodes; may contain {color}.
	TagName string `yaml:"tag_name" json:"tag_name" mapstructure:"tag_name"`
	// DefaultColor stands in for {color} when no colour resolved.
	DefaultColor string `yaml:"default_color" json:"default_color" mapstructure:"default_color"`
	// ClassName is the base of the derived class list.
	ClassName string `yaml:"class_name" json:"class_name" mapstructure:"class_name"`
	// ClassNames replaces the derived class list; entries may contain {color}.
	ClassNames []string `yaml:"class_names" json:"class_names" mapstructure:"class_names"`
	// Properties are extra attributes; values may contain {color}.
	Properties    map[string]string `yaml:"properties" json:"properties" mapstructure:"properties"`
	EscapePattern string            `yaml:"escape_pattern" json:"escape_pattern" mapstructure:"escape_pattern"`
	Empty         string            `yaml:"empty" json:"empty" mapstructure:"empty"`
}

// Load reads a configuration file. The format is chosen by extension:
// .json is JSON, anything else YAML. An empty path yields an empty File.
func Load(path string) (*File, error) {
	if path == "" {
		return &File{}, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	var f File
	if strings.ToLower(filepath.Ext(path)) == ".json" {
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&f); err != nil && !errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("failed to parse %s: %w", filepath.Base(path), err)
		}
	} else {
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&f); err != nil && !errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("failed to parse %s: %w", filepath.Base(path), err)
		}
	}

	if err := f.Validate(); err != nil {
		return nil, err
	}
	return &f, nil
}

// Decode builds a File from a generic map, e.g. a document's front matter.
// Unknown keys are an error.
func Decode(m map[string]any) (*File, error) {
	var f File
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:      &f,
		ErrorUnused: true,
		TagName:     "mapstructure",
	})
	if err != nil {
		return nil, err
	}
	if err := dec.Decode(m); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	if err := f.Validate(); err != nil {
		return nil, err
	}
	return &f, nil
}

// Merge returns f with every non-zero field of o applied on top.
// Dictionary and Properties are merged key by key.
func (f *File) Merge(o *File) *File {
	out := f.clone()
	if o == nil {
		return out
	}

	for k, v := range o.Dictionary {
		if out.Dictionary == nil {
			out.Dictionary = make(map[string]string)
		}
		out.Dictionary[k] = v
	}
	for k, v := range o.Properties {
		if out.Properties == nil {
			out.Properties = make(map[string]string)
		}
		out.Properties[k] = v
	}
	if o.TagName != "" {
		out.TagName = o.TagName
	}
	if o.DefaultColor != "" {
		out.DefaultColor = o.DefaultColor
	}
	if o.ClassName != "" {
		out.ClassName = o.ClassName
		out.ClassNames = nil
	}
	if len(o.ClassNames) > 0 {
		out.ClassNames = append([]string(nil), o.ClassNames...)
		out.ClassName = ""
	}
	if o.EscapePattern != "" {
		out.EscapePattern = o.EscapePattern
	}
	if o.Empty != "" {
		out.Empty = o.Empty
	}
	return out
}

func (f *File) clone() *File {
	if f == nil {
		return &File{}
	}
	out := *f
	if f.Dictionary != nil {
		out.Dictionary = make(map[string]string, len(f.Dictionary))
		for k, v := range f.Dictionary {
			out.Dictionary[k] = v
		}
	}
	if f.Properties != nil {
		out.Properties = make(map[string]string, len(f.Properties))
		for k, v := range f.Properties {
			out.Properties[k] = v
		}
	}
	out.ClassNames = append([]string(nil), f.ClassNames...)
	return &out
}

// Validate checks every field and reports all failures at once.
func (f *File) Validate() error {
	var errs []error

	if err := marker.Dictionary(f.Dictionary).Validate(); err != nil {
		errs = append(errs, &ValidationError{Key: "dictionary", Reason: err.Error()})
	}
	if strings.ContainsAny(f.TagName, " \t\n<>\"'/=") {
		errs = append(errs, &ValidationError{Key: "tag_name", Reason: "not a valid element name", Value: f.TagName})
	}
	if f.ClassName != "" && len(f.ClassNames) > 0 {
		errs = append(errs, &ValidationError{Key: "class_names", Reason: "cannot be combined with class_name"})
	}
	if _, err := marker.ParseEmptyAction(f.Empty); err != nil {
		errs = append(errs, &ValidationError{Key: "empty", Reason: "must be keep, remove or mark", Value: f.Empty})
	}
	if f.EscapePattern != "" {
		if _, err := regexp2.Compile(f.EscapePattern, regexp2.IgnoreCase); err != nil {
			errs = append(errs, &ValidationError{Key: "escape_pattern", Reason: err.Error(), Value: f.EscapePattern})
		}
	}

	if len(errs) > 0 {
		return &AggregateError{Errors: errs}
	}
	return nil
}

// ToOptions converts f to marker options.
func (f *File) ToOptions() (marker.Options, error) {
	if err := f.Validate(); err != nil {
		return marker.Options{}, err
	}

	opts := marker.Options{
		EscapePattern: f.EscapePattern,
		EmptyAction:   marker.EmptyAction(f.Empty),
	}
	if len(f.Dictionary) > 0 {
		opts.Dictionary = marker.Dictionary(f.Dictionary).Clone()
	}

	switch {
	case strings.Contains(f.TagName, ColorPlaceholder):
		opts.TagName = tagTemplate{tmpl: f.TagName, fallback: f.DefaultColor}
	case f.TagName != "":
		opts.TagName = marker.FixedTagName(f.TagName)
	}

	switch {
	case len(f.ClassNames) > 0:
		opts.ClassName = classTemplate{tmpls: f.ClassNames, fallback: f.DefaultColor}
	case strings.Contains(f.ClassName, ColorPlaceholder):
		opts.ClassName = classTemplate{tmpls: []string{f.ClassName}, fallback: f.DefaultColor}
	case f.ClassName != "":
		opts.ClassName = marker.BaseClassName(f.ClassName)
	}

	if len(f.Properties) > 0 {
		opts.Properties = propertiesTemplate{props: f.Properties, fallback: f.DefaultColor}
	}
	return opts, nil
}
