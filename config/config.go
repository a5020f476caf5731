// Package config loads installation field configuration files and applies
// them to a resolver.
package config

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/nats-io/nats.go"
	"gopkg.in/yaml.v3"

	"github.com/c360studio/propset/fields"
	"github.com/c360studio/propset/publish"
	"github.com/c360studio/propset/resolver"
	"github.com/c360studio/propset/vocabulary/repository"
	"github.com/c360studio/propset/worktype"
)

// Config is an installation configuration file. Unset values keep the
// resolver defaults; a list that is set replaces the default wholesale.
type Config struct {
	SelectedModels    []string                  `yaml:"selected_models,omitempty"`
	DatePicker        *bool                     `yaml:"date_picker,omitempty"`
	DateRange         *bool                     `yaml:"date_range,omitempty"`
	RestrictedEnabled *bool                     `yaml:"restricted_properties_enabled,omitempty"`
	RestrictedRole    string                    `yaml:"restricted_role,omitempty"`
	AuthoritiesAddNew []string                  `yaml:"authorities_add_new,omitempty"`
	Properties        PropertiesConfig          `yaml:"properties,omitempty"`
	WorkTypes         map[string]WorkTypeConfig `yaml:"work_types,omitempty"`
	NATS              NATSConfig                `yaml:"nats"`
}

// PropertiesConfig holds the cross-cutting field lists.
type PropertiesConfig struct {
	Facet             []string `yaml:"facet,omitempty"`
	FacetOnly         []string `yaml:"facet_only,omitempty"`
	Index             []string `yaml:"index,omitempty"`
	ExcludeFromSearch []string `yaml:"exclude_from_search,omitempty"`
	Singular          []string `yaml:"singular,omitempty"`
	Date              []string `yaml:"date,omitempty"`
	DatePickerDates   []string `yaml:"date_picker_dates,omitempty"`
	Restricted        []string `yaml:"restricted,omitempty"`
}

// WorkTypeConfig holds the field lists of one work type. Keys of
// Config.WorkTypes accept the type name ("JournalArticle") or its key
// ("journal_article").
type WorkTypeConfig struct {
	Properties []string `yaml:"properties,omitempty"`
	Required   []string `yaml:"required,omitempty"`
}

// NATSConfig configures snapshot publishing.
type NATSConfig struct {
	// URL is the NATS server URL.
	URL string `yaml:"url"`
	// Subject is the subject snapshots are published on.
	Subject string `yaml:"subject"`
}

// DefaultConfig returns a Config that keeps every resolver default.
func DefaultConfig() *Config {
	return &Config{
		NATS: NATSConfig{
			URL:     nats.DefaultURL,
			Subject: publish.DefaultSubject,
		},
	}
}

// targets pairs each cross-cutting list with its resolver target.
func (c *Config) targets() []struct {
	target resolver.Target
	names  []string
} {
	return []struct {
		target resolver.Target
		names  []string
	}{
		{resolver.Facets, c.Properties.Facet},
		{resolver.FacetOnly, c.Properties.FacetOnly},
		{resolver.Index, c.Properties.Index},
		{resolver.ExcludeFromSearch, c.Properties.ExcludeFromSearch},
		{resolver.Singular, c.Properties.Singular},
		{resolver.Dates, c.Properties.Date},
		{resolver.DatePickerDates, c.Properties.DatePickerDates},
		{resolver.Restricted, c.Properties.Restricted},
		{resolver.AuthoritiesAddNew, c.AuthoritiesAddNew},
	}
}

// Validate checks model names and field lists without touching a resolver.
func (c *Config) Validate() error {
	var errs []error

	if c.SelectedModels != nil && len(c.SelectedModels) == 0 {
		errs = append(errs, errors.New("selected_models: at least one model must be selected"))
	}
	seen := make(map[worktype.Type]bool)
	for _, name := range c.SelectedModels {
		t, err := worktype.Parse(name)
		if err != nil {
			errs = append(errs, fmt.Errorf("selected_models: %w", err))
			continue
		}
		if seen[t] {
			errs = append(errs, fmt.Errorf("selected_models: duplicate model %q", name))
		}
		seen[t] = true
	}

	for _, tt := range c.targets() {
		if err := fields.ParseSet(tt.names).Validate(); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", tt.target, err))
		}
	}

	named := make(map[worktype.Type]string)
	for name, wt := range c.WorkTypes {
		t, err := worktype.Parse(name)
		if err != nil {
			errs = append(errs, fmt.Errorf("work_types: %w", err))
			continue
		}
		if prev, ok := named[t]; ok {
			errs = append(errs, fmt.Errorf("work_types: %q and %q name the same model", prev, name))
		}
		named[t] = name
		if err := fields.ParseSet(wt.Properties).Validate(); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", resolver.FieldsOf(t), err))
		}
		if err := fields.ParseSet(wt.Required).Validate(); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", resolver.RequiredOf(t), err))
		}
	}

	return errors.Join(errs...)
}

// Apply issues the configured overrides on r. It must run before anything
// reads r.
func (c *Config) Apply(r *resolver.Resolver) error {
	if err := c.Validate(); err != nil {
		return err
	}

	if c.SelectedModels != nil {
		types := make([]worktype.Type, 0, len(c.SelectedModels))
		for _, name := range c.SelectedModels {
			t, _ := worktype.Parse(name)
			types = append(types, t)
		}
		if err := r.SetSelectedModels(types...); err != nil {
			return err
		}
	}
	if c.DatePicker != nil {
		if err := r.SetDatePicker(*c.DatePicker); err != nil {
			return err
		}
	}
	if c.DateRange != nil {
		if err := r.SetDateRange(*c.DateRange); err != nil {
			return err
		}
	}
	if c.RestrictedEnabled != nil {
		if err := r.SetRestrictedEnabled(*c.RestrictedEnabled); err != nil {
			return err
		}
	}
	if c.RestrictedRole != "" {
		if err := r.SetRestrictedRole(c.RestrictedRole); err != nil {
			return err
		}
	}

	for _, tt := range c.targets() {
		if tt.names == nil {
			continue
		}
		if err := r.Override(tt.target, fields.ParseSet(tt.names)); err != nil {
			return err
		}
	}

	for name, wt := range c.WorkTypes {
		t, _ := worktype.Parse(name)
		if wt.Properties != nil {
			if err := r.Override(resolver.FieldsOf(t), fields.ParseSet(wt.Properties)); err != nil {
				return err
			}
		}
		if wt.Required != nil {
			if err := r.Override(resolver.RequiredOf(t), fields.ParseSet(wt.Required)); err != nil {
				return err
			}
		}
	}
	return nil
}

// Build returns a finalized resolver holding this configuration. Fields the
// configuration introduces are registered with the vocabulary.
func (c *Config) Build(logger *slog.Logger, metrics *resolver.Metrics) (*resolver.Resolver, error) {
	opts := []resolver.Option{resolver.WithLogger(logger)}
	if metrics != nil {
		opts = append(opts, resolver.WithMetrics(metrics))
	}
	r := resolver.New(opts...)

	if err := c.Apply(r); err != nil {
		return nil, err
	}
	if err := r.Finalize(); err != nil {
		return nil, err
	}
	repository.RegisterFields(r.AllProperties())
	return r, nil
}

// FromResolver returns a Config spelling out every value of r, as a starting
// point for an installation file.
func FromResolver(r *resolver.Resolver) (*Config, error) {
	c := DefaultConfig()

	datePicker, dateRange, restricted := r.DatePicker(), r.DateRange(), r.RestrictedEnabled()
	c.DatePicker = &datePicker
	c.DateRange = &dateRange
	c.RestrictedEnabled = &restricted
	c.RestrictedRole = r.RestrictedRole()
	c.AuthoritiesAddNew = r.AuthoritiesAddNew().Strings()

	c.Properties = PropertiesConfig{
		Facet:             r.FacetFields().Strings(),
		FacetOnly:         r.FacetOnlyFields().Strings(),
		Index:             r.IndexFields().Strings(),
		ExcludeFromSearch: r.ExcludeFromSearchFields().Strings(),
		Singular:          r.SingularFields().Strings(),
		Date:              r.DateFields().Strings(),
		DatePickerDates:   r.DatePickerDates().Strings(),
		Restricted:        r.RestrictedFields().Strings(),
	}

	c.WorkTypes = make(map[string]WorkTypeConfig)
	for _, t := range r.SelectedModels() {
		c.SelectedModels = append(c.SelectedModels, string(t))
		all, err := r.FieldsFor(t)
		if err != nil {
			return nil, err
		}
		required, err := r.RequiredFieldsFor(t)
		if err != nil {
			return nil, err
		}
		c.WorkTypes[string(t)] = WorkTypeConfig{Properties: all.Strings(), Required: required.Strings()}
	}
	return c, nil
}

// LoadFromFile loads configuration from a YAML file. Unknown keys are
// rejected.
func LoadFromFile(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	defer f.Close()

	config := &Config{}
	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)
	if err := dec.Decode(config); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	return config, nil
}

// SaveToFile saves configuration to a YAML file.
func (c *Config) SaveToFile(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// Merge merges another config into this one. Values set in other take
// precedence; lists are replaced, not appended.
func (c *Config) Merge(other *Config) {
	if other == nil {
		return
	}

	if other.SelectedModels != nil {
		c.SelectedModels = other.SelectedModels
	}
	if other.DatePicker != nil {
		c.DatePicker = other.DatePicker
	}
	if other.DateRange != nil {
		c.DateRange = other.DateRange
	}
	if other.RestrictedEnabled != nil {
		c.RestrictedEnabled = other.RestrictedEnabled
	}
	if other.RestrictedRole != "" {
		c.RestrictedRole = other.RestrictedRole
	}
	if other.AuthoritiesAddNew != nil {
		c.AuthoritiesAddNew = other.AuthoritiesAddNew
	}

	mergeList(&c.Properties.Facet, other.Properties.Facet)
	mergeList(&c.Properties.FacetOnly, other.Properties.FacetOnly)
	mergeList(&c.Properties.Index, other.Properties.Index)
	mergeList(&c.Properties.ExcludeFromSearch, other.Properties.ExcludeFromSearch)
	mergeList(&c.Properties.Singular, other.Properties.Singular)
	mergeList(&c.Properties.Date, other.Properties.Date)
	mergeList(&c.Properties.DatePickerDates, other.Properties.DatePickerDates)
	mergeList(&c.Properties.Restricted, other.Properties.Restricted)

	for name, wt := range other.WorkTypes {
		if c.WorkTypes == nil {
			c.WorkTypes = make(map[string]WorkTypeConfig)
		}
		cur := c.WorkTypes[name]
		mergeList(&cur.Properties, wt.Properties)
		mergeList(&cur.Required, wt.Required)
		c.WorkTypes[name] = cur
	}

	if other.NATS.URL != "" {
		c.NATS.URL = other.NATS.URL
	}
	if other.NATS.Subject != "" {
		c.NATS.Subject = other.NATS.Subject
	}
}

func mergeList(dst *[]string, src []string) {
	if src != nil {
		*dst = src
	}
}
