package config

import (
	"errors"
	"fmt"

	"dario.cat/mergo"
)

// layer is one configuration source; name shows up in merge errors.
type layer struct {
	name string
	cfg  *StructuredConfig
}

// configBuilder collects layers in precedence order. Source errors are
// accumulated and reported together by build.
type configBuilder struct {
	layers []layer
	err    error
}

func newConfigBuilder() *configBuilder {
	return &configBuilder{layers: make([]layer, 0, 4)}
}

// build merges the layers in order; a later non-zero field overrides an
// earlier one.
func (b *configBuilder) build() (*StructuredConfig, error) {
	if b.err != nil {
		return nil, fmt.Errorf("error occured during building config: %w", b.err)
	}

	merged := new(StructuredConfig)
	for _, l := range b.layers {
		if err := mergo.Merge(merged, l.cfg, mergo.WithOverride); err != nil {
			return nil, fmt.Errorf("error merging %s config: %w", l.name, err)
		}
	}

	return merged, nil
}

func (b *configBuilder) add(name string, cfg *StructuredConfig, err error) *configBuilder {
	switch {
	case err != nil:
		b.err = errors.Join(b.err, err)
	case cfg != nil:
		b.layers = append(b.layers, layer{name: name, cfg: cfg})
	}
	return b
}

func (b *configBuilder) withDefaults() *configBuilder {
	return b.add("default", defaultConfig(), nil)
}

func (b *configBuilder) withEnv() *configBuilder {
	envCfg := &StructuredConfig{}
	if err := parseEnv(envCfg); err != nil {
		return b.add("env", nil, err)
	}
	return b.add("env", envCfg, nil)
}

func (b *configBuilder) withFlags(args []string) *configBuilder {
	flagsCfg, err := ParseFlags(args)
	return b.add("flags", flagsCfg, err)
}

// withConfig appends a layer built elsewhere, e.g. from cobra flags.
func (b *configBuilder) withConfig(cfg *StructuredConfig) *configBuilder {
	return b.add("command line", cfg, nil)
}

// withJSON loads the file named by the last layer that set JSONFilePath.
// Without such a layer it adds nothing.
func (b *configBuilder) withJSON() *configBuilder {
	var jsonPath string
	for _, l := range b.layers {
		if l.cfg.JSONFilePath != "" {
			jsonPath = l.cfg.JSONFilePath
		}
	}
	if jsonPath == "" {
		return b
	}

	jsonCfg, err := parseJSON(jsonPath)
	return b.add("json", jsonCfg, err)
}
