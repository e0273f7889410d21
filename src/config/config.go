// Package config loads deployment settings that widen the built-in SVG
// allow-list.
package config

import (
	"os"
	"regexp"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/spf13/viper"

	"github.com/Easy-Infra-Ltd/svg-scanner/src/policy"
)

const (
	// EnvPrefix prefixes every environment variable the scanner reads.
	EnvPrefix = "SVG_SCANNER"

	// EnvConfigFile names the environment variable holding an optional
	// config file path.
	EnvConfigFile = EnvPrefix + "_CONFIG"

	keyExtraTags       = "extra_tags"
	keyExtraAttributes = "extra_attributes"
)

// validName matches XML element and attribute names, with an optional
// namespace prefix.
var validName = regexp.MustCompile(`^[a-zA-Z_][a-zA-Z0-9_.\-]*(:[a-zA-Z_][a-zA-Z0-9_.\-]*)?$`)

// Config is the deployment configuration.
type Config struct {
	ExtraTags       []string `mapstructure:"extra_tags"`
	ExtraAttributes []string `mapstructure:"extra_attributes"`
}

// FromEnv loads the file named by SVG_SCANNER_CONFIG, if any, with
// environment overrides applied.
func FromEnv() (Config, error) {
	return Load(os.Getenv(EnvConfigFile))
}

// Load reads the config file at path (YAML, JSON or TOML, chosen by
// extension), applies environment overrides and validates the result.
// An empty path loads environment variables only.
func Load(path string) (Config, error) {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()
	v.SetDefault(keyExtraTags, []string{})
	v.SetDefault(keyExtraAttributes, []string{})

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, errors.Wrapf(err, "reading config %s", path)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, errors.Wrap(err, "parsing config")
	}

	applyDefaults(&cfg)

	if err := validate(cfg); err != nil {
		return Config{}, errors.Wrap(err, "validating config")
	}

	return cfg, nil
}

// Allowlist returns the default allow-list widened with cfg's extras.
func (cfg Config) Allowlist() *policy.Allowlist {
	return policy.Default().Extend(cfg.ExtraTags, cfg.ExtraAttributes)
}

func applyDefaults(cfg *Config) {
	cfg.ExtraTags = clean(cfg.ExtraTags)
	cfg.ExtraAttributes = clean(cfg.ExtraAttributes)
}

func validate(cfg Config) error {
	for i, tag := range cfg.ExtraTags {
		if !validName.MatchString(tag) {
			return errors.Newf("extra_tags[%d]: %q is not a valid element name", i, tag)
		}
		if policy.DeniesTag(tag) {
			return errors.Newf("extra_tags[%d]: %q can never be allowed", i, tag)
		}
	}

	for i, attr := range cfg.ExtraAttributes {
		if !validName.MatchString(attr) {
			return errors.Newf("extra_attributes[%d]: %q is not a valid attribute name", i, attr)
		}
		if policy.DeniesAttribute(attr) {
			return errors.Newf("extra_attributes[%d]: %q can never be allowed", i, attr)
		}
	}

	return nil
}

func clean(names []string) []string {
	out := make([]string, 0, len(names))
	for _, n := range names {
		if n = strings.TrimSpace(n); n != "" {
			out = append(out, n)
		}
	}
	return out
}
