package config

import (
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/thoreinstein/tmplorg/internal/errors"
	"github.com/thoreinstein/tmplorg/internal/organize"
	"github.com/thoreinstein/tmplorg/internal/paths"
	"github.com/thoreinstein/tmplorg/internal/registry"
)

// AppName is the application name used for config file naming.
const AppName = paths.AppName

// EnvPrefix prefixes every environment variable read by the configuration.
const EnvPrefix = "TMPLORG"

// Configuration keys.
const (
	KeyRoot           = "root"
	KeyIndex          = "index"
	KeyStagingDir     = "staging_dir"
	KeyResourcesDir   = "resources_dir"
	KeyTemplatesDir   = "templates_dir"
	KeyRegistryFile   = "registry_file"
	KeyRegistryFormat = "registry_format"
)

// Config locates the organizer's inputs and outputs. Relative paths are
// resolved against Root; TemplatesDir and RegistryFile are relative to
// ResourcesDir.
type Config struct {
	Root           string `mapstructure:"root" yaml:"root"`
	Index          string `mapstructure:"index" yaml:"index"`
	StagingDir     string `mapstructure:"staging_dir" yaml:"staging_dir"`
	ResourcesDir   string `mapstructure:"resources_dir" yaml:"resources_dir"`
	TemplatesDir   string `mapstructure:"templates_dir" yaml:"templates_dir"`
	RegistryFile   string `mapstructure:"registry_file" yaml:"registry_file"`
	RegistryFormat string `mapstructure:"registry_format" yaml:"registry_format"`
}

// Default returns the configuration that reproduces the fixed project
// layout. Root is empty, meaning it is discovered at run time.
func Default() *Config {
	return &Config{
		Index:          paths.DefaultIndexFile,
		StagingDir:     paths.DefaultStagingDir,
		ResourcesDir:   paths.DefaultResourcesDir,
		TemplatesDir:   paths.DefaultTemplatesDir,
		RegistryFile:   paths.DefaultRegistryFile,
		RegistryFormat: string(registry.FormatJSON),
	}
}

// Init initializes Viper with default configuration.
// Call this once at application startup before accessing config values.
func Init() {
	// Config file settings
	viper.SetConfigName(AppName)
	viper.SetConfigType("yaml")

	// Search paths (in order of precedence)
	viper.AddConfigPath(".")
	viper.AddConfigPath(paths.ConfigDir())

	// Environment variable support
	viper.SetEnvPrefix(EnvPrefix)
	viper.AutomaticEnv()

	// Defaults
	def := Default()
	viper.SetDefault(KeyRoot, def.Root)
	viper.SetDefault(KeyIndex, def.Index)
	viper.SetDefault(KeyStagingDir, def.StagingDir)
	viper.SetDefault(KeyResourcesDir, def.ResourcesDir)
	viper.SetDefault(KeyTemplatesDir, def.TemplatesDir)
	viper.SetDefault(KeyRegistryFile, def.RegistryFile)
	viper.SetDefault(KeyRegistryFormat, def.RegistryFormat)
}

// Load reads the configuration file.
// If path is provided, it reads from that specific file.
// If path is empty, it searches in the default locations.
// Returns the loaded configuration or default values if no file is found (when path is empty).
func Load(path string) (*Config, error) {
	if path != "" {
		viper.SetConfigFile(path)
	}

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			// An explicit path must exist; an implicit search may come up empty.
			if path != "" {
				return nil, errors.Wrapf(err, "config file not found at %s", path)
			}
		} else {
			return nil, errors.Wrap(err, "reading config file")
		}
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, errors.Wrap(err, "unmarshaling config")
	}

	return &cfg, nil
}

// ConfigFileUsed returns the config file Load read, or "" if none.
func ConfigFileUsed() string {
	return viper.ConfigFileUsed()
}

// Options validates cfg and resolves it into run options. An empty Root
// is discovered from the working directory.
func (c *Config) Options() (organize.Options, error) {
	if errs := Validate(c); len(errs) > 0 {
		msgs := make([]string, len(errs))
		for i, e := range errs {
			msgs[i] = e.Error()
		}
		return organize.Options{}, errors.Wrapf(errors.ErrInvalidConfig, "%s", strings.Join(msgs, "; "))
	}

	root, err := c.resolveRoot()
	if err != nil {
		return organize.Options{}, err
	}

	format, err := registry.ParseFormat(c.RegistryFormat)
	if err != nil {
		return organize.Options{}, err
	}

	resources, err := paths.Resolve(root, c.ResourcesDir)
	if err != nil {
		return organize.Options{}, err
	}

	var opts organize.Options
	for _, p := range []struct {
		dst  *string
		base string
		path string
	}{
		{&opts.IndexPath, root, c.Index},
		{&opts.StagingDir, root, c.StagingDir},
		{&opts.TemplatesDir, resources, c.TemplatesDir},
		{&opts.RegistryPath, resources, c.RegistryFile},
	} {
		if *p.dst, err = paths.Resolve(p.base, p.path); err != nil {
			return organize.Options{}, err
		}
	}
	opts.Format = format

	return opts, nil
}

func (c *Config) resolveRoot() (string, error) {
	if c.Root == "" {
		return paths.ProjectRoot()
	}
	root, err := paths.ExpandHome(c.Root)
	if err != nil {
		return "", err
	}
	abs, err := filepath.Abs(root)
	if err != nil {
		return "", errors.Wrapf(err, "resolving root %s", c.Root)
	}
	return abs, nil
}
