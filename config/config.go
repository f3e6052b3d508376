// Package config holds the tool configuration. Values come from, in order of
// precedence, command line flags, XDLRC_* environment variables, the
// config.yaml file in the configuration directory and the defaults.
package config

import (
	"io/ioutil"
	"os"
	"path/filepath"
	"strings"

	"github.com/mitchellh/go-homedir"
	"github.com/pkg/errors"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v2"

	"github.com/daedaleanai/xdlrc/log"
	"github.com/daedaleanai/xdlrc/util"
)

// Config keys, as used in config.yaml and as flag binding names.
const (
	KeyFamily            = "family"
	KeyOutputDir         = "output_dir"
	KeyErrorsFile        = "errors_file"
	KeyExceptionsFile    = "exceptions_file"
	KeyReferenceRepo     = "reference_repo"
	KeyReferenceDir      = "reference_dir"
	KeyReferenceRevision = "reference_revision"
)

const (
	configFileName = "config"
	configFileType = "yaml"
	envPrefix      = "XDLRC"
	referencesDir  = "references"
)

type Config struct {
	Family            string `yaml:"family" mapstructure:"family"`
	OutputDir         string `yaml:"output_dir" mapstructure:"output_dir"`
	ErrorsFile        string `yaml:"errors_file" mapstructure:"errors_file"`
	ExceptionsFile    string `yaml:"exceptions_file" mapstructure:"exceptions_file"`
	ReferenceRepo     string `yaml:"reference_repo,omitempty" mapstructure:"reference_repo"`
	ReferenceDir      string `yaml:"reference_dir" mapstructure:"reference_dir"`
	ReferenceRevision string `yaml:"reference_revision" mapstructure:"reference_revision"`
}

var v = newViper()
var config *Config

// Dir returns the configuration directory: $XDLRC_CONFIG_DIR,
// $XDG_CONFIG_HOME/xdlrc or ~/.config/xdlrc.
func Dir() (string, error) {
	if dir, ok := os.LookupEnv("XDLRC_CONFIG_DIR"); ok {
		return dir, nil
	}
	if xdgConfigHome, ok := os.LookupEnv("XDG_CONFIG_HOME"); ok {
		return filepath.Join(xdgConfigHome, "xdlrc"), nil
	}
	home, err := homedir.Dir()
	if err != nil {
		return "", errors.Wrap(err, "unable to locate the configuration directory")
	}
	return filepath.Join(home, ".config", "xdlrc"), nil
}

// Default returns the configuration used when nothing else is set.
func Default() Config {
	refDir := referencesDir
	if dir, err := Dir(); err == nil {
		refDir = filepath.Join(dir, referencesDir)
	}
	return Config{
		Family:            "artix7",
		OutputDir:         ".",
		ErrorsFile:        "XDLRC_ERRORS.txt",
		ExceptionsFile:    "XDLRC_Exceptions.txt",
		ReferenceDir:      refDir,
		ReferenceRevision: "HEAD",
	}
}

func newViper() *viper.Viper {
	nv := viper.New()
	nv.SetConfigName(configFileName)
	nv.SetConfigType(configFileType)
	nv.SetEnvPrefix(envPrefix)
	nv.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	nv.AutomaticEnv()

	def := Default()
	nv.SetDefault(KeyFamily, def.Family)
	nv.SetDefault(KeyOutputDir, def.OutputDir)
	nv.SetDefault(KeyErrorsFile, def.ErrorsFile)
	nv.SetDefault(KeyExceptionsFile, def.ExceptionsFile)
	nv.SetDefault(KeyReferenceRepo, def.ReferenceRepo)
	nv.SetDefault(KeyReferenceDir, def.ReferenceDir)
	nv.SetDefault(KeyReferenceRevision, def.ReferenceRevision)
	return nv
}

// Viper returns the viper instance backing GetConfig so that command line
// flags can be bound to config keys.
func Viper() *viper.Viper {
	return v
}

func loadConfiguration() Config {
	cfg := Default()

	configDir, err := Dir()
	if err != nil {
		log.Debug("Unable to find xdlrc config directory. Using default configuration\n")
	} else {
		v.AddConfigPath(configDir)
		err = v.ReadInConfig()
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			log.Debug("No configuration file in `%s`\n", configDir)
		} else if err != nil {
			log.Warning("Error reading configuration file in `%s`: `%s`. Using default configuration\n", configDir, err)
		} else {
			log.Debug("Loaded configuration from `%s`\n", v.ConfigFileUsed())
		}
	}

	if err := v.Unmarshal(&cfg); err != nil {
		log.Warning("Invalid configuration: %s. Using default configuration\n", err)
		return Default()
	}
	log.Debug("Running with configuration: %+v\n", cfg)
	return cfg
}

// GetConfig returns the configuration. It is loaded on first use.
func GetConfig() Config {
	if config == nil {
		loadedConfig := loadConfiguration()
		config = &loadedConfig
	}
	return *config
}

// Reset drops the loaded configuration and any flag bindings.
func Reset() {
	v = newViper()
	config = nil
}

// Save writes cfg to path as YAML. Parent directories are created.
func Save(path string, cfg Config) error {
	data, err := yaml.Marshal(&cfg)
	if err != nil {
		return errors.Wrap(err, "encoding configuration")
	}
	if err := util.EnsureDir(filepath.Dir(path)); err != nil {
		return err
	}
	if err := ioutil.WriteFile(path, data, util.FileMode); err != nil {
		return errors.Wrapf(err, "writing %s", path)
	}
	return nil
}

// DefaultPath returns the path of config.yaml in the configuration directory.
func DefaultPath() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, configFileName+"."+configFileType), nil
}
