// Package configuration defines a configuration engine for the entire app.
//
// The configuration features:
//   - reads the command line arguments for the app such as secure mode enabled or not.
//   - automatically loads the environment variables files.
//   - allows setting default variables if user didn't define them.
package configuration

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/blocklords/ballot-token/app/configuration/argument"
	"github.com/blocklords/ballot-token/app/configuration/env"
	"github.com/blocklords/ballot-token/app/log"
	"github.com/spf13/viper"
)

// Config Configuration Engine based on viper.Viper
type Config struct {
	viper *viper.Viper // used to keep default values

	Secure bool        // Passed as --secure command line argument. If its passed then the server wallet key is read from the vault.
	Debug  bool        // Passed as --debug command line argument. If true then app prints the debug logs.
	logger *log.Logger // debug purpose only
}

// NewAppConfig creates a global configuration for the entire application.
// Automatically reads the command line arguments.
// Loads the environment variables.
func NewAppConfig(parent *log.Logger) (*Config, error) {
	logger := parent.Child("configuration")
	logger.Info("Reading command line arguments for application parameters")

	// First we check the parameters of the application arguments
	arguments := argument.GetArguments()

	conf := Config{
		Secure: argument.Has(arguments, argument.Secure),
		Debug:  argument.Has(arguments, argument.Debug),
		logger: logger,
	}
	logger.Info("Loading environment files passed as app arguments")

	err := env.LoadAnyEnv()
	if err != nil {
		return nil, fmt.Errorf("loading environment variables: %w", err)
	}

	logger.Info("Starting Viper with environment variables")

	conf.viper = viper.New()
	conf.viper.AutomaticEnv()

	return &conf, nil
}

// Engine returns the underlying configuration engine.
// In our case it will be Viper.
func (config *Config) Engine() *viper.Viper {
	return config.viper
}

// SetDefaults sets the default configuration parameters.
// The parameters with nil value are required, they don't have the default.
func (config *Config) SetDefaults(defaultConfig DefaultConfig) {
	for name, value := range defaultConfig.Parameters {
		if value == nil {
			continue
		}
		// already set, don't use the default
		if config.viper.IsSet(name) {
			continue
		}
		config.logger.Info("Set default for "+defaultConfig.Title, name, value)
		config.SetDefault(name, value)
	}
}

// Validate returns an error listing the required parameters of the package that are not set.
func (config *Config) Validate(defaultConfig DefaultConfig) error {
	missing := make([]string, 0)
	for name, value := range defaultConfig.Parameters {
		if value != nil {
			continue
		}
		if !config.Exist(name) {
			missing = append(missing, name)
		}
	}
	if len(missing) == 0 {
		return nil
	}

	sort.Strings(missing)
	return fmt.Errorf("%s: missing required parameters: %s", defaultConfig.Title, strings.Join(missing, ", "))
}

// SetDefault sets the default configuration name to the value
func (config *Config) SetDefault(name string, value interface{}) {
	config.viper.SetDefault(name, value)
}

// Exist Checks whether the configuration variable exists or not
// If the configuration exists or its default value exists, then returns true.
func (config *Config) Exist(name string) bool {
	value := config.viper.GetString(name)
	return len(value) > 0
}

// GetString Returns the configuration parameter as a string
func (config *Config) GetString(name string) string {
	value := config.viper.GetString(name)
	return value
}

// GetUint64 Returns the configuration parameter as an unsigned 64-bit number
func (config *Config) GetUint64(name string) uint64 {
	value := config.viper.GetUint64(name)
	return value
}

// GetBool Returns the configuration parameter as a boolean
func (config *Config) GetBool(name string) bool {
	value := config.viper.GetBool(name)
	return value
}

// GetDuration Returns the configuration parameter as a duration, for example "30s"
func (config *Config) GetDuration(name string) time.Duration {
	value := config.viper.GetDuration(name)
	return value
}
