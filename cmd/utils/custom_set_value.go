package utils

import (
	"fmt"
	"os"
	"strings"

	set "github.com/deckarep/golang-set/v2"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
	"github.com/stellar/go-stellar-sdk/support/config"

	"github.com/stellar/credits-index/internal/catalog"
	"github.com/stellar/credits-index/internal/credits"
)

func SetConfigOptionLogLevel(co *config.ConfigOption) error {
	logLevelStr := viper.GetString(co.Name)
	logLevel, err := logrus.ParseLevel(logLevelStr)
	if err != nil {
		return fmt.Errorf("couldn't parse log level in %s: %w", co.Name, err)
	}

	key, ok := co.ConfigKey.(*logrus.Level)
	if !ok {
		return fmt.Errorf("the expected type for the config key in %s is a logrus.Level, but a %T was provided instead", co.Name, co.ConfigKey)
	}
	*key = logLevel

	return nil
}

func SetConfigOptionReleaseMode(co *config.ConfigOption) error {
	mode, err := credits.ParseReleaseMode(viper.GetString(co.Name))
	if err != nil {
		return fmt.Errorf("parsing release mode in %s: %w", co.Name, err)
	}

	key, ok := co.ConfigKey.(*credits.ReleaseMode)
	if !ok {
		return fmt.Errorf("the expected type for the config key in %s is a credits.ReleaseMode, but a %T was provided instead", co.Name, co.ConfigKey)
	}
	*key = mode

	return nil
}

// SetConfigOptionCatalogPath accepts an existing regular file whose extension names a supported
// catalog format.
func SetConfigOptionCatalogPath(co *config.ConfigOption) error {
	path := strings.TrimSpace(viper.GetString(co.Name))
	if path == "" {
		return fmt.Errorf("catalog path in %s cannot be empty", co.Name)
	}

	if _, err := catalog.FormatFromPath(path); err != nil {
		return fmt.Errorf("validating catalog path in %s: %w", co.Name, err)
	}

	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("checking catalog path in %s: %w", co.Name, err)
	}
	if !info.Mode().IsRegular() {
		return fmt.Errorf("catalog path in %s is not a regular file: %s", co.Name, path)
	}

	key, ok := co.ConfigKey.(*string)
	if !ok {
		return fmt.Errorf("the expected type for the config key in %s is a string, but a %T was provided instead", co.Name, co.ConfigKey)
	}
	*key = path

	return nil
}

// SetConfigOptionNames splits a comma-separated list of names, dropping blanks and repeats
// while keeping the order they were given in.
func SetConfigOptionNames(co *config.ConfigOption) error {
	raw := viper.GetString(co.Name)

	seen := set.NewThreadUnsafeSet[string]()
	names := []string{}
	for _, name := range strings.Split(raw, ",") {
		name = strings.TrimSpace(name)
		if name == "" || !seen.Add(name) {
			continue
		}
		names = append(names, name)
	}

	key, ok := co.ConfigKey.(*[]string)
	if !ok {
		return fmt.Errorf("the expected type for the config key in %s is a []string, but a %T was provided instead", co.Name, co.ConfigKey)
	}
	*key = names

	return nil
}
