package utils

import (
	"go/types"

	"github.com/sirupsen/logrus"
	"github.com/stellar/go-stellar-sdk/support/config"

	"github.com/stellar/credits-index/internal/credits"
)

func LogLevelOption(configKey *logrus.Level) *config.ConfigOption {
	return &config.ConfigOption{
		Name:           "log-level",
		Usage:          `The log level used in this project. Options: "TRACE", "DEBUG", "INFO", "WARN", "ERROR", "FATAL", or "PANIC".`,
		OptType:        types.String,
		FlagDefault:    "INFO",
		ConfigKey:      configKey,
		CustomSetValue: SetConfigOptionLogLevel,
		Required:       false,
	}
}

func CatalogPathOption(configKey *string) *config.ConfigOption {
	return &config.ConfigOption{
		Name:           "catalog-path",
		Usage:          "Path to the catalog file to replay. The format is picked from the extension: .toml, .yaml or .yml.",
		OptType:        types.String,
		ConfigKey:      configKey,
		CustomSetValue: SetConfigOptionCatalogPath,
		Required:       true,
	}
}

func ReleaseModeOption(configKey *credits.ReleaseMode) *config.ConfigOption {
	return &config.ConfigOption{
		Name:           "release-mode",
		Usage:          `How a release replaces the participants of a known work. "compatible" keeps the works of dropped participants pointing back at the work, "strict" unlinks them.`,
		OptType:        types.String,
		FlagDefault:    string(credits.ReleaseModeCompatible),
		ConfigKey:      configKey,
		CustomSetValue: SetConfigOptionReleaseMode,
		Required:       false,
	}
}

func WorksLookupOption(configKey *[]string) *config.ConfigOption {
	return &config.ConfigOption{
		Name:           "works",
		Usage:          "Comma-separated work names whose participants are printed after the catalog is applied.",
		OptType:        types.String,
		ConfigKey:      configKey,
		CustomSetValue: SetConfigOptionNames,
		Required:       false,
	}
}

func ParticipantsLookupOption(configKey *[]string) *config.ConfigOption {
	return &config.ConfigOption{
		Name:           "participants",
		Usage:          "Comma-separated participant names whose works are printed after the catalog is applied.",
		OptType:        types.String,
		ConfigKey:      configKey,
		CustomSetValue: SetConfigOptionNames,
		Required:       false,
	}
}

func MetricsOption(configKey *bool) *config.ConfigOption {
	return &config.ConfigOption{
		Name:        "metrics",
		Usage:       "Print the index metrics in the Prometheus text format after the lookups.",
		OptType:     types.Bool,
		ConfigKey:   configKey,
		FlagDefault: false,
		Required:    false,
	}
}
