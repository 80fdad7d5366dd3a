package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/stellar/go-stellar-sdk/support/config"
	"github.com/stellar/go-stellar-sdk/support/log"

	"github.com/stellar/credits-index/cmd/utils"
	"github.com/stellar/credits-index/internal/ingest"
)

type ingestCmd struct{}

func (c *ingestCmd) Command() *cobra.Command {
	cfg := ingest.Configs{}
	cfgOpts := config.ConfigOptions{
		utils.CatalogPathOption(&cfg.CatalogPath),
		utils.ReleaseModeOption(&cfg.ReleaseMode),
		utils.LogLevelOption(&cfg.LogLevel),
		utils.WorksLookupOption(&cfg.Works),
		utils.ParticipantsLookupOption(&cfg.Participants),
		utils.MetricsOption(&cfg.DumpMetrics),
	}

	cmd := &cobra.Command{
		Use:               "ingest",
		Short:             "Replay a catalog into a credits index and print lookups",
		PersistentPreRunE: utils.DefaultPersistentPreRunE(cfgOpts),
		RunE: func(cmd *cobra.Command, _ []string) error {
			return c.Run(cmd, cfg)
		},
	}

	if err := cfgOpts.Init(cmd); err != nil {
		log.Fatalf("Error initializing a config option: %s", err.Error())
	}

	return cmd
}

func (c *ingestCmd) Run(cmd *cobra.Command, cfg ingest.Configs) error {
	if err := ingest.Ingest(cmd.Context(), cfg, cmd.OutOrStdout()); err != nil {
		return fmt.Errorf("running ingest: %w", err)
	}
	return nil
}
