package main

import (
	"fmt"
	"net/http"

	app "assetmapper/src/app"
	cfg "assetmapper/src/configuration"

	"github.com/spf13/cobra"
)

var (
	config       *cfg.Properties
	outputFormat string
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "assetmapper",
	Short: "Client and gateway for the asset server",
	Long: `Fetch, search, create and update assets stored on a remote asset server.

Configuration is read from the environment (ASSETS_SERVER_URL, ASSETS_PROTOCOL,
ASSETS_AUTH_TOKEN, ...).`,
	SilenceUsage:      true,
	PersistentPreRunE: loadConfig,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&outputFormat, "output", "o", formatJSON, "Output format (json, yaml)")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(getCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(createCmd)
	rootCmd.AddCommand(updateCmd)
	rootCmd.AddCommand(importCmd)
}

func loadConfig(cmd *cobra.Command, args []string) error {
	if outputFormat != formatJSON && outputFormat != formatYAML {
		return fmt.Errorf("unknown output format %q", outputFormat)
	}
	properties, err := cfg.Parse()
	if err != nil {
		return err
	}
	config = properties
	return nil
}

func newMapper() (*app.AssetMapper, error) {
	return app.NewAssetMapperFromProperties(config, &http.Client{Timeout: config.Assets.Timeout})
}
