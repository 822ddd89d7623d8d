package main

import (
	app "assetmapper/src/app"

	"github.com/spf13/cobra"
)

var (
	importPrefix string
	importTags   string
)

var importCmd = &cobra.Command{
	Use:   "import",
	Short: "Upload the images of the configured S3 bucket",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		mapper, err := newMapper()
		if err != nil {
			return err
		}
		clientS3, err := app.NewMinioS3Client(
			config.S3.Host,
			config.S3.AccessKey,
			config.S3.SecretKey,
			config.S3.Bucket,
			config.S3.UseSSL)
		if err != nil {
			return err
		}

		results, err := app.NewImporter(mapper, clientS3).Import(cmd.Context(), importPrefix, importTags)
		if outErr := writeOutput(cmd.OutOrStdout(), outputFormat, results); outErr != nil && err == nil {
			err = outErr
		}
		return err
	},
}

func init() {
	importCmd.Flags().StringVar(&importPrefix, "prefix", "", "Only import keys under this prefix")
	importCmd.Flags().StringVar(&importTags, "tags", "", "Comma separated tags for every imported asset")
}
