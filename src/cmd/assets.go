package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	app "assetmapper/src/app"

	"github.com/spf13/cobra"
)

var (
	listSearch string

	createName     string
	createPath     string
	createTags     string
	createOptimize bool

	updateTags string
)

var errConflict = errors.New("asset already exists")

var getCmd = &cobra.Command{
	Use:   "get <path>",
	Short: "Show the metadata of one asset",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		mapper, err := newMapper()
		if err != nil {
			return err
		}
		asset, err := mapper.Get(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		return writeOutput(cmd.OutOrStdout(), outputFormat, asset)
	},
}

var listCmd = &cobra.Command{
	Use:     "list",
	Short:   "List or search assets",
	Aliases: []string{"ls"},
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		mapper, err := newMapper()
		if err != nil {
			return err
		}
		assets, err := mapper.All(cmd.Context(), listSearch)
		if err != nil {
			return err
		}
		return writeOutput(cmd.OutOrStdout(), outputFormat, assets)
	},
}

var createCmd = &cobra.Command{
	Use:   "create <file>",
	Short: "Upload a file as a new asset",
	Long: `Upload a file as a new asset.

The server derives the asset path from --name (the file name by default).
Use --path to upload to an explicit path instead.`,
	Args: cobra.ExactArgs(1),
	RunE: runCreate,
}

var updateCmd = &cobra.Command{
	Use:   "update <path>",
	Short: "Replace the tags of an asset",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		mapper, err := newMapper()
		if err != nil {
			return err
		}
		asset, err := mapper.Update(cmd.Context(), args[0], updateTags)
		if err != nil {
			return err
		}
		return writeOutput(cmd.OutOrStdout(), outputFormat, asset)
	},
}

func init() {
	listCmd.Flags().StringVarP(&listSearch, "search", "s", "", "Free text search")

	createCmd.Flags().StringVar(&createName, "name", "", "Friendly name the server derives the path from")
	createCmd.Flags().StringVar(&createPath, "path", "", "Explicit target path")
	createCmd.Flags().StringVar(&createTags, "tags", "", "Comma separated tags")
	createCmd.Flags().BoolVar(&createOptimize, "optimize", false, "Ask the server to optimize the asset")
	createCmd.MarkFlagsMutuallyExclusive("name", "path")

	updateCmd.Flags().StringVar(&updateTags, "tags", "", "Comma separated tags")
	updateCmd.MarkFlagRequired("tags")
}

func runCreate(cmd *cobra.Command, args []string) error {
	content, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("read %s: %w", args[0], err)
	}
	mapper, err := newMapper()
	if err != nil {
		return err
	}

	var result app.CreateResult
	if createPath != "" {
		result, err = mapper.CreateAtPath(cmd.Context(), content, createPath, createTags)
	} else {
		result, err = mapper.Create(cmd.Context(), content, friendlyName(args[0], createName),
			app.CreateOptions{Tags: createTags, Optimize: createOptimize})
	}
	if err != nil {
		return err
	}

	if result.Conflicted() {
		fmt.Fprintln(cmd.OutOrStdout(), string(result.Conflict))
		return errConflict
	}
	return writeOutput(cmd.OutOrStdout(), outputFormat, result.Asset)
}

// friendlyName defaults to the base name of the uploaded file.
func friendlyName(file, name string) string {
	if name != "" {
		return name
	}
	return filepath.Base(file)
}
