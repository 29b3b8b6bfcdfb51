/*
 * Copyright 2025 Amazon.com, Inc. or its affiliates. All Rights Reserved.
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *    https://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */
package cmd

import (
	"fmt"
	"log"

	"github.com/spf13/cobra"

	"github.com/aws-samples/text-to-sql-agent-provisioner/internal/discovery"
	"github.com/aws-samples/text-to-sql-agent-provisioner/internal/utils"
)

// discoverSchemaCmd represents the discover-schema command
var discoverSchemaCmd = &cobra.Command{
	Use:     "discover-schema",
	Short:   "Discover dataset schemas by sampling data files",
	Long:    `Scans the schema bucket's dataset folders (compressed line-delimited JSON exports) or a local CSV tree, accumulating per-dataset column sets and one sample record, and writes the result as a schema context JSON file for generate-instruction.`,
	Example: `./agent_provisioner discover-schema --bucket vehicle-data --database vehicle-data --out_file ./vehicle-data_schema_context.json`,
	RunE:    runDiscoverSchema,
}

func runDiscoverSchema(cmd *cobra.Command, args []string) error {
	source := cmd.Flag("source").Value.String()
	if source != "s3" && source != "local" {
		return fmt.Errorf("unsupported source: %s (only s3 and local are supported)", source)
	}

	outputFile := cmd.Flag("out_file").Value.String()
	if outputFile == "" {
		outputFile = utils.DefaultOutputFilePath(appConfig.AWS.Database, "discover-schema")
	}

	ctx := cmd.Context()
	var dataContext map[string]discovery.FolderContext

	switch source {
	case "s3":
		if appConfig.AWS.SchemaBucket == "" {
			return fmt.Errorf("--bucket is required for S3 discovery")
		}
		log.Println("INFO: Starting schema discovery", "bucket:", appConfig.AWS.SchemaBucket)

		store, err := setupObjectStore(ctx)
		if err != nil {
			return err
		}
		folders, err := store.ListFolders(ctx, appConfig.AWS.SchemaBucket)
		if err != nil {
			return fmt.Errorf("failed to list folders: %w", err)
		}
		log.Printf("INFO: Found %d top-level folder(s)", len(folders))

		dataContext, err = discovery.AnalyzeJSONGz(ctx, store, appConfig.AWS.SchemaBucket, folders)
		if err != nil {
			return fmt.Errorf("failed to analyze dataset folders: %w", err)
		}

	case "local":
		localRoot := cmd.Flag("local-root").Value.String()
		if localRoot == "" {
			return fmt.Errorf("--local-root is required for local discovery")
		}
		log.Println("INFO: Starting schema discovery", "local-root:", localRoot)

		var err error
		dataContext, err = discovery.AnalyzeCSV(localRoot)
		if err != nil {
			return fmt.Errorf("failed to analyze local files: %w", err)
		}
	}

	if err := utils.WriteJSONFile(outputFile, dataContext); err != nil {
		return err
	}
	fmt.Printf("Schema context for %d dataset(s) written to: %s\n", len(dataContext), outputFile)

	log.Println("INFO: Schema discovery completed")
	return nil
}

func init() {
	var source string
	var localRoot string
	var outputFile string

	discoverSchemaCmd.Flags().StringVar(&source, "source", "s3", "Where to sample data from ('s3' or 'local')")
	discoverSchemaCmd.Flags().StringVar(&localRoot, "local-root", "", "Root directory of CSV files (for --source local)")
	discoverSchemaCmd.Flags().StringVarP(&outputFile, "out_file", "o", "", "File path to save the schema context to (optional, defaults to <database>_schema_context.json)")
}
