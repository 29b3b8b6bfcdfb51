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

	"github.com/aws-samples/text-to-sql-agent-provisioner/internal/provision"
	"github.com/aws-samples/text-to-sql-agent-provisioner/internal/utils"
)

var crawlerTargetsCmd = &cobra.Command{
	Use:     "crawler-targets",
	Short:   "Emit the crawler data-source configuration for the schema bucket",
	Long:    `Enumerates the schema bucket's top-level folders and writes one crawler S3 target per folder as JSON, for the deploy step to wire into the Glue crawler definition.`,
	Example: `./agent_provisioner crawler-targets --bucket vehicle-data --out_file ./vehicle-data_crawler_targets.json`,
	RunE:    runCrawlerTargets,
}

func runCrawlerTargets(cmd *cobra.Command, args []string) error {
	if appConfig.AWS.SchemaBucket == "" {
		return fmt.Errorf("--bucket is required")
	}

	outputFile := cmd.Flag("out_file").Value.String()
	if outputFile == "" {
		outputFile = utils.DefaultOutputFilePath(appConfig.AWS.Database, "crawler-targets")
	}

	log.Println("INFO: Generating crawler targets", "bucket:", appConfig.AWS.SchemaBucket)

	ctx := cmd.Context()
	store, err := setupObjectStore(ctx)
	if err != nil {
		return err
	}

	targets, err := provision.DataSources(ctx, store, appConfig.AWS.SchemaBucket)
	if err != nil {
		return fmt.Errorf("failed to generate crawler targets: %w", err)
	}

	if err := utils.WriteJSONFile(outputFile, targets); err != nil {
		return err
	}
	fmt.Printf("%d crawler target(s) written to: %s\n", len(targets), outputFile)

	log.Println("INFO: Crawler target generation completed")
	return nil
}

func init() {
	var outputFile string

	crawlerTargetsCmd.Flags().StringVarP(&outputFile, "out_file", "o", "", "File path to save the crawler targets to (optional, defaults to <database>_crawler_targets.json)")
}
