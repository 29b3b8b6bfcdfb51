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
)

var listTablesCmd = &cobra.Command{
	Use:     "list-tables",
	Short:   "List tables of the catalog database",
	Long:    `Lists the tables and views of the Glue catalog database through Athena metadata queries. With --describe, the columns of each table are listed as well.`,
	Example: `./agent_provisioner list-tables --database vehicle-data --describe`,
	RunE:    runListTables,
}

func runListTables(cmd *cobra.Command, args []string) error {
	if err := validateEnv(appConfig.Env); err != nil {
		return err
	}

	log.Println("INFO: Listing catalog tables", "database:", appConfig.AWS.Database)

	ctx := cmd.Context()
	reader, err := setupCatalogReader(ctx)
	if err != nil {
		return err
	}

	tables, err := reader.ListTables(ctx)
	if err != nil {
		return fmt.Errorf("failed to list tables: %w", err)
	}

	describe, _ := cmd.Flags().GetBool("describe")
	for _, table := range tables {
		fmt.Println(table)
		if !describe {
			continue
		}
		columns, err := reader.DescribeTable(ctx, table)
		if err != nil {
			return fmt.Errorf("failed to describe table %s: %w", table, err)
		}
		for _, column := range columns {
			fmt.Printf("    %s\n", column)
		}
	}

	log.Printf("INFO: Listed %d table(s)", len(tables))
	return nil
}

func init() {
	var describe bool

	listTablesCmd.Flags().BoolVar(&describe, "describe", false, "Also list each table's columns")
}
