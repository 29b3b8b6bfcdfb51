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

	"github.com/aws-samples/text-to-sql-agent-provisioner/internal/bedrock"
	"github.com/aws-samples/text-to-sql-agent-provisioner/internal/instruction"
	"github.com/aws-samples/text-to-sql-agent-provisioner/internal/utils"
)

// generateInstructionCmd represents the generate-instruction command
var generateInstructionCmd = &cobra.Command{
	Use:   "generate-instruction",
	Short: "Generate the agent instruction from discovered schemas",
	Long: `Composes the natural-language instruction configuring the text-to-SQL agent.
The schema comes either from a context file produced by discover-schema, or,
when no context file is given, from the Glue catalog via Athena metadata
queries. With --condense the composed instruction is rewritten by the
configured Bedrock model to fit the agent's character budget.`,
	Example: `./agent_provisioner generate-instruction --database vehicle-data --context-file ./vehicle-data_schema_context.json --condense --out_file ./vehicle-data_instruction.txt`,
	RunE:    runGenerateInstruction,
}

func runGenerateInstruction(cmd *cobra.Command, args []string) error {
	if err := validateEnv(appConfig.Env); err != nil {
		return err
	}

	outputFile := cmd.Flag("out_file").Value.String()
	if outputFile == "" {
		outputFile = utils.DefaultOutputFilePath(appConfig.AWS.Database, "generate-instruction")
	}

	log.Println("INFO: Starting instruction generation", "database:", appConfig.AWS.Database)

	ctx := cmd.Context()
	var instructionText string

	contextFile := cmd.Flag("context-file").Value.String()
	if contextFile != "" {
		dataContext, err := utils.ReadSchemaContext(contextFile)
		if err != nil {
			return err
		}
		instructionText = instruction.Compose(appConfig.AWS.Database, dataContext)
	} else {
		reader, err := setupCatalogReader(ctx)
		if err != nil {
			return err
		}
		instructionText, err = instruction.ComposeFromCatalog(ctx, reader, appConfig.AWS.Database)
		if err != nil {
			return fmt.Errorf("failed to compose instruction from catalog: %w", err)
		}
	}

	condense, _ := cmd.Flags().GetBool("condense")
	if condense {
		llm, err := setupLLMClient(ctx)
		if err != nil {
			return err
		}
		instructionText, err = bedrock.CondenseInstruction(ctx, llm, instructionText)
		if err != nil {
			return err
		}
	} else if len(instructionText) > instruction.CharBudget {
		log.Printf("WARN: Instruction is %d characters, over the %d budget; consider --condense", len(instructionText), instruction.CharBudget)
	}

	if err := utils.WriteTextFile(outputFile, instructionText); err != nil {
		return err
	}
	fmt.Printf("Instruction (%d characters) written to: %s\n", len(instructionText), outputFile)

	log.Println("INFO: Instruction generation completed")
	return nil
}

func init() {
	var contextFile string
	var outputFile string
	var condense bool

	generateInstructionCmd.Flags().StringVar(&contextFile, "context-file", "", "Schema context JSON from discover-schema (optional; omitting it discovers via the catalog)")
	generateInstructionCmd.Flags().StringVarP(&outputFile, "out_file", "o", "", "File path to save the instruction to (optional, defaults to <database>_instruction.txt)")
	generateInstructionCmd.Flags().BoolVar(&condense, "condense", false, "Rewrite the instruction with the Bedrock model to fit the character budget")
}
