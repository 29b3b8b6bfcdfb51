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
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/athena"
	"github.com/aws/aws-sdk-go-v2/service/bedrockruntime"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/aws-samples/text-to-sql-agent-provisioner/internal/bedrock"
	"github.com/aws-samples/text-to-sql-agent-provisioner/internal/catalog"
	"github.com/aws-samples/text-to-sql-agent-provisioner/internal/config"
	"github.com/aws-samples/text-to-sql-agent-provisioner/internal/storage"
)

var (
	// AWS boundary flags
	region             string
	schemaBucket       string
	databaseName       string
	athenaOutputBucket string

	env          string
	modelID      string
	pollInterval time.Duration
	maxWait      time.Duration

	appConfig *config.Config
)

var rootCmd = &cobra.Command{
	Use:   "agent_provisioner",
	Short: "A tool to prepare the configuration of a text-to-SQL Bedrock agent",
	Long: `agent_provisioner is a CLI tool that discovers dataset schemas (S3 json.gz
exports, local CSV trees, or the Glue catalog via Athena), composes the
natural-language instruction for a text-to-SQL Bedrock agent from them, and
emits the crawler data-source configuration the deploy step consumes.`,
	PersistentPreRunE: initFlagsAndConfig,
}

// initFlagsAndConfig resolves flags and environment into the application
// configuration.
func initFlagsAndConfig(cmd *cobra.Command, args []string) error {
	if err := godotenv.Load(); err == nil {
		log.Println("INFO: Loaded environment from .env")
	}

	cfg := config.GetConfig()
	if cmd != nil {
		if region == "" {
			region = os.Getenv("AWS_REGION")
		}
		if region != "" {
			cfg.AWS.Region = region
		}
		cfg.AWS.SchemaBucket = schemaBucket
		if databaseName != "" {
			cfg.AWS.Database = databaseName
		}
		cfg.AWS.AthenaOutputBucket = athenaOutputBucket
		cfg.Env = env
		cfg.ModelID = modelID
		cfg.PollInterval = pollInterval
		cfg.MaxWait = maxWait
	}

	appConfig = cfg
	config.SetConfig(cfg)
	return nil
}

func validateEnv(env string) error {
	if env != "poc" && env != "chatbot" {
		return fmt.Errorf("unsupported env: %s (only poc and chatbot are supported)", env)
	}
	return nil
}

func loadAWSConfig(ctx context.Context) (aws.Config, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(appConfig.AWS.Region))
	if err != nil {
		log.Println("ERROR: Failed to load AWS configuration:", err)
		return aws.Config{}, fmt.Errorf("failed to load AWS configuration: %w", err)
	}
	return awsCfg, nil
}

func setupObjectStore(ctx context.Context) (*storage.S3Store, error) {
	awsCfg, err := loadAWSConfig(ctx)
	if err != nil {
		return nil, err
	}
	return storage.NewS3Store(s3.NewFromConfig(awsCfg)), nil
}

func setupCatalogReader(ctx context.Context) (*catalog.Reader, error) {
	awsCfg, err := loadAWSConfig(ctx)
	if err != nil {
		return nil, err
	}
	opts := catalog.Options{
		PollInterval: appConfig.PollInterval,
		MaxWait:      appConfig.MaxWait,
	}
	return catalog.NewReader(athena.NewFromConfig(awsCfg), appConfig.AWS.Database, appConfig.OutputLocation(), &opts), nil
}

func setupLLMClient(ctx context.Context) (bedrock.LLMClient, error) {
	awsCfg, err := loadAWSConfig(ctx)
	if err != nil {
		return nil, err
	}
	return bedrock.NewClient(bedrockruntime.NewFromConfig(awsCfg), bedrock.Config{ModelID: appConfig.ModelID}), nil
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&region, "region", "", "AWS region (can also be set via AWS_REGION environment variable)")
	rootCmd.PersistentFlags().StringVar(&schemaBucket, "bucket", "", "S3 bucket holding the dataset folders - MANDATORY for S3 discovery")
	rootCmd.PersistentFlags().StringVar(&databaseName, "database", "", "Glue catalog database name")
	rootCmd.PersistentFlags().StringVar(&athenaOutputBucket, "athena-output", "", "S3 bucket for Athena query results (defaults per --env)")
	rootCmd.PersistentFlags().StringVar(&env, "env", "poc", "Deployment environment ('poc' or 'chatbot')")
	rootCmd.PersistentFlags().StringVar(&modelID, "model-id", "anthropic.claude-3-sonnet-20240229-v1:0", "Bedrock model ID used to condense the instruction")
	rootCmd.PersistentFlags().DurationVar(&pollInterval, "poll-interval", time.Second, "Interval between Athena query status checks")
	rootCmd.PersistentFlags().DurationVar(&maxWait, "max-wait", 10*time.Minute, "Upper bound on waiting for one Athena query (0 disables the bound)")

	// Add subcommands
	rootCmd.AddCommand(discoverSchemaCmd)
	rootCmd.AddCommand(generateInstructionCmd)
	rootCmd.AddCommand(listTablesCmd)
	rootCmd.AddCommand(crawlerTargetsCmd)
}
