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
package config

import (
	"fmt"
	"time"
)

// Config holds all configuration for the application
type Config struct {
	AWS          AWSConfig
	Env          string
	ModelID      string
	PollInterval time.Duration
	MaxWait      time.Duration
}

// AWSConfig holds the settings for the AWS service boundaries
// (S3 schema bucket, Glue catalog database, Athena result location).
type AWSConfig struct {
	Region             string
	SchemaBucket       string
	Database           string
	AthenaOutputBucket string
}

var globalConfig *Config

// GetConfig returns a default configuration. Configuration will be set by flags in root.go
func GetConfig() *Config {
	return &Config{
		AWS: AWSConfig{
			Region:   "us-east-1",
			Database: "vehicle-data",
		},
		Env:          "poc",
		ModelID:      "anthropic.claude-3-sonnet-20240229-v1:0",
		PollInterval: time.Second,
		MaxWait:      10 * time.Minute,
	}
}

// SetConfig sets the global configuration.
func SetConfig(cfg *Config) {
	globalConfig = cfg
}

// OutputBucket returns the Athena result bucket, falling back to the
// environment's default destination store when none was configured.
func (c *Config) OutputBucket() string {
	if c.AWS.AthenaOutputBucket != "" {
		return c.AWS.AthenaOutputBucket
	}
	if c.Env == "poc" {
		return "athena-destination-store-texttosql"
	}
	return "athena-destination-chatbot"
}

// OutputLocation renders the Athena result location as an s3:// URI.
func (c *Config) OutputLocation() string {
	return fmt.Sprintf("s3://%s/", c.OutputBucket())
}
