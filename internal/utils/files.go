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
package utils

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/aws-samples/text-to-sql-agent-provisioner/internal/discovery"
)

func DefaultOutputFilePath(databaseName, commandName string) string {
	switch commandName {
	case "generate-instruction":
		return fmt.Sprintf("%s_instruction.txt", databaseName)
	case "crawler-targets":
		return fmt.Sprintf("%s_crawler_targets.json", databaseName)
	default: // discover-schema
		return fmt.Sprintf("%s_schema_context.json", databaseName)
	}
}

func WriteTextFile(path string, content string) error {
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		return fmt.Errorf("failed to write file '%s': %w", path, err)
	}
	return nil
}

// WriteJSONFile marshals v with indentation and writes it to path.
func WriteJSONFile(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal JSON for '%s': %w", path, err)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0644); err != nil {
		return fmt.Errorf("failed to write file '%s': %w", path, err)
	}
	return nil
}

// ReadSchemaContext loads a schema context file produced by the
// discover-schema command.
func ReadSchemaContext(path string) (map[string]discovery.FolderContext, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read context file '%s': %w", path, err)
	}
	var dataContext map[string]discovery.FolderContext
	if err := json.Unmarshal(data, &dataContext); err != nil {
		return nil, fmt.Errorf("failed to parse context file '%s': %w", path, err)
	}
	return dataContext, nil
}
