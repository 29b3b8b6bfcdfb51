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
package provision

import (
	"context"
	"fmt"

	"github.com/aws-samples/text-to-sql-agent-provisioner/internal/storage"
)

// CrawlerTarget is one S3 data source for the catalog crawler, in the
// shape the deploy step consumes.
type CrawlerTarget struct {
	Path string `json:"path"`
}

// DataSources enumerates the bucket's top-level folders and renders one
// crawler target per folder, pointing at the DynamoDB-export data path.
func DataSources(ctx context.Context, store storage.ObjectStore, bucket string) ([]CrawlerTarget, error) {
	folders, err := store.ListFolders(ctx, bucket)
	if err != nil {
		return nil, err
	}

	targets := make([]CrawlerTarget, 0, len(folders))
	for _, folder := range folders {
		targets = append(targets, CrawlerTarget{
			Path: fmt.Sprintf("s3://%s/%sAWSDynamoDB/data/", bucket, folder),
		})
	}
	return targets, nil
}
