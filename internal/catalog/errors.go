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
package catalog

import (
	"fmt"

	"github.com/aws/aws-sdk-go-v2/service/athena/types"
)

// QueryExecutionError represents a query that reached a terminal state
// other than SUCCEEDED. The query is never retried automatically.
type QueryExecutionError struct {
	QueryExecutionID string
	State            types.QueryExecutionState
	Reason           string
}

func (e *QueryExecutionError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("query %s failed with state %s: %s", e.QueryExecutionID, e.State, e.Reason)
	}
	return fmt.Sprintf("query %s failed with state %s", e.QueryExecutionID, e.State)
}
