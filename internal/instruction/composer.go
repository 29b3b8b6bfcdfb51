package instruction

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/aws-samples/text-to-sql-agent-provisioner/internal/discovery"
)

// CharBudget is the advisory length limit for the final agent
// instruction. Composition itself is exhaustive; fitting the budget is
// delegated to the LLM condense step.
const CharBudget = 4000

// SchemaReader lists the catalog database's tables and their columns.
type SchemaReader interface {
	ListTables(ctx context.Context) ([]string, error)
	DescribeTable(ctx context.Context, tableName string) ([]string, error)
}

// preambleParts returns the fixed role/objective/procedure text that
// opens every instruction.
func preambleParts(databaseName string) []string {
	return []string{
		fmt.Sprintf("Role: You are an advanced database querying agent crafted specifically for "+
			"generating precise SQL queries for Amazon Athena concerning the %s.", databaseName),
		"Objective: Generate SQL queries to return data based on the provided schema " +
			"and user request. Ultimately, answer the user's question regarding the data " +
			"generated using SQL Query.",
		"1. Query Decomposition and Understanding:",
		"- Analyze the user’s request to understand the main objective.",
		"- Break down requests into sub-queries that can each address a part of the " +
			"user's request, using the schema provided.",
		"2. SQL Query Creation:",
		"- For each sub-query, use the relevant tables and fields from the provided schema.",
		"- Construct SQL queries that are precise and tailored to retrieve the exact " +
			"data required by the user’s request.",
		"- Use table joins when combining data from two or more tables based on related " +
			"columns. For example, if data is split across multiple tables, each containing " +
			"different attributes about a common entity (such as building id), you may need " +
			"to use a table join. Table joins are also useful when filtering data based on " +
			"conditions that span multiple tables. Lastly, table joins are useful when " +
			"aggregating data from multiple tables or enriching a dataset with additional " +
			"context or descriptive information stored in another table. The types of joins " +
			"are: INNER JOIN, LEFT JOIN, RIGHT JOIN, and FULL JOIN.",
		"- Avoid joins if all the required data is available in a single table.",
		"3. Query Execution and Response:",
		"- Execute the constructed SQL queries against the Amazon Athena database.",
		"- Return the results of the SQL query in a format that answers the user's " +
			"question, ensuring data integrity and accuracy.",
		"If you get the following Lambda error:",
		"<lambda_error>",
		"Lambda response exceeds maximum size 25KB: 123644",
		"</lambda_error>",
		"Then: LIMIT to 10 rows.",
		"The following examples illustrate the kind of queries you should be able to " +
			"construct based on the available data:",
	}
}

// Compose builds the agent instruction from a precomputed schema context.
// Datasets are appended in sorted key order so output is stable.
func Compose(databaseName string, dataContext map[string]discovery.FolderContext) string {
	parts := preambleParts(databaseName)

	names := make([]string, 0, len(dataContext))
	for name := range dataContext {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		parts = append(parts, exampleQueryLine(name, dataContext[name].Columns))
	}
	return strings.Join(parts, " ")
}

// ComposeFromCatalog builds the agent instruction by discovering tables
// and columns through the catalog schema reader.
func ComposeFromCatalog(ctx context.Context, reader SchemaReader, databaseName string) (string, error) {
	parts := preambleParts(databaseName)

	tables, err := reader.ListTables(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to list tables: %w", err)
	}
	for _, table := range tables {
		columns, err := reader.DescribeTable(ctx, table)
		if err != nil {
			return "", fmt.Errorf("failed to describe table %s: %w", table, err)
		}
		parts = append(parts, exampleQueryLine(table, columns))
	}
	return strings.Join(parts, " "), nil
}

func exampleQueryLine(tableName string, columns []string) string {
	quoted := make([]string, len(columns))
	for i, col := range columns {
		quoted[i] = `"` + col + `"`
	}
	sampleQuery := fmt.Sprintf(`SELECT %s FROM "%s" LIMIT 5;`, strings.Join(quoted, ", "), tableName)
	return fmt.Sprintf("- Table `%s` example query: %s", tableName, sampleQuery)
}
