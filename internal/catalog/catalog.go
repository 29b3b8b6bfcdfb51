package catalog

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/athena"
	"github.com/aws/aws-sdk-go-v2/service/athena/types"
)

// QueryClient is the subset of the Athena API the reader calls. The SDK
// client satisfies it; tests substitute a fake.
type QueryClient interface {
	StartQueryExecution(ctx context.Context, params *athena.StartQueryExecutionInput, optFns ...func(*athena.Options)) (*athena.StartQueryExecutionOutput, error)
	GetQueryExecution(ctx context.Context, params *athena.GetQueryExecutionInput, optFns ...func(*athena.Options)) (*athena.GetQueryExecutionOutput, error)
	GetQueryResults(ctx context.Context, params *athena.GetQueryResultsInput, optFns ...func(*athena.Options)) (*athena.GetQueryResultsOutput, error)
}

// Options configures the polling behavior for asynchronous queries.
type Options struct {
	PollInterval time.Duration // Interval between status checks
	MaxWait      time.Duration // Upper bound on total wait; 0 means no bound
}

// DefaultOptions provides sensible default polling settings
var DefaultOptions = Options{
	PollInterval: time.Second,
	MaxWait:      10 * time.Minute,
}

// Reader lists and describes tables of one catalog database by running
// metadata queries through the interactive SQL service.
type Reader struct {
	client         QueryClient
	database       string
	outputLocation string
	opts           Options
}

func NewReader(client QueryClient, database string, outputLocation string, opts *Options) *Reader {
	o := DefaultOptions
	if opts != nil {
		o = *opts
	}
	if o.PollInterval <= 0 {
		o.PollInterval = DefaultOptions.PollInterval
	}
	return &Reader{
		client:         client,
		database:       database,
		outputLocation: outputLocation,
		opts:           o,
	}
}

// ListTables returns the names of all tables and views in the catalog
// database, in the order the catalog reports them.
func (r *Reader) ListTables(ctx context.Context) ([]string, error) {
	query := fmt.Sprintf("SHOW TABLES IN %s", r.database)
	return r.runMetadataQuery(ctx, query)
}

// DescribeTable returns the column descriptors of one table, in the
// order the catalog reports them.
func (r *Reader) DescribeTable(ctx context.Context, tableName string) ([]string, error) {
	query := fmt.Sprintf("DESCRIBE %s.%s", r.database, tableName)
	return r.runMetadataQuery(ctx, query)
}

// runMetadataQuery submits the query, waits for it to reach a terminal
// state and returns the first cell of every result row past the header.
func (r *Reader) runMetadataQuery(ctx context.Context, query string) ([]string, error) {
	start, err := r.client.StartQueryExecution(ctx, &athena.StartQueryExecutionInput{
		QueryString: aws.String(query),
		QueryExecutionContext: &types.QueryExecutionContext{
			Database: aws.String(r.database),
		},
		ResultConfiguration: &types.ResultConfiguration{
			OutputLocation: aws.String(r.outputLocation),
		},
	})
	if err != nil {
		return nil, fmt.Errorf("start query execution: %w", err)
	}

	queryExecutionID := aws.ToString(start.QueryExecutionId)
	if err := r.waitForQuery(ctx, queryExecutionID); err != nil {
		return nil, err
	}
	return r.fetchFirstColumn(ctx, queryExecutionID)
}

// waitForQuery polls the query status at a fixed interval until it
// reaches a terminal state. A non-SUCCEEDED terminal state is returned
// as a *QueryExecutionError; exceeding MaxWait fails the wait.
func (r *Reader) waitForQuery(ctx context.Context, queryExecutionID string) error {
	var deadline time.Time
	if r.opts.MaxWait > 0 {
		deadline = time.Now().Add(r.opts.MaxWait)
	}

	for {
		out, err := r.client.GetQueryExecution(ctx, &athena.GetQueryExecutionInput{
			QueryExecutionId: aws.String(queryExecutionID),
		})
		if err != nil {
			return fmt.Errorf("get query execution %s: %w", queryExecutionID, err)
		}

		state := out.QueryExecution.Status.State
		switch state {
		case types.QueryExecutionStateSucceeded:
			return nil
		case types.QueryExecutionStateFailed, types.QueryExecutionStateCancelled:
			return &QueryExecutionError{
				QueryExecutionID: queryExecutionID,
				State:            state,
				Reason:           aws.ToString(out.QueryExecution.Status.StateChangeReason),
			}
		}

		if !deadline.IsZero() && time.Now().After(deadline) {
			log.Printf("ERROR: Query %s still %s after %s, giving up", queryExecutionID, state, r.opts.MaxWait)
			return fmt.Errorf("query %s did not reach a terminal state within %s", queryExecutionID, r.opts.MaxWait)
		}

		timer := time.NewTimer(r.opts.PollInterval)
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}
	}
}

// fetchFirstColumn pages through the result set and collects the first
// cell of each row, skipping the header row and empty cells.
func (r *Reader) fetchFirstColumn(ctx context.Context, queryExecutionID string) ([]string, error) {
	var values []string
	headerSkipped := false

	paginator := athena.NewGetQueryResultsPaginator(r.client, &athena.GetQueryResultsInput{
		QueryExecutionId: aws.String(queryExecutionID),
	})
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("get query results %s: %w", queryExecutionID, err)
		}
		if page.ResultSet == nil {
			continue
		}
		for _, row := range page.ResultSet.Rows {
			if !headerSkipped {
				headerSkipped = true
				continue
			}
			if len(row.Data) == 0 {
				continue
			}
			value := strings.TrimSpace(aws.ToString(row.Data[0].VarCharValue))
			if value == "" {
				continue
			}
			values = append(values, value)
		}
	}
	return values, nil
}
