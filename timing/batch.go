package timing

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"
)

// DeleteConcurrency caps the number of in-flight deletes in DeleteMany.
const DeleteConcurrency = 5

// BatchResult contains the results of a batch delete operation
type BatchResult struct {
	Requested int
	Deleted   []string
	Failed    []BatchError
}

// OK reports whether every delete succeeded.
func (r BatchResult) OK() bool {
	return len(r.Failed) == 0
}

// BatchError contains information about a failed delete operation
type BatchError struct {
	ID  string
	Err error
}

// Error implements the error interface
func (e BatchError) Error() string {
	return fmt.Sprintf("failed to delete %s: %v", e.ID, e.Err)
}

func (e BatchError) Unwrap() error {
	return e.Err
}

// deleteMany runs del for every id with bounded concurrency. A failure
// never cancels the remaining deletes. Results keep the input order.
func deleteMany(ctx context.Context, ids []string, del func(context.Context, string) error) BatchResult {
	result := BatchResult{
		Requested: len(ids),
	}

	if len(ids) == 0 {
		return result
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(DeleteConcurrency)

	// one slot per id, so goroutines never share an index
	errs := make([]error, len(ids))

	for i, id := range ids {
		g.Go(func() error {
			errs[i] = del(ctx, id)
			return nil // Don't stop on individual errors
		})
	}

	_ = g.Wait()

	for i, id := range ids {
		if errs[i] != nil {
			result.Failed = append(result.Failed, BatchError{ID: id, Err: errs[i]})
			continue
		}
		result.Deleted = append(result.Deleted, id)
	}

	return result
}
