// Package batch implements the accumulate-skip-continue loop shared by
// bulk status changes, bulk archiving and CSV imports: every item is
// attempted exactly once, in input order, and one bad item never fails
// the whole batch.
package batch

// Skip records one item that was evaluated but not applied.
type Skip struct {
	ID     string `json:"id"`
	Reason string `json:"reason"`
}

// Result of an id-keyed batch. Succeeded + len(Skipped) always equals
// the number of input items.
type Result struct {
	Succeeded int
	Skipped   []Skip
}

// Run applies op to every item, in input order. A failing item becomes
// a skip entry carrying the item identifier and the error message.
func Run[T any](items []T, ident func(T) string, op func(T) error) Result {
	res := Result{Skipped: []Skip{}}
	for _, item := range items {
		if err := op(item); err != nil {
			res.Skipped = append(res.Skipped, Skip{ID: ident(item), Reason: err.Error()})
			continue
		}
		res.Succeeded++
	}
	return res
}

// RowError is one rejected CSV row. Row is 1-based and counts the
// header row, so the first data row is 2. Values carries the raw cells
// for user-facing diagnostics.
type RowError struct {
	Row     int               `json:"row"`
	Message string            `json:"message"`
	Values  map[string]string `json:"values"`
}

// ImportResult mirrors Result for row-keyed imports.
type ImportResult struct {
	Created int
	Errors  []RowError
}

// RunRows is Run for parsed CSV rows: the row number is the identifier
// and the raw values ride along with each error.
func RunRows(rows []map[string]string, op func(row map[string]string) error) ImportResult {
	res := ImportResult{Errors: []RowError{}}
	for i, row := range rows {
		if err := op(row); err != nil {
			res.Errors = append(res.Errors, RowError{
				Row:     i + 2,
				Message: err.Error(),
				Values:  row,
			})
			continue
		}
		res.Created++
	}
	return res
}
