package batch

import (
	"errors"
	"fmt"
	"testing"
)

func TestRunAccountsForEveryItem(t *testing.T) {
	items := []string{"1", "2", "3", "4", "5"}

	res := Run(items, func(s string) string { return s }, func(s string) error {
		if s == "2" || s == "4" {
			return errors.New("nope")
		}
		return nil
	})

	if res.Succeeded != 3 {
		t.Fatalf("succeeded = %d, want 3", res.Succeeded)
	}
	if got := res.Succeeded + len(res.Skipped); got != len(items) {
		t.Fatalf("succeeded + skipped = %d, want %d", got, len(items))
	}
}

func TestRunPreservesInputOrder(t *testing.T) {
	items := []string{"c", "a", "b"}

	res := Run(items, func(s string) string { return s }, func(s string) error {
		return errors.New("skip " + s)
	})

	if res.Succeeded != 0 {
		t.Fatalf("succeeded = %d, want 0", res.Succeeded)
	}
	want := []string{"c", "a", "b"}
	for i, skip := range res.Skipped {
		if skip.ID != want[i] {
			t.Fatalf("skipped[%d].ID = %q, want %q", i, skip.ID, want[i])
		}
		if skip.Reason != "skip "+want[i] {
			t.Fatalf("skipped[%d].Reason = %q", i, skip.Reason)
		}
	}
}

func TestRunOneFailureNeverAbortsTheRest(t *testing.T) {
	attempted := 0

	res := Run([]int{1, 2, 3}, func(i int) string { return fmt.Sprint(i) }, func(i int) error {
		attempted++
		if i == 1 {
			return errors.New("first item bad")
		}
		return nil
	})

	if attempted != 3 {
		t.Fatalf("attempted = %d, want 3", attempted)
	}
	if res.Succeeded != 2 || len(res.Skipped) != 1 {
		t.Fatalf("got succeeded=%d skipped=%d", res.Succeeded, len(res.Skipped))
	}
}

func TestRunEmptyInput(t *testing.T) {
	res := Run(nil, func(s string) string { return s }, func(s string) error { return nil })
	if res.Succeeded != 0 || len(res.Skipped) != 0 {
		t.Fatalf("empty input produced succeeded=%d skipped=%d", res.Succeeded, len(res.Skipped))
	}
	if res.Skipped == nil {
		t.Fatal("Skipped must serialize as [] not null")
	}
}

func TestRunRowsNumbersRowsAfterHeader(t *testing.T) {
	rows := []map[string]string{
		{"name": "ok"},
		{"name": ""},
		{"name": "fine"},
	}

	res := RunRows(rows, func(row map[string]string) error {
		if row["name"] == "" {
			return errors.New("name is required")
		}
		return nil
	})

	if res.Created != 2 {
		t.Fatalf("created = %d, want 2", res.Created)
	}
	if len(res.Errors) != 1 {
		t.Fatalf("errors = %d, want 1", len(res.Errors))
	}
	// row 1 is the header, so the second data row is row 3
	if res.Errors[0].Row != 3 {
		t.Fatalf("row = %d, want 3", res.Errors[0].Row)
	}
	if res.Errors[0].Message != "name is required" {
		t.Fatalf("message = %q", res.Errors[0].Message)
	}
	if res.Errors[0].Values["name"] != "" {
		t.Fatalf("values = %v", res.Errors[0].Values)
	}
}
