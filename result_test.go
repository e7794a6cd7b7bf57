package nodewire

import (
	"errors"
	"testing"

	"github.com/creachadair/mds/value"
	"github.com/google/go-cmp/cmp"
)

func testResult(t *testing.T) *Result {
	t.Helper()
	tree := NewTree(testRegistry(), nil)
	return NewResult(tree, []AnnotatedValue{
		{
			Value:     Float64(1000),
			Path:      "/dev1234/demods/0/rate",
			Timestamp: value.Just[uint64](100),
		},
		{
			Value:     Int64(1),
			Path:      "/dev1234/demods/0/enable",
			Timestamp: value.Just[uint64](101),
		},
	})
}

func TestResultPaths(t *testing.T) {
	r := testResult(t)
	want := []NodePath{
		"/dev1234/demods/0/enable",
		"/dev1234/demods/0/rate",
	}
	if diff := cmp.Diff(r.Paths(), want); diff != "" {
		t.Errorf("wrong Paths (-got+want):\n%s", diff)
	}
}

func TestResultValue(t *testing.T) {
	r := testResult(t)

	av, err := r.Value("/dev1234/demods/0/rate")
	if err != nil {
		t.Fatalf("Value: %v", err)
	}
	if diff := cmp.Diff(av.Value, Value(Float64(1000))); diff != "" {
		t.Errorf("wrong value (-got+want):\n%s", diff)
	}

	var perr InvalidPathError
	// A registered path without a value in this snapshot.
	if _, err := r.Value("/dev1234/demods/1/rate"); !errors.As(err, &perr) {
		t.Errorf("Value on valueless path: got error %v, want InvalidPathError", err)
	}
	// A path that addresses nothing at all.
	if _, err := r.Value("/nonexistent"); !errors.As(err, &perr) {
		t.Errorf("Value on bogus path: got error %v, want InvalidPathError", err)
	}
}

func TestResultChildren(t *testing.T) {
	r := testResult(t)

	got, err := r.Children("/dev1234/demods/0")
	if err != nil {
		t.Fatalf("Children: %v", err)
	}
	if diff := cmp.Diff(got, []string{"enable", "rate"}); diff != "" {
		t.Errorf("wrong children (-got+want):\n%s", diff)
	}

	// Navigation is limited to paths that carry values: the oscs
	// subtree exists in the registry but not in this snapshot.
	got, err = r.Children("/dev1234")
	if err != nil {
		t.Fatalf("Children: %v", err)
	}
	if diff := cmp.Diff(got, []string{"demods"}); diff != "" {
		t.Errorf("wrong children (-got+want):\n%s", diff)
	}
}

func TestResultLeafAndTimestamp(t *testing.T) {
	r := testResult(t)

	if !r.IsLeafWithValue("/dev1234/demods/0/rate") {
		t.Error("IsLeafWithValue on valued leaf: got false, want true")
	}
	if r.IsLeafWithValue("/dev1234/demods/0") {
		t.Error("IsLeafWithValue on interior prefix: got true, want false")
	}

	ts, ok := r.Timestamp().GetOK()
	if !ok {
		t.Fatal("Timestamp: got absent, want present")
	}
	// Paths iterate sorted, so the enable node's stamp comes first.
	if want := uint64(101); ts != want {
		t.Errorf("Timestamp: got %d, want %d", ts, want)
	}
}
