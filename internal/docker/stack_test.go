package docker

import (
	"context"
	"errors"
	"testing"

	"github.com/docker/docker/api/types/container"
	"github.com/google/go-cmp/cmp"
)

type fakeLister struct {
	byLabel map[string][]container.Summary
	err     error
	closed  bool
}

func (f *fakeLister) ContainerList(_ context.Context, opts container.ListOptions) ([]container.Summary, error) {
	if f.err != nil {
		return nil, f.err
	}
	var out []container.Summary
	for _, label := range opts.Filters.Get("label") {
		out = append(out, f.byLabel[label]...)
	}
	return out, nil
}

func (f *fakeLister) Close() error {
	f.closed = true
	return nil
}

func TestRunningServices(t *testing.T) {
	fake := &fakeLister{byLabel: map[string][]container.Summary{
		"com.docker.stack.namespace=ab": {
			{ID: "1", Names: []string{"/ab_api.1.xyz"}},
			{ID: "0123456789abcdef"},
		},
		"com.docker.compose.project=ab": {
			{ID: "2", Names: []string{"/ab_api.1.xyz"}},
			{ID: "3", Names: []string{"/ab-db-1"}},
		},
	}}

	got, err := NewStackCheckerWith(fake).RunningServices(context.Background(), "ab")
	if err != nil {
		t.Fatalf("RunningServices: %v", err)
	}
	want := []string{"0123456789ab", "ab-db-1", "ab_api.1.xyz"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("RunningServices mismatch (-want +got):\n%s", diff)
	}
	if !fake.closed {
		t.Error("client was not closed")
	}
}

func TestRunningServicesError(t *testing.T) {
	fake := &fakeLister{err: errors.New("engine down")}
	if _, err := NewStackCheckerWith(fake).RunningServices(context.Background(), "ab"); err == nil {
		t.Error("expected an error")
	}
}
