package testgen

import (
	"context"
	"strings"
	"sync"

	"github.com/libgraph/libgraph/pkg/graphdb"
)

// GraphCall is one statement seen by a FakeGraph.
type GraphCall struct {
	Query  string
	Params map[string]any
	Write  bool
}

// FakeGraph implements graphdb.Runner. Respond decides what each statement
// returns; a nil Respond returns no rows.
type FakeGraph struct {
	Respond func(query string, params map[string]any) ([]graphdb.Record, error)

	mu        sync.Mutex
	calls     []GraphCall
	commits   int
	rollbacks int
}

func (f *FakeGraph) Read(_ context.Context, query string, params map[string]any) ([]graphdb.Record, error) {
	return f.run(query, params, false)
}

func (f *FakeGraph) Write(ctx context.Context, work func(tx graphdb.Tx) error) error {
	err := work(&fakeTx{f})
	f.mu.Lock()
	defer f.mu.Unlock()
	if err != nil {
		f.rollbacks++
		return err
	}
	f.commits++
	return nil
}

// Calls returns every statement run so far.
func (f *FakeGraph) Calls() []GraphCall {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]GraphCall(nil), f.calls...)
}

// CallsMatching returns the statements whose query contains fragment.
func (f *FakeGraph) CallsMatching(fragment string) []GraphCall {
	var out []GraphCall
	for _, c := range f.Calls() {
		if strings.Contains(c.Query, fragment) {
			out = append(out, c)
		}
	}
	return out
}

// Commits and Rollbacks count finished write transactions.
func (f *FakeGraph) Commits() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.commits
}

func (f *FakeGraph) Rollbacks() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.rollbacks
}

func (f *FakeGraph) run(query string, params map[string]any, write bool) ([]graphdb.Record, error) {
	f.mu.Lock()
	f.calls = append(f.calls, GraphCall{Query: query, Params: params, Write: write})
	respond := f.Respond
	f.mu.Unlock()

	if respond == nil {
		return nil, nil
	}
	return respond(query, params)
}

type fakeTx struct {
	f *FakeGraph
}

func (tx *fakeTx) Run(_ context.Context, query string, params map[string]any) ([]graphdb.Record, error) {
	return tx.f.run(query, params, true)
}
