package catalog

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/mikecinchan/tcg-deck-editor/pkg/httputil"
)

var errUpstream = errors.New("upstream unavailable")

// fakeSource is an in-memory Source with failure injection and call counts.
type fakeSource struct {
	mu sync.Mutex

	groups  []GroupSummary
	listErr error
	sets    map[string]*RawGroup
	setErr  map[string]error
	items   map[string]*RawItem
	itemErr map[string]error

	listCalls  int
	groupCalls map[string]int
	itemCalls  int
	refreshes  []bool
	inFlight   int
	maxFlight  int
	itemDelay  time.Duration
}

// newFakeSource builds a source with the given sets, each holding n cards
// named "<set>-001" and upward.
func newFakeSource(n int, setIDs ...string) *fakeSource {
	f := &fakeSource{
		sets:       map[string]*RawGroup{},
		setErr:     map[string]error{},
		items:      map[string]*RawItem{},
		itemErr:    map[string]error{},
		groupCalls: map[string]int{},
	}
	for _, id := range setIDs {
		f.groups = append(f.groups, GroupSummary{ID: id, Name: "Set " + id})
		g := &RawGroup{ID: id, Name: "Set " + id}
		for i := 1; i <= n; i++ {
			local := fmt.Sprintf("%03d", i)
			cardID := id + "-" + local
			g.Items = append(g.Items, RawItem{ID: cardID, LocalID: local, Name: "Card " + cardID})
			f.items[cardID] = &RawItem{
				ID:       cardID,
				LocalID:  local,
				Name:     "Card " + cardID,
				Category: []byte(`"Pokemon"`),
				Types:    []byte(`["Grass"]`),
			}
		}
		f.sets[id] = g
	}
	return f
}

func (f *fakeSource) ListGroups(ctx context.Context) ([]GroupSummary, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.listCalls++
	if f.listErr != nil {
		return nil, f.listErr
	}
	return append([]GroupSummary(nil), f.groups...), nil
}

func (f *fakeSource) GetGroup(ctx context.Context, id string) (*RawGroup, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.groupCalls[id]++
	if err := f.setErr[id]; err != nil {
		return nil, err
	}
	g, ok := f.sets[id]
	if !ok {
		return nil, httputil.Permanent(errors.New("no such set"))
	}
	cp := *g
	cp.Items = append([]RawItem(nil), g.Items...)
	return &cp, nil
}

func (f *fakeSource) GetItem(ctx context.Context, id string, refresh bool) (*RawItem, error) {
	f.mu.Lock()
	f.itemCalls++
	f.refreshes = append(f.refreshes, refresh)
	f.inFlight++
	f.maxFlight = max(f.maxFlight, f.inFlight)
	delay := f.itemDelay
	f.mu.Unlock()

	if delay > 0 {
		time.Sleep(delay)
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	f.inFlight--
	if err := f.itemErr[id]; err != nil {
		return nil, err
	}
	it, ok := f.items[id]
	if !ok {
		return nil, httputil.Permanent(errors.New("no such card"))
	}
	cp := *it
	return &cp, nil
}

func (f *fakeSource) setListErr(err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.listErr = err
}

func (f *fakeSource) counts() (list, items int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.listCalls, f.itemCalls
}

// noSleep makes retries immediate.
func noSleep(context.Context, time.Duration) error { return nil }

func testFetchOptions() FetchOptions {
	return FetchOptions{
		Timeout: time.Second,
		Retry:   httputil.Policy{Attempts: 3, Initial: 2 * time.Second, Sleep: noSleep},
	}
}
