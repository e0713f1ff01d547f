package crm

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeQuerier serves canned pages keyed by offset.
type fakeQuerier struct {
	pages map[int]*Page
	err   error
	calls []int
}

func (f *fakeQuerier) Query(_ context.Context, _ string, offset, _ int) (*Page, error) {
	f.calls = append(f.calls, offset)
	if f.err != nil {
		return nil, f.err
	}
	if p, ok := f.pages[offset]; ok {
		return p, nil
	}
	return &Page{}, nil
}

func TestPagerEachWalksAllPages(t *testing.T) {
	q := &fakeQuerier{pages: map[int]*Page{
		0: {Data: []Record{{"id": "1"}, {"id": "2"}}, MoreRecords: true},
		2: {Data: []Record{{"id": "3"}}, MoreRecords: false},
	}}
	p := &Pager{Client: q, Select: "SELECT id FROM X", PageSize: 2}

	var seen []string
	err := p.Each(context.Background(), func(r Record) error {
		seen = append(seen, r.ID())
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"1", "2", "3"}, seen)
	assert.Equal(t, []int{0, 2}, q.calls)
}

func TestPagerEachDefensiveTermination(t *testing.T) {
	// more_records lies: the next page is empty. The walk must stop anyway.
	q := &fakeQuerier{pages: map[int]*Page{
		0: {Data: []Record{{"id": "1"}}, MoreRecords: true},
		2: {Data: nil, MoreRecords: true},
	}}
	p := &Pager{Client: q, Select: "SELECT id FROM X", PageSize: 2}

	count := 0
	err := p.Each(context.Background(), func(Record) error {
		count++
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, 1, count)
	assert.Equal(t, []int{0, 2}, q.calls)
}

func TestPagerEachPropagatesPageError(t *testing.T) {
	q := &fakeQuerier{err: errors.New("rate limited")}
	p := &Pager{Client: q, Select: "SELECT id FROM X"}

	err := p.Each(context.Background(), func(Record) error { return nil })
	require.Error(t, err)
	assert.Contains(t, err.Error(), "offset 0")
}

func TestPagerEachPropagatesCallbackError(t *testing.T) {
	q := &fakeQuerier{pages: map[int]*Page{
		0: {Data: []Record{{"id": "1"}}, MoreRecords: true},
	}}
	p := &Pager{Client: q, Select: "SELECT id FROM X", PageSize: 2}

	boom := errors.New("stop")
	err := p.Each(context.Background(), func(Record) error { return boom })
	assert.ErrorIs(t, err, boom)
}
