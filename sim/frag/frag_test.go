package frag

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joshuapare/memsim/sim/alloc"
	"github.com/joshuapare/memsim/sim/store"
)

func TestInternal(t *testing.T) {
	recs := []alloc.Record{
		{RequestedSize: 25, BlocksUsed: 3},
		{RequestedSize: 10, BlocksUsed: 1},
		{RequestedSize: 1, BlocksUsed: 1},
	}
	assert.Equal(t, 5, InternalFor(recs[0], 10))
	assert.Equal(t, 5+0+9, Internal(recs, 10))
	assert.Equal(t, 0, Internal(nil, 10))
}

func TestExternal(t *testing.T) {
	tests := []struct {
		name string
		runs []store.FreeRun
		want Summary
	}{
		{"no runs", nil, Summary{}},
		{"single run", []store.FreeRun{{0, 4}}, Summary{TotalFree: 40, LargestRun: 40, External: 0, Runs: 1}},
		{"split", []store.FreeRun{{0, 3}, {5, 5}}, Summary{TotalFree: 80, LargestRun: 50, External: 30, Runs: 2}},
		{"equal runs", []store.FreeRun{{0, 2}, {4, 2}, {8, 2}}, Summary{TotalFree: 60, LargestRun: 20, External: 40, Runs: 3}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Summarize(tt.runs, 10))
			assert.Equal(t, tt.want.External, External(tt.runs, 10))
		})
	}
}

func TestExternal_Bounds(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	for range 200 {
		st := store.New(rng.Intn(50))
		for i := range st.Len() {
			if rng.Intn(2) == 0 {
				require.NoError(t, st.Set(i, 1))
			}
		}
		s := Summarize(store.FreeRuns(st), 4)
		require.GreaterOrEqual(t, s.External, 0)
		require.LessOrEqual(t, s.External, s.TotalFree)
		require.Equal(t, st.FreeCount()*4, s.TotalFree)
	}
}

func TestPageUtilization(t *testing.T) {
	rec := alloc.Record{
		RequestedSize: 25,
		BlocksUsed:    3,
		Mode:          alloc.Paging,
		PageTable:     []alloc.PageEntry{{0, 4}, {1, 7}, {2, 9}},
	}
	got := PageUtilization(rec, 10)
	assert.Equal(t, []PageUse{
		{Virtual: 0, Physical: 4, Used: 10, Percent: 100},
		{Virtual: 1, Physical: 7, Used: 10, Percent: 100},
		{Virtual: 2, Physical: 9, Used: 5, Percent: 50},
	}, got)

	exact := alloc.Record{RequestedSize: 8, BlocksUsed: 1, PageTable: []alloc.PageEntry{{0, 0}}}
	assert.Equal(t, 100, PageUtilization(exact, 8)[0].Percent)
	assert.Nil(t, PageUtilization(exact, 0))
}
