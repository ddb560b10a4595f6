package session

import (
	"bytes"
	"errors"
	"log/slog"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joshuapare/memsim/sim/alloc"
	"github.com/joshuapare/memsim/sim/frag"
	"github.com/joshuapare/memsim/sim/store"
)

func configured(t *testing.T, total, block int, mode alloc.Mode) *Session {
	t.Helper()
	s := New()
	_, err := s.Configure(total, block, mode)
	require.NoError(t, err)
	return s
}

func TestConfigure_Invalid(t *testing.T) {
	tests := []struct {
		name         string
		total, block int
		mode         alloc.Mode
	}{
		{"zero total", 0, 10, alloc.Segmentation},
		{"negative total", -100, 10, alloc.Segmentation},
		{"zero block", 100, 0, alloc.Paging},
		{"negative block", 100, -4, alloc.Paging},
		{"unknown mode", 100, 10, alloc.Mode(9)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := New()
			_, err := s.Configure(tt.total, tt.block, tt.mode)
			require.ErrorIs(t, err, ErrInvalidConfig)
			assert.Equal(t, Unconfigured, s.State())
		})
	}
}

func TestConfigure_InvalidKeepsPreviousState(t *testing.T) {
	s := configured(t, 100, 10, alloc.Segmentation)
	_, err := s.SubmitBatch([]Request{{Name: "A", Size: 25}}, alloc.FirstFit)
	require.NoError(t, err)

	_, err = s.Configure(0, 10, alloc.Segmentation)
	require.ErrorIs(t, err, ErrInvalidConfig)
	assert.Equal(t, Configured, s.State())
	assert.Len(t, s.Records(), 1)
}

func TestConfigure_FloorsBlockCount(t *testing.T) {
	s := New()
	cfg, err := s.Configure(105, 10, alloc.Segmentation)
	require.NoError(t, err)
	assert.Equal(t, 10, cfg.TotalBlocks)
	assert.Len(t, s.Blocks(), 10)

	st := s.Stats()
	assert.Equal(t, 105, st.FreeBytes, "remainder bytes count as free")
	assert.Equal(t, 100.0, st.FreePercent)
}

func TestConfigure_BlockLargerThanTotal(t *testing.T) {
	s := configured(t, 5, 10, alloc.Segmentation)
	assert.Empty(t, s.Blocks())
	assert.Empty(t, s.FreeRuns())

	_, err := s.SubmitBatch([]Request{{Size: 1}}, alloc.FirstFit)
	require.ErrorIs(t, err, alloc.ErrInsufficientMemory)
}

func TestConfigure_ResetsRecords(t *testing.T) {
	s := configured(t, 100, 10, alloc.Segmentation)
	_, err := s.SubmitBatch([]Request{{Size: 50}}, alloc.FirstFit)
	require.NoError(t, err)

	_, err = s.Configure(200, 20, alloc.Paging)
	require.NoError(t, err)
	assert.Empty(t, s.Records())
	assert.Equal(t, []store.FreeRun{{Start: 0, Length: 10}}, s.FreeRuns())
	assert.Equal(t, alloc.Paging, s.Mode())
}

func TestParseConfig(t *testing.T) {
	cfg, err := ParseConfig(" 100 ", "10", "Paging")
	require.NoError(t, err)
	assert.Equal(t, Config{TotalBytes: 100, BlockSize: 10, TotalBlocks: 10, Mode: alloc.Paging}, cfg)

	for _, in := range [][3]string{
		{"abc", "10", "paging"},
		{"100", "", "paging"},
		{"100", "1.5", "segmentation"},
		{"100", "10", "buddy"},
		{"-1", "10", "seg"},
	} {
		_, err := ParseConfig(in[0], in[1], in[2])
		assert.ErrorIs(t, err, ErrInvalidConfig, "input %v", in)
	}
}

func TestSubmitBatch_NotConfigured(t *testing.T) {
	s := New()
	_, err := s.SubmitBatch([]Request{{Size: 10}}, alloc.FirstFit)
	require.ErrorIs(t, err, ErrNotConfigured)
	require.ErrorIs(t, s.Deallocate(1), ErrNotConfigured)
	assert.Equal(t, Stats{Mode: "segmentation"}, s.Stats())
}

func TestSubmitBatch_Empty(t *testing.T) {
	s := configured(t, 100, 10, alloc.Segmentation)
	_, err := s.SubmitBatch(nil, alloc.FirstFit)
	require.ErrorIs(t, err, ErrEmptyBatch)
}

func TestSubmitBatch_InvalidSizeRejectsWholeBatch(t *testing.T) {
	s := configured(t, 100, 10, alloc.Segmentation)
	recs, err := s.SubmitBatch([]Request{{Name: "ok", Size: 20}, {Name: "bad", Size: 0}}, alloc.FirstFit)
	require.ErrorIs(t, err, alloc.ErrInvalidSize)
	assert.Nil(t, recs)
	assert.Empty(t, s.Records())
	assert.Equal(t, 0, s.Stats().UsedBlocks)

	var aerr *alloc.Error
	require.True(t, errors.As(err, &aerr))
	assert.Equal(t, "bad", aerr.Process.Name)

	// ids were not consumed by the rejected batch
	recs, err = s.SubmitBatch([]Request{{Size: 10}}, alloc.FirstFit)
	require.NoError(t, err)
	assert.Equal(t, store.ProcessID(1), recs[0].ProcessID)
}

func TestSubmitBatch_NamesAndIDs(t *testing.T) {
	s := configured(t, 100, 10, alloc.Paging)
	recs, err := s.SubmitBatch([]Request{
		{Name: "  editor ", Size: 10},
		{Name: "", Size: 10},
		{Name: "café", Size: 10},
	}, alloc.FirstFit)
	require.NoError(t, err)
	require.Len(t, recs, 3)

	assert.Equal(t, store.ProcessID(1), recs[0].ProcessID)
	assert.Equal(t, "editor", recs[0].Name)
	assert.Equal(t, "Process 2", recs[1].Name)
	assert.Equal(t, "café", recs[2].Name)

	recs, err = s.SubmitBatch([]Request{{Size: 10}}, alloc.FirstFit)
	require.NoError(t, err)
	assert.Equal(t, store.ProcessID(4), recs[0].ProcessID)
	assert.Equal(t, "Process 4", recs[0].Name)
}

func TestSubmitBatch_IDsSurviveReset(t *testing.T) {
	s := configured(t, 100, 10, alloc.Segmentation)
	_, err := s.SubmitBatch([]Request{{Size: 10}, {Size: 10}}, alloc.FirstFit)
	require.NoError(t, err)

	require.NoError(t, s.SwitchMode(alloc.Paging))
	assert.Equal(t, Unconfigured, s.State())
	assert.Equal(t, alloc.Paging, s.Mode())

	_, err = s.Configure(100, 10, alloc.Paging)
	require.NoError(t, err)
	recs, err := s.SubmitBatch([]Request{{Size: 10}}, alloc.FirstFit)
	require.NoError(t, err)
	assert.Equal(t, store.ProcessID(3), recs[0].ProcessID)
}

func TestSwitchMode_Unknown(t *testing.T) {
	s := configured(t, 100, 10, alloc.Segmentation)
	require.ErrorIs(t, s.SwitchMode(alloc.Mode(0)), ErrInvalidConfig)
	assert.Equal(t, Configured, s.State())
}

// TestScenario_FirstFit is the 100KB / 10KB walk-through: 25KB lands at 0,
// 15KB right after it, and freeing the first leaves runs at 0 and 5.
func TestScenario_FirstFit(t *testing.T) {
	s := configured(t, 100, 10, alloc.Segmentation)

	recs, err := s.SubmitBatch([]Request{{Name: "A", Size: 25}}, alloc.FirstFit)
	require.NoError(t, err)
	assert.Equal(t, 3, recs[0].BlocksUsed)
	assert.Equal(t, 0, recs[0].Start)

	recs, err = s.SubmitBatch([]Request{{Name: "B", Size: 15}}, alloc.FirstFit)
	require.NoError(t, err)
	assert.Equal(t, 2, recs[0].BlocksUsed)
	assert.Equal(t, 3, recs[0].Start)

	require.NoError(t, s.Deallocate(1))
	assert.Equal(t, []store.FreeRun{{Start: 0, Length: 3}, {Start: 5, Length: 5}}, s.FreeRuns())
	require.NoError(t, s.Verify())

	st := s.Stats()
	assert.Equal(t, 20, st.UsedBytes)
	assert.Equal(t, 80, st.FreeBytes)
	assert.Equal(t, 20.0, st.UsedPercent)
	assert.Equal(t, 80.0, st.FreePercent)
	require.NotNil(t, st.ExternalFragBytes)
	assert.Equal(t, 30, *st.ExternalFragBytes)
	require.NotNil(t, st.LargestFreeRun)
	assert.Equal(t, 50, *st.LargestFreeRun)
	assert.Nil(t, st.InternalFragBytes)
	assert.Equal(t, 1, st.Processes)
}

func TestScenario_Paging(t *testing.T) {
	s := configured(t, 100, 10, alloc.Paging)

	recs, err := s.SubmitBatch([]Request{{Name: "A", Size: 25}}, alloc.FirstFit)
	require.NoError(t, err)
	assert.Equal(t, 3, recs[0].BlocksUsed)
	assert.Len(t, recs[0].PageTable, 3)

	st := s.Stats()
	require.NotNil(t, st.InternalFragBytes)
	assert.Equal(t, 5, *st.InternalFragBytes)
	assert.Nil(t, st.ExternalFragBytes)
	require.NoError(t, s.Verify())
}

// TestScenario_Failure: a process too large for any free run stops the batch
// but keeps the processes placed before it.
func TestScenario_Failure(t *testing.T) {
	s := configured(t, 100, 10, alloc.Segmentation)
	recs, err := s.SubmitBatch([]Request{
		{Name: "A", Size: 40},
		{Name: "huge", Size: 70},
		{Name: "C", Size: 10},
	}, alloc.FirstFit)
	require.ErrorIs(t, err, alloc.ErrInsufficientMemory)
	require.Len(t, recs, 1)
	assert.Equal(t, "A", recs[0].Name)

	assert.Len(t, s.Records(), 1)
	_, ok := s.Record(2)
	assert.False(t, ok)
	assert.Equal(t, []store.FreeRun{{Start: 4, Length: 6}}, s.FreeRuns())
	assert.Contains(t, err.Error(), `"huge"`)
	require.NoError(t, s.Verify())
}

// A size near the int limit is a valid request that simply does not fit.
func TestSubmitBatch_HugeSize(t *testing.T) {
	for _, mode := range []alloc.Mode{alloc.Segmentation, alloc.Paging} {
		t.Run(mode.String(), func(t *testing.T) {
			s := configured(t, 100, 10, mode)
			recs, err := s.SubmitBatch([]Request{{Name: "big", Size: math.MaxInt}}, alloc.FirstFit)
			require.ErrorIs(t, err, alloc.ErrInsufficientMemory)
			assert.NotErrorIs(t, err, alloc.ErrInvalidSize)
			assert.Empty(t, recs)

			var aerr *alloc.Error
			require.ErrorAs(t, err, &aerr)
			assert.Equal(t, math.MaxInt/10+1, aerr.Needed)
			assert.Equal(t, []store.FreeRun{{Start: 0, Length: 10}}, s.FreeRuns())
		})
	}
}

func TestDeallocate_UnknownIsNoop(t *testing.T) {
	s := configured(t, 100, 10, alloc.Segmentation)
	_, err := s.SubmitBatch([]Request{{Size: 30}}, alloc.FirstFit)
	require.NoError(t, err)
	before := s.Blocks()

	require.NoError(t, s.Deallocate(42))
	require.NoError(t, s.Deallocate(1))
	require.NoError(t, s.Deallocate(1))
	assert.NotEqual(t, before, s.Blocks())
	assert.Equal(t, make([]store.ProcessID, 10), s.Blocks())
}

func TestStats_NearFull(t *testing.T) {
	s := configured(t, 100, 10, alloc.Paging)
	_, err := s.SubmitBatch([]Request{{Size: 90}}, alloc.FirstFit)
	require.NoError(t, err)
	assert.False(t, s.Stats().NearFull, "exactly 90%% is not near full")

	_, err = s.SubmitBatch([]Request{{Size: 5}}, alloc.FirstFit)
	require.NoError(t, err)
	st := s.Stats()
	assert.True(t, st.NearFull)
	assert.Equal(t, 100.0, st.UsedPercent)
	assert.Equal(t, 0, st.FreeBytes)
}

func TestStats_PercentRounding(t *testing.T) {
	s := configured(t, 30, 10, alloc.Segmentation)
	_, err := s.SubmitBatch([]Request{{Size: 10}}, alloc.FirstFit)
	require.NoError(t, err)
	st := s.Stats()
	assert.Equal(t, 33.3, st.UsedPercent)
	assert.Equal(t, 66.7, st.FreePercent)
}

func TestSegmentTable(t *testing.T) {
	s := configured(t, 100, 10, alloc.Segmentation)
	_, err := s.SubmitBatch([]Request{{Name: "A", Size: 25}, {Name: "B", Size: 15}}, alloc.FirstFit)
	require.NoError(t, err)

	assert.Equal(t, []SegmentRow{
		{ProcessID: 1, Name: "A", Base: 0, Limit: 30},
		{ProcessID: 2, Name: "B", Base: 30, Limit: 20},
	}, s.SegmentTable())
	assert.Nil(t, s.PageTable())
}

func TestPageTable(t *testing.T) {
	s := configured(t, 100, 10, alloc.Paging)
	_, err := s.SubmitBatch([]Request{{Name: "A", Size: 25}}, alloc.FirstFit)
	require.NoError(t, err)

	assert.Equal(t, []PageRow{
		{ProcessID: 1, Name: "A", PageUse: frag.PageUse{Virtual: 0, Physical: 0, Used: 10, Percent: 100}},
		{ProcessID: 1, Name: "A", PageUse: frag.PageUse{Virtual: 1, Physical: 1, Used: 10, Percent: 100}},
		{ProcessID: 1, Name: "A", PageUse: frag.PageUse{Virtual: 2, Physical: 2, Used: 5, Percent: 50}},
	}, s.PageTable())
	assert.Nil(t, s.SegmentTable())
}

func TestSpans(t *testing.T) {
	s := configured(t, 50, 10, alloc.Segmentation)
	_, err := s.SubmitBatch([]Request{{Size: 20}}, alloc.FirstFit)
	require.NoError(t, err)
	assert.Equal(t, []store.Span{
		{Start: 0, Length: 2, Owner: 1},
		{Start: 2, Length: 3, Owner: store.Free},
	}, s.Spans())
}

func TestWithLogger(t *testing.T) {
	var buf bytes.Buffer
	log := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	s := New(WithLogger(log))
	_, err := s.Configure(100, 10, alloc.Segmentation)
	require.NoError(t, err)
	_, err = s.SubmitBatch([]Request{{Size: 200}}, alloc.FirstFit)
	require.Error(t, err)

	out := buf.String()
	assert.Contains(t, out, "session configured")
	assert.Contains(t, out, "batch stopped")
}
