package scenario

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joshuapare/memsim/sim/alloc"
	"github.com/joshuapare/memsim/sim/session"
	"github.com/joshuapare/memsim/sim/store"
)

func loadFragmented(t *testing.T) *Scenario {
	t.Helper()
	sc, err := LoadFile("testdata/fragmented.json")
	require.NoError(t, err)
	return sc
}

func TestLoadFile(t *testing.T) {
	sc := loadFragmented(t)
	assert.Equal(t, "fragmented", sc.Name)
	assert.Equal(t, EncodingUTF8, sc.Encoding)
	require.Len(t, sc.Steps, 4)
	assert.Len(t, sc.Steps[0].Allocate, 5)
	assert.True(t, sc.Steps[1].IsFree())
	assert.Equal(t, []store.ProcessID{1, 3}, sc.Steps[1].FreeIDs())
	require.NoError(t, sc.Validate())
}

func TestLoadFile_Missing(t *testing.T) {
	_, err := LoadFile("testdata/does-not-exist.json")
	require.Error(t, err)
}

func TestParse_Windows1252(t *testing.T) {
	var data []byte
	data = append(data, `{"total":50,"block":10,"mode":"paging","encoding":"windows-1252",`...)
	data = append(data, `"steps":[{"allocate":[{"name":"caf`...)
	data = append(data, 0xE9) // é in Windows-1252
	data = append(data, `","size":10}]}]}`...)

	sc, err := Parse(data)
	require.NoError(t, err)
	assert.Equal(t, EncodingWindows1252, sc.Encoding)
	assert.Equal(t, "café", sc.Steps[0].Allocate[0].Name)
}

func TestParse_Errors(t *testing.T) {
	_, err := Parse([]byte(`{"total":`))
	require.Error(t, err)

	_, err = Parse([]byte(`{"encoding":"ebcdic"}`))
	require.ErrorIs(t, err, ErrEncoding)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name string
		json string
		want error
	}{
		{"bad mode", `{"total":100,"block":10,"mode":"buddy","steps":[]}`, session.ErrInvalidConfig},
		{"zero block", `{"total":100,"block":0,"mode":"paging","steps":[]}`, session.ErrInvalidConfig},
		{"bad strategy", `{"total":100,"block":10,"mode":"seg","strategy":"next","steps":[]}`, alloc.ErrUnknownStrategy},
		{"empty step", `{"total":100,"block":10,"mode":"seg","steps":[{}]}`, ErrInvalidStep},
		{"both actions", `{"total":100,"block":10,"mode":"seg","steps":[{"allocate":[{"size":1}],"free":[1]}]}`, ErrInvalidStep},
		{"bad free id", `{"total":100,"block":10,"mode":"seg","steps":[{"free":[0]}]}`, ErrInvalidStep},
		{"bad step strategy", `{"total":100,"block":10,"mode":"seg","steps":[{"allocate":[{"size":1}],"strategy":"x"}]}`, alloc.ErrUnknownStrategy},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sc, err := Parse([]byte(tt.json))
			require.NoError(t, err)
			require.ErrorIs(t, sc.Validate(), tt.want)
		})
	}
}

func TestRun_Fragmented(t *testing.T) {
	sc := loadFragmented(t)
	s := session.New()

	res, err := NewRunner(WithVerify(true)).Run(context.Background(), s, sc)
	require.NoError(t, err)
	require.Len(t, res.Steps, 4)

	assert.Equal(t, ActionAllocate, res.Steps[0].Action)
	assert.Equal(t, "firstFit", res.Steps[0].Strategy)
	assert.Equal(t, ActionFree, res.Steps[1].Action)
	assert.Equal(t, []store.ProcessID{1, 3}, res.Steps[1].Freed)
	assert.Equal(t, 0, res.Steps[2].Records[0].Start)
	assert.Equal(t, 3, res.Steps[3].Records[0].Start)

	assert.Equal(t, 7, res.Placed)
	assert.Equal(t, 0, res.Failed)
	require.NotNil(t, res.Stats.ExternalFragBytes)
	assert.Equal(t, 10, *res.Stats.ExternalFragBytes)
	assert.Equal(t, 80, res.Stats.UsedBytes)
}

func TestRun_RecordsAllocationFailure(t *testing.T) {
	sc, err := Parse([]byte(`{"total":50,"block":10,"mode":"seg","steps":[
		{"allocate":[{"name":"a","size":30},{"name":"big","size":30},{"name":"c","size":10}]},
		{"allocate":[{"name":"d","size":10}]}
	]}`))
	require.NoError(t, err)

	res, err := NewRunner().Run(context.Background(), session.New(), sc)
	require.NoError(t, err)

	first := res.Steps[0]
	require.ErrorIs(t, first.Err, alloc.ErrInsufficientMemory)
	assert.Contains(t, first.Error, "big")
	assert.Equal(t, 2, first.Rejected)
	assert.Len(t, first.Records, 1)

	assert.NoError(t, res.Steps[1].Err)
	assert.Equal(t, 2, res.Placed)
	assert.Equal(t, 2, res.Failed)
}

func TestRun_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewRunner().Run(ctx, session.New(), loadFragmented(t))
	require.ErrorIs(t, err, context.Canceled)
}

func TestRun_InvalidScenario(t *testing.T) {
	sc := &Scenario{Total: 0, Block: 10, Mode: "paging"}
	s := session.New()
	_, err := NewRunner().Run(context.Background(), s, sc)
	require.ErrorIs(t, err, session.ErrInvalidConfig)
	assert.Equal(t, session.Unconfigured, s.State())
}

func TestCompare(t *testing.T) {
	sc := loadFragmented(t)
	sc.Steps[2].Strategy = "worst" // ignored by Compare

	out, err := NewRunner().Compare(context.Background(), sc)
	require.NoError(t, err)
	require.Len(t, out, 4)

	labels := make([]string, len(out))
	for i, o := range out {
		labels[i] = o.Label
	}
	assert.Equal(t, []string{
		"segmentation/firstFit",
		"segmentation/bestFit",
		"segmentation/worstFit",
		"paging",
	}, labels)

	// Worst fit puts F in the middle run and leaves no room for G.
	assert.Equal(t, 0, out[0].Failed)
	assert.Equal(t, 0, out[1].Failed)
	assert.Equal(t, 1, out[2].Failed)
	assert.Equal(t, 0, out[3].Failed)

	assert.Equal(t, "", out[3].Strategy)
	require.NotNil(t, out[3].Stats.InternalFragBytes)
	assert.Equal(t, 0, *out[3].Stats.InternalFragBytes)

	// the input scenario is left alone
	assert.Equal(t, "worst", sc.Steps[2].Strategy)
	assert.Equal(t, "segmentation", sc.Mode)
}

func TestRunner_Logs(t *testing.T) {
	var buf bytes.Buffer
	log := newTestLogger(&buf)

	_, err := NewRunner(WithLogger(log)).Run(context.Background(), session.New(), loadFragmented(t))
	require.NoError(t, err)
	assert.True(t, strings.Contains(buf.String(), "scenario finished"))
}
