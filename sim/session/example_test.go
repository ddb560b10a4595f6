package session_test

import (
	"fmt"

	"github.com/joshuapare/memsim/sim/alloc"
	"github.com/joshuapare/memsim/sim/session"
)

func Example() {
	s := session.New()
	if _, err := s.Configure(100, 10, alloc.Segmentation); err != nil {
		panic(err)
	}

	recs, _ := s.SubmitBatch([]session.Request{{Name: "editor", Size: 25}, {Size: 15}}, alloc.FirstFit)
	for _, r := range recs {
		fmt.Printf("%d %s start=%d blocks=%d\n", r.ProcessID, r.Name, r.Start, r.BlocksUsed)
	}

	_ = s.Deallocate(1)
	fmt.Println(s.FreeRuns())

	st := s.Stats()
	fmt.Println(st.UsedBytes, *st.ExternalFragBytes)
	// Output:
	// 1 editor start=0 blocks=3
	// 2 Process 2 start=3 blocks=2
	// [{0 3} {5 5}]
	// 20 30
}

func ExampleSession_PageTable() {
	s := session.New()
	_, _ = s.Configure(100, 10, alloc.Paging)
	_, _ = s.SubmitBatch([]session.Request{{Name: "A", Size: 25}}, alloc.FirstFit)

	for _, row := range s.PageTable() {
		fmt.Printf("page %d -> frame %d, %d%% used\n", row.Virtual, row.Physical, row.Percent)
	}
	fmt.Println("internal:", *s.Stats().InternalFragBytes)
	// Output:
	// page 0 -> frame 0, 100% used
	// page 1 -> frame 1, 100% used
	// page 2 -> frame 2, 50% used
	// internal: 5
}
