// Package stats builds and renders the per-run statistics report
// described in spec.md §4.8: a human-readable summary to an
// io.Writer, and a single-line JSON object (field names preserved
// verbatim) to another.
//
// Grounded on backtrack.c's printStats.
package stats

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/jdavis-research/memoregex/inst"
	"github.com/jdavis-research/memoregex/rlevec"
)

// MemoExtra carries encoding-specific telemetry that only one of the
// three memo.Table implementations produces.
type MemoExtra struct {
	// NegativeHashCount is the number of entries in the sparse memo
	// table's backing map; meaningful only under EncodingNegative.
	NegativeHashCount int

	// RLEVectors is the per-memoized-state run-length vector set;
	// meaningful only under EncodingRLE / EncodingRLETuned.
	RLEVectors []*rlevec.Vector
}

// Report is the fully computed statistics for one run.
type Report struct {
	NStates int // program length, |Q|
	LenW    int // len(input) + 1

	TotalVisits                       int
	PossibleTotalVisitsWithMemoization int
	VertexWithMostVisitedSearchState  int
	MostVisitedOffset                 int
	MaxVisitsPerSearchState           int
	MostVisitedVertex                 int
	MaxVisitsPerVertex                int

	MemoMode        inst.MemoMode
	MemoEncoding    inst.MemoEncoding
	NSelectedVertices int

	// MaxObservedCostPerMemoizedVertex holds, per memoized vertex in
	// MemoStateNum order, the worst-case storage it actually paid:
	// always LenW under EncodingNone; the total visit count under
	// EncodingNegative; the RLE vector's MaxObservedSize under RLE
	// encodings.
	MaxObservedCostPerMemoizedVertex []int

	// NegativeHashCount is only set (and only meaningful) under
	// EncodingNegative; see the self-consistency check in spec.md §8.
	NegativeHashCount int
}

// Build computes a Report from the raw per-(stateNum, offset) visit
// counts the VM accumulated during a run, plus any encoding-specific
// extras the memo table produced.
func Build(prog *inst.Program, inputLen int, visits [][]int, extra MemoExtra) *Report {
	r := &Report{
		NStates:      prog.Len(),
		LenW:         inputLen + 1,
		MemoMode:     prog.MemoMode,
		MemoEncoding: prog.MemoEncoding,
		NSelectedVertices: prog.NMemoizedStates,
	}
	r.PossibleTotalVisitsWithMemoization = r.NStates * r.LenW
	r.MaxVisitsPerSearchState = -1
	r.MaxVisitsPerVertex = -1

	visitsPerVertex := make([]int, r.NStates)
	for i := 0; i < r.NStates; i++ {
		for j := 0; j < r.LenW; j++ {
			v := visits[i][j]
			visitsPerVertex[i] += v
			r.TotalVisits += v
			if v > r.MaxVisitsPerSearchState {
				r.MaxVisitsPerSearchState = v
				r.VertexWithMostVisitedSearchState = i
				r.MostVisitedOffset = j
			}
		}
		if visitsPerVertex[i] > r.MaxVisitsPerVertex {
			r.MaxVisitsPerVertex = visitsPerVertex[i]
			r.MostVisitedVertex = i
		}
	}

	// spec.md §4.6: under FULL and IN_DEGREE_GT1, memoization must
	// bound every (vertex, offset) search state to at most one visit.
	// backtrack.c asserts this in printStats; mirrored here rather
	// than dropped.
	if prog.MemoMode == inst.MemoFull || prog.MemoMode == inst.MemoInDegreeGT1 {
		if r.MaxVisitsPerSearchState > 1 {
			panic(fmt.Sprintf("stats: memo bound violated: search state (%d, %d) visited %d times under %s",
				r.VertexWithMostVisitedSearchState, r.MostVisitedOffset, r.MaxVisitsPerSearchState, prog.MemoMode))
		}
	}

	n := r.NSelectedVertices
	r.MaxObservedCostPerMemoizedVertex = make([]int, n)
	switch prog.MemoEncoding {
	case inst.EncodingNone:
		for i := 0; i < n; i++ {
			r.MaxObservedCostPerMemoizedVertex[i] = r.LenW
		}
	case inst.EncodingNegative:
		r.NegativeHashCount = extra.NegativeHashCount
		for memoStateNum, vertex := range findMemoizedVertices(prog) {
			if memoStateNum < n {
				r.MaxObservedCostPerMemoizedVertex[memoStateNum] = visitsPerVertex[vertex]
			}
		}
	case inst.EncodingRLE, inst.EncodingRLETuned:
		for i := 0; i < n && i < len(extra.RLEVectors); i++ {
			r.MaxObservedCostPerMemoizedVertex[i] = extra.RLEVectors[i].MaxObservedSize()
		}
	}

	return r
}

// findMemoizedVertices returns program-order instruction indices whose
// MemoStateNum >= 0, indexed by MemoStateNum.
func findMemoizedVertices(prog *inst.Program) []int {
	out := make([]int, prog.NMemoizedStates)
	for i, in := range prog.Instructions {
		if in.MemoInfo.MemoStateNum >= 0 {
			out[in.MemoInfo.MemoStateNum] = i
		}
	}
	return out
}

// Print writes the human-readable summary lines backtrack.c's
// printStats prints to stdout.
func (r *Report) Print(w io.Writer) {
	fmt.Fprintf(w, "STATS: Most-visited search state: <%d, %d> (%d visits)\n",
		r.VertexWithMostVisitedSearchState, r.MostVisitedOffset, r.MaxVisitsPerSearchState)
	fmt.Fprintf(w, "STATS: Most-visited vertex: %d (%d visits over all its search states)\n",
		r.MostVisitedVertex, r.MaxVisitsPerVertex)

	switch r.MemoEncoding {
	case inst.EncodingNone:
		fmt.Fprintf(w, "STATS: No encoding, so all memoized vertices paid the full cost of |w| = %d slots\n", r.LenW)
	case inst.EncodingNegative:
		fmt.Fprintf(w, "STATS: %d slots used (out of %d possible)\n", r.NegativeHashCount, r.NStates*r.LenW)
	case inst.EncodingRLE, inst.EncodingRLETuned:
		for i, v := range r.MaxObservedCostPerMemoizedVertex {
			fmt.Fprintf(w, "STATS: vector %d max observed size during execution: %d\n", i, v)
		}
	}
}

// jsonReport mirrors the exact field names and nesting of the
// original's single-line JSON object.
type jsonReport struct {
	InputInfo struct {
		NStates int `json:"nStates"`
		LenW    int `json:"lenW"`
	} `json:"inputInfo"`
	SimulationInfo struct {
		NTotalVisits                        int `json:"nTotalVisits"`
		NPossibleTotalVisitsWithMemoization int `json:"nPossibleTotalVisitsWithMemoization"`
		VisitsToMostVisitedSearchState      int `json:"visitsToMostVisitedSearchState"`
		VisitsToMostVisitedVertex           int `json:"vistsToMostVisitedVertex"`
	} `json:"simulationInfo"`
	MemoizationInfo struct {
		Config struct {
			VertexSelection string `json:"vertexSelection"`
			Encoding        string `json:"encoding"`
		} `json:"config"`
		Results struct {
			NSelectedVertices                int   `json:"nSelectedVertices"`
			LenW                             int   `json:"lenW"`
			MaxObservedCostPerMemoizedVertex []int `json:"maxObservedCostPerMemoizedVertex"`
		} `json:"results"`
	} `json:"memoizationInfo"`
}

// WriteJSON writes the single-line JSON statistics object, in the
// shape backtrack.c's printStats emits to stderr.
func (r *Report) WriteJSON(w io.Writer) error {
	var j jsonReport
	j.InputInfo.NStates = r.NStates
	j.InputInfo.LenW = r.LenW
	j.SimulationInfo.NTotalVisits = r.TotalVisits
	j.SimulationInfo.NPossibleTotalVisitsWithMemoization = r.PossibleTotalVisitsWithMemoization
	j.SimulationInfo.VisitsToMostVisitedSearchState = r.MaxVisitsPerSearchState
	j.SimulationInfo.VisitsToMostVisitedVertex = r.MaxVisitsPerVertex
	j.MemoizationInfo.Config.VertexSelection = r.MemoMode.String()
	j.MemoizationInfo.Config.Encoding = r.MemoEncoding.String()
	j.MemoizationInfo.Results.NSelectedVertices = r.NSelectedVertices
	j.MemoizationInfo.Results.LenW = r.LenW
	j.MemoizationInfo.Results.MaxObservedCostPerMemoizedVertex = r.MaxObservedCostPerMemoizedVertex

	enc := json.NewEncoder(w)
	return enc.Encode(j)
}
