package percolation

import (
	"math"
	"slices"
	"time"

	"github.com/dd0wney/percolate/pkg/errs"
	"github.com/dd0wney/percolate/pkg/logging"
)

// Recorder observes engine internals for metrics export. Implementations
// must be safe to call with nil receiver semantics avoided by using
// NopRecorder when no recorder is supplied.
type Recorder interface {
	ObserveCliqueSize(size int)
	ObserveLevelDuration(k int, seconds float64)
	SetCommunitiesFound(k int, n int)
	SetBloomOccupancy(k int, ratio float64)
}

// NopRecorder discards every observation.
type NopRecorder struct{}

func (NopRecorder) ObserveCliqueSize(int)            {}
func (NopRecorder) ObserveLevelDuration(int, float64) {}
func (NopRecorder) SetCommunitiesFound(int, int)      {}
func (NopRecorder) SetBloomOccupancy(int, float64)    {}

// Community is one discovered community at a given percolation level:
// the deduplicated, sorted union of vertices across every clique that
// percolated into it.
type Community struct {
	Vertices []int32
}

// LevelResult holds every community found at one value of k.
type LevelResult struct {
	K           int
	Communities []Community
}

// Engine runs k-clique percolation over a fixed set of maximal cliques
// for every k in [minK, maxK], building a fresh bloom-indexed search
// tree for each level to prune clique-adjacency checks.
type Engine struct {
	cliques    [][]int32
	minK, maxK int
	filterBits int64
	hashSeed   []byte
	logger     logging.Logger
	recorder   Recorder
}

// NewEngine constructs a percolation Engine. cliques must already be
// sorted ascending (as produced by pkg/cliques.Enumerate) and minK must
// be >= 3.
func NewEngine(cliques [][]int32, minK, maxK int, filterBits int64, hashSeed []byte, logger logging.Logger, recorder Recorder) (*Engine, error) {
	if minK < 3 {
		return nil, errs.InvalidArgument("percolation.NewEngine", "minimum k must be >= 3")
	}
	if maxK < minK {
		maxK = minK
	}
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	if recorder == nil {
		recorder = NopRecorder{}
	}
	return &Engine{
		cliques:    cliques,
		minK:       minK,
		maxK:       maxK,
		filterBits: filterBits,
		hashSeed:   hashSeed,
		logger:     logger,
		recorder:   recorder,
	}, nil
}

// singleCliqueResults handles the C==1 case: with nothing to percolate
// against, the lone clique is its own community at every level up to
// its own size, and it never appears beyond that.
func (e *Engine) singleCliqueResults() []LevelResult {
	clique := e.cliques[0]
	top := e.maxK
	if len(clique) < top {
		top = len(clique)
	}
	if top < e.minK {
		return nil
	}
	vertices := append([]int32(nil), clique...)
	slices.Sort(vertices)

	results := make([]LevelResult, 0, top-e.minK+1)
	for k := e.minK; k <= top; k++ {
		results = append(results, LevelResult{K: k, Communities: []Community{{Vertices: vertices}}})
	}
	return results
}

// Run performs clique percolation at every level and returns one
// LevelResult per k actually reached. It returns nil, nil for the
// degenerate case of zero input cliques, and the C==1 short-circuit
// above for exactly one.
func (e *Engine) Run() ([]LevelResult, error) {
	c := len(e.cliques)
	if c == 0 {
		return nil, nil
	}
	if c == 1 {
		return e.singleCliqueResults(), nil
	}
	if c > math.MaxInt32 {
		return nil, errs.TooManyCliques("percolation.Run", c)
	}

	maxCliqueSize := 0
	for _, cl := range e.cliques {
		e.recorder.ObserveCliqueSize(len(cl))
		if len(cl) > maxCliqueSize {
			maxCliqueSize = len(cl)
		}
	}
	if maxCliqueSize < e.minK {
		return nil, errs.NoCliques("percolation.Run", e.minK)
	}

	maxK := e.maxK
	if maxK > maxCliqueSize {
		maxK = maxCliqueSize
	}

	C := int32(c)
	powerUp := int32(1)
	for powerUp < C {
		powerUp <<= 1
	}
	e.logger.Info("percolation starting",
		logging.CliqueCount(int(C)),
		logging.Int64("power_up", int64(powerUp)),
		logging.Level(e.minK),
		logging.Int64("max_k", int64(maxK)),
	)

	level := NewComponents(int(C))
	first := level.TopEmptyComponent()
	for cl := int32(0); cl < C; cl++ {
		level.MoveNode(cl, first)
	}
	sourceComponents := []int32{first}

	var results []LevelResult
	for k := e.minK; k <= maxK; k++ {
		start := time.Now()
		t := int32(k - 1)

		index := NewCliqueBloomIndex(powerUp, e.filterBits, e.hashSeed)
		for cl := int32(0); cl < C; cl++ {
			if int32(len(e.cliques[cl])) >= t {
				index.AddClique(e.cliques[cl], cl+powerUp)
			}
		}
		e.recorder.SetBloomOccupancy(k, index.Filter().OccupancyRatio())

		foundComponents := e.oneK(sourceComponents, level, t, powerUp, C, index)
		communities := e.materializeCommunities(foundComponents, level)
		e.recorder.SetCommunitiesFound(k, len(communities))

		elapsed := time.Since(start).Seconds()
		e.recorder.ObserveLevelDuration(k, elapsed)
		e.logger.Info("percolation level complete",
			logging.Level(k),
			logging.CommunityCount(len(communities)),
		)

		results = append(results, LevelResult{K: k, Communities: communities})

		newK := k + 1
		if newK > maxK {
			break
		}

		nextLevel := NewComponents(int(C))
		var nextSource []int32
		for _, f := range foundComponents {
			newCandidate := nextLevel.TopEmptyComponent()
			qualifying := 0
			level.GetMembers(f).Each(func(cliqueID int32) {
				if len(e.cliques[cliqueID]) >= newK {
					nextLevel.MoveNode(cliqueID, newCandidate)
					qualifying++
				}
			})
			if qualifying > 0 {
				nextSource = append(nextSource, newCandidate)
			}
		}
		level = nextLevel
		sourceComponents = nextSource
	}
	return results, nil
}

// oneK performs one percolation level's community growth across every
// candidate source component, returning the component IDs that ended
// up holding at least one community.
func (e *Engine) oneK(sourceComponents []int32, level *Components, t, powerUp, numCliques int32, index *CliqueBloomIndex) []int32 {
	assigned := NewAssignedBranches(powerUp, numCliques)
	for cl := int32(0); cl < numCliques; cl++ {
		if int32(len(e.cliques[cl])) <= t {
			assigned.MarkAsDone(powerUp + cl)
		}
	}

	var found []int32
	candidates := append([]int32(nil), sourceComponents...)
	for len(candidates) > 0 {
		sourceComponent := candidates[len(candidates)-1]
		candidates = candidates[:len(candidates)-1]

		for !level.GetMembers(sourceComponent).Empty() {
			seed := level.GetMembers(sourceComponent).Front()
			growInto := level.TopEmptyComponent()
			level.MoveNode(seed, growInto)

			frontier := []int32{seed}
			for len(frontier) > 0 {
				popped := frontier[len(frontier)-1]
				frontier = frontier[:len(frontier)-1]
				assigned.MarkAsDone(powerUp + popped)

				neighbors := e.neighboursOfOneClique(popped, level, t, growInto, index, assigned, powerUp)
				for _, nb := range neighbors {
					frontier = append(frontier, nb)
					level.MoveNode(nb, growInto)
				}
			}
			found = append(found, growInto)
		}
	}
	return found
}

// neighboursOfOneClique finds every clique adjacent to cliqueID (at
// least t shared vertices) that isn't already in componentToSkip.
func (e *Engine) neighboursOfOneClique(cliqueID int32, level *Components, t, componentToSkip int32, index *CliqueBloomIndex, assigned *AssignedBranches, powerUp int32) []int32 {
	var found []int32
	const root = int32(1)
	if !assigned.IsDone(root) {
		e.recursiveSearch(index, root, cliqueID, t, level, componentToSkip, assigned, &found)
	}
	return found
}

// recursiveSearch descends the bloom-indexed clique tree, pruning any
// subtree whose overlap estimate against the current clique falls
// below t, and collecting every leaf clique that actually shares at
// least t vertices and isn't already in componentToSkip.
func (e *Engine) recursiveSearch(index *CliqueBloomIndex, branchID, currentCliqueID, t int32, level *Components, componentToSkip int32, assigned *AssignedBranches, found *[]int32) {
	currentClique := e.cliques[currentCliqueID]

	if branchID >= index.PowerUp {
		leafCliqueID := branchID - index.PowerUp
		if int(leafCliqueID) >= len(e.cliques) {
			return
		}
		if level.MyComponentID(leafCliqueID) == componentToSkip {
			return
		}
		if actualOverlap(e.cliques[leafCliqueID], currentClique) >= t {
			*found = append(*found, leafCliqueID)
			assigned.MarkAsDone(branchID)
		}
		return
	}

	left := branchID << 1
	right := left + 1
	potentialLeft, potentialRight := int32(0), int32(0)
	if !assigned.IsDone(left) {
		potentialLeft = index.OverlapEstimate(currentClique, left)
	}
	if !assigned.IsDone(right) {
		potentialRight = index.OverlapEstimate(currentClique, right)
	}
	if potentialLeft >= t {
		e.recursiveSearch(index, left, currentCliqueID, t, level, componentToSkip, assigned, found)
	}
	if potentialRight >= t {
		e.recursiveSearch(index, right, currentCliqueID, t, level, componentToSkip, assigned, found)
	}
}

// actualOverlap counts shared vertices between two sorted ascending
// clique vertex lists.
func actualOverlap(a, b []int32) int32 {
	var count int32
	i, j := 0, 0
	for i < len(a) && j < len(b) {
		switch {
		case a[i] == b[j]:
			count++
			i++
			j++
		case a[i] < b[j]:
			i++
		default:
			j++
		}
	}
	return count
}

// materializeCommunities turns each found component into a Community
// holding the sorted, deduplicated union of its member cliques' vertices.
func (e *Engine) materializeCommunities(foundComponents []int32, level *Components) []Community {
	communities := make([]Community, 0, len(foundComponents))
	for _, f := range foundComponents {
		seen := make(map[int32]struct{})
		level.GetMembers(f).Each(func(cliqueID int32) {
			for _, v := range e.cliques[cliqueID] {
				seen[v] = struct{}{}
			}
		})
		vertices := make([]int32, 0, len(seen))
		for v := range seen {
			vertices = append(vertices, v)
		}
		slices.Sort(vertices)
		communities = append(communities, Community{Vertices: vertices})
	}
	return communities
}
