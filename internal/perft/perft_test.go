package perft

import (
	"errors"
	"fmt"
	"testing"

	. "gopkg.in/check.v1"

	"github.com/hailam/chesscore/internal/board"
	"github.com/hailam/chesscore/internal/storage"
)

type atMostChecker struct {
	*CheckerInfo
}

func (checker *atMostChecker) Check(params []interface{}, names []string) (result bool, error string) {
	defer func() {
		if v := recover(); v != nil {
			result = false
			error = fmt.Sprint(v)
		}
	}()

	a, aOk := params[0].(int64)
	b, bOk := params[1].(int64)
	return aOk && bOk && a <= b, ""
}

var atMost Checker = &atMostChecker{
	&CheckerInfo{Name: "atMost", Params: []string{"obtained", "limit"}},
}

func Test(t *testing.T) { TestingT(t) }

type PerftSuite struct {
	store *storage.Storage
}

var _ = Suite(&PerftSuite{})

func (s *PerftSuite) SetUpTest(c *C) {
	store, err := storage.OpenInMemory()
	c.Assert(err, IsNil)
	s.store = store
}

func (s *PerftSuite) TearDownTest(c *C) {
	c.Assert(s.store.Close(), IsNil)
}

func (s *PerftSuite) TestCount(c *C) {
	pos := board.NewPosition()
	for depth, want := range []uint64{1, 20, 400, 8902} {
		c.Check(Count(pos, depth), Equals, want, Commentf("depth %d", depth))
	}
}

func (s *PerftSuite) TestCachedCount(c *C) {
	pos := board.MustParseFEN("r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1")
	counter := New(WithCache(s.store), WithMinCacheDepth(2))

	nodes, err := counter.Count(pos, 3)
	c.Assert(err, IsNil)
	c.Check(nodes, Equals, uint64(97862))
	c.Check(counter.Misses > 0, Equals, true)

	hits := counter.Hits
	nodes, err = counter.Count(pos, 3)
	c.Assert(err, IsNil)
	c.Check(nodes, Equals, uint64(97862))
	c.Check(counter.Hits, Equals, hits+1)

	cached, found, err := s.store.PerftCount(pos.Hash(), 3)
	c.Assert(err, IsNil)
	c.Check(found, Equals, true)
	c.Check(cached, Equals, uint64(97862))
}

func (s *PerftSuite) TestTranspositionsHitTheCache(c *C) {
	counter := New(WithCache(s.store), WithMinCacheDepth(1))
	nodes, err := counter.Count(board.NewPosition(), 4)
	c.Assert(err, IsNil)
	c.Check(nodes, Equals, uint64(197281))
	// 1.Nf3 Nf6 2.Nc3 and 1.Nc3 Nf6 2.Nf3 leave the same depth-1 subtree.
	c.Check(counter.Hits > 0, Equals, true)
}

func (s *PerftSuite) TestDivide(c *C) {
	entries, total, err := New().Divide(board.NewPosition(), 2)
	c.Assert(err, IsNil)
	c.Check(total, Equals, uint64(400))
	c.Assert(entries, HasLen, 20)
	c.Check(entries[0].Move.String(), Equals, "a2a3")
	c.Check(entries[19].Move.String(), Equals, "h2h4")
	for _, e := range entries {
		c.Check(e.Nodes, Equals, uint64(20))
	}
}

func (s *PerftSuite) TestDivideSumsToCount(c *C) {
	pos := board.MustParseFEN("8/2p5/3p4/KP5r/1R3p1k/8/4P1P1/8 w - - 0 1")
	entries, total, err := New(WithCache(s.store)).Divide(pos, 4)
	c.Assert(err, IsNil)
	c.Check(total, Equals, uint64(43238))
	var sum uint64
	for _, e := range entries {
		sum += e.Nodes
	}
	c.Check(sum, Equals, total)
}

func (s *PerftSuite) TestMeasure(c *C) {
	nodes, timing, err := New().Measure(board.NewPosition(), 3, 3)
	c.Assert(err, IsNil)
	c.Check(nodes, Equals, uint64(8902))
	c.Assert(timing.Runs, HasLen, 3)
	c.Check(int64(timing.Min), atMost, int64(timing.Median))
	c.Check(int64(timing.Median), atMost, int64(timing.Max))
	c.Check(int64(timing.Min), atMost, int64(timing.Mean))
}

type failingCache struct{}

var errBroken = errors.New("broken")

func (failingCache) PerftCount(uint64, int) (uint64, bool, error) { return 0, false, errBroken }
func (failingCache) SavePerftCount(uint64, int, uint64) error    { return errBroken }

func (s *PerftSuite) TestCacheErrorsPropagate(c *C) {
	_, err := New(WithCache(failingCache{})).Count(board.NewPosition(), 3)
	c.Check(errors.Is(err, errBroken), Equals, true)
}
