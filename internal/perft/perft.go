// Package perft counts the leaf nodes of the legal move tree, the standard
// correctness check for a move generator.
package perft

import (
	"fmt"
	"sort"

	"github.com/apex/log"

	"github.com/hailam/chesscore/internal/board"
)

// Cache stores node counts by position hash and depth.
// *storage.Storage satisfies it.
type Cache interface {
	PerftCount(hash uint64, depth int) (uint64, bool, error)
	SavePerftCount(hash uint64, depth int, nodes uint64) error
}

// DefaultMinCacheDepth is the shallowest subtree worth a cache round trip.
const DefaultMinCacheDepth = 3

// Counter runs perft with an optional cache.
type Counter struct {
	cache         Cache
	minCacheDepth int

	Hits   uint64
	Misses uint64
}

// Option configures a Counter.
type Option func(*Counter)

// WithCache stores and reuses subtree counts in cache.
func WithCache(cache Cache) Option {
	return func(c *Counter) { c.cache = cache }
}

// WithMinCacheDepth sets the shallowest depth looked up in the cache.
func WithMinCacheDepth(depth int) Option {
	return func(c *Counter) { c.minCacheDepth = max(depth, 1) }
}

// New returns a Counter.
func New(opts ...Option) *Counter {
	c := &Counter{minCacheDepth: DefaultMinCacheDepth}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Count returns the number of leaf nodes depth plies below pos, counting
// depth 1 by the size of the move set.
func Count(pos *board.Position, depth int) uint64 {
	switch {
	case depth <= 0:
		return 1
	case depth == 1:
		return uint64(pos.LegalMoves().Len())
	}
	var nodes uint64
	for m := range pos.LegalMoves().All() {
		nodes += Count(pos.Play(m), depth-1)
	}
	return nodes
}

// Count is like the package-level Count but consults the cache.
func (c *Counter) Count(pos *board.Position, depth int) (uint64, error) {
	nodes, err := c.count(pos, depth)
	if err != nil {
		return 0, err
	}
	log.WithFields(log.Fields{
		"depth":  depth,
		"nodes":  nodes,
		"hits":   c.Hits,
		"misses": c.Misses,
	}).Debug("perft")
	return nodes, nil
}

func (c *Counter) count(pos *board.Position, depth int) (uint64, error) {
	if c.cache == nil || depth < c.minCacheDepth {
		return Count(pos, depth), nil
	}

	hash := pos.Hash()
	nodes, found, err := c.cache.PerftCount(hash, depth)
	if err != nil {
		return 0, fmt.Errorf("perft cache lookup: %w", err)
	}
	if found {
		c.Hits++
		return nodes, nil
	}
	c.Misses++

	nodes = 0
	for m := range pos.LegalMoves().All() {
		n, err := c.count(pos.Play(m), depth-1)
		if err != nil {
			return 0, err
		}
		nodes += n
	}
	if err := c.cache.SavePerftCount(hash, depth, nodes); err != nil {
		return 0, fmt.Errorf("perft cache store: %w", err)
	}
	return nodes, nil
}

// Entry is the subtree count below one root move.
type Entry struct {
	Move  board.Move
	Nodes uint64
}

// Divide returns the node count below each legal root move, sorted by the
// move's UCI text, and their total.
func (c *Counter) Divide(pos *board.Position, depth int) ([]Entry, uint64, error) {
	if depth < 1 {
		return nil, 1, nil
	}
	var (
		entries []Entry
		total   uint64
	)
	for m := range pos.LegalMoves().All() {
		n, err := c.count(pos.Play(m), depth-1)
		if err != nil {
			return nil, 0, err
		}
		entries = append(entries, Entry{Move: m, Nodes: n})
		total += n
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Move.String() < entries[j].Move.String() })
	return entries, total, nil
}
