package searcher

// Search limits

// MaxDepth bounds the plies searched below the root move. The tree grows as
// branching^depth, so deeper requests are rejected rather than left running.
const MaxDepth = 12

// DefaultGoroutines searches root moves sequentially.
const DefaultGoroutines = 1
