// Package diagnostic finds a small set of constraints responsible for a
// group failing to solve, by tagging candidates out of the store and
// re-running solve.Solve against the remainder — the same tag/untag idiom
// bfs and dfs use to mark visited nodes, here marking "excluded from this
// trial" instead.
//
// The search never mutates which constraints exist; it only tags and
// untags them, and restores every parameter's value after each trial so the
// store is left exactly as it found it.
package diagnostic
