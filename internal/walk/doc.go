// Package walk enumerates the regular files below a root directory.
//
// Two walkers share one contract: a lazy explicit-stack walker and a
// buffered parallel walker built on fastwalk. Neither follows symlinks,
// and both skip unreadable directories instead of failing.
package walk
