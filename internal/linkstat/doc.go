// Package linkstat computes the size of a directory tree with and without
// hard-linked files.
//
// It walks the tree, reads each regular file's size and link count with a
// single metadata query, and folds the results in parallel into two totals:
// every file counted independently, and only the files the dedup policy
// counts. Unreadable directories and files are skipped, never reported.
package linkstat
