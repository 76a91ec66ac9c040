// Package tfs implements an in-memory, POSIX-ish file system: an inode
// table, a free-block bitmap, a flat data-block array and an open-file
// table, all resident in process memory with simulated storage-access
// latency.
//
// See the tfs subpackage for the engine itself, and cmd/tfsctl for a
// thin command-line driver on top of it.
package lib
