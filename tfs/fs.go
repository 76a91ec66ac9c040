package tfs

import (
	"fmt"
	"io"
	"strings"
	"sync"
	"time"
)

// Filesystem is the in-memory, process-resident file system engine:
// an inode table, a data-block store, an open-file table, and the
// locks that keep them consistent under concurrent access. The zero
// value is not usable; construct one with New. State lives entirely
// on the handle, so multiple independent Filesystems may coexist in
// one process.
type Filesystem struct {
	blocks  *blockStore
	inodes  *inodeTable
	files   *openFileTable
	engine  *engine
	metrics *Metrics
	logger  Logger

	closeOnce sync.Once
	closed    bool
	closedMu  sync.RWMutex
}

// Option configures a Filesystem at construction time.
type Option func(*Filesystem)

// WithMetrics attaches a Prometheus-backed Metrics collector.
func WithMetrics(m *Metrics) Option {
	return func(fs *Filesystem) { fs.metrics = m }
}

// WithLogger overrides the default [ tfs_* ] diagnostic logger.
func WithLogger(l Logger) Option {
	return func(fs *Filesystem) { fs.logger = l }
}

// New initializes all locks and bitmaps and creates the root
// directory inode at the fixed reserved inumber RootDirInum. It fails
// only if the root inode cannot be allocated, which cannot happen on
// a freshly built table but is checked anyway since callers depend on
// it as a precondition.
func New(opts ...Option) (*Filesystem, error) {
	blocks := newBlockStore()
	fs := &Filesystem{
		blocks: blocks,
		inodes: newInodeTable(blocks),
		files:  newOpenFileTable(),
		engine: newEngine(blocks),
		logger: defaultLogger,
	}
	for _, o := range opts {
		o(fs)
	}

	root, err := fs.inodes.create(typeDirectory)
	if err != nil {
		return nil, fmt.Errorf("tfs: init: %w", err)
	}
	if root != RootDirInum {
		return nil, fmt.Errorf("tfs: init: root inode got inumber %d, want %d", root, RootDirInum)
	}
	return fs, nil
}

// Destroy discards all state. It assumes every client goroutine has
// already quiesced; it does not itself wait for in-flight operations.
func (fs *Filesystem) Destroy() error {
	fs.closeOnce.Do(func() {
		fs.closedMu.Lock()
		fs.closed = true
		fs.closedMu.Unlock()
	})
	return nil
}

// Close is an alias for Destroy so *Filesystem satisfies io.Closer.
func (fs *Filesystem) Close() error { return fs.Destroy() }

func (fs *Filesystem) checkOpen() error {
	fs.closedMu.RLock()
	defer fs.closedMu.RUnlock()
	if fs.closed {
		return ErrClosed
	}
	return nil
}

func validPath(name string) bool {
	if len(name) <= 1 || name[0] != '/' {
		return false
	}
	return !strings.Contains(name[1:], "/")
}

// Lookup accepts only absolute, single-component paths with at least
// one character after the leading '/'. It strips the slash and scans
// the root directory for a matching entry.
func (fs *Filesystem) Lookup(path string) (inum int, err error) {
	defer fs.time("lookup", &err)()
	if err = fs.checkOpen(); err != nil {
		return none, err
	}
	if !validPath(path) {
		tagf(fs.logger, "lookup", "invalid path %q\n", path)
		return none, ErrInvalidPath
	}
	inum = fs.inodes.findInDir(RootDirInum, path[1:])
	if inum == none {
		return none, fmt.Errorf("%w: %s", ErrNotFound, path)
	}
	return inum, nil
}

// Open resolves path, optionally creating/truncating it, and adds an
// entry to the open-file table, returning its handle. If CREAT
// creates a new inode and its directory entry is inserted successfully
// but the open-file table then turns out to be full, the inode is
// intentionally left in place rather than rolled back: it remains
// reachable by path, just not open, until a later Open succeeds.
func (fs *Filesystem) Open(path string, flags OpenFlag) (handle int, err error) {
	defer fs.time("open", &err)()
	if err = fs.checkOpen(); err != nil {
		return none, err
	}
	if !validPath(path) {
		tagf(fs.logger, "open", "invalid path %q\n", path)
		return none, ErrInvalidPath
	}
	name := path[1:]

	inum := fs.inodes.findInDir(RootDirInum, name)
	var offset int

	if inum != none {
		// Open is the only operation that takes the inode table's
		// map-level rwlock around a single inode lookup; Write and
		// Read fetch the inode directly without it.
		fs.inodes.mapLock.RLock()
		n, gerr := fs.inodes.get(inum)
		fs.inodes.mapLock.RUnlock()
		if gerr != nil {
			return none, gerr
		}

		n.lockMutex()
		if flags.has(Trunc) && n.size > 0 && n.currentBlock != none {
			fs.blocks.free(n.currentBlock)
			n.size = 0
			for i := range n.direct {
				n.direct[i] = none
			}
			n.currentBlock = none
		}
		if flags.has(Append) {
			offset = n.size
		} else {
			offset = 0
		}
		n.unlockMutex()
	} else if flags.has(Creat) {
		var cerr error
		inum, cerr = fs.inodes.create(typeFile)
		if cerr != nil {
			tagf(fs.logger, "open", "create: %v\n", cerr)
			return none, cerr
		}
		if aerr := fs.inodes.addDirEntry(RootDirInum, inum, name); aerr != nil {
			// The directory insert itself failed, so the inode never
			// became reachable: safe to roll it back here, unlike the
			// open-file-table-full case below.
			fs.inodes.delete(inum)
			tagf(fs.logger, "open", "add dir entry: %v\n", aerr)
			return none, aerr
		}
		offset = 0
	} else {
		tagf(fs.logger, "open", "not found: %s\n", path)
		return none, fmt.Errorf("%w: %s", ErrNotFound, path)
	}

	h, oerr := fs.files.add(inum, offset)
	if oerr != nil {
		tagf(fs.logger, "open", "add to open file table: %v\n", oerr)
		return none, oerr
	}
	return h, nil
}

// CloseHandle removes handle from the open-file table. Named
// CloseHandle rather than Close so it doesn't collide with
// io.Closer's Close on *Filesystem itself.
func (fs *Filesystem) CloseHandle(handle int) (err error) {
	defer fs.time("close", &err)()
	if err = fs.checkOpen(); err != nil {
		return err
	}
	err = fs.files.remove(handle)
	return err
}

// lookupOpenFile resolves handle to its entry under the open-file
// table's map-level lock, released before any entity-level work.
func (fs *Filesystem) lookupOpenFile(handle int) (*openFileEntry, error) {
	fs.files.mapLock.RLock()
	defer fs.files.mapLock.RUnlock()
	return fs.files.get(handle)
}

// Write appends to the file, advancing its size and handle's offset by
// the number of bytes actually written. Writes take the inode's read
// lock, not its write lock, so concurrent writers on distinct handles
// to the same inode are ordered only at block-allocation granularity
// (the data-block bitmap's own mutex still serializes individual block
// claims) — not at the level of whole Write calls.
func (fs *Filesystem) Write(handle int, buf []byte) (written int, err error) {
	defer fs.time("write", &err)()
	if err = fs.checkOpen(); err != nil {
		return 0, err
	}
	if len(buf) == 0 {
		tagf(fs.logger, "write", "%s", "Data Error : Nothing to Write\n")
		return 0, ErrNothingToWrite
	}

	entry, err := fs.lookupOpenFile(handle)
	if err != nil {
		return 0, err
	}

	entry.lockMutex()
	defer entry.unlockMutex()

	n, err := fs.inodes.get(entry.inumber)
	if err != nil {
		return 0, err
	}

	n.rlock()
	defer n.runlock()

	toWrite := len(buf)
	if n.size+toWrite > MaxFileBytes {
		toWrite = MaxFileBytes - n.size
	}
	if toWrite <= 0 {
		return 0, nil
	}
	buf = buf[:toWrite]

	switch {
	case n.size+toWrite <= maxBytesDirect:
		written, err = fs.engine.writeDirect(n, entry, buf)

	case n.size >= maxBytesDirect:
		if n.indirect == none {
			if !fs.engine.allocIndirect(n) {
				tagf(fs.logger, "write", "%s", "Write Error: Error writting the content\n")
				return 0, ErrWrite
			}
		}
		written, err = fs.engine.writeIndirect(n, entry, buf)

	default:
		directSize := maxBytesDirect - n.size
		dWritten, derr := fs.engine.writeDirect(n, entry, buf[:directSize])
		if derr != nil {
			tagf(fs.logger, "write", "%s", "Write Error: Error writting the content\n")
			return dWritten, derr
		}
		if n.indirect == none {
			if !fs.engine.allocIndirect(n) {
				tagf(fs.logger, "write", "%s", "Write Error: Error writting the content\n")
				return dWritten, ErrWrite
			}
		}
		iWritten, ierr := fs.engine.writeIndirect(n, entry, buf[directSize:])
		written = dWritten + iWritten
		err = ierr
	}

	if err != nil {
		tagf(fs.logger, "write", "%s", "Write Error: Error writting the content\n")
		return written, err
	}
	return written, nil
}

// Read copies up to len(buf) bytes from the file at handle's current
// offset, advancing it by the number of bytes actually read.
func (fs *Filesystem) Read(handle int, buf []byte) (read int, err error) {
	defer fs.time("read", &err)()
	if err = fs.checkOpen(); err != nil {
		return 0, err
	}
	if len(buf) == 0 {
		tagf(fs.logger, "read", "%s", "Data Error : Nothing to Read\n")
		return 0, ErrNothingToRead
	}

	entry, err := fs.lookupOpenFile(handle)
	if err != nil {
		return 0, err
	}

	entry.lockMutex()
	defer entry.unlockMutex()

	n, err := fs.inodes.get(entry.inumber)
	if err != nil {
		return 0, err
	}

	n.rlock()
	defer n.runlock()

	available := n.size - entry.offset
	if available <= 0 {
		tagf(fs.logger, "read", "%s", "Data Error : Nothing to Read\n")
		return 0, ErrNothingToRead
	}
	toRead := len(buf)
	if toRead > available {
		toRead = available
	}
	dest := buf[:toRead]

	switch {
	case entry.offset+toRead <= maxBytesDirect:
		read, err = fs.engine.readDirect(n, entry, dest)

	case entry.offset >= maxBytesDirect:
		read, err = fs.engine.readIndirect(n, entry, dest)

	default:
		directPart := maxBytesDirect - entry.offset
		dRead, derr := fs.engine.readDirect(n, entry, dest[:directPart])
		if derr != nil {
			tagf(fs.logger, "read", "%s", "Read Error: Error reading the content\n")
			return dRead, derr
		}
		iRead, ierr := fs.engine.readIndirect(n, entry, dest[directPart:])
		read = dRead + iRead
		err = ierr
	}

	if err != nil {
		tagf(fs.logger, "read", "%s", "Read Error: Error reading the content\n")
		return read, err
	}
	return read, nil
}

// externalCopyBufferSize bounds how much of the source file
// CopyToExternal holds in memory at once: it streams the copy through
// a buffer this big rather than reading the whole file in one shot.
const externalCopyBufferSize = 100

// CopyToExternal streams src's full content to sink in chunks of
// externalCopyBufferSize bytes. It opens src in Append mode and then
// forces its offset back to 0 under lock, so the copy always starts
// from the beginning of the file regardless of which flag was used to
// open it.
func (fs *Filesystem) CopyToExternal(srcPath string, sink ExternalSink) (err error) {
	defer fs.time("copy_to_external", &err)()
	if err = fs.checkOpen(); err != nil {
		return err
	}

	if _, err = fs.Lookup(srcPath); err != nil {
		tagf(fs.logger, "copy_to_external_fs", "%s", "File Error : File Not Found\n")
		return fmt.Errorf("%w: %s", ErrNotFound, srcPath)
	}

	h, err := fs.Open(srcPath, Append)
	if err != nil {
		tagf(fs.logger, "copy_to_external_fs", "(Source : %s) %s", srcPath, "Open Error : File Not Openned")
		return err
	}

	entry, err := fs.lookupOpenFile(h)
	if err != nil {
		return err
	}
	entry.lockMutex()
	entry.offset = 0
	entry.unlockMutex()

	n, err := fs.inodes.get(entry.inumber)
	if err != nil {
		return err
	}
	n.rlock()
	total := n.size
	n.runlock()

	buf := make([]byte, externalCopyBufferSize)
	copied := 0
	for copied < total {
		chunk := len(buf)
		if remain := total - copied; chunk > remain {
			chunk = remain
		}
		got, rerr := fs.Read(h, buf[:chunk])
		if rerr != nil {
			tagf(fs.logger, "copy_to_external_fs", "%s", "Read Error: Error reading the content\n")
			return fmt.Errorf("%w: %v", ErrExternalIO, rerr)
		}
		if _, werr := sink.Write(buf[:got]); werr != nil {
			tagf(fs.logger, "copy_to_external_fs", "%s", "Write Error: Error writting the content\n")
			return fmt.Errorf("%w: %v", ErrExternalIO, werr)
		}
		copied += got
	}

	if err = fs.CloseHandle(h); err != nil {
		return fmt.Errorf("%w: %v", ErrExternalIO, err)
	}
	return sink.Close()
}

// CopyToExternalFile is the path-based convenience wrapper around
// CopyToExternal: it opens dstPath as an atomically-replaced sink and
// delegates to CopyToExternal.
func (fs *Filesystem) CopyToExternalFile(srcPath, dstPath string) error {
	sink, err := NewFileSink(dstPath)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrExternalIO, err)
	}
	if err := fs.CopyToExternal(srcPath, sink); err != nil {
		if fs, ok := sink.(*fileSink); ok {
			_ = fs.abort()
		}
		return err
	}
	return nil
}

// Stats samples current bitmap occupancy, also pushing it into the
// attached Metrics collector if any.
type Stats struct {
	InodesTaken    int
	BlocksTaken    int
	OpenFilesTaken int
}

func (fs *Filesystem) Stats() Stats {
	s := Stats{
		InodesTaken:    fs.inodes.alloc.takenCount(),
		BlocksTaken:    fs.blocks.bitmap.takenCount(),
		OpenFilesTaken: fs.files.alloc.takenCount(),
	}
	fs.metrics.setBitmap("inode", s.InodesTaken)
	fs.metrics.setBitmap("block", s.BlocksTaken)
	fs.metrics.setBitmap("openfile", s.OpenFilesTaken)
	return s
}

// time returns a function that, when deferred, records op's latency
// and outcome into fs.metrics. errp must point at the calling method's
// named error return, so that by the time the deferred call runs (after
// the method has returned) it observes the real, final error rather
// than a value fixed at defer-statement time.
func (fs *Filesystem) time(op string, errp *error) func() {
	if fs.metrics == nil {
		return func() {}
	}
	start := time.Now()
	return func() { fs.metrics.observe(op, start, *errp) }
}

var _ io.Closer = (*Filesystem)(nil)
