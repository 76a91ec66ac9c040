package tfs

// dirView reinterprets a data block as a fixed array of directory
// entries, mirroring the original source's dir_entry_t array packed
// into the root inode's single data block. Each slot is
// MaxFileName bytes of NUL-padded name followed by a 4-byte inumber;
// an inumber of none marks the slot free.
type dirView struct {
	raw []byte
}

func newDirView(raw []byte) dirView {
	return dirView{raw: raw}
}

func (v dirView) count() int { return len(v.raw) / dirEntrySize }

func (v dirView) entry(i int) []byte {
	off := i * dirEntrySize
	return v.raw[off : off+dirEntrySize]
}

func (v dirView) inumber(i int) int {
	e := v.entry(i)
	b := e[MaxFileName:]
	return int(int32(b[0]) | int32(b[1])<<8 | int32(b[2])<<16 | int32(b[3])<<24)
}

func (v dirView) setInumber(i, inumber int) {
	e := v.entry(i)
	b := e[MaxFileName:]
	u := uint32(int32(inumber))
	b[0] = byte(u)
	b[1] = byte(u >> 8)
	b[2] = byte(u >> 16)
	b[3] = byte(u >> 24)
}

func (v dirView) name(i int) string {
	e := v.entry(i)
	n := e[:MaxFileName]
	end := 0
	for end < len(n) && n[end] != 0 {
		end++
	}
	return string(n[:end])
}

// setName truncates name to MaxFileName-1 bytes and NUL-terminates
// it, matching add_dir_entry's strncpy + explicit terminator.
func (v dirView) setName(i int, name string) {
	e := v.entry(i)
	n := e[:MaxFileName]
	for j := range n {
		n[j] = 0
	}
	b := []byte(name)
	if len(b) > MaxFileName-1 {
		b = b[:MaxFileName-1]
	}
	copy(n, b)
}

// initFree marks every slot free, matching inode_create's directory
// initialization loop.
func (v dirView) initFree() {
	for i := 0; i < v.count(); i++ {
		v.setInumber(i, none)
	}
}

// find returns the inumber of the first exact-match entry for name,
// or none. Matching is first-exact-match on the stored, already
// truncated name, per find_in_dir's strncmp(..., MAX_FILE_NAME).
func (v dirView) find(name string) int {
	if len(name) > MaxFileName-1 {
		name = name[:MaxFileName-1]
	}
	for i := 0; i < v.count(); i++ {
		if inum := v.inumber(i); inum != none && v.name(i) == name {
			return inum
		}
	}
	return none
}

// insert fills the first free slot with (name, inumber). Returns
// false if the directory is full.
func (v dirView) insert(name string, inumber int) bool {
	for i := 0; i < v.count(); i++ {
		if v.inumber(i) == none {
			v.setName(i, name)
			v.setInumber(i, inumber)
			return true
		}
	}
	return false
}
