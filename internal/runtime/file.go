package runtime

import "os"

// FileObj is the heap payload of a KindFile value: a thin wrapper over an
// OS file handle plus the mode it was opened with.
type FileObj struct {
	Path   string
	Mode   string
	Handle *os.File
	Closed bool
}

// NewFile opens path in mode ("r", "w", "a") and wraps it as a Value.
func (interp *Interp) NewFile(path, mode string) (Value, error) {
	var flag int
	switch mode {
	case "r":
		flag = os.O_RDONLY
	case "w":
		flag = os.O_WRONLY | os.O_CREATE | os.O_TRUNC
	case "a":
		flag = os.O_WRONLY | os.O_CREATE | os.O_APPEND
	default:
		return Value{}, NewError(IOError, "unknown file mode %q", mode)
	}
	f, err := os.OpenFile(path, flag, 0o644)
	if err != nil {
		return Value{}, NewError(IOError, "open %s: %v", path, err)
	}
	handle := interp.Heap.Alloc(&Object{Kind: ObjFile, File: &FileObj{Path: path, Mode: mode, Handle: f}})
	return makeHeapValue(KindFile, handle), nil
}
