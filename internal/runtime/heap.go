package runtime

import (
	"sort"
	"sync"

	"hemlock/internal/trace"
)

// Handle is an opaque index into a Heap's object table. The zero Handle
// never denotes a live object.
type Handle uint32

// ObjectKind tags the payload a heap Object carries.
type ObjectKind uint8

const (
	ObjString ObjectKind = iota
	ObjArray
	ObjObject
	ObjBuffer
	ObjFunction
	ObjTask
	ObjChannel
	ObjFile
)

// Object is the heap-resident payload behind a heap Value. Exactly one of
// the payload fields is meaningful, selected by Kind.
type Object struct {
	Kind     ObjectKind
	RefCount int
	Alive    bool

	Str    string
	Arr    []Value
	Fields map[string]Value
	// FieldOrder preserves object literal field insertion order (spec
	// invariant: field iteration order matches declaration order).
	FieldOrder []string
	TypeName   string
	Buf        []byte
	Fn         *FunctionObj
	Task       *TaskObj
	Chan       *ChannelObj
	File       *FileObj

	// HasElementType and ElementType constrain an array to a single value
	// kind, checked on every insertion. Set once at construction; a plain
	// array leaves HasElementType false and accepts any kind.
	HasElementType bool
	ElementType    ValueKind
}

// checkElementType rejects an insertion that violates a typed array's
// declared element kind. A no-op for untyped arrays.
func (o *Object) checkElementType(v Value) *Error {
	if !o.HasElementType {
		return nil
	}
	if v.Kind != o.ElementType {
		return NewError(TypeError, "typed array expects %s, got %s", o.ElementType, v.Kind)
	}
	return nil
}

// Heap owns every reference-counted object a program allocates. All methods
// are goroutine-safe: tasks running on separate OS threads may allocate,
// retain and release concurrently.
type Heap struct {
	mu      sync.Mutex
	objects map[Handle]*Object
	next    Handle
	tracer  trace.Tracer

	// freed records handles that have already been destroyed, so a
	// double free() is detected instead of silently corrupting state.
	freed map[Handle]struct{}
}

// NewHeap constructs an empty heap. A nil tracer is replaced with trace.Nop.
func NewHeap(tracer trace.Tracer) *Heap {
	if tracer == nil {
		tracer = trace.Nop
	}
	return &Heap{
		objects: make(map[Handle]*Object),
		freed:   make(map[Handle]struct{}),
		tracer:  tracer,
	}
}

// Alloc registers obj with refcount 1 and returns its handle.
func (h *Heap) Alloc(obj *Object) Handle {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.next++
	handle := h.next
	obj.RefCount = 1
	obj.Alive = true
	h.objects[handle] = obj
	span := trace.Begin(h.tracer, trace.ScopeHeap, "alloc", 0)
	span.WithExtra("kind", objKindName(obj.Kind)).End("")
	return handle
}

// Get returns the live object at handle, or nil if it was freed or never
// allocated.
func (h *Heap) Get(handle Handle) *Object {
	h.mu.Lock()
	defer h.mu.Unlock()
	obj, ok := h.objects[handle]
	if !ok || !obj.Alive {
		return nil
	}
	return obj
}

// Retain increments handle's refcount. It is a no-op on a freed or unknown
// handle (defensive; the evaluator should never retain a dead handle).
func (h *Heap) Retain(handle Handle) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if obj, ok := h.objects[handle]; ok && obj.Alive {
		obj.RefCount++
	}
}

// Release decrements handle's refcount and frees the object once it drops
// to zero, recursively releasing any heap values it contains.
func (h *Heap) Release(handle Handle) {
	h.mu.Lock()
	obj, ok := h.objects[handle]
	if !ok || !obj.Alive {
		h.mu.Unlock()
		return
	}
	obj.RefCount--
	shouldFree := obj.RefCount <= 0
	h.mu.Unlock()

	if shouldFree {
		h.free(handle, obj)
	}
}

// free performs the actual teardown. It must only be called once refcount
// has reached zero (or via the explicit free() builtin, which requires
// refcount <= 1 before allowing the call).
func (h *Heap) free(handle Handle, obj *Object) {
	h.mu.Lock()
	if _, already := h.freed[handle]; already {
		h.mu.Unlock()
		return
	}
	obj.Alive = false
	h.freed[handle] = struct{}{}
	h.mu.Unlock()

	span := trace.Begin(h.tracer, trace.ScopeHeap, "free", 0)
	defer span.WithExtra("kind", objKindName(obj.Kind)).End("")

	switch obj.Kind {
	case ObjArray:
		for _, v := range obj.Arr {
			if v.IsHeap() {
				h.Release(v.Heap)
			}
		}
	case ObjObject:
		for _, v := range obj.Fields {
			if v.IsHeap() {
				h.Release(v.Heap)
			}
		}
	case ObjFunction:
		// obj.Fn.Closure is a *Environment kept alive by ordinary Go
		// garbage collection, not by the manual refcount contract that
		// governs Value payloads; nothing to release here.
	}
}

// ExplicitFree implements the free() builtin: it is only valid when the
// caller holds the last live reference. Returns a MemoryError otherwise.
func (h *Heap) ExplicitFree(handle Handle) error {
	h.mu.Lock()
	obj, ok := h.objects[handle]
	if !ok || !obj.Alive {
		h.mu.Unlock()
		return NewError(MemoryError, "free: handle is not a live object")
	}
	if obj.RefCount > 1 {
		count := obj.RefCount
		h.mu.Unlock()
		return NewError(MemoryError, "free: value has %d live references, refuse to free while shared", count)
	}
	h.mu.Unlock()
	h.free(handle, obj)
	return nil
}

// LiveCount returns the number of currently-live objects, used by tests
// asserting refcount balance (testable property 1).
func (h *Heap) LiveCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	n := 0
	for _, obj := range h.objects {
		if obj.Alive {
			n++
		}
	}
	return n
}

// LiveHandles returns a deterministically sorted snapshot of live handles,
// used by the debugger's heap dump.
func (h *Heap) LiveHandles() []Handle {
	h.mu.Lock()
	defer h.mu.Unlock()
	out := make([]Handle, 0, len(h.objects))
	for handle, obj := range h.objects {
		if obj.Alive {
			out = append(out, handle)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

func objKindName(k ObjectKind) string {
	switch k {
	case ObjString:
		return "string"
	case ObjArray:
		return "array"
	case ObjObject:
		return "object"
	case ObjBuffer:
		return "buffer"
	case ObjFunction:
		return "function"
	case ObjTask:
		return "task"
	case ObjChannel:
		return "channel"
	case ObjFile:
		return "file"
	default:
		return "unknown"
	}
}
