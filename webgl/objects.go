package webgl

import (
	"fmt"
	"sort"

	log "github.com/sirupsen/logrus"

	"github.com/richinsley/gowebgl/graphics"
)

type objectKind int

const (
	kindShader objectKind = iota
	kindProgram
	kindBuffer
	kindTexture
	kindFramebuffer
	kindRenderbuffer
	kindVertexArray
)

func (k objectKind) String() string {
	switch k {
	case kindShader:
		return "shader"
	case kindProgram:
		return "program"
	case kindBuffer:
		return "buffer"
	case kindTexture:
		return "texture"
	case kindFramebuffer:
		return "framebuffer"
	case kindRenderbuffer:
		return "renderbuffer"
	case kindVertexArray:
		return "vertex array"
	}
	return "unknown"
}

// linkable is the lifecycle state shared by every GL object. owner is the
// identity of the creating context, not a reference to it.
//
// refCount counts the binding points and container objects (programs,
// framebuffers, vertex arrays) currently referring to the object. A delete
// request on an object in use only marks it; the native name is released
// when the last reference goes away.
type linkable struct {
	name          uint32
	owner         int
	refCount      int
	pendingDelete bool
	released      bool
}

// Name returns the object's identity within its context's table.
func (l *linkable) Name() uint32 { return l.name }

// IsDeleted reports whether deletion was requested.
func (l *linkable) IsDeleted() bool { return l.pendingDelete }

// IsReleased reports whether the native object has been freed.
func (l *linkable) IsReleased() bool { return l.released }

// InUse reports whether any binding point or container still refers to the
// object.
func (l *linkable) InUse() bool { return l.refCount > 0 }

// object is implemented by every GL object type. base returns nil for a nil
// receiver so that empty binding slots can be passed around freely.
type object interface {
	base() *linkable
	kind() objectKind
}

// objectTable maps identities to live objects of one kind.
type objectTable[T object] struct {
	objects map[uint32]T
}

func newObjectTable[T object]() *objectTable[T] {
	return &objectTable[T]{objects: make(map[uint32]T)}
}

func (t *objectTable[T]) insert(o T) {
	t.objects[o.base().name] = o
}

func (t *objectTable[T]) lookup(name uint32) (T, bool) {
	o, ok := t.objects[name]
	return o, ok
}

func (t *objectTable[T]) remove(name uint32) {
	delete(t.objects, name)
}

func (t *objectTable[T]) Len() int {
	return len(t.objects)
}

// all returns the table contents ordered by identity.
func (t *objectTable[T]) all() []T {
	names := make([]uint32, 0, len(t.objects))
	for name := range t.objects {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool { return names[i] < names[j] })
	out := make([]T, 0, len(names))
	for _, name := range names {
		out = append(out, t.objects[name])
	}
	return out
}

func lookupObject[T object](t *objectTable[T], kind objectKind, name uint32) (T, error) {
	o, ok := t.lookup(name)
	if !ok {
		var zero T
		return zero, fmt.Errorf("%w: %s %d", ErrNoSuchObject, kind, name)
	}
	return o, nil
}

// retain records a new reference from a binding point or container.
func (c *Context) retain(o object) {
	if b := o.base(); b != nil {
		b.refCount++
	}
}

// unref drops a reference and releases the object if it was waiting for
// its last reference to go away.
func (c *Context) unref(o object) {
	b := o.base()
	if b == nil {
		return
	}
	if b.refCount > 0 {
		b.refCount--
	}
	c.checkDelete(o)
}

func (c *Context) checkDelete(o object) {
	b := o.base()
	if b == nil || !b.pendingDelete || b.released || b.InUse() {
		return
	}
	c.release(o)
}

// deleteObject is the single deletion path for every kind. The object leaves
// its table at once; the native release waits until nothing refers to it.
func (c *Context) deleteObject(o object, remove func(name uint32)) {
	b := o.base()
	if b == nil || b.pendingDelete {
		return
	}
	b.pendingDelete = true
	remove(b.name)
	if b.InUse() {
		c.deferred[b] = o
		log.Debugf("Context %d: deferring release of %s %d (%d references)", c.id, o.kind(), b.name, b.refCount)
		return
	}
	c.release(o)
}

// release frees the native object and drops the references it held on other
// objects. It runs at most once per object.
func (c *Context) release(o object) {
	b := o.base()
	if b.released {
		return
	}
	b.released = true
	delete(c.deferred, b)
	log.Debugf("Context %d: releasing %s %d", c.id, o.kind(), b.name)

	d := c.driver
	switch x := o.(type) {
	case *Shader:
		d.DeleteShader(b.name)
	case *Program:
		d.DeleteProgram(b.name)
		for _, s := range x.attachedShaders() {
			c.unref(s)
		}
		x.vertex, x.fragment = nil, nil
	case *Buffer:
		d.DeleteBuffer(b.name)
	case *Texture:
		d.DeleteTexture(b.name)
	case *Framebuffer:
		d.DeleteFramebuffer(b.name)
		for attachment, a := range x.attachments {
			delete(x.attachments, attachment)
			c.unref(a)
		}
	case *Renderbuffer:
		d.DeleteRenderbuffer(b.name)
	case *VertexArray:
		d.DeleteVertexArray(b.name)
		x.state.releaseBindings(c)
	}
}

// owns validates an object passed to a context call. Deleted objects raise
// INVALID_VALUE and objects of other contexts INVALID_OPERATION.
func (c *Context) owns(o object) bool {
	b := o.base()
	if b == nil {
		return false
	}
	if b.owner != c.id {
		c.setError(graphics.INVALID_OPERATION)
		return false
	}
	if b.pendingDelete {
		c.setError(graphics.INVALID_VALUE)
		return false
	}
	return true
}
