//go:build windows

package windrop

import (
	"sync"
	"sync/atomic"
	"syscall"
	"unsafe"
)

// dropTarget implements IDropTarget. The vtable pointer must be the
// first field for COM interop; everything behind it is ours.
type dropTarget struct {
	lpVtbl   *dropTargetVtbl
	refs     int32
	accepted bool // decided in DragEnter, read by DragOver/Drop
	hwnd     uintptr
	onDrop   func(paths []string)
}

type dropTargetVtbl struct {
	QueryInterface uintptr
	AddRef         uintptr
	Release        uintptr
	DragEnter      uintptr
	DragOver       uintptr
	DragLeave      uintptr
	Drop           uintptr
}

// One process-wide vtable; the callbacks dispatch on the object they
// receive as this.
var (
	vtblOnce sync.Once
	vtbl     *dropTargetVtbl
)

func dropTargetVtblInstance() *dropTargetVtbl {
	vtblOnce.Do(func() {
		vtbl = &dropTargetVtbl{
			QueryInterface: syscall.NewCallback(dtQueryInterface),
			AddRef:         syscall.NewCallback(dtAddRef),
			Release:        syscall.NewCallback(dtRelease),
			DragEnter:      syscall.NewCallback(dtDragEnter),
			DragOver:       syscall.NewCallback(dtDragOver),
			DragLeave:      syscall.NewCallback(dtDragLeave),
			Drop:           syscall.NewCallback(dtDrop),
		}
	})
	return vtbl
}

func newDropTarget(hwnd uintptr, onDrop func([]string)) *dropTarget {
	dt := &dropTarget{
		lpVtbl: dropTargetVtblInstance(),
		refs:   1,
		hwnd:   hwnd,
		onDrop: onDrop,
	}
	pin(dt)
	return dt
}

func fromThis(this uintptr) *dropTarget {
	return (*dropTarget)(unsafe.Pointer(this))
}

//----------
// COM entry points. The OLE runtime may call AddRef/Release off the
// message loop thread, hence the atomics; the drag methods themselves
// arrive serialized on the thread that registered the target.

func dtQueryInterface(this, riid, ppv uintptr) uintptr {
	if ppv == 0 {
		return _E_POINTER
	}
	guid := (*syscall.GUID)(unsafe.Pointer(riid))
	if *guid == _IID_IUnknown || *guid == _IID_IDropTarget {
		*(*uintptr)(unsafe.Pointer(ppv)) = this
		fromThis(this).addRef()
		return _S_OK
	}
	*(*uintptr)(unsafe.Pointer(ppv)) = 0
	return _E_NOINTERFACE
}

func dtAddRef(this uintptr) uintptr {
	return uintptr(fromThis(this).addRef())
}

func dtRelease(this uintptr) uintptr {
	return uintptr(fromThis(this).release())
}

// POINTL is 8 bytes, passed by value in a single x64 register slot.
func dtDragEnter(this, pDataObj, grfKeyState, pt, pdwEffect uintptr) uintptr {
	var obj dataObject
	if pDataObj != 0 {
		obj = comDataObject(pDataObj)
	}
	fromThis(this).dragEnter(obj, (*uint32)(unsafe.Pointer(pdwEffect)))
	return _S_OK
}

func dtDragOver(this, grfKeyState, pt, pdwEffect uintptr) uintptr {
	fromThis(this).dragOver((*uint32)(unsafe.Pointer(pdwEffect)))
	return _S_OK
}

func dtDragLeave(this uintptr) uintptr {
	fromThis(this).dragLeave()
	return _S_OK
}

func dtDrop(this, pDataObj, grfKeyState, pt, pdwEffect uintptr) uintptr {
	var obj dataObject
	if pDataObj != 0 {
		obj = comDataObject(pDataObj)
	}
	fromThis(this).drop(obj, (*uint32)(unsafe.Pointer(pdwEffect)))
	return _S_OK
}

//----------

func (dt *dropTarget) addRef() int32 {
	return atomic.AddInt32(&dt.refs, 1)
}

func (dt *dropTarget) release() int32 {
	n := atomic.AddInt32(&dt.refs, -1)
	if n == 0 {
		unpin(dt)
	}
	return n
}

func (dt *dropTarget) dragEnter(obj dataObject, effect *uint32) {
	dt.accepted = obj != nil && obj.hasFileList()
	*effect = _DROPEFFECT_NONE
	if dt.accepted {
		*effect = _DROPEFFECT_COPY
	}
}

func (dt *dropTarget) dragOver(effect *uint32) {
	*effect = _DROPEFFECT_NONE
	if dt.accepted {
		*effect = _DROPEFFECT_COPY
	}
}

func (dt *dropTarget) dragLeave() {
	dt.accepted = false
}

// drop extracts the file list and emits one event with all paths in
// source order. Extraction failures abort silently: the protocol has
// no error channel back to the source beyond the effect code.
func (dt *dropTarget) drop(obj dataObject, effect *uint32) {
	*effect = _DROPEFFECT_NONE
	accepted := dt.accepted
	dt.accepted = false
	if obj == nil || !accepted {
		return
	}
	paths, ok := obj.fileList()
	if !ok || len(paths) == 0 {
		return
	}
	*effect = _DROPEFFECT_COPY
	if dt.onDrop != nil {
		dt.onDrop(paths)
	}
}
