//go:build windows

package windrop

import (
	"syscall"
	"unsafe"

	"golang.org/x/sys/windows"
)

var (
	modOle32   = windows.NewLazySystemDLL("ole32.dll")
	modShell32 = windows.NewLazySystemDLL("shell32.dll")
	modUser32  = windows.NewLazySystemDLL("user32.dll")

	procOleInitialize    = modOle32.NewProc("OleInitialize")
	procRegisterDragDrop = modOle32.NewProc("RegisterDragDrop")
	procReleaseStgMedium = modOle32.NewProc("ReleaseStgMedium")
	procDragQueryFileW   = modShell32.NewProc("DragQueryFileW")
	procFindWindowW      = modUser32.NewProc("FindWindowW")
)

const (
	_CF_HDROP         = 15
	_DVASPECT_CONTENT = 1
	_TYMED_HGLOBAL    = 1

	_DROPEFFECT_NONE = 0
	_DROPEFFECT_COPY = 1

	// https://docs.microsoft.com/en-us/windows/win32/seccrypto/common-hresult-values
	_S_OK          = 0x0
	_S_FALSE       = 0x1
	_E_NOINTERFACE = 0x80004002
	_E_POINTER     = 0x80004003

	_DRAGDROP_E_ALREADYREGISTERED = 0x80040101
)

var (
	_IID_IUnknown    = syscall.GUID{Data1: 0x00000000, Data4: [8]byte{0xC0, 0, 0, 0, 0, 0, 0, 0x46}}
	_IID_IDropTarget = syscall.GUID{Data1: 0x00000122, Data4: [8]byte{0xC0, 0, 0, 0, 0, 0, 0, 0x46}}
)

// _FORMATETC with the padding the Win64 ABI inserts for pointer alignment.
type _FORMATETC struct {
	cfFormat uint16
	_        [6]byte
	ptd      uintptr
	dwAspect uint32
	lindex   int32
	tymed    uint32
	_        [4]byte
}

// _STGMEDIUM, Win64 layout.
type _STGMEDIUM struct {
	tymed          uint32
	_              uint32
	hGlobal        uintptr
	pUnkForRelease uintptr
}

func fileListFormat() _FORMATETC {
	return _FORMATETC{
		cfFormat: _CF_HDROP,
		dwAspect: _DVASPECT_CONTENT,
		lindex:   -1,
		tymed:    _TYMED_HGLOBAL,
	}
}

//----------

// dataObject is the slice of IDataObject the adapter consumes: whether
// the drag payload carries a file list, and the list itself.
type dataObject interface {
	hasFileList() bool
	fileList() ([]string, bool)
}

// comDataObject wraps a raw IDataObject pointer received over COM.
type comDataObject uintptr

// comCall invokes a method through the object's vtable. The vtable
// pointer is the first word of any COM object.
func comCall(obj uintptr, vtblIndex int, args ...uintptr) uintptr {
	vtbl := *(*uintptr)(unsafe.Pointer(obj))
	fn := *(*uintptr)(unsafe.Pointer(vtbl + uintptr(vtblIndex)*unsafe.Sizeof(uintptr(0))))
	all := append([]uintptr{obj}, args...)
	ret, _, _ := syscall.SyscallN(fn, all...)
	return ret
}

// IDataObject vtable: 0..2 IUnknown, 3 GetData, 5 QueryGetData.
const (
	dataObjectGetData      = 3
	dataObjectQueryGetData = 5
)

func (o comDataObject) hasFileList() bool {
	fe := fileListFormat()
	return comCall(uintptr(o), dataObjectQueryGetData, uintptr(unsafe.Pointer(&fe))) == _S_OK
}

// fileList extracts the CF_HDROP payload and converts each entry from
// UTF-16. ok=false when extraction fails at any step.
func (o comDataObject) fileList() ([]string, bool) {
	fe := fileListFormat()
	var medium _STGMEDIUM
	hr := comCall(uintptr(o), dataObjectGetData,
		uintptr(unsafe.Pointer(&fe)), uintptr(unsafe.Pointer(&medium)))
	if hr != _S_OK {
		return nil, false
	}
	defer procReleaseStgMedium.Call(uintptr(unsafe.Pointer(&medium)))

	hDrop := medium.hGlobal
	count, _, _ := procDragQueryFileW.Call(hDrop, 0xffffffff, 0, 0)
	paths := make([]string, 0, count)
	for i := uintptr(0); i < count; i++ {
		// size query excludes the nul terminator
		size, _, _ := procDragQueryFileW.Call(hDrop, i, 0, 0)
		if size == 0 {
			continue
		}
		buf := make([]uint16, size+1)
		n, _, _ := procDragQueryFileW.Call(hDrop, i,
			uintptr(unsafe.Pointer(&buf[0])), uintptr(len(buf)))
		if n == 0 {
			continue
		}
		paths = append(paths, windows.UTF16ToString(buf))
	}
	return paths, true
}

//----------

// findWindow resolves a top-level window of this process by title.
func findWindow(title string) (uintptr, error) {
	p, err := windows.UTF16PtrFromString(title)
	if err != nil {
		return 0, err
	}
	hwnd, _, _ := procFindWindowW.Call(0, uintptr(unsafe.Pointer(p)))
	return hwnd, nil
}
