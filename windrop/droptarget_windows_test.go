//go:build windows

package windrop

import "testing"

// fakeDataObject stands in for the shell's IDataObject.
type fakeDataObject struct {
	hasFiles bool
	paths    []string
	fail     bool
}

func (o *fakeDataObject) hasFileList() bool {
	return o.hasFiles
}

func (o *fakeDataObject) fileList() ([]string, bool) {
	if o.fail {
		return nil, false
	}
	return o.paths, true
}

func newTestTarget(onDrop func([]string)) *dropTarget {
	dt := newDropTarget(1, onDrop)
	// tests exercise the methods directly, not through the COM vtable
	return dt
}

func TestRefCount(t *testing.T) {
	dt := newTestTarget(nil)
	if dt.refs != 1 {
		t.Fatal(dt.refs)
	}
	if n := dt.addRef(); n != 2 {
		t.Fatal(n)
	}
	if n := dt.release(); n != 1 {
		t.Fatal(n)
	}
	pinMu.Lock()
	_, alive := pinned[dt]
	pinMu.Unlock()
	if !alive {
		t.Fatal()
	}
	if n := dt.release(); n != 0 {
		t.Fatal(n)
	}
	pinMu.Lock()
	_, alive = pinned[dt]
	pinMu.Unlock()
	if alive {
		t.Fatal()
	}
}

func TestDragEnterAccepts(t *testing.T) {
	dt := newTestTarget(nil)
	defer dt.release()
	var effect uint32
	dt.dragEnter(&fakeDataObject{hasFiles: true}, &effect)
	if !dt.accepted || effect != _DROPEFFECT_COPY {
		t.Fatal(dt.accepted, effect)
	}
	dt.dragOver(&effect)
	if effect != _DROPEFFECT_COPY {
		t.Fatal(effect)
	}
	dt.dragLeave()
	if dt.accepted {
		t.Fatal()
	}
}

func TestDragEnterRejectsNonFiles(t *testing.T) {
	dt := newTestTarget(nil)
	defer dt.release()
	var effect uint32
	dt.dragEnter(&fakeDataObject{hasFiles: false}, &effect)
	if dt.accepted || effect != _DROPEFFECT_NONE {
		t.Fatal(dt.accepted, effect)
	}
	dt.dragOver(&effect)
	if effect != _DROPEFFECT_NONE {
		t.Fatal(effect)
	}
}

func TestDropEmitsOnce(t *testing.T) {
	var got [][]string
	dt := newTestTarget(func(paths []string) { got = append(got, paths) })
	defer dt.release()
	var effect uint32
	obj := &fakeDataObject{hasFiles: true, paths: []string{`C:\a.txt`, `C:\b.txt`}}
	dt.dragEnter(obj, &effect)
	dt.drop(obj, &effect)
	if len(got) != 1 {
		t.Fatal(got)
	}
	if len(got[0]) != 2 || got[0][0] != `C:\a.txt` || got[0][1] != `C:\b.txt` {
		t.Fatal(got[0])
	}
	if effect != _DROPEFFECT_COPY {
		t.Fatal(effect)
	}
}

func TestDropWithoutEnterEmitsNothing(t *testing.T) {
	emitted := false
	dt := newTestTarget(func([]string) { emitted = true })
	defer dt.release()
	var effect uint32
	dt.drop(&fakeDataObject{hasFiles: true, paths: []string{`C:\a.txt`}}, &effect)
	if emitted || effect != _DROPEFFECT_NONE {
		t.Fatal(emitted, effect)
	}
}

func TestDropExtractionFailureIsSilent(t *testing.T) {
	emitted := false
	dt := newTestTarget(func([]string) { emitted = true })
	defer dt.release()
	var effect uint32
	obj := &fakeDataObject{hasFiles: true, fail: true}
	dt.dragEnter(obj, &effect)
	dt.drop(obj, &effect)
	if emitted || effect != _DROPEFFECT_NONE {
		t.Fatal(emitted, effect)
	}
}
