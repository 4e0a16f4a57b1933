// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package contextset

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

// fakeReader is an in-memory FileReader for tests.
type fakeReader struct {
	files  map[string]string
	broken map[string]bool
}

func (f fakeReader) Exists(path string) bool {
	if f.broken[path] {
		return true // exists but unreadable
	}
	_, ok := f.files[path]
	return ok
}

func (f fakeReader) ReadAll(path string) (string, error) {
	if f.broken[path] {
		return "", errors.New("permission denied")
	}
	content, ok := f.files[path]
	if !ok {
		return "", errors.New("not found")
	}
	return content, nil
}

func TestCollectIncludesPrimaryFirst(t *testing.T) {
	c := NewCollector(fakeReader{files: map[string]string{
		"b.go": "package b",
	}})

	handle := &struct{ name string }{"editor-buffer"}
	set := c.Collect(&Artifact{ID: "a.go", Content: "package a", Handle: handle}, []string{"b.go"})

	ids := set.IDs()
	if len(ids) != 2 || ids[0] != "a.go" || ids[1] != "b.go" {
		t.Fatalf("ids = %v", ids)
	}

	primary, _ := set.Get("a.go")
	if primary.Content != "package a" {
		t.Errorf("primary content = %q", primary.Content)
	}
	if primary.Handle != handle {
		t.Error("primary handle not recorded")
	}
	if primary.Snapshot() {
		t.Error("primary should not be a snapshot")
	}

	extra, _ := set.Get("b.go")
	if !extra.Snapshot() {
		t.Error("extra path should be a snapshot")
	}
}

func TestCollectSkipsDuplicateOfPrimary(t *testing.T) {
	c := NewCollector(fakeReader{files: map[string]string{
		"a.go": "on disk",
	}})

	set := c.Collect(&Artifact{ID: "a.go", Content: "live content"}, []string{"a.go"})

	if set.Len() != 1 {
		t.Fatalf("Len() = %d, want 1", set.Len())
	}
	entry, _ := set.Get("a.go")
	if entry.Content != "live content" {
		t.Errorf("duplicate path overwrote primary: %q", entry.Content)
	}
}

func TestCollectSkipsRepeatedExtraPath(t *testing.T) {
	c := NewCollector(fakeReader{files: map[string]string{
		"x.go": "content",
	}})

	set := c.Collect(&Artifact{ID: "main.go", Content: ""}, []string{"x.go", "x.go", "x.go"})

	if set.Len() != 2 {
		t.Errorf("Len() = %d, want 2", set.Len())
	}
}

func TestCollectSilentlySkipsMissingAndUnreadable(t *testing.T) {
	c := NewCollector(fakeReader{
		files:  map[string]string{"ok.go": "fine"},
		broken: map[string]bool{"locked.go": true},
	})

	set := c.Collect(&Artifact{ID: "main.go", Content: ""}, []string{"missing.go", "locked.go", "ok.go"})

	if set.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", set.Len())
	}
	if _, ok := set.Get("ok.go"); !ok {
		t.Error("readable path should be collected")
	}
	if _, ok := set.Get("missing.go"); ok {
		t.Error("missing path should be skipped")
	}
	if _, ok := set.Get("locked.go"); ok {
		t.Error("unreadable path should be skipped")
	}
}

func TestCollectWithoutPrimary(t *testing.T) {
	c := NewCollector(fakeReader{files: map[string]string{"a.go": "x"}})

	set := c.Collect(nil, []string{"a.go"})
	if set.Len() != 1 {
		t.Errorf("Len() = %d, want 1", set.Len())
	}
}

func TestSetIterationOrder(t *testing.T) {
	set := NewSet()
	set.Add("c", Entry{Content: "3"})
	set.Add("a", Entry{Content: "1"})
	set.Add("b", Entry{Content: "2"})

	var order []string
	set.Each(func(id string, _ Entry) {
		order = append(order, id)
	})
	if len(order) != 3 || order[0] != "c" || order[1] != "a" || order[2] != "b" {
		t.Errorf("order = %v", order)
	}
}

func TestOSFileReader(t *testing.T) {
	dir := t.TempDir()
	small := filepath.Join(dir, "small.txt")
	if err := os.WriteFile(small, []byte("hello"), 0600); err != nil {
		t.Fatal(err)
	}

	r := OSFileReader{MaxFileSize: 3}
	if r.Exists(small) {
		t.Error("file over size cap should not exist for the reader")
	}

	r = OSFileReader{}
	if !r.Exists(small) {
		t.Error("file should exist")
	}
	content, err := r.ReadAll(small)
	if err != nil || content != "hello" {
		t.Errorf("ReadAll = %q, %v", content, err)
	}

	if r.Exists(dir) {
		t.Error("directories should not count as readable files")
	}
}
