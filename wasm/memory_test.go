package wasm

import "testing"

func TestAllocationList_FreesEverything(t *testing.T) {
	alloc := &fakeAlloc{}
	list := NewAllocationList()

	for i := 0; i < 5; i++ {
		if _, err := list.Alloc(alloc, 64); err != nil {
			t.Fatalf("alloc %d: %v", i, err)
		}
	}
	if list.Count() != 5 {
		t.Fatalf("Count = %d, want 5", list.Count())
	}

	list.FreeAndRelease(alloc)
	if alloc.frees != 5 {
		t.Errorf("frees = %d, want 5", alloc.frees)
	}
}

func TestAllocationList_AllocFailureNotTracked(t *testing.T) {
	alloc := &fakeAlloc{failAfter: 2}
	list := NewAllocationList()

	for i := 0; i < 2; i++ {
		if _, err := list.Alloc(alloc, 16); err != nil {
			t.Fatalf("alloc %d: %v", i, err)
		}
	}
	if _, err := list.Alloc(alloc, 16); err == nil {
		t.Fatal("expected injected allocation failure")
	}

	list.FreeAndRelease(alloc)
	if alloc.frees != 2 {
		t.Errorf("frees = %d, want 2 (failed alloc must not be freed)", alloc.frees)
	}
}

func TestAllocationList_ResetDropsTracking(t *testing.T) {
	alloc := &fakeAlloc{}
	list := NewAllocationList()
	if _, err := list.Alloc(alloc, 8); err != nil {
		t.Fatal(err)
	}
	list.Reset()
	list.Free(alloc)
	if alloc.frees != 0 {
		t.Errorf("frees = %d, want 0 after Reset", alloc.frees)
	}
	list.Release()
}
