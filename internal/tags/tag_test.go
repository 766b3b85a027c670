package tags

import (
	"testing"

	"github.com/jmylchreest/tagtint/internal/colour"
)

func TestSetAddDeduplicates(t *testing.T) {
	set := NewSet()

	if !set.Add(Tag{Name: "SWE", Colour: colour.RGB{R: 1}, Path: "countries/Sweden.txt"}) {
		t.Fatal("First Add(SWE) should succeed")
	}
	if set.Add(Tag{Name: "SWE", Colour: colour.RGB{R: 2}, Path: "countries/Other.txt"}) {
		t.Error("Second Add(SWE) should be rejected")
	}
	if set.Len() != 1 {
		t.Errorf("Len() = %d, want 1", set.Len())
	}

	got, ok := set.Get("SWE")
	if !ok {
		t.Fatal("Get(SWE) found nothing")
	}
	if got.Path != "countries/Sweden.txt" {
		t.Errorf("First definition should win, got path %s", got.Path)
	}
}

func TestSetOrder(t *testing.T) {
	set := NewSet(Tag{Name: "SWE"}, Tag{Name: "DAN"}, Tag{Name: "NOR"}, Tag{Name: "DAN"})

	names := set.Names()
	want := []string{"SWE", "DAN", "NOR"}
	if len(names) != len(want) {
		t.Fatalf("Names() = %v, want %v", names, want)
	}
	for i := range want {
		if names[i] != want[i] {
			t.Errorf("Names()[%d] = %s, want %s", i, names[i], want[i])
		}
	}

	if _, ok := set.Get("FRA"); ok {
		t.Error("Get(FRA) should report missing")
	}
}

func TestSetTagsIsCopy(t *testing.T) {
	set := NewSet(Tag{Name: "SWE"})
	list := set.Tags()
	list[0].Name = "XXX"

	if _, ok := set.Get("SWE"); !ok {
		t.Error("Mutating Tags() result changed the set")
	}
}
