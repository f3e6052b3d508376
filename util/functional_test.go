package util

import (
	"strconv"
	"testing"
)

func TestMappedSlice(t *testing.T) {
	r := []uint32{3, 0, 12}
	m := MappedSlice(r, func(v uint32) string { return "SLICE" + strconv.Itoa(int(v)) })

	expected := []string{"SLICE3", "SLICE0", "SLICE12"}
	if len(m) != len(expected) {
		t.Fatal("unexpected result size")
	}
	for i := range m {
		if m[i] != expected[i] {
			t.Fatalf("unexpected value at index %d", i)
		}
	}
	if len(MappedSlice([]int{}, strconv.Itoa)) != 0 {
		t.Fatal("expected an empty result")
	}
}
