package hce

import (
	"sync"
	"sync/atomic"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/gregLibert/hce/pkg/tlv"
)

func TestResponseTable_PutCopiesInput(t *testing.T) {
	tbl := NewResponseTable()
	data := tlv.Hex("CA FE")
	tbl.Put(3, data)
	data[0] = 0x00

	got, ok := tbl.Get(3)
	if !ok {
		t.Fatal("Get(3) reported no entry")
	}
	if diff := cmp.Diff(tlv.Hex("CA FE"), got); diff != "" {
		t.Errorf("Get(3) mismatch (-want +got):\n%s", diff)
	}
}

func TestResponseTable_GetDoesNotConsume(t *testing.T) {
	tbl := NewResponseTable()
	tbl.Put(1, tlv.Hex("01"))

	got, _ := tbl.Get(1)
	got[0] = 0xFF

	for i := 0; i < 2; i++ {
		got, ok := tbl.Get(1)
		if !ok || got[0] != 0x01 {
			t.Fatalf("Get(1) call %d = %X, %v", i, got, ok)
		}
	}
}

func TestResponseTable_Take(t *testing.T) {
	tests := []struct {
		name      string
		permanent bool
		wantLeft  bool
	}{
		{"Once", false, false},
		{"Permanent", true, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tbl := NewResponseTable()
			tbl.Put(7, tlv.Hex("AA BB"))

			got, ok := tbl.Take(7, tt.permanent)
			if !ok {
				t.Fatal("Take(7) found nothing")
			}
			if diff := cmp.Diff(tlv.Hex("AA BB"), got); diff != "" {
				t.Errorf("Take(7) mismatch (-want +got):\n%s", diff)
			}

			_, left := tbl.Get(7)
			if left != tt.wantLeft {
				t.Errorf("entry left after Take = %v, want %v", left, tt.wantLeft)
			}
		})
	}
}

func TestResponseTable_TakeMissing(t *testing.T) {
	tbl := NewResponseTable()
	if got, ok := tbl.Take(0, false); ok || got != nil {
		t.Errorf("Take(0) on empty table = %X, %v", got, ok)
	}
}

func TestResponseTable_LastPutWins(t *testing.T) {
	tbl := NewResponseTable()
	tbl.Put(2, tlv.Hex("01"))
	tbl.Put(2, tlv.Hex("02"))

	got, _ := tbl.Take(2, false)
	if diff := cmp.Diff(tlv.Hex("02"), got); diff != "" {
		t.Errorf("Take(2) mismatch (-want +got):\n%s", diff)
	}
	if tbl.Len() != 0 {
		t.Errorf("Len() = %d, want 0", tbl.Len())
	}
}

func TestResponseTable_RemoveAndPorts(t *testing.T) {
	tbl := NewResponseTable()
	for _, p := range []Port{200, 4, 17} {
		tbl.Put(p, nil)
	}

	if diff := cmp.Diff([]Port{4, 17, 200}, tbl.Ports()); diff != "" {
		t.Errorf("Ports() mismatch (-want +got):\n%s", diff)
	}

	tbl.Remove(17)
	tbl.Remove(17)
	tbl.Remove(99)

	if diff := cmp.Diff([]Port{4, 200}, tbl.Ports()); diff != "" {
		t.Errorf("Ports() after Remove mismatch (-want +got):\n%s", diff)
	}
}

func TestResponseTable_EmptyPayloadIsAnEntry(t *testing.T) {
	tbl := NewResponseTable()
	tbl.Put(5, nil)

	got, ok := tbl.Take(5, false)
	if !ok {
		t.Fatal("Take(5) found nothing")
	}
	if len(got) != 0 {
		t.Errorf("Take(5) = %X, want empty", got)
	}
}

func TestResponseTable_ConcurrentTakeServesOnce(t *testing.T) {
	tbl := NewResponseTable()
	tbl.Put(9, tlv.Hex("01 02"))

	var served atomic.Int32
	var wg sync.WaitGroup
	for i := 0; i < 64; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, ok := tbl.Take(9, false); ok {
				served.Add(1)
			}
		}()
	}
	wg.Wait()

	if got := served.Load(); got != 1 {
		t.Errorf("entry served %d times, want 1", got)
	}
}
