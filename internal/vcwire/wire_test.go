package vcwire

import "testing"

func TestUVRoundTrip(t *testing.T) {
	values := []uint64{0, 1, 127, 128, 300, 16384, 1 << 40, ^uint64(0)}

	w := NewWriter()
	for _, v := range values {
		w.UV(v)
	}

	r := NewReader(w.Bytes())

	for _, want := range values {
		got, ok := r.UV()
		if !ok {
			t.Fatalf("unexpected short read for %d", want)
		}

		if got != want {
			t.Fatalf("UV round-trip mismatch: got %d, want %d", got, want)
		}
	}

	if r.Remaining() != 0 {
		t.Fatalf("expected reader to be exhausted, %d bytes remain", r.Remaining())
	}
}

func TestU1U2(t *testing.T) {
	w := NewWriter()
	w.U1(0xAB)
	w.U2(0x1234)

	r := NewReader(w.Bytes())

	u1, ok := r.U1()
	if !ok || u1 != 0xAB {
		t.Fatalf("U1 mismatch: got %x ok=%v", u1, ok)
	}

	u2, ok := r.U2()
	if !ok || u2 != 0x1234 {
		t.Fatalf("U2 mismatch: got %x ok=%v", u2, ok)
	}
}

func TestShortRead(t *testing.T) {
	r := NewReader([]byte{0x80})
	if _, ok := r.UV(); ok {
		t.Fatalf("expected short read to fail")
	}

	r2 := NewReader(nil)
	if _, ok := r2.U1(); ok {
		t.Fatalf("expected empty reader U1 to fail")
	}
}
