package value

import "testing"

func TestConstructorsAreNonRaw(t *testing.T) {
	for _, v := range []Value{Num(1), Str("a"), Bool(true), Array(nil), Hash(nil), TypeName("int"), Null()} {
		if v.IsRaw {
			t.Fatalf("constructor produced a Raw value: %+v", v)
		}
	}
}

func TestAsRawForwarded(t *testing.T) {
	v := Num(3).AsRaw()
	if !v.IsRaw {
		t.Fatal("AsRaw did not set IsRaw")
	}
	if !v.IsRawKind(KindNum) {
		t.Fatal("IsRawKind(KindNum) should be true")
	}
	f := v.Forwarded()
	if f.IsRaw {
		t.Fatal("Forwarded should clear IsRaw")
	}
	if f.Int() != 3 {
		t.Fatalf("Forwarded changed payload: got %d", f.Int())
	}
}

func TestEqual(t *testing.T) {
	cases := []struct {
		a, b  Value
		equal bool
	}{
		{Num(1), Num(1), true},
		{Num(1), Num(2), false},
		{Num(1), Num(1).AsRaw(), false},
		{Str("a"), Str("a"), true},
		{Str("a"), Str("A"), false},
		{Bool(true), Bool(true), true},
		{Null(), Null(), true},
		{Array([]Value{Num(1), Num(2)}), Array([]Value{Num(1), Num(2)}), true},
		{Array([]Value{Num(1)}), Array([]Value{Num(1), Num(2)}), false},
		{TypeName("[int]"), TypeName("int"), true},
	}
	for i, c := range cases {
		if got := Equal(c.a, c.b); got != c.equal {
			t.Errorf("case %d: Equal(%+v, %+v) = %v, want %v", i, c.a, c.b, got, c.equal)
		}
	}
}

func TestArrayCopiesBackingSlice(t *testing.T) {
	src := []Value{Num(1), Num(2)}
	v := Array(src)
	src[0] = Num(99)
	if v.Elems()[0].Int() != 1 {
		t.Fatal("Array did not copy its backing slice")
	}
}

func TestStringRendering(t *testing.T) {
	cases := []struct {
		v    Value
		want string
	}{
		{Num(42), "42"},
		{Str("hi"), "hi"},
		{Bool(true), "True"},
		{Bool(false), "False"},
		{Null(), ""},
		{Array([]Value{Num(1), Str("x")}), "1 x"},
	}
	for _, c := range cases {
		if got := c.v.String(); got != c.want {
			t.Errorf("String() = %q, want %q", got, c.want)
		}
	}
}

func TestCastToCharMasksOutOfRangeCodePoints(t *testing.T) {
	cases := []struct {
		in   int64
		want string
	}{
		{65, "A"},
		{-1, string(rune(-1 & 0x10FFFF))},
		{0x110000, string(rune(0x110000 & 0x10FFFF))},
	}
	for _, c := range cases {
		folded := CastToChar(Num(c.in))
		if !folded.Ok {
			t.Fatalf("CastToChar(%d): expected Ok, got decline", c.in)
		}
		if folded.Value.String() != c.want {
			t.Fatalf("CastToChar(%d): expected %q, got %q", c.in, c.want, folded.Value.String())
		}
	}
}
