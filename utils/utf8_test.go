package utils

import (
	"testing"
)

func TestUtf16(t *testing.T) {
	t.Run("Utf16CountString", func(t *testing.T) {
		if n := Utf16CountString("a测😀"); n != 4 {
			t.Fatalf(`Utf16CountString("a测😀") = %d, want match for %d`, n, 4)
		}
	})

	t.Run("Utf16Count/Invalid", func(t *testing.T) {
		if n := Utf16Count([]byte{'a', 0xff, 'b'}); n != 3 {
			t.Fatalf(`Utf16Count(invalid) = %d, want match for %d`, n, 3)
		}
	})

	t.Run("Utf16Prefix", func(t *testing.T) {
		if l, ok := Utf16Prefix("4测试rest", 3); !ok || l != 7 {
			t.Fatalf(`Utf16Prefix = (%d, %t), want match for (%d, %t)`, l, ok, 7, true)
		}
		if l, ok := Utf16Prefix("anything", 0); !ok || l != 0 {
			t.Fatalf(`Utf16Prefix(n=0) = (%d, %t), want match for (%d, %t)`, l, ok, 0, true)
		}
	})

	t.Run("Utf16Prefix/Invalid", func(t *testing.T) {
		if l, ok := Utf16Prefix("a\xffb", 2); !ok || l != 2 {
			t.Fatalf(`Utf16Prefix(invalid) = (%d, %t), want match for (%d, %t)`, l, ok, 2, true)
		}
	})

	t.Run("Utf16Prefix/Short", func(t *testing.T) {
		if _, ok := Utf16Prefix("a", 2); ok {
			t.Fatal(`Utf16Prefix("a", 2) should fail`)
		}
	})

	t.Run("Utf16Prefix/SurrogatePair", func(t *testing.T) {
		if _, ok := Utf16Prefix("😀", 1); ok {
			t.Fatal(`Utf16Prefix("😀", 1) should fail`)
		}
		if l, ok := Utf16Prefix("😀", 2); !ok || l != 4 {
			t.Fatalf(`Utf16Prefix("😀", 2) = (%d, %t), want match for (%d, %t)`, l, ok, 4, true)
		}
	})
}

func TestValidText(t *testing.T) {
	for _, s := range []string{"", "aaa", "utf8 ✓ string", "test测试中文和表情字符❤️🧡💛🧓🏾💟"} {
		if !ValidText(s) {
			t.Fatalf(`ValidText(%q) = false, want match for true`, s)
		}
	}
	for _, s := range []string{"\uffff", "a\ufffe", "\ufdd0", "\U0001FFFF", "\xff", "\xed\xa0\x80"} {
		if ValidText(s) {
			t.Fatalf(`ValidText(%q) = true, want match for false`, s)
		}
	}
}
