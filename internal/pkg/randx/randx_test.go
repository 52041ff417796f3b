package randx

import (
	"testing"
)

func TestBase62String(t *testing.T) {
	t.Parallel()

	for _, length := range []int{1, 6, 9, 32} {
		s, err := Base62String(length)
		if err != nil {
			t.Fatalf("Base62String(%d) error: %v", length, err)
		}
		if len(s) != length {
			t.Fatalf("Base62String(%d) length: got %d want %d", length, len(s), length)
		}
		if !IsBase62(s) {
			t.Fatalf("Base62String(%d) produced non-Base62 output: %q", length, s)
		}
	}
}

func TestBase62StringIsNotConstant(t *testing.T) {
	t.Parallel()

	seen := make(map[string]struct{})
	for i := 0; i < 16; i++ {
		s, err := Base62String(9)
		if err != nil {
			t.Fatalf("Base62String error: %v", err)
		}
		seen[s] = struct{}{}
	}

	if len(seen) < 2 {
		t.Fatalf("expected varied output, got %d distinct values", len(seen))
	}
}

func TestUserID(t *testing.T) {
	t.Parallel()

	a := UserID()
	b := UserID()

	if a == "" || b == "" {
		t.Fatal("UserID returned empty string")
	}
	if a == b {
		t.Fatalf("UserID returned duplicate values: %q", a)
	}
}

func TestIsBase62(t *testing.T) {
	t.Parallel()

	if !IsBase62("abcXYZ019") {
		t.Fatal("expected alphanumeric string to be Base62")
	}
	if IsBase62("with-dash") {
		t.Fatal("expected dash to be rejected")
	}
	if IsBase62("s_token") {
		t.Fatal("expected underscore to be rejected")
	}
}
