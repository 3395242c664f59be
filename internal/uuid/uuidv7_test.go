package uuid

import "testing"

func TestNew(t *testing.T) {
	a := New()
	b := New()

	if !IsValid(a) || !IsValid(b) {
		t.Fatalf("generated IDs should be valid: %q %q", a, b)
	}
	if a == b {
		t.Fatal("expected distinct IDs")
	}
	if a[14] != '7' {
		t.Errorf("expected version 7, got %q", a)
	}
}

func TestIsValid(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{"0190b6f4-6c5e-7a3e-9f3c-2b1d4e5f6a7b", true},
		{"not-a-uuid", false},
		{"", false},
		{"42", false},
		{"{0190b6f4-6c5e-7a3e-9f3c-2b1d4e5f6a7b}", false},
	}
	for _, tt := range tests {
		if got := IsValid(tt.in); got != tt.want {
			t.Errorf("IsValid(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
