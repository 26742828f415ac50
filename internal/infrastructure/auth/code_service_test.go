package auth

import (
	"strconv"
	"testing"
)

func TestCodeServiceImpl_Generate(t *testing.T) {
	svc := NewCodeService("test-secret")

	for i := 0; i < 200; i++ {
		code, err := svc.Generate()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(code) != 6 {
			t.Fatalf("expected 6-digit code, got %q", code)
		}
		n, err := strconv.Atoi(code)
		if err != nil {
			t.Fatalf("code %q is not numeric: %v", code, err)
		}
		if n < 100000 || n > 999999 {
			t.Fatalf("code %d outside 100000-999999", n)
		}
	}
}

func TestCodeServiceImpl_HashDeterministic(t *testing.T) {
	svc := NewCodeService("test-secret")

	if svc.Hash("123456") != svc.Hash("123456") {
		t.Error("expected identical digests for identical codes")
	}
	if svc.Hash("123456") == svc.Hash("123457") {
		t.Error("expected different digests for different codes")
	}

	other := NewCodeService("another-secret")
	if svc.Hash("123456") == other.Hash("123456") {
		t.Error("expected digest to depend on the secret")
	}
}

func TestCodeServiceImpl_Verify(t *testing.T) {
	svc := NewCodeService("test-secret")
	digest := svc.Hash("654321")

	tests := []struct {
		name   string
		code   string
		digest string
		want   bool
	}{
		{name: "matching code", code: "654321", digest: digest, want: true},
		{name: "wrong code", code: "111111", digest: digest, want: false},
		{name: "empty digest fails closed", code: "654321", digest: "", want: false},
		{name: "too short", code: "65432", digest: digest, want: false},
		{name: "too long", code: "6543210", digest: digest, want: false},
		{name: "non numeric", code: "65432a", digest: digest, want: false},
		{name: "empty code", code: "", digest: digest, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := svc.Verify(tt.code, tt.digest); got != tt.want {
				t.Errorf("Verify(%q) = %v, want %v", tt.code, got, tt.want)
			}
		})
	}
}

func TestCodeServiceImpl_VerifyRoundTrip(t *testing.T) {
	svc := NewCodeService("test-secret")

	for i := 0; i < 50; i++ {
		code, err := svc.Generate()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !svc.Verify(code, svc.Hash(code)) {
			t.Fatalf("Verify(code, Hash(code)) = false for %q", code)
		}
	}
}
