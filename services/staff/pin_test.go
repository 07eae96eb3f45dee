package staff

import (
	"strings"
	"testing"
)

func TestGeneratePIN(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 50; i++ {
		pin, err := generatePIN()
		if err != nil {
			t.Fatalf("generatePIN failed: %v", err)
		}
		if len(pin) != pinLength {
			t.Fatalf("expected %d digits, got %q", pinLength, pin)
		}
		for _, r := range pin {
			if r < '0' || r > '9' {
				t.Fatalf("non-digit in pin %q", pin)
			}
		}
		seen[pin] = true
	}
	if len(seen) < 2 {
		t.Error("50 generated pins were all identical")
	}
}

func TestHashAndCheckPIN(t *testing.T) {
	hash, err := hashPIN("4821")
	if err != nil {
		t.Fatalf("hashPIN failed: %v", err)
	}
	if hash == "4821" {
		t.Fatal("pin stored in clear")
	}
	if !checkPIN(hash, "4821") {
		t.Error("correct pin rejected")
	}
	if checkPIN(hash, "0000") {
		t.Error("wrong pin accepted")
	}
}

func TestInitials(t *testing.T) {
	cases := []struct {
		name string
		want string
	}{
		{"Dana Okoro", "DO"},
		{"cher", "C"},
		{"ana maria lopez", "AM"},
		{"", ""},
	}
	for _, tc := range cases {
		if got := initials(tc.name); got != tc.want {
			t.Errorf("initials(%q) = %q, want %q", tc.name, got, tc.want)
		}
	}
}

func TestFallbackAvatarURL(t *testing.T) {
	url := fallbackAvatarURL("Dana Okoro")
	if !strings.Contains(url, "Dana+Okoro") {
		t.Errorf("name not escaped into url: %s", url)
	}
}
