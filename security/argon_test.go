package security

import (
	"strings"
	"testing"
)

func TestGenerateFromPassword_NeverStoresPlaintext(t *testing.T) {
	t.Parallel()

	a := NewArgon()

	encoded, err := a.GenerateFromPassword("hunter2hunter2")
	if err != nil {
		t.Fatalf("GenerateFromPassword error: %v", err)
	}

	if strings.Contains(encoded, "hunter2hunter2") {
		t.Fatalf("encoded hash contains the plaintext password: %q", encoded)
	}

	if !strings.HasPrefix(encoded, "$argon2id$v=19$") {
		t.Fatalf("unexpected hash format: %q", encoded)
	}
}

func TestVerifyPassword_OnlyOriginalPlaintextMatches(t *testing.T) {
	t.Parallel()

	a := NewArgon()

	encoded, err := a.GenerateFromPassword("correct-horse")
	if err != nil {
		t.Fatalf("GenerateFromPassword error: %v", err)
	}

	ok, err := a.VerifyPassword("correct-horse", encoded)
	if err != nil {
		t.Fatalf("VerifyPassword error: %v", err)
	}
	if !ok {
		t.Fatal("expected the original password to verify")
	}

	for _, wrong := range []string{"", "correct-horsE", "correct-horse ", "battery-staple"} {
		ok, err := a.VerifyPassword(wrong, encoded)
		if err != nil {
			t.Fatalf("VerifyPassword(%q) error: %v", wrong, err)
		}
		if ok {
			t.Fatalf("password %q should not verify", wrong)
		}
	}
}

func TestVerifyPassword_SaltsDiffer(t *testing.T) {
	t.Parallel()

	a := NewArgon()

	h1, err := a.GenerateFromPassword("same-password")
	if err != nil {
		t.Fatalf("GenerateFromPassword error: %v", err)
	}

	h2, err := a.GenerateFromPassword("same-password")
	if err != nil {
		t.Fatalf("GenerateFromPassword error: %v", err)
	}

	if h1 == h2 {
		t.Fatal("two hashes of the same password share a salt")
	}
}

func TestVerifyPassword_RejectsGarbageHash(t *testing.T) {
	t.Parallel()

	a := NewArgon()

	for _, e := range []string{"", "plaintext", "$argon2id$v=19$bad", "$bcrypt$something$else$entirely$x"} {
		if _, err := a.VerifyPassword("whatever", e); err == nil {
			t.Fatalf("expected error for stored hash %q", e)
		}
	}
}
