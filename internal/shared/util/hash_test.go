package util

import "testing"

func TestHashKey(t *testing.T) {
	got := HashKey("en", "teamlead")
	if got != HashKey("en", "teamlead") {
		t.Fatalf("expected stable hash, got %s", got)
	}
	for _, ch := range got {
		if !((ch >= 'a' && ch <= 'f') || (ch >= '0' && ch <= '9')) {
			t.Fatalf("hash contains non-hex character: %c", ch)
		}
	}
	if len(got) != 64 {
		t.Fatalf("expected 64 hex characters, got %d", len(got))
	}
	if HashKey("ab", "c") == HashKey("a", "bc") {
		t.Fatalf("expected part boundaries to change the hash")
	}
}

func TestChecksum(t *testing.T) {
	const emptySHA = "e3b0c44298fc1c149afbf4c8996fb92427ae41e4649b934ca495991b7852b855"
	if got := Checksum(nil); got != emptySHA {
		t.Fatalf("unexpected checksum of empty input: %s", got)
	}
}
