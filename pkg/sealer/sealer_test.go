package sealer

import "testing"

const testKey = "lfQVRuulcL2iOhOJ2r8BYTweoSKwVAJnIF9U+AL+M60="

func TestSealAndOpen(t *testing.T) {
	s, err := New(testKey)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	token, err := s.Seal("bk_123", "user_456")
	if err != nil {
		t.Fatalf("Seal: %v", err)
	}

	bookingID, userID, err := s.Open(token)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if bookingID != "bk_123" || userID != "user_456" {
		t.Errorf("Open = (%q, %q), want (bk_123, user_456)", bookingID, userID)
	}
}

func TestOpenRejectsTamperedToken(t *testing.T) {
	s, err := New(testKey)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	token, err := s.Seal("bk_123", "user_456")
	if err != nil {
		t.Fatalf("Seal: %v", err)
	}

	tampered := token[:len(token)-2] + "zz"
	if _, _, err := s.Open(tampered); err == nil {
		t.Error("expected error for tampered token")
	}
}

func TestOpenRejectsGarbage(t *testing.T) {
	s, err := New(testKey)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	for _, token := range []string{"", "!!!", "aaaa"} {
		if _, _, err := s.Open(token); err == nil {
			t.Errorf("expected error for token %q", token)
		}
	}
}

func TestNewRejectsBadKey(t *testing.T) {
	if _, err := New("not-base64!"); err == nil {
		t.Error("expected error for invalid base64 key")
	}
	if _, err := New("c2hvcnQ="); err == nil {
		t.Error("expected error for short key")
	}
}
