package helpers

import (
	"errors"
	"testing"
)

func TestUniqueSlugAppendsSuffixes(t *testing.T) {
	t.Run("free name keeps the plain slug", func(t *testing.T) {
		got, err := UniqueSlug("Air Max", func(slug string) (bool, error) { return false, nil })
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got != "air-max" {
			t.Errorf("expected air-max, got %s", got)
		}
	})

	t.Run("taken names count up", func(t *testing.T) {
		taken := map[string]bool{"air-max": true, "air-max-1": true}
		got, err := UniqueSlug("Air Max", func(slug string) (bool, error) { return taken[slug], nil })
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got != "air-max-2" {
			t.Errorf("expected air-max-2, got %s", got)
		}
	})

	t.Run("lookup errors surface", func(t *testing.T) {
		boom := errors.New("db down")
		if _, err := UniqueSlug("Air Max", func(slug string) (bool, error) { return false, boom }); !errors.Is(err, boom) {
			t.Errorf("expected the lookup error, got %v", err)
		}
	})
}

func TestPasswordHashRoundTrip(t *testing.T) {
	hash := HashPassword("s3cret")
	if hash == "" || hash == "s3cret" {
		t.Fatalf("unexpected hash %q", hash)
	}
	if !PasswordCompare(hash, []byte("s3cret")) {
		t.Error("correct password must compare true")
	}
	if PasswordCompare(hash, []byte("wrong")) {
		t.Error("wrong password must compare false")
	}
}
