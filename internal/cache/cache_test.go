package cache

import (
	"testing"
	"time"
)

func TestKey_StableAndPrefixed(t *testing.T) {
	k1 := Key("https://example.com/data.csv")
	k2 := Key("https://example.com/data.csv")
	if k1 != k2 {
		t.Error("Expected identical keys for identical URLs")
	}
	if k1 == Key("https://example.com/other.csv") {
		t.Error("Expected distinct keys for distinct URLs")
	}
	if len(k1) <= len("grantab:v1:") {
		t.Errorf("Key %q missing hash component", k1)
	}
}

func TestDiskCache_RoundTrip(t *testing.T) {
	c := NewDiskCache(t.TempDir(), time.Hour)

	if err := c.Set("k", []byte("payload"), 0); err != nil {
		t.Fatalf("Set: %v", err)
	}
	got, ok := c.Get("k")
	if !ok {
		t.Fatal("Expected cache hit")
	}
	if string(got) != "payload" {
		t.Errorf("Got %q, want %q", got, "payload")
	}

	if err := c.Delete("k"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, ok := c.Get("k"); ok {
		t.Error("Expected miss after delete")
	}
}

func TestDiskCache_Expiry(t *testing.T) {
	c := NewDiskCache(t.TempDir(), time.Hour)

	if err := c.Set("k", []byte("payload"), -time.Second); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if _, ok := c.Get("k"); ok {
		t.Error("Expected expired entry to miss")
	}
}

func TestLayeredCache_PromotesDiskHits(t *testing.T) {
	dir := t.TempDir()
	c := NewLayeredCache(time.Minute, dir, time.Hour)

	if err := c.disk.Set("k", []byte("v"), 0); err != nil {
		t.Fatalf("seed disk: %v", err)
	}

	if v, ok := c.Get("k"); !ok || string(v) != "v" {
		t.Fatalf("Expected disk hit, got %q ok=%v", v, ok)
	}
	if v, ok := c.memory.Get("k"); !ok || string(v) != "v" {
		t.Errorf("Expected promotion into memory, got %q ok=%v", v, ok)
	}
}
