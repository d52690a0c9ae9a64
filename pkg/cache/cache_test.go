package cache

import (
	"testing"
	"time"
)

func TestSetGetExpiry(t *testing.T) {
	c := New()
	c.Set("stats", 42, 50*time.Millisecond)

	v, ok := c.Get("stats")
	if !ok || v.(int) != 42 {
		t.Fatalf("expected cached 42, got %v ok=%v", v, ok)
	}

	time.Sleep(60 * time.Millisecond)
	if _, ok := c.Get("stats"); ok {
		t.Fatalf("expected entry to expire")
	}
}

func TestDeleteAndInvalidate(t *testing.T) {
	c := New()
	c.Set("dashboard:revenue", 1.0, time.Minute)
	c.Set("dashboard:checkins", 2, time.Minute)
	c.Set("positions", []string{"Chef"}, time.Minute)

	c.Delete("positions")
	if _, ok := c.Get("positions"); ok {
		t.Fatalf("expected deleted key to be gone")
	}

	c.Invalidate("dashboard:")
	if _, ok := c.Get("dashboard:revenue"); ok {
		t.Fatalf("expected prefix invalidation to drop revenue")
	}
	if _, ok := c.Get("dashboard:checkins"); ok {
		t.Fatalf("expected prefix invalidation to drop checkins")
	}
}
