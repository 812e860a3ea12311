package uid

import "testing"

func TestSnowflakeGenerate(t *testing.T) {
	sf, err := NewSnowflake()
	if err != nil {
		t.Fatalf("NewSnowflake: %v", err)
	}

	seen := make(map[int64]struct{})
	prev := int64(0)
	for range 100 {
		id := sf.Generate()
		if id <= 0 {
			t.Fatalf("expected positive id, got %d", id)
		}
		if id < prev {
			t.Fatalf("expected time-ordered ids, got %d after %d", id, prev)
		}
		if _, dup := seen[id]; dup {
			t.Fatalf("duplicate id %d", id)
		}
		seen[id] = struct{}{}
		prev = id
	}
}
