package quotes

import "testing"

func TestRandomDrawsFromPool(t *testing.T) {
	pool := All()
	inPool := func(q Quote) bool {
		for _, p := range pool {
			if p == q {
				return true
			}
		}
		return false
	}

	for i := 0; i < 50; i++ {
		q := Random()
		if q.Text == "" || q.Author == "" {
			t.Fatalf("quote with empty field: %+v", q)
		}
		if !inPool(q) {
			t.Fatalf("Random returned a quote outside the pool: %+v", q)
		}
	}
}

func TestAllReturnsCopy(t *testing.T) {
	first := All()
	first[0].Text = "mutated"
	if All()[0].Text == "mutated" {
		t.Error("All must return a copy of the pool")
	}
}
