package models

import (
	"fmt"
	"sync"
	"testing"
)

func TestFormatSequenceNumber(t *testing.T) {
	cases := []struct {
		prefix string
		seq    int64
		want   string
	}{
		{"PAY", 1, "PAY-00001"},
		{"PAY", 42, "PAY-00042"},
		{"INV", 99999, "INV-99999"},
		{"BILL", 100000, "BILL-100000"},
		{"PO", 12345, "PO-12345"},
	}
	for _, tc := range cases {
		if got := FormatSequenceNumber(tc.prefix, tc.seq); got != tc.want {
			t.Errorf("FormatSequenceNumber(%q, %d) = %q, want %q", tc.prefix, tc.seq, got, tc.want)
		}
	}
}

// lockedCounter stands in for the sequence row under SELECT ... FOR UPDATE:
// read and increment happen under one lock, never interleaved.
type lockedCounter struct {
	mu   sync.Mutex
	next int64
}

func (c *lockedCounter) mint(prefix string) string {
	c.mu.Lock()
	defer c.mu.Unlock()
	seq := c.next
	c.next++
	return FormatSequenceNumber(prefix, seq)
}

func TestConcurrentMintsAreDistinct(t *testing.T) {
	counter := &lockedCounter{next: 1}

	const workers = 50
	numbers := make(chan string, workers)
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			numbers <- counter.mint("PAY")
		}()
	}
	wg.Wait()
	close(numbers)

	seen := make(map[string]bool, workers)
	for n := range numbers {
		if seen[n] {
			t.Fatalf("duplicate number minted: %s", n)
		}
		seen[n] = true
	}
	if len(seen) != workers {
		t.Fatalf("minted %d distinct numbers, want %d", len(seen), workers)
	}
	for i := 1; i <= workers; i++ {
		if !seen[fmt.Sprintf("PAY-%05d", i)] {
			t.Errorf("missing number PAY-%05d", i)
		}
	}
}

func TestRetryableSequenceErrors(t *testing.T) {
	cases := []struct {
		msg  string
		want bool
	}{
		{"Error 1213: Deadlock found when trying to get lock", true},
		{"Error 1205: Lock wait timeout exceeded", true},
		{"Error 1062: Duplicate entry 'PAY' for key 'prefix'", true},
		{"connection refused", false},
		{"syntax error", false},
	}
	for _, tc := range cases {
		if got := isRetryableSequenceError(fmt.Errorf("%s", tc.msg)); got != tc.want {
			t.Errorf("isRetryableSequenceError(%q) = %v, want %v", tc.msg, got, tc.want)
		}
	}
	if isRetryableSequenceError(nil) {
		t.Error("nil error must not be retryable")
	}
}
