// internal/calllog/calllog_test.go
package calllog

import (
	"strings"
	"testing"
)

func TestTruncate_Short(t *testing.T) {
	if got := Truncate("hello", 1024); got != "hello" {
		t.Errorf("short strings must pass through, got %q", got)
	}
}

func TestTruncate_Long(t *testing.T) {
	long := strings.Repeat("x", 2000)
	got := Truncate(long, 100)
	if !strings.HasPrefix(got, strings.Repeat("x", 100)) {
		t.Error("truncated string should keep the prefix")
	}
	if !strings.Contains(got, "2000 bytes total") {
		t.Errorf("truncated string should report the original size, got %q", got[100:])
	}
}

func TestTruncate_DefaultLimit(t *testing.T) {
	long := strings.Repeat("y", DefaultExcerptMaxLen+1)
	got := Truncate(long, 0)
	if len(got) <= DefaultExcerptMaxLen {
		t.Error("expected suffix after default-length prefix")
	}
	if got[:DefaultExcerptMaxLen] != long[:DefaultExcerptMaxLen] {
		t.Error("default limit should keep a 1KB prefix")
	}
}
