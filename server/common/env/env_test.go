package env

import "testing"

func TestStringFallback(t *testing.T) {
	if got := String("MATCH_SERVER_TEST_UNSET", "fallback"); got != "fallback" {
		t.Errorf("got %q", got)
	}
	t.Setenv("MATCH_SERVER_TEST_SET", "value")
	if got := String("MATCH_SERVER_TEST_SET", "fallback"); got != "value" {
		t.Errorf("got %q", got)
	}
}

func TestIntRejectsInvalid(t *testing.T) {
	t.Setenv("MATCH_SERVER_TEST_INT", "not-a-number")
	if got := Int("MATCH_SERVER_TEST_INT", 7); got != 7 {
		t.Errorf("got %d", got)
	}
	t.Setenv("MATCH_SERVER_TEST_INT", "0")
	if got := Int("MATCH_SERVER_TEST_INT", 7); got != 7 {
		t.Errorf("got %d, non-positive values fall back", got)
	}
	t.Setenv("MATCH_SERVER_TEST_INT", "42")
	if got := Int("MATCH_SERVER_TEST_INT", 7); got != 42 {
		t.Errorf("got %d", got)
	}
}

func TestBool(t *testing.T) {
	t.Setenv("MATCH_SERVER_TEST_BOOL", "true")
	if !Bool("MATCH_SERVER_TEST_BOOL", false) {
		t.Error("expected true")
	}
	t.Setenv("MATCH_SERVER_TEST_BOOL", "garbage")
	if Bool("MATCH_SERVER_TEST_BOOL", false) {
		t.Error("expected fallback false")
	}
}
