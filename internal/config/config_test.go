package config

import (
	"reflect"
	"testing"
)

func TestAllowedOrigins(t *testing.T) {
	cases := []struct {
		in   string
		want []string
	}{
		{"http://localhost:5173", []string{"http://localhost:5173"}},
		{"https://a.example, https://b.example ,", []string{"https://a.example", "https://b.example"}},
		{"", []string{}},
	}
	for _, tc := range cases {
		cfg := &Config{CORSOrigins: tc.in}
		if got := cfg.AllowedOrigins(); !reflect.DeepEqual(got, tc.want) {
			t.Errorf("AllowedOrigins(%q) = %v, want %v", tc.in, got, tc.want)
		}
	}
}

func TestGetEnv(t *testing.T) {
	t.Setenv("SHINEPOS_TEST_KEY", "set")
	if got := getEnv("SHINEPOS_TEST_KEY", "def"); got != "set" {
		t.Fatalf("getEnv = %q, want set", got)
	}
	if got := getEnv("SHINEPOS_TEST_MISSING", "def"); got != "def" {
		t.Fatalf("getEnv = %q, want def", got)
	}
}
