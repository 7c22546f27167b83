package main

import (
	"bytes"
	"strings"
	"testing"
)

// Tests for InitCLI

func TestInitCLI(t *testing.T) {
	t.Setenv("CWE_LOG", "debug")
	t.Setenv("CWE_LOG_FILE", "")
	var stderr bytes.Buffer

	env, err := InitCLI(&stderr)
	if err != nil {
		t.Fatalf("InitCLI() error = %v", err)
	}
	defer env.Close()

	if len(env.RequestID) != 36 {
		t.Errorf("RequestID = %q, want a UUID", env.RequestID)
	}
	if !strings.Contains(stderr.String(), "request_id="+env.RequestID) {
		t.Errorf("log records should carry the request id, got %q", stderr.String())
	}
}

func TestInitCLIQuietByDefault(t *testing.T) {
	t.Setenv("CWE_LOG", "")
	t.Setenv("CWE_LOG_FILE", "")
	var stderr bytes.Buffer

	env, err := InitCLI(&stderr)
	if err != nil {
		t.Fatalf("InitCLI() error = %v", err)
	}
	defer env.Close()

	if stderr.Len() != 0 {
		t.Errorf("nothing should be logged by default, got %q", stderr.String())
	}
}

func TestInitCLIInvalidFilter(t *testing.T) {
	t.Setenv("CWE_LOG", "chatty")
	t.Setenv("CWE_LOG_FILE", "")

	env, err := InitCLI(&bytes.Buffer{})
	if err == nil {
		t.Fatal("InitCLI() should warn about an invalid CWE_LOG")
	}
	if env == nil || env.Logger == nil {
		t.Fatal("InitCLI() should still return a usable env")
	}
}
