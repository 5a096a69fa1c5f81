package keyring

import (
	"errors"
	"testing"

	gokeyring "github.com/zalando/go-keyring"
)

func TestSessionTokenLifecycle(t *testing.T) {
	gokeyring.MockInit()

	if _, err := GetSessionToken(); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound before storing, got %v", err)
	}

	if err := SetSessionToken("tok-123"); err != nil {
		t.Fatalf("SetSessionToken failed: %v", err)
	}

	got, err := GetSessionToken()
	if err != nil {
		t.Fatalf("GetSessionToken failed: %v", err)
	}
	if got != "tok-123" {
		t.Errorf("token = %q, want tok-123", got)
	}

	if err := DeleteSessionToken(); err != nil {
		t.Fatalf("DeleteSessionToken failed: %v", err)
	}
	if _, err := GetSessionToken(); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound after delete, got %v", err)
	}
	if err := DeleteSessionToken(); !errors.Is(err, ErrNotFound) {
		t.Errorf("second delete should report ErrNotFound, got %v", err)
	}
}

func TestConnectionStringLifecycle(t *testing.T) {
	gokeyring.MockInit()

	connStr := "postgresql://user@db.example.com:5432/ascend"
	if err := SetConnectionString(connStr); err != nil {
		t.Fatalf("SetConnectionString failed: %v", err)
	}

	got, err := GetConnectionString()
	if err != nil {
		t.Fatalf("GetConnectionString failed: %v", err)
	}
	if got != connStr {
		t.Errorf("connection string = %q, want %q", got, connStr)
	}

	if err := DeleteConnectionString(); err != nil {
		t.Fatalf("DeleteConnectionString failed: %v", err)
	}
}

func TestSetRejectsEmptyValue(t *testing.T) {
	gokeyring.MockInit()

	if err := SetSessionToken(""); err == nil {
		t.Error("expected error for empty token")
	}
}

func TestIsAvailableWithMock(t *testing.T) {
	gokeyring.MockInit()

	if !IsAvailable() {
		t.Error("mocked keyring should report available")
	}
}
