package backup

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/julianstephens/ascend/internal/constants"
)

func writeJSONStorage(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "ascend.json")
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatalf("failed to write storage file: %v", err)
	}
	return path
}

func TestCreateAndList(t *testing.T) {
	src := writeJSONStorage(t, `{"version":1,"records":{}}`)
	mgr := NewManager(src)

	path, err := mgr.Create()
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if filepath.Dir(path) != mgr.BackupDir() {
		t.Errorf("backup created outside the backup dir: %s", path)
	}

	backups, err := mgr.List()
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(backups) != 1 {
		t.Fatalf("expected 1 backup, got %d", len(backups))
	}
	if backups[0].Size == 0 {
		t.Error("backup file is empty")
	}
}

func TestCreateMissingSource(t *testing.T) {
	mgr := NewManager(filepath.Join(t.TempDir(), "missing.json"))
	if _, err := mgr.Create(); err == nil {
		t.Error("expected error for missing storage file")
	}
}

func TestListEmptyDir(t *testing.T) {
	mgr := NewManager(filepath.Join(t.TempDir(), "ascend.json"))
	backups, err := mgr.List()
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(backups) != 0 {
		t.Errorf("expected no backups, got %d", len(backups))
	}
}

func TestUniqueNamesWithinOneSecond(t *testing.T) {
	src := writeJSONStorage(t, `{}`)
	mgr := NewManager(src)

	seen := make(map[string]bool)
	for i := 0; i < 3; i++ {
		path, err := mgr.Create()
		if err != nil {
			t.Fatalf("Create #%d failed: %v", i, err)
		}
		if seen[path] {
			t.Errorf("duplicate backup path: %s", path)
		}
		seen[path] = true
	}
}

func TestRotation(t *testing.T) {
	src := writeJSONStorage(t, `{}`)
	mgr := NewManager(src)

	for i := 0; i < constants.MaxBackups+3; i++ {
		if _, err := mgr.Create(); err != nil {
			t.Fatalf("Create #%d failed: %v", i, err)
		}
	}

	backups, err := mgr.List()
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(backups) > constants.MaxBackups {
		t.Errorf("rotation kept %d backups, limit is %d", len(backups), constants.MaxBackups)
	}
}

func TestRestore(t *testing.T) {
	src := writeJSONStorage(t, `{"version":1,"records":{"local":{"currentDay":9}}}`)
	mgr := NewManager(src)

	backupPath, err := mgr.Create()
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	if err := os.WriteFile(src, []byte(`{"version":1,"records":{}}`), 0600); err != nil {
		t.Fatalf("failed to overwrite storage: %v", err)
	}

	if err := mgr.Restore(backupPath); err != nil {
		t.Fatalf("Restore failed: %v", err)
	}

	data, err := os.ReadFile(src)
	if err != nil {
		t.Fatalf("failed to read restored file: %v", err)
	}
	if string(data) != `{"version":1,"records":{"local":{"currentDay":9}}}` {
		t.Errorf("restored content mismatch: %s", data)
	}
}

func TestRestoreRejectsCorruptBackup(t *testing.T) {
	src := writeJSONStorage(t, `{}`)
	mgr := NewManager(src)

	bad := filepath.Join(t.TempDir(), "bad.json")
	if err := os.WriteFile(bad, []byte("not json"), 0600); err != nil {
		t.Fatalf("failed to write bad backup: %v", err)
	}

	if err := mgr.Restore(bad); err == nil {
		t.Error("expected error for corrupt backup")
	}
}
