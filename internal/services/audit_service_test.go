package services

import (
	"testing"

	"github.com/JimJafar/pension-tracker/internal/models"
	"github.com/JimJafar/pension-tracker/internal/testutil"
)

func TestAuditLog(t *testing.T) {
	t.Run("records_entry", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewAuditService(db)
		user := testutil.CreateTestUser(t, db)
		pension := testutil.CreateTestPension(t, db, user.ID)

		svc.Log(user.ID, AuditCreatePension, "pension", pension.ID, "127.0.0.1",
			map[string]interface{}{"name": pension.Name})

		var entries []models.AuditLog
		db.Find(&entries)
		if len(entries) != 1 {
			t.Fatalf("expected 1 audit entry, got %d", len(entries))
		}
		e := entries[0]
		if e.Action != AuditCreatePension || e.ResourceID != pension.ID || e.UserID != user.ID {
			t.Errorf("unexpected audit entry %+v", e)
		}
		if e.Changes != `{"name":"`+pension.Name+`"}` {
			t.Errorf("unexpected changes %s", e.Changes)
		}
	})

	t.Run("nil_changes", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewAuditService(db)
		user := testutil.CreateTestUser(t, db)

		svc.Log(user.ID, AuditLogin, "user", user.ID, "127.0.0.1", nil)

		var e models.AuditLog
		if err := db.First(&e).Error; err != nil {
			t.Fatalf("expected an audit entry: %v", err)
		}
		if e.Changes != "" {
			t.Errorf("expected empty changes, got %s", e.Changes)
		}
	})
}
