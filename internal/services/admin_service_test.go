package services

import (
	"errors"
	"testing"

	"festival-registration-backend/internal/config"
	"festival-registration-backend/internal/models"

	"github.com/google/uuid"
)

func seedUser(users *fakeUserRepo, email string) uuid.UUID {
	id := uuid.New()
	users.users[id] = &models.User{ID: id, Email: email}
	return id
}

func TestCreateAdminScopeInvariants(t *testing.T) {
	repo, events, _, admins, users, depts := newFakeRepository()
	svc := NewAdminService(repo, &config.Config{})

	deptID := uuid.New()
	depts.departments[deptID] = &models.Department{ID: deptID, Name: "CSE"}
	event := &models.Event{ID: uuid.New(), DepartmentID: deptID, TeamSize: 1}
	events.events[event.ID] = event

	creator := &models.Admin{ID: uuid.New(), Role: models.RoleMainAdmin}

	t.Run("department admin requires department id", func(t *testing.T) {
		userID := seedUser(users, "da@college.edu")
		_, err := svc.CreateAdmin(creator, CreateAdminRequest{
			UserID: userID.String(),
			Role:   models.RoleDepartmentAdmin,
		})
		if err == nil {
			t.Fatal("expected error for department_admin without department_id")
		}
	})

	t.Run("event admin requires event id", func(t *testing.T) {
		userID := seedUser(users, "ea@college.edu")
		_, err := svc.CreateAdmin(creator, CreateAdminRequest{
			UserID: userID.String(),
			Role:   models.RoleEventAdmin,
		})
		if err == nil {
			t.Fatal("expected error for event_admin without event_id")
		}
	})

	t.Run("department admin carries department and no event", func(t *testing.T) {
		userID := seedUser(users, "da2@college.edu")
		admin, err := svc.CreateAdmin(creator, CreateAdminRequest{
			UserID:       userID.String(),
			Role:         models.RoleDepartmentAdmin,
			DepartmentID: deptID.String(),
		})
		if err != nil {
			t.Fatalf("CreateAdmin() error = %v", err)
		}
		if admin.DepartmentID == nil || *admin.DepartmentID != deptID {
			t.Fatal("department admin must carry its department id")
		}
		if admin.EventID != nil {
			t.Fatal("department admin must not carry an event id")
		}
	})

	t.Run("event admin department mirrors its event", func(t *testing.T) {
		userID := seedUser(users, "ea2@college.edu")
		admin, err := svc.CreateAdmin(creator, CreateAdminRequest{
			UserID:  userID.String(),
			Role:    models.RoleEventAdmin,
			EventID: event.ID.String(),
		})
		if err != nil {
			t.Fatalf("CreateAdmin() error = %v", err)
		}
		if admin.EventID == nil || *admin.EventID != event.ID {
			t.Fatal("event admin must carry its event id")
		}
		if admin.DepartmentID == nil || *admin.DepartmentID != event.DepartmentID {
			t.Fatal("event admin's department must equal its event's department")
		}
	})

	t.Run("username denormalizes the email", func(t *testing.T) {
		userID := seedUser(users, "named@college.edu")
		admin, err := svc.CreateAdmin(creator, CreateAdminRequest{
			UserID: userID.String(),
			Role:   models.RoleMainAdmin,
		})
		if err != nil {
			t.Fatalf("CreateAdmin() error = %v", err)
		}
		if admin.Username != "named@college.edu" {
			t.Fatalf("username = %q, want the user's email", admin.Username)
		}
		if _, err := admins.GetAdminByID(userID.String()); err != nil {
			t.Fatal("created admin row not stored")
		}
	})
}

func TestCreateAdminCreatorScoping(t *testing.T) {
	repo, events, _, _, users, depts := newFakeRepository()
	svc := NewAdminService(repo, &config.Config{})

	deptA := uuid.New()
	deptB := uuid.New()
	depts.departments[deptA] = &models.Department{ID: deptA, Name: "CSE"}
	depts.departments[deptB] = &models.Department{ID: deptB, Name: "ECE"}

	eventInA := &models.Event{ID: uuid.New(), DepartmentID: deptA, TeamSize: 1}
	eventInB := &models.Event{ID: uuid.New(), DepartmentID: deptB, TeamSize: 1}
	events.events[eventInA.ID] = eventInA
	events.events[eventInB.ID] = eventInB

	deptAdminA := &models.Admin{ID: uuid.New(), Role: models.RoleDepartmentAdmin, DepartmentID: &deptA}

	t.Run("department admin creates event admin in own department", func(t *testing.T) {
		userID := seedUser(users, "ok@college.edu")
		if _, err := svc.CreateAdmin(deptAdminA, CreateAdminRequest{
			UserID:  userID.String(),
			Role:    models.RoleEventAdmin,
			EventID: eventInA.ID.String(),
		}); err != nil {
			t.Fatalf("CreateAdmin() error = %v", err)
		}
	})

	t.Run("department admin denied outside its department", func(t *testing.T) {
		userID := seedUser(users, "deny1@college.edu")
		_, err := svc.CreateAdmin(deptAdminA, CreateAdminRequest{
			UserID:  userID.String(),
			Role:    models.RoleEventAdmin,
			EventID: eventInB.ID.String(),
		})
		if !errors.Is(err, ErrPermissionDenied) {
			t.Fatalf("expected ErrPermissionDenied, got %v", err)
		}
	})

	t.Run("department admin denied creating department admin", func(t *testing.T) {
		userID := seedUser(users, "deny2@college.edu")
		_, err := svc.CreateAdmin(deptAdminA, CreateAdminRequest{
			UserID:       userID.String(),
			Role:         models.RoleDepartmentAdmin,
			DepartmentID: deptA.String(),
		})
		if !errors.Is(err, ErrPermissionDenied) {
			t.Fatalf("expected ErrPermissionDenied, got %v", err)
		}
	})

	t.Run("event admin creates nothing", func(t *testing.T) {
		eID := eventInA.ID
		eventAdmin := &models.Admin{ID: uuid.New(), Role: models.RoleEventAdmin, EventID: &eID}
		userID := seedUser(users, "deny3@college.edu")
		_, err := svc.CreateAdmin(eventAdmin, CreateAdminRequest{
			UserID:  userID.String(),
			Role:    models.RoleEventAdmin,
			EventID: eventInA.ID.String(),
		})
		if !errors.Is(err, ErrPermissionDenied) {
			t.Fatalf("expected ErrPermissionDenied, got %v", err)
		}
	})
}

func TestDeleteAdmin(t *testing.T) {
	repo, _, _, admins, _, _ := newFakeRepository()
	svc := NewAdminService(repo, &config.Config{})

	target := &models.Admin{ID: uuid.New(), Role: models.RoleEventAdmin}
	admins.admins[target.ID] = target

	deptID := uuid.New()
	deptAdmin := &models.Admin{ID: uuid.New(), Role: models.RoleDepartmentAdmin, DepartmentID: &deptID}
	if err := svc.DeleteAdmin(deptAdmin, target.ID.String()); !errors.Is(err, ErrPermissionDenied) {
		t.Fatalf("expected ErrPermissionDenied for department admin, got %v", err)
	}

	mainAdmin := &models.Admin{ID: uuid.New(), Role: models.RoleMainAdmin}
	if err := svc.DeleteAdmin(mainAdmin, mainAdmin.ID.String()); err == nil {
		t.Fatal("main admin must not delete its own admin row")
	}
	if err := svc.DeleteAdmin(mainAdmin, target.ID.String()); err != nil {
		t.Fatalf("DeleteAdmin() error = %v", err)
	}
	if _, ok := admins.admins[target.ID]; ok {
		t.Fatal("admin row still present after delete")
	}
}

func TestSearchUsers(t *testing.T) {
	repo, _, _, _, users, _ := newFakeRepository()
	svc := NewAdminService(repo, &config.Config{})

	seedUser(users, "alice@college.edu")
	seedUser(users, "bob@college.edu")

	eventID := uuid.New()
	eventAdmin := &models.Admin{ID: uuid.New(), Role: models.RoleEventAdmin, EventID: &eventID}
	if _, err := svc.SearchUsers(eventAdmin, ""); !errors.Is(err, ErrPermissionDenied) {
		t.Fatalf("expected ErrPermissionDenied for event admin, got %v", err)
	}

	mainAdmin := &models.Admin{ID: uuid.New(), Role: models.RoleMainAdmin}
	got, err := svc.SearchUsers(mainAdmin, "alice")
	if err != nil {
		t.Fatalf("SearchUsers() error = %v", err)
	}
	if len(got) != 1 || got[0].Email != "alice@college.edu" {
		t.Fatalf("SearchUsers() = %v, want alice only", got)
	}
}
