package authz

import (
	"testing"

	"festival-registration-backend/internal/models"

	"github.com/google/uuid"
)

var (
	deptA  = uuid.New()
	deptB  = uuid.New()
	event1 = uuid.New()
	event2 = uuid.New()
)

func mainAdmin() *models.Admin {
	return &models.Admin{ID: uuid.New(), Role: models.RoleMainAdmin}
}

func deptAdmin(dept uuid.UUID) *models.Admin {
	return &models.Admin{ID: uuid.New(), Role: models.RoleDepartmentAdmin, DepartmentID: &dept}
}

func eventAdmin(event uuid.UUID) *models.Admin {
	return &models.Admin{ID: uuid.New(), Role: models.RoleEventAdmin, EventID: &event}
}

func eventIn(id, dept uuid.UUID) *models.Event {
	return &models.Event{ID: id, DepartmentID: dept}
}

func TestCanManageDepartments(t *testing.T) {
	tests := []struct {
		name  string
		admin *models.Admin
		want  bool
	}{
		{"main admin", mainAdmin(), true},
		{"department admin", deptAdmin(deptA), false},
		{"event admin", eventAdmin(event1), false},
		{"no admin row", nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CanManageDepartments(tt.admin); got != tt.want {
				t.Fatalf("CanManageDepartments() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestCanEditEvent(t *testing.T) {
	tests := []struct {
		name  string
		admin *models.Admin
		event *models.Event
		want  bool
	}{
		{"main admin any event", mainAdmin(), eventIn(event1, deptA), true},
		{"dept admin own department", deptAdmin(deptA), eventIn(event1, deptA), true},
		{"dept admin other department", deptAdmin(deptB), eventIn(event1, deptA), false},
		{"event admin assigned event", eventAdmin(event1), eventIn(event1, deptA), true},
		{"event admin foreign event", eventAdmin(event1), eventIn(event2, deptA), false},
		{"nil admin", nil, eventIn(event1, deptA), false},
		{"nil event", mainAdmin(), nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CanEditEvent(tt.admin, tt.event); got != tt.want {
				t.Fatalf("CanEditEvent() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestCanDeleteEvent(t *testing.T) {
	// Event admins may edit but never delete, even their own event.
	if CanDeleteEvent(eventAdmin(event1), eventIn(event1, deptA)) {
		t.Fatal("event admin must not delete its own event")
	}
	if !CanDeleteEvent(deptAdmin(deptA), eventIn(event1, deptA)) {
		t.Fatal("department admin must delete events in its department")
	}
	if CanDeleteEvent(deptAdmin(deptB), eventIn(event1, deptA)) {
		t.Fatal("department admin must not delete events outside its department")
	}
	if !CanDeleteEvent(mainAdmin(), eventIn(event1, deptA)) {
		t.Fatal("main admin must delete any event")
	}
}

func TestCanCreateEvent(t *testing.T) {
	if CanCreateEvent(eventAdmin(event1), deptA) {
		t.Fatal("event admin must not create events")
	}
	if !CanCreateEvent(deptAdmin(deptA), deptA) {
		t.Fatal("department admin must create events in its own department")
	}
	if CanCreateEvent(deptAdmin(deptA), deptB) {
		t.Fatal("department admin must not create events in another department")
	}
}

func TestCanChangeEventDepartment(t *testing.T) {
	if CanChangeEventDepartment(eventAdmin(event1)) {
		t.Fatal("event admin must not move events between departments")
	}
	if !CanChangeEventDepartment(mainAdmin()) {
		t.Fatal("main admin must be able to move events")
	}
}

func TestCanManageRegistration(t *testing.T) {
	tests := []struct {
		name  string
		admin *models.Admin
		event *models.Event
		want  bool
	}{
		{"main admin", mainAdmin(), eventIn(event1, deptA), true},
		{"dept admin owning department", deptAdmin(deptA), eventIn(event1, deptA), true},
		{"dept admin other department", deptAdmin(deptB), eventIn(event1, deptA), false},
		{"event admin exact event", eventAdmin(event1), eventIn(event1, deptA), true},
		{"event admin other event", eventAdmin(event2), eventIn(event1, deptA), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CanManageRegistration(tt.admin, tt.event); got != tt.want {
				t.Fatalf("CanManageRegistration() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestCanCreateAdmin(t *testing.T) {
	tests := []struct {
		name    string
		creator *models.Admin
		role    string
		event   *models.Event
		want    bool
	}{
		{"main creates main", mainAdmin(), models.RoleMainAdmin, nil, true},
		{"main creates dept", mainAdmin(), models.RoleDepartmentAdmin, nil, true},
		{"main creates event", mainAdmin(), models.RoleEventAdmin, eventIn(event1, deptA), true},
		{"dept creates event admin inside own department", deptAdmin(deptA), models.RoleEventAdmin, eventIn(event1, deptA), true},
		{"dept creates event admin outside department", deptAdmin(deptB), models.RoleEventAdmin, eventIn(event1, deptA), false},
		{"dept creates dept admin", deptAdmin(deptA), models.RoleDepartmentAdmin, nil, false},
		{"dept creates main admin", deptAdmin(deptA), models.RoleMainAdmin, nil, false},
		{"event admin creates anything", eventAdmin(event1), models.RoleEventAdmin, eventIn(event1, deptA), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CanCreateAdmin(tt.creator, tt.role, tt.event); got != tt.want {
				t.Fatalf("CanCreateAdmin() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestValidScope(t *testing.T) {
	if !ValidScope(deptAdmin(deptA)) {
		t.Fatal("department admin with department id must be valid")
	}
	if ValidScope(&models.Admin{Role: models.RoleDepartmentAdmin}) {
		t.Fatal("department admin without department id must be invalid")
	}
	if ValidScope(&models.Admin{Role: models.RoleDepartmentAdmin, DepartmentID: &deptA, EventID: &event1}) {
		t.Fatal("department admin with an event id must be invalid")
	}
	if ValidScope(&models.Admin{Role: models.RoleEventAdmin}) {
		t.Fatal("event admin without event id must be invalid")
	}
	if ValidScope(&models.Admin{Role: "superuser"}) {
		t.Fatal("unknown role must be invalid")
	}
}
