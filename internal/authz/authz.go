// Package authz holds the role-scoping rules for the three admin roles.
// Every predicate is a pure function over the caller's Admin row and the
// target entity; handlers and services call these before any write.
package authz

import (
	"festival-registration-backend/internal/models"

	"github.com/google/uuid"
)

// CanManageDepartments reports whether admin may create, update or delete
// department rows.
func CanManageDepartments(admin *models.Admin) bool {
	return admin != nil && admin.Role == models.RoleMainAdmin
}

// CanManageCoordinators reports whether admin may manage coordinator rows
// belonging to departmentID.
func CanManageCoordinators(admin *models.Admin, departmentID uuid.UUID) bool {
	if admin == nil {
		return false
	}
	switch admin.Role {
	case models.RoleMainAdmin:
		return true
	case models.RoleDepartmentAdmin:
		return admin.DepartmentID != nil && *admin.DepartmentID == departmentID
	default:
		return false
	}
}

// CanCreateEvent reports whether admin may create an event under
// departmentID. Event admins may never create events.
func CanCreateEvent(admin *models.Admin, departmentID uuid.UUID) bool {
	if admin == nil {
		return false
	}
	switch admin.Role {
	case models.RoleMainAdmin:
		return true
	case models.RoleDepartmentAdmin:
		return admin.DepartmentID != nil && *admin.DepartmentID == departmentID
	default:
		return false
	}
}

// CanEditEvent reports whether admin may modify event. An event admin is
// limited to exactly its assigned event.
func CanEditEvent(admin *models.Admin, event *models.Event) bool {
	if admin == nil || event == nil {
		return false
	}
	switch admin.Role {
	case models.RoleMainAdmin:
		return true
	case models.RoleDepartmentAdmin:
		return admin.DepartmentID != nil && *admin.DepartmentID == event.DepartmentID
	case models.RoleEventAdmin:
		return admin.EventID != nil && *admin.EventID == event.ID
	default:
		return false
	}
}

// CanDeleteEvent reports whether admin may delete event. Event admins may
// edit their event but never delete it.
func CanDeleteEvent(admin *models.Admin, event *models.Event) bool {
	if admin == nil || event == nil {
		return false
	}
	switch admin.Role {
	case models.RoleMainAdmin:
		return true
	case models.RoleDepartmentAdmin:
		return admin.DepartmentID != nil && *admin.DepartmentID == event.DepartmentID
	default:
		return false
	}
}

// CanChangeEventDepartment reports whether admin may move an event to a
// different department. Event admins are blocked even for their own event.
func CanChangeEventDepartment(admin *models.Admin) bool {
	return admin != nil &&
		(admin.Role == models.RoleMainAdmin || admin.Role == models.RoleDepartmentAdmin)
}

// CanManageRegistration reports whether admin may mutate the payment status
// of a registration belonging to event.
func CanManageRegistration(admin *models.Admin, event *models.Event) bool {
	if admin == nil || event == nil {
		return false
	}
	switch admin.Role {
	case models.RoleMainAdmin:
		return true
	case models.RoleDepartmentAdmin:
		return admin.DepartmentID != nil && *admin.DepartmentID == event.DepartmentID
	case models.RoleEventAdmin:
		return admin.EventID != nil && *admin.EventID == event.ID
	default:
		return false
	}
}

// CanCreateAdmin reports whether creator may create an admin row with the
// given role. For event_admin rows created by a department admin,
// targetEvent must be an event inside the creator's own department;
// main admins may create any role for any scope.
func CanCreateAdmin(creator *models.Admin, newRole string, targetEvent *models.Event) bool {
	if creator == nil {
		return false
	}
	switch creator.Role {
	case models.RoleMainAdmin:
		return true
	case models.RoleDepartmentAdmin:
		if newRole != models.RoleEventAdmin {
			return false
		}
		return targetEvent != nil &&
			creator.DepartmentID != nil &&
			*creator.DepartmentID == targetEvent.DepartmentID
	default:
		return false
	}
}

// CanDeleteAdmin reports whether admin may remove admin accounts.
func CanDeleteAdmin(admin *models.Admin) bool {
	return admin != nil && admin.Role == models.RoleMainAdmin
}

// ValidScope checks the structural invariants of an Admin row:
// a department admin carries a department id and no event id, an event
// admin carries an event id, and a main admin carries neither.
func ValidScope(admin *models.Admin) bool {
	if admin == nil {
		return false
	}
	switch admin.Role {
	case models.RoleMainAdmin:
		return admin.DepartmentID == nil && admin.EventID == nil
	case models.RoleDepartmentAdmin:
		return admin.DepartmentID != nil && admin.EventID == nil
	case models.RoleEventAdmin:
		return admin.EventID != nil
	default:
		return false
	}
}
