package services

import (
	"fmt"
	"strings"

	"festival-registration-backend/internal/models"
	"festival-registration-backend/internal/repositories"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Map-backed repository fakes shared by the service tests.

type fakeUserRepo struct {
	users map[uuid.UUID]*models.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[uuid.UUID]*models.User)}
}

func (r *fakeUserRepo) GetUserByEmail(email string) (*models.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeUserRepo) GetUserByID(id string) (*models.User, error) {
	uid, err := uuid.Parse(id)
	if err != nil {
		return nil, err
	}
	u, ok := r.users[uid]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *u
	return &cp, nil
}

func (r *fakeUserRepo) CreateUser(user *models.User) error {
	r.users[user.ID] = user
	return nil
}

func (r *fakeUserRepo) UpdateUser(user *models.User) error {
	r.users[user.ID] = user
	return nil
}

func (r *fakeUserRepo) SearchUsers(search string, limit int) ([]models.User, error) {
	var out []models.User
	for _, u := range r.users {
		if search == "" || strings.Contains(u.Email, search) {
			out = append(out, *u)
		}
	}
	return out, nil
}

type fakeProfileRepo struct {
	profiles map[uuid.UUID]*models.Profile
}

func newFakeProfileRepo() *fakeProfileRepo {
	return &fakeProfileRepo{profiles: make(map[uuid.UUID]*models.Profile)}
}

func (r *fakeProfileRepo) GetProfileByID(id string) (*models.Profile, error) {
	uid, err := uuid.Parse(id)
	if err != nil {
		return nil, err
	}
	p, ok := r.profiles[uid]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *p
	return &cp, nil
}

func (r *fakeProfileRepo) CreateProfile(profile *models.Profile) error {
	r.profiles[profile.ID] = profile
	return nil
}

func (r *fakeProfileRepo) UpdateProfile(profile *models.Profile) error {
	r.profiles[profile.ID] = profile
	return nil
}

type fakeDepartmentRepo struct {
	departments map[uuid.UUID]*models.Department
}

func newFakeDepartmentRepo() *fakeDepartmentRepo {
	return &fakeDepartmentRepo{departments: make(map[uuid.UUID]*models.Department)}
}

func (r *fakeDepartmentRepo) CreateDepartment(dept *models.Department) error {
	r.departments[dept.ID] = dept
	return nil
}

func (r *fakeDepartmentRepo) GetDepartmentByID(id string) (*models.Department, error) {
	uid, err := uuid.Parse(id)
	if err != nil {
		return nil, err
	}
	d, ok := r.departments[uid]
	if !ok {
		return nil, fmt.Errorf("department not found with ID: %s", id)
	}
	cp := *d
	return &cp, nil
}

func (r *fakeDepartmentRepo) ListDepartments() ([]models.Department, error) {
	var out []models.Department
	for _, d := range r.departments {
		out = append(out, *d)
	}
	return out, nil
}

func (r *fakeDepartmentRepo) UpdateDepartment(dept *models.Department) error {
	r.departments[dept.ID] = dept
	return nil
}

func (r *fakeDepartmentRepo) DeleteDepartment(id string) error {
	uid, err := uuid.Parse(id)
	if err != nil {
		return err
	}
	delete(r.departments, uid)
	return nil
}

func (r *fakeDepartmentRepo) CountDepartments() (int64, error) {
	return int64(len(r.departments)), nil
}

func (r *fakeDepartmentRepo) CreateCoordinator(*models.Coordinator) error { return nil }
func (r *fakeDepartmentRepo) GetCoordinatorByID(string) (*models.Coordinator, error) {
	return nil, gorm.ErrRecordNotFound
}
func (r *fakeDepartmentRepo) ListCoordinatorsByDepartment(string) ([]models.Coordinator, error) {
	return nil, nil
}
func (r *fakeDepartmentRepo) UpdateCoordinator(*models.Coordinator) error { return nil }
func (r *fakeDepartmentRepo) DeleteCoordinator(string) error              { return nil }

type fakeEventRepo struct {
	events map[uuid.UUID]*models.Event
}

func newFakeEventRepo() *fakeEventRepo {
	return &fakeEventRepo{events: make(map[uuid.UUID]*models.Event)}
}

func (r *fakeEventRepo) CreateEvent(event *models.Event) error {
	r.events[event.ID] = event
	return nil
}

func (r *fakeEventRepo) GetEventByID(id string) (*models.Event, error) {
	uid, err := uuid.Parse(id)
	if err != nil {
		return nil, err
	}
	e, ok := r.events[uid]
	if !ok {
		return nil, fmt.Errorf("event not found with ID: %s", id)
	}
	cp := *e
	return &cp, nil
}

func (r *fakeEventRepo) ListEvents(offset, limit int, filters *repositories.EventFilters) ([]models.Event, int64, error) {
	var out []models.Event
	for _, e := range r.events {
		out = append(out, *e)
	}
	return out, int64(len(out)), nil
}

func (r *fakeEventRepo) UpdateEvent(event *models.Event) error {
	if _, ok := r.events[event.ID]; !ok {
		return fmt.Errorf("event not found with ID: %s", event.ID)
	}
	r.events[event.ID] = event
	return nil
}

func (r *fakeEventRepo) DeleteEvent(id string) error {
	uid, err := uuid.Parse(id)
	if err != nil {
		return err
	}
	if _, ok := r.events[uid]; !ok {
		return fmt.Errorf("event not found with ID: %s", id)
	}
	delete(r.events, uid)
	return nil
}

func (r *fakeEventRepo) CountEvents() (int64, error) {
	return int64(len(r.events)), nil
}

func (r *fakeEventRepo) ListEventIDsByDepartment(departmentID string) ([]uuid.UUID, error) {
	deptID, err := uuid.Parse(departmentID)
	if err != nil {
		return nil, err
	}
	// Nil when the department owns no events, like the real Pluck.
	var ids []uuid.UUID
	for _, e := range r.events {
		if e.DepartmentID == deptID {
			ids = append(ids, e.ID)
		}
	}
	return ids, nil
}

type fakeRegistrationRepo struct {
	events        *fakeEventRepo
	registrations map[uuid.UUID]*models.Registration
	statusWrites  int
}

func newFakeRegistrationRepo(events *fakeEventRepo) *fakeRegistrationRepo {
	return &fakeRegistrationRepo{
		events:        events,
		registrations: make(map[uuid.UUID]*models.Registration),
	}
}

func (r *fakeRegistrationRepo) CreateRegistration(reg *models.Registration) error {
	r.registrations[reg.ID] = reg
	return nil
}

func (r *fakeRegistrationRepo) GetRegistrationByID(id string) (*models.Registration, error) {
	uid, err := uuid.Parse(id)
	if err != nil {
		return nil, err
	}
	reg, ok := r.registrations[uid]
	if !ok {
		return nil, fmt.Errorf("registration not found with ID: %s", id)
	}
	cp := *reg
	if event, ok := r.events.events[reg.EventID]; ok {
		cp.Event = *event
	}
	return &cp, nil
}

func (r *fakeRegistrationRepo) ListRegistrationsByUser(userID string) ([]models.Registration, error) {
	uid, err := uuid.Parse(userID)
	if err != nil {
		return nil, err
	}
	var out []models.Registration
	for _, reg := range r.registrations {
		if reg.UserID == uid {
			out = append(out, *reg)
		}
	}
	return out, nil
}

func (r *fakeRegistrationRepo) ListRegistrations(offset, limit int, eventIDs []uuid.UUID, status string) ([]models.Registration, int64, error) {
	inScope := func(id uuid.UUID) bool {
		if eventIDs == nil {
			return true
		}
		for _, e := range eventIDs {
			if e == id {
				return true
			}
		}
		return false
	}

	var out []models.Registration
	for _, reg := range r.registrations {
		if !inScope(reg.EventID) {
			continue
		}
		if status != "" && reg.PaymentStatus != status {
			continue
		}
		out = append(out, *reg)
	}
	return out, int64(len(out)), nil
}

func (r *fakeRegistrationRepo) UpdatePaymentStatus(id, status string) error {
	uid, err := uuid.Parse(id)
	if err != nil {
		return err
	}
	reg, ok := r.registrations[uid]
	if !ok {
		return fmt.Errorf("registration not found with ID: %s", id)
	}
	reg.PaymentStatus = status
	r.statusWrites++
	return nil
}

func (r *fakeRegistrationRepo) DeleteRegistration(id string) error {
	uid, err := uuid.Parse(id)
	if err != nil {
		return err
	}
	if _, ok := r.registrations[uid]; !ok {
		return fmt.Errorf("registration not found with ID: %s", id)
	}
	delete(r.registrations, uid)
	return nil
}

func (r *fakeRegistrationRepo) CountByEvent(eventID string) (int64, error) {
	uid, err := uuid.Parse(eventID)
	if err != nil {
		return 0, err
	}
	var count int64
	for _, reg := range r.registrations {
		if reg.EventID == uid {
			count++
		}
	}
	return count, nil
}

func (r *fakeRegistrationRepo) CountByEventAndUser(eventID, userID string) (int64, error) {
	eid, err := uuid.Parse(eventID)
	if err != nil {
		return 0, err
	}
	uid, err := uuid.Parse(userID)
	if err != nil {
		return 0, err
	}
	var count int64
	for _, reg := range r.registrations {
		if reg.EventID == eid && reg.UserID == uid {
			count++
		}
	}
	return count, nil
}

func (r *fakeRegistrationRepo) CountByStatus(status string) (int64, error) {
	var count int64
	for _, reg := range r.registrations {
		if status == "" || reg.PaymentStatus == status {
			count++
		}
	}
	return count, nil
}

type fakeAdminRepo struct {
	admins map[uuid.UUID]*models.Admin
}

func newFakeAdminRepo() *fakeAdminRepo {
	return &fakeAdminRepo{admins: make(map[uuid.UUID]*models.Admin)}
}

func (r *fakeAdminRepo) GetAdminByID(id string) (*models.Admin, error) {
	uid, err := uuid.Parse(id)
	if err != nil {
		return nil, err
	}
	a, ok := r.admins[uid]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *a
	return &cp, nil
}

func (r *fakeAdminRepo) ListAdmins() ([]models.Admin, error) {
	var out []models.Admin
	for _, a := range r.admins {
		out = append(out, *a)
	}
	return out, nil
}

func (r *fakeAdminRepo) CreateAdmin(admin *models.Admin) error {
	if _, ok := r.admins[admin.ID]; ok {
		return fmt.Errorf("user %s is already an admin", admin.ID)
	}
	r.admins[admin.ID] = admin
	return nil
}

func (r *fakeAdminRepo) DeleteAdmin(id string) error {
	uid, err := uuid.Parse(id)
	if err != nil {
		return err
	}
	if _, ok := r.admins[uid]; !ok {
		return fmt.Errorf("admin not found with ID: %s", id)
	}
	delete(r.admins, uid)
	return nil
}

// newFakeRepository wires the fakes into a Repository the services accept.
func newFakeRepository() (*repositories.Repository, *fakeEventRepo, *fakeRegistrationRepo, *fakeAdminRepo, *fakeUserRepo, *fakeDepartmentRepo) {
	events := newFakeEventRepo()
	regs := newFakeRegistrationRepo(events)
	admins := newFakeAdminRepo()
	users := newFakeUserRepo()
	depts := newFakeDepartmentRepo()

	repo := &repositories.Repository{
		UserRepo:         users,
		ProfileRepo:      newFakeProfileRepo(),
		DepartmentRepo:   depts,
		EventRepo:        events,
		RegistrationRepo: regs,
		AdminRepo:        admins,
	}
	return repo, events, regs, admins, users, depts
}
