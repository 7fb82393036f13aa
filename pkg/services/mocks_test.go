package services

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/ideahub-inc/ideahub-engine/pkg/apperrors"
	"github.com/ideahub-inc/ideahub-engine/pkg/models"
	"github.com/ideahub-inc/ideahub-engine/pkg/pagination"
)

// Map-backed repository mocks shared by the service tests. Each mirrors the
// row-level behavior of the real repository closely enough for the service
// rules under test: missing rows surface ErrNotFound, owner-scoped lookups
// check the employee column.

type mockEmployeeRepo struct {
	employees map[uuid.UUID]*models.Employee
}

func newMockEmployeeRepo() *mockEmployeeRepo {
	return &mockEmployeeRepo{employees: make(map[uuid.UUID]*models.Employee)}
}

func (m *mockEmployeeRepo) add(emp *models.Employee) *models.Employee {
	if emp.ID == uuid.Nil {
		emp.ID = uuid.New()
	}
	m.employees[emp.ID] = emp
	return emp
}

func (m *mockEmployeeRepo) Create(_ context.Context, emp *models.Employee) error {
	if emp.ID == uuid.Nil {
		emp.ID = uuid.New()
	}
	emp.CreatedAt = time.Now()
	emp.UpdatedAt = emp.CreatedAt
	m.employees[emp.ID] = emp
	return nil
}

func (m *mockEmployeeRepo) Get(_ context.Context, id uuid.UUID) (*models.Employee, error) {
	emp, ok := m.employees[id]
	if !ok {
		return nil, apperrors.NotFoundf("employee %s not found", id)
	}
	return emp, nil
}

func (m *mockEmployeeRepo) GetByEmail(_ context.Context, email string) (*models.Employee, error) {
	for _, emp := range m.employees {
		if emp.Email == email {
			return emp, nil
		}
	}
	return nil, apperrors.NotFoundf("employee with email %s not found", email)
}

func (m *mockEmployeeRepo) ExistsByEmail(_ context.Context, email string) (bool, error) {
	for _, emp := range m.employees {
		if emp.Email == email {
			return true, nil
		}
	}
	return false, nil
}

func (m *mockEmployeeRepo) Update(_ context.Context, emp *models.Employee) error {
	if _, ok := m.employees[emp.ID]; !ok {
		return apperrors.NotFoundf("employee %s not found", emp.ID)
	}
	m.employees[emp.ID] = emp
	return nil
}

func (m *mockEmployeeRepo) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := m.employees[id]; !ok {
		return apperrors.NotFoundf("employee %s not found", id)
	}
	delete(m.employees, id)
	return nil
}

func (m *mockEmployeeRepo) List(_ context.Context, _ pagination.Request) ([]models.Employee, int64, error) {
	out := make([]models.Employee, 0, len(m.employees))
	for _, emp := range m.employees {
		out = append(out, *emp)
	}
	return out, int64(len(out)), nil
}

func (m *mockEmployeeRepo) ListByStatus(_ context.Context, status string, _ pagination.Request) ([]models.Employee, int64, error) {
	var out []models.Employee
	for _, emp := range m.employees {
		if emp.Status == status {
			out = append(out, *emp)
		}
	}
	return out, int64(len(out)), nil
}

func (m *mockEmployeeRepo) ListByDepartment(_ context.Context, department string, _ pagination.Request) ([]models.Employee, int64, error) {
	var out []models.Employee
	for _, emp := range m.employees {
		if emp.Department == department {
			out = append(out, *emp)
		}
	}
	return out, int64(len(out)), nil
}

type mockIdeaRepo struct {
	ideas map[uuid.UUID]*models.Idea
}

func newMockIdeaRepo() *mockIdeaRepo {
	return &mockIdeaRepo{ideas: make(map[uuid.UUID]*models.Idea)}
}

func (m *mockIdeaRepo) add(idea *models.Idea) *models.Idea {
	if idea.ID == uuid.Nil {
		idea.ID = uuid.New()
	}
	m.ideas[idea.ID] = idea
	return idea
}

func (m *mockIdeaRepo) Create(_ context.Context, idea *models.Idea) error {
	if idea.ID == uuid.Nil {
		idea.ID = uuid.New()
	}
	idea.CreatedAt = time.Now()
	idea.UpdatedAt = idea.CreatedAt
	m.ideas[idea.ID] = idea
	return nil
}

func (m *mockIdeaRepo) Get(_ context.Context, id uuid.UUID, employeeID *uuid.UUID) (*models.Idea, error) {
	idea, ok := m.ideas[id]
	if !ok {
		return nil, apperrors.NotFoundf("idea %s not found", id)
	}
	if employeeID != nil && (idea.EmployeeID == nil || *idea.EmployeeID != *employeeID) {
		return nil, apperrors.NotFoundf("idea %s not found", id)
	}
	return idea, nil
}

func (m *mockIdeaRepo) Update(ctx context.Context, idea *models.Idea, employeeID *uuid.UUID) error {
	if _, err := m.Get(ctx, idea.ID, employeeID); err != nil {
		return err
	}
	m.ideas[idea.ID] = idea
	return nil
}

func (m *mockIdeaRepo) Delete(ctx context.Context, id uuid.UUID, employeeID *uuid.UUID) error {
	if _, err := m.Get(ctx, id, employeeID); err != nil {
		return err
	}
	delete(m.ideas, id)
	return nil
}

func (m *mockIdeaRepo) List(_ context.Context, employeeID *uuid.UUID, _ pagination.Request) ([]models.Idea, int64, error) {
	var out []models.Idea
	for _, idea := range m.ideas {
		if employeeID != nil && (idea.EmployeeID == nil || *idea.EmployeeID != *employeeID) {
			continue
		}
		out = append(out, *idea)
	}
	return out, int64(len(out)), nil
}

func (m *mockIdeaRepo) ListByAssignee(_ context.Context, assignee string, _ pagination.Request) ([]models.Idea, int64, error) {
	var out []models.Idea
	for _, idea := range m.ideas {
		if idea.AssignedTo == assignee {
			out = append(out, *idea)
		}
	}
	return out, int64(len(out)), nil
}

func (m *mockIdeaRepo) ListByStatus(_ context.Context, status string, _ pagination.Request) ([]models.Idea, int64, error) {
	var out []models.Idea
	for _, idea := range m.ideas {
		if idea.Status == status {
			out = append(out, *idea)
		}
	}
	return out, int64(len(out)), nil
}

func (m *mockIdeaRepo) ListByTag(_ context.Context, tag string, _ pagination.Request) ([]models.Idea, int64, error) {
	var out []models.Idea
	for _, idea := range m.ideas {
		for _, t := range idea.Tags {
			if t == tag {
				out = append(out, *idea)
				break
			}
		}
	}
	return out, int64(len(out)), nil
}

type mockUserRepo struct {
	users map[uuid.UUID]*models.User
}

func newMockUserRepo() *mockUserRepo {
	return &mockUserRepo{users: make(map[uuid.UUID]*models.User)}
}

func (m *mockUserRepo) add(user *models.User) *models.User {
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	m.users[user.ID] = user
	return user
}

func (m *mockUserRepo) Create(_ context.Context, user *models.User) error {
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	user.CreatedAt = time.Now()
	user.UpdatedAt = user.CreatedAt
	m.users[user.ID] = user
	return nil
}

func (m *mockUserRepo) Get(_ context.Context, id uuid.UUID) (*models.User, error) {
	user, ok := m.users[id]
	if !ok {
		return nil, apperrors.NotFoundf("user %s not found", id)
	}
	return user, nil
}

func (m *mockUserRepo) GetByUsername(_ context.Context, username string) (*models.User, error) {
	for _, user := range m.users {
		if user.Username == username {
			return user, nil
		}
	}
	return nil, apperrors.NotFoundf("user %s not found", username)
}

func (m *mockUserRepo) GetByEmail(_ context.Context, email string) (*models.User, error) {
	for _, user := range m.users {
		if user.Email == email {
			return user, nil
		}
	}
	return nil, apperrors.NotFoundf("user with email %s not found", email)
}

func (m *mockUserRepo) ExistsByUsername(_ context.Context, username string) (bool, error) {
	for _, user := range m.users {
		if user.Username == username {
			return true, nil
		}
	}
	return false, nil
}

func (m *mockUserRepo) ExistsByEmail(_ context.Context, email string) (bool, error) {
	for _, user := range m.users {
		if user.Email == email {
			return true, nil
		}
	}
	return false, nil
}

func (m *mockUserRepo) Update(_ context.Context, user *models.User) error {
	if _, ok := m.users[user.ID]; !ok {
		return apperrors.NotFoundf("user %s not found", user.ID)
	}
	m.users[user.ID] = user
	return nil
}

func (m *mockUserRepo) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := m.users[id]; !ok {
		return apperrors.NotFoundf("user %s not found", id)
	}
	delete(m.users, id)
	return nil
}

func (m *mockUserRepo) List(_ context.Context, _ pagination.Request) ([]models.User, int64, error) {
	out := make([]models.User, 0, len(m.users))
	for _, user := range m.users {
		out = append(out, *user)
	}
	return out, int64(len(out)), nil
}

type likeKey struct {
	ideaID uuid.UUID
	userID uuid.UUID
}

type mockLikeRepo struct {
	likes   map[likeKey]*models.Like
	upvotes map[uuid.UUID]int
}

func newMockLikeRepo() *mockLikeRepo {
	return &mockLikeRepo{
		likes:   make(map[likeKey]*models.Like),
		upvotes: make(map[uuid.UUID]int),
	}
}

func (m *mockLikeRepo) Create(_ context.Context, like *models.Like) error {
	key := likeKey{ideaID: like.IdeaID, userID: like.UserID}
	if _, dup := m.likes[key]; dup {
		return apperrors.Duplicatef("user %s already liked idea %s", like.UserID, like.IdeaID)
	}
	like.CreatedAt = time.Now()
	m.likes[key] = like
	m.upvotes[like.IdeaID]++
	return nil
}

func (m *mockLikeRepo) Delete(_ context.Context, ideaID, userID uuid.UUID) error {
	key := likeKey{ideaID: ideaID, userID: userID}
	if _, ok := m.likes[key]; !ok {
		return apperrors.NotFoundf("like for idea %s by user %s not found", ideaID, userID)
	}
	delete(m.likes, key)
	if m.upvotes[ideaID] > 0 {
		m.upvotes[ideaID]--
	}
	return nil
}

func (m *mockLikeRepo) Exists(_ context.Context, ideaID, userID uuid.UUID) (bool, error) {
	_, ok := m.likes[likeKey{ideaID: ideaID, userID: userID}]
	return ok, nil
}

func (m *mockLikeRepo) CountByIdea(_ context.Context, ideaID uuid.UUID) (int64, error) {
	var n int64
	for key := range m.likes {
		if key.ideaID == ideaID {
			n++
		}
	}
	return n, nil
}

func (m *mockLikeRepo) ListByIdea(_ context.Context, ideaID uuid.UUID, _ pagination.Request) ([]models.Like, int64, error) {
	var out []models.Like
	for key, like := range m.likes {
		if key.ideaID == ideaID {
			out = append(out, *like)
		}
	}
	return out, int64(len(out)), nil
}

func (m *mockLikeRepo) ListByUser(_ context.Context, userID uuid.UUID, _ pagination.Request) ([]models.Like, int64, error) {
	var out []models.Like
	for key, like := range m.likes {
		if key.userID == userID {
			out = append(out, *like)
		}
	}
	return out, int64(len(out)), nil
}

type mockProjectRepo struct {
	projects map[uuid.UUID]*models.Project
}

func newMockProjectRepo() *mockProjectRepo {
	return &mockProjectRepo{projects: make(map[uuid.UUID]*models.Project)}
}

func (m *mockProjectRepo) add(project *models.Project) *models.Project {
	if project.ID == uuid.Nil {
		project.ID = uuid.New()
	}
	m.projects[project.ID] = project
	return project
}

func (m *mockProjectRepo) Create(_ context.Context, project *models.Project) error {
	for _, p := range m.projects {
		if p.Name == project.Name {
			return apperrors.Duplicatef("project with name %s already exists", project.Name)
		}
	}
	if project.ID == uuid.Nil {
		project.ID = uuid.New()
	}
	project.CreatedAt = time.Now()
	project.UpdatedAt = project.CreatedAt
	m.projects[project.ID] = project
	return nil
}

func (m *mockProjectRepo) Get(_ context.Context, id uuid.UUID) (*models.Project, error) {
	project, ok := m.projects[id]
	if !ok {
		return nil, apperrors.NotFoundf("project %s not found", id)
	}
	return project, nil
}

func (m *mockProjectRepo) Update(_ context.Context, project *models.Project) error {
	if _, ok := m.projects[project.ID]; !ok {
		return apperrors.NotFoundf("project %s not found", project.ID)
	}
	for id, p := range m.projects {
		if id != project.ID && p.Name == project.Name {
			return apperrors.Duplicatef("project with name %s already exists", project.Name)
		}
	}
	m.projects[project.ID] = project
	return nil
}

func (m *mockProjectRepo) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := m.projects[id]; !ok {
		return apperrors.NotFoundf("project %s not found", id)
	}
	delete(m.projects, id)
	return nil
}

func (m *mockProjectRepo) List(_ context.Context, _ pagination.Request) ([]models.Project, int64, error) {
	out := make([]models.Project, 0, len(m.projects))
	for _, project := range m.projects {
		out = append(out, *project)
	}
	return out, int64(len(out)), nil
}

type mockEvidenceRepo struct {
	evidence  map[uuid.UUID]*models.Evidence
	createErr error
}

func newMockEvidenceRepo() *mockEvidenceRepo {
	return &mockEvidenceRepo{evidence: make(map[uuid.UUID]*models.Evidence)}
}

func (m *mockEvidenceRepo) Create(_ context.Context, ev *models.Evidence) error {
	if m.createErr != nil {
		return m.createErr
	}
	ev.ID = uuid.New()
	ev.UploadedAt = time.Now()
	ev.UpdatedAt = ev.UploadedAt
	m.evidence[ev.ID] = ev
	return nil
}

func (m *mockEvidenceRepo) Get(_ context.Context, id uuid.UUID) (*models.Evidence, error) {
	ev, ok := m.evidence[id]
	if !ok {
		return nil, apperrors.NotFoundf("evidence %s not found", id)
	}
	return ev, nil
}

func (m *mockEvidenceRepo) Update(_ context.Context, ev *models.Evidence) error {
	if _, ok := m.evidence[ev.ID]; !ok {
		return apperrors.NotFoundf("evidence %s not found", ev.ID)
	}
	m.evidence[ev.ID] = ev
	return nil
}

func (m *mockEvidenceRepo) UpdateStatus(_ context.Context, id uuid.UUID, status string) error {
	ev, ok := m.evidence[id]
	if !ok {
		return apperrors.NotFoundf("evidence %s not found", id)
	}
	ev.Status = status
	return nil
}

func (m *mockEvidenceRepo) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := m.evidence[id]; !ok {
		return apperrors.NotFoundf("evidence %s not found", id)
	}
	delete(m.evidence, id)
	return nil
}

func (m *mockEvidenceRepo) List(_ context.Context, _ pagination.Request) ([]models.Evidence, int64, error) {
	out := make([]models.Evidence, 0, len(m.evidence))
	for _, ev := range m.evidence {
		out = append(out, *ev)
	}
	return out, int64(len(out)), nil
}

func (m *mockEvidenceRepo) ListByProject(_ context.Context, projectID uuid.UUID, _ pagination.Request) ([]models.Evidence, int64, error) {
	var out []models.Evidence
	for _, ev := range m.evidence {
		if ev.ProjectID == projectID {
			out = append(out, *ev)
		}
	}
	return out, int64(len(out)), nil
}

func (m *mockEvidenceRepo) ListByProjectAndCategory(_ context.Context, projectID uuid.UUID, category string) ([]models.Evidence, error) {
	var out []models.Evidence
	for _, ev := range m.evidence {
		if ev.ProjectID == projectID && ev.Category == category {
			out = append(out, *ev)
		}
	}
	return out, nil
}

func (m *mockEvidenceRepo) ListByProjectAndTag(_ context.Context, projectID uuid.UUID, tag string) ([]models.Evidence, error) {
	var out []models.Evidence
	for _, ev := range m.evidence {
		if ev.ProjectID != projectID {
			continue
		}
		for _, t := range ev.Tags {
			if t == tag {
				out = append(out, *ev)
				break
			}
		}
	}
	return out, nil
}

func (m *mockEvidenceRepo) ListByProjectAndStatus(_ context.Context, projectID uuid.UUID, status string) ([]models.Evidence, error) {
	var out []models.Evidence
	for _, ev := range m.evidence {
		if ev.ProjectID == projectID && ev.Status == status {
			out = append(out, *ev)
		}
	}
	return out, nil
}

type mockEnvironmentRepo struct {
	environments map[uuid.UUID]*models.Environment
}

func newMockEnvironmentRepo() *mockEnvironmentRepo {
	return &mockEnvironmentRepo{environments: make(map[uuid.UUID]*models.Environment)}
}

func (m *mockEnvironmentRepo) Create(_ context.Context, env *models.Environment) error {
	if env.ID == uuid.Nil {
		env.ID = uuid.New()
	}
	env.CreatedAt = time.Now()
	env.UpdatedAt = env.CreatedAt
	m.environments[env.ID] = env
	return nil
}

func (m *mockEnvironmentRepo) Get(_ context.Context, id uuid.UUID) (*models.Environment, error) {
	env, ok := m.environments[id]
	if !ok {
		return nil, apperrors.NotFoundf("environment %s not found", id)
	}
	return env, nil
}

func (m *mockEnvironmentRepo) GetByName(_ context.Context, name string) (*models.Environment, error) {
	for _, env := range m.environments {
		if env.Name == name {
			return env, nil
		}
	}
	return nil, apperrors.NotFoundf("environment %s not found", name)
}

func (m *mockEnvironmentRepo) ExistsByName(_ context.Context, name string) (bool, error) {
	for _, env := range m.environments {
		if env.Name == name {
			return true, nil
		}
	}
	return false, nil
}

func (m *mockEnvironmentRepo) Update(_ context.Context, env *models.Environment) error {
	if _, ok := m.environments[env.ID]; !ok {
		return apperrors.NotFoundf("environment %s not found", env.ID)
	}
	m.environments[env.ID] = env
	return nil
}

func (m *mockEnvironmentRepo) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := m.environments[id]; !ok {
		return apperrors.NotFoundf("environment %s not found", id)
	}
	delete(m.environments, id)
	return nil
}

func (m *mockEnvironmentRepo) List(_ context.Context, _ pagination.Request) ([]models.Environment, int64, error) {
	out := make([]models.Environment, 0, len(m.environments))
	for _, env := range m.environments {
		out = append(out, *env)
	}
	return out, int64(len(out)), nil
}

func (m *mockEnvironmentRepo) ListByStatus(_ context.Context, status string, _ pagination.Request) ([]models.Environment, int64, error) {
	var out []models.Environment
	for _, env := range m.environments {
		if env.Status == status {
			out = append(out, *env)
		}
	}
	return out, int64(len(out)), nil
}

type mockTrackerRepo struct {
	trackers map[int64]*models.DatabaseTracker
	nextID   int64
}

func newMockTrackerRepo() *mockTrackerRepo {
	return &mockTrackerRepo{trackers: make(map[int64]*models.DatabaseTracker)}
}

func (m *mockTrackerRepo) Create(_ context.Context, t *models.DatabaseTracker) error {
	m.nextID++
	t.ID = m.nextID
	now := time.Now()
	t.LastModified = &now
	t.CreatedAt = now
	t.UpdatedAt = now
	m.trackers[t.ID] = t
	return nil
}

func (m *mockTrackerRepo) Get(_ context.Context, id int64, employeeID uuid.UUID) (*models.DatabaseTracker, error) {
	t, ok := m.trackers[id]
	if !ok || t.EmployeeID != employeeID {
		return nil, apperrors.NotFoundf("database tracker %d not found", id)
	}
	return t, nil
}

func (m *mockTrackerRepo) GetByName(_ context.Context, name string) (*models.DatabaseTracker, error) {
	for _, t := range m.trackers {
		if t.Name == name {
			return t, nil
		}
	}
	return nil, apperrors.NotFoundf("database tracker %s not found", name)
}

func (m *mockTrackerRepo) ExistsByName(_ context.Context, name string) (bool, error) {
	for _, t := range m.trackers {
		if t.Name == name {
			return true, nil
		}
	}
	return false, nil
}

func (m *mockTrackerRepo) Update(ctx context.Context, t *models.DatabaseTracker, employeeID uuid.UUID) error {
	if _, err := m.Get(ctx, t.ID, employeeID); err != nil {
		return err
	}
	now := time.Now()
	t.LastModified = &now
	m.trackers[t.ID] = t
	return nil
}

func (m *mockTrackerRepo) UpdateStatus(ctx context.Context, id int64, employeeID uuid.UUID, status string) (*models.DatabaseTracker, error) {
	t, err := m.Get(ctx, id, employeeID)
	if err != nil {
		return nil, err
	}
	t.Status = status
	now := time.Now()
	t.LastModified = &now
	return t, nil
}

func (m *mockTrackerRepo) Delete(ctx context.Context, id int64, employeeID uuid.UUID) error {
	if _, err := m.Get(ctx, id, employeeID); err != nil {
		return err
	}
	delete(m.trackers, id)
	return nil
}

func (m *mockTrackerRepo) List(_ context.Context, employeeID uuid.UUID, _ pagination.Request) ([]models.DatabaseTracker, int64, error) {
	var out []models.DatabaseTracker
	for _, t := range m.trackers {
		if t.EmployeeID == employeeID {
			out = append(out, *t)
		}
	}
	return out, int64(len(out)), nil
}

func (m *mockTrackerRepo) ListByStatus(_ context.Context, status string, _ pagination.Request) ([]models.DatabaseTracker, int64, error) {
	var out []models.DatabaseTracker
	for _, t := range m.trackers {
		if t.Status == status {
			out = append(out, *t)
		}
	}
	return out, int64(len(out)), nil
}

func (m *mockTrackerRepo) ListByVersion(_ context.Context, version string, _ pagination.Request) ([]models.DatabaseTracker, int64, error) {
	var out []models.DatabaseTracker
	for _, t := range m.trackers {
		if t.Version == version {
			out = append(out, *t)
		}
	}
	return out, int64(len(out)), nil
}

type mockDeploymentRepo struct {
	deployments map[uuid.UUID]*models.Deployment
}

func newMockDeploymentRepo() *mockDeploymentRepo {
	return &mockDeploymentRepo{deployments: make(map[uuid.UUID]*models.Deployment)}
}

func (m *mockDeploymentRepo) Create(_ context.Context, dep *models.Deployment) error {
	if dep.ID == uuid.Nil {
		dep.ID = uuid.New()
	}
	dep.CreatedAt = time.Now()
	dep.UpdatedAt = dep.CreatedAt
	m.deployments[dep.ID] = dep
	return nil
}

func (m *mockDeploymentRepo) Get(_ context.Context, id, employeeID uuid.UUID) (*models.Deployment, error) {
	dep, ok := m.deployments[id]
	if !ok || dep.EmployeeID != employeeID {
		return nil, apperrors.NotFoundf("deployment %s not found", id)
	}
	return dep, nil
}

func (m *mockDeploymentRepo) Update(ctx context.Context, dep *models.Deployment, employeeID uuid.UUID) error {
	if _, err := m.Get(ctx, dep.ID, employeeID); err != nil {
		return err
	}
	m.deployments[dep.ID] = dep
	return nil
}

func (m *mockDeploymentRepo) Delete(ctx context.Context, id, employeeID uuid.UUID) error {
	if _, err := m.Get(ctx, id, employeeID); err != nil {
		return err
	}
	delete(m.deployments, id)
	return nil
}

func (m *mockDeploymentRepo) List(_ context.Context, employeeID uuid.UUID, _ pagination.Request) ([]models.Deployment, int64, error) {
	var out []models.Deployment
	for _, dep := range m.deployments {
		if dep.EmployeeID == employeeID {
			out = append(out, *dep)
		}
	}
	return out, int64(len(out)), nil
}

func (m *mockDeploymentRepo) ListByEnvironment(_ context.Context, environment string, _ pagination.Request) ([]models.Deployment, int64, error) {
	var out []models.Deployment
	for _, dep := range m.deployments {
		if dep.Environment == environment {
			out = append(out, *dep)
		}
	}
	return out, int64(len(out)), nil
}

func (m *mockDeploymentRepo) ListByStatus(_ context.Context, status string, _ pagination.Request) ([]models.Deployment, int64, error) {
	var out []models.Deployment
	for _, dep := range m.deployments {
		if dep.Status == status {
			out = append(out, *dep)
		}
	}
	return out, int64(len(out)), nil
}

func (m *mockDeploymentRepo) ListByHealth(_ context.Context, health string, _ pagination.Request) ([]models.Deployment, int64, error) {
	var out []models.Deployment
	for _, dep := range m.deployments {
		if dep.Health == health {
			out = append(out, *dep)
		}
	}
	return out, int64(len(out)), nil
}

func (m *mockDeploymentRepo) ListByVersion(_ context.Context, version string, _ pagination.Request) ([]models.Deployment, int64, error) {
	var out []models.Deployment
	for _, dep := range m.deployments {
		if dep.Version == version {
			out = append(out, *dep)
		}
	}
	return out, int64(len(out)), nil
}

type mockVaultRepo struct {
	settings models.VaultSettings
}

func newMockVaultRepo() *mockVaultRepo {
	return &mockVaultRepo{settings: models.VaultSettings{
		Encryption: models.VaultEncryptionEnabled,
		Backup:     models.VaultBackupActive,
		UpdatedAt:  time.Now(),
	}}
}

func (m *mockVaultRepo) Get(_ context.Context) (*models.VaultSettings, error) {
	s := m.settings
	return &s, nil
}

func (m *mockVaultRepo) Update(_ context.Context, s *models.VaultSettings) error {
	m.settings.Encryption = s.Encryption
	m.settings.Backup = s.Backup
	m.settings.UpdatedAt = time.Now()
	*s = m.settings
	return nil
}

func (m *mockVaultRepo) UpdateEncryption(_ context.Context, encryption string) (*models.VaultSettings, error) {
	m.settings.Encryption = encryption
	m.settings.UpdatedAt = time.Now()
	s := m.settings
	return &s, nil
}

func (m *mockVaultRepo) UpdateBackup(_ context.Context, backup string) (*models.VaultSettings, error) {
	m.settings.Backup = backup
	m.settings.UpdatedAt = time.Now()
	s := m.settings
	return &s, nil
}

type mockRoleRepo struct {
	roles map[uuid.UUID]*models.Role
}

func newMockRoleRepo() *mockRoleRepo {
	return &mockRoleRepo{roles: make(map[uuid.UUID]*models.Role)}
}

func (m *mockRoleRepo) add(role *models.Role) *models.Role {
	if role.ID == uuid.Nil {
		role.ID = uuid.New()
	}
	m.roles[role.ID] = role
	return role
}

func (m *mockRoleRepo) Create(_ context.Context, role *models.Role) error {
	for _, existing := range m.roles {
		if existing.Name == role.Name {
			return apperrors.Duplicatef("role with name %s already exists", role.Name)
		}
	}
	if role.ID == uuid.Nil {
		role.ID = uuid.New()
	}
	role.CreatedAt = time.Now()
	role.UpdatedAt = role.CreatedAt
	m.roles[role.ID] = role
	return nil
}

func (m *mockRoleRepo) Get(_ context.Context, id uuid.UUID) (*models.Role, error) {
	role, ok := m.roles[id]
	if !ok {
		return nil, apperrors.NotFoundf("role %s not found", id)
	}
	return role, nil
}

func (m *mockRoleRepo) Update(_ context.Context, role *models.Role) error {
	if _, ok := m.roles[role.ID]; !ok {
		return apperrors.NotFoundf("role %s not found", role.ID)
	}
	for id, existing := range m.roles {
		if id != role.ID && existing.Name == role.Name {
			return apperrors.Duplicatef("role with name %s already exists", role.Name)
		}
	}
	role.UpdatedAt = time.Now()
	m.roles[role.ID] = role
	return nil
}

func (m *mockRoleRepo) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := m.roles[id]; !ok {
		return apperrors.NotFoundf("role %s not found", id)
	}
	delete(m.roles, id)
	return nil
}

func (m *mockRoleRepo) List(_ context.Context, _ pagination.Request) ([]models.Role, int64, error) {
	out := make([]models.Role, 0, len(m.roles))
	for _, role := range m.roles {
		out = append(out, *role)
	}
	return out, int64(len(out)), nil
}

type mockUserThemeRepo struct {
	themes map[uuid.UUID]*models.UserTheme
}

func newMockUserThemeRepo() *mockUserThemeRepo {
	return &mockUserThemeRepo{themes: make(map[uuid.UUID]*models.UserTheme)}
}

func (m *mockUserThemeRepo) Create(_ context.Context, theme *models.UserTheme) error {
	if _, ok := m.themes[theme.UserID]; ok {
		return apperrors.Duplicatef("user %s already has a theme preference", theme.UserID)
	}
	if theme.ID == uuid.Nil {
		theme.ID = uuid.New()
	}
	theme.CreatedAt = time.Now()
	theme.UpdatedAt = theme.CreatedAt
	m.themes[theme.UserID] = theme
	return nil
}

func (m *mockUserThemeRepo) GetByUser(_ context.Context, userID uuid.UUID) (*models.UserTheme, error) {
	theme, ok := m.themes[userID]
	if !ok {
		return nil, apperrors.NotFoundf("theme for user %s not found", userID)
	}
	return theme, nil
}

func (m *mockUserThemeRepo) UpdateByUser(_ context.Context, userID uuid.UUID, theme string) (*models.UserTheme, error) {
	existing, ok := m.themes[userID]
	if !ok {
		return nil, apperrors.NotFoundf("theme for user %s not found", userID)
	}
	existing.Theme = theme
	existing.UpdatedAt = time.Now()
	return existing, nil
}

func (m *mockUserThemeRepo) DeleteByUser(_ context.Context, userID uuid.UUID) error {
	if _, ok := m.themes[userID]; !ok {
		return apperrors.NotFoundf("theme for user %s not found", userID)
	}
	delete(m.themes, userID)
	return nil
}

type mockSubscriptionRepo struct {
	subs map[uuid.UUID]*models.Subscription
}

func newMockSubscriptionRepo() *mockSubscriptionRepo {
	return &mockSubscriptionRepo{subs: make(map[uuid.UUID]*models.Subscription)}
}

func (m *mockSubscriptionRepo) Create(_ context.Context, sub *models.Subscription) error {
	for _, existing := range m.subs {
		if existing.UserID == sub.UserID {
			return apperrors.Duplicatef("user %s already has a subscription", sub.UserID)
		}
	}
	if sub.ID == uuid.Nil {
		sub.ID = uuid.New()
	}
	sub.CreatedAt = time.Now()
	sub.UpdatedAt = sub.CreatedAt
	m.subs[sub.ID] = sub
	return nil
}

func (m *mockSubscriptionRepo) Get(_ context.Context, id uuid.UUID) (*models.Subscription, error) {
	sub, ok := m.subs[id]
	if !ok {
		return nil, apperrors.NotFoundf("subscription %s not found", id)
	}
	return sub, nil
}

func (m *mockSubscriptionRepo) GetByUser(_ context.Context, userID uuid.UUID) (*models.Subscription, error) {
	for _, sub := range m.subs {
		if sub.UserID == userID {
			return sub, nil
		}
	}
	return nil, apperrors.NotFoundf("subscription for user %s not found", userID)
}

func (m *mockSubscriptionRepo) Update(_ context.Context, sub *models.Subscription) error {
	if _, ok := m.subs[sub.ID]; !ok {
		return apperrors.NotFoundf("subscription %s not found", sub.ID)
	}
	sub.UpdatedAt = time.Now()
	m.subs[sub.ID] = sub
	return nil
}

func (m *mockSubscriptionRepo) UpdateStatus(_ context.Context, id uuid.UUID, status string) (*models.Subscription, error) {
	sub, ok := m.subs[id]
	if !ok {
		return nil, apperrors.NotFoundf("subscription %s not found", id)
	}
	sub.Status = status
	sub.UpdatedAt = time.Now()
	return sub, nil
}

func (m *mockSubscriptionRepo) UpdatePlan(_ context.Context, id uuid.UUID, plan string) (*models.Subscription, error) {
	sub, ok := m.subs[id]
	if !ok {
		return nil, apperrors.NotFoundf("subscription %s not found", id)
	}
	sub.Plan = plan
	sub.UpdatedAt = time.Now()
	return sub, nil
}

func (m *mockSubscriptionRepo) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := m.subs[id]; !ok {
		return apperrors.NotFoundf("subscription %s not found", id)
	}
	delete(m.subs, id)
	return nil
}
