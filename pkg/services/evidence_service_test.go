package services

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/ideahub-inc/ideahub-engine/pkg/apperrors"
	"github.com/ideahub-inc/ideahub-engine/pkg/models"
	"github.com/ideahub-inc/ideahub-engine/pkg/storage"
)

type evidenceFixture struct {
	svc          EvidenceService
	evidenceRepo *mockEvidenceRepo
	project      *models.Project
	user         *models.User
	idea         *models.Idea
	dir          string
}

func newEvidenceFixture(t *testing.T) *evidenceFixture {
	t.Helper()

	dir := t.TempDir()
	files, err := storage.NewFileStore(dir, zap.NewNop())
	require.NoError(t, err)

	evidenceRepo := newMockEvidenceRepo()
	projectRepo := newMockProjectRepo()
	userRepo := newMockUserRepo()
	ideaRepo := newMockIdeaRepo()

	project := projectRepo.add(&models.Project{Name: "Apollo"})
	user := userRepo.add(&models.User{Username: "ada", Email: "ada@example.com"})
	idea := ideaRepo.add(&models.Idea{Title: "Dark mode"})

	return &evidenceFixture{
		svc:          NewEvidenceService(evidenceRepo, projectRepo, userRepo, ideaRepo, files, zap.NewNop()),
		evidenceRepo: evidenceRepo,
		project:      project,
		user:         user,
		idea:         idea,
		dir:          dir,
	}
}

func (f *evidenceFixture) input() *EvidenceInput {
	return &EvidenceInput{
		Title:      "Benchmark results",
		Type:       models.EvidenceTypeText,
		Category:   "performance",
		ProjectID:  f.project.ID,
		UploadedBy: f.user.ID,
	}
}

func TestEvidenceService_CreateText(t *testing.T) {
	f := newEvidenceFixture(t)

	in := f.input()
	in.Tags = []string{"perf", "perf", "latency"}
	created, err := f.svc.Create(context.Background(), in)
	require.NoError(t, err)

	assert.Equal(t, models.EvidenceStatusPending, created.Status)
	assert.Equal(t, []string{"perf", "latency"}, created.Tags)
	assert.Empty(t, created.FilePath)
}

func TestEvidenceService_CreateFileStoresUpload(t *testing.T) {
	f := newEvidenceFixture(t)

	in := f.input()
	in.Type = models.EvidenceTypeFile
	in.File = &FileUpload{
		Reader:      strings.NewReader("benchmark output"),
		Name:        "results.txt",
		ContentType: "text/plain",
	}

	created, err := f.svc.Create(context.Background(), in)
	require.NoError(t, err)

	assert.Equal(t, "results.txt", created.FileName)
	assert.Equal(t, "text/plain", created.ContentType)
	assert.Equal(t, int64(len("benchmark output")), created.FileSize)
	require.NotEmpty(t, created.FilePath)

	data, err := os.ReadFile(created.FilePath)
	require.NoError(t, err)
	assert.Equal(t, "benchmark output", string(data))
}

func TestEvidenceService_CreateFileWithoutPart(t *testing.T) {
	f := newEvidenceFixture(t)

	in := f.input()
	in.Type = models.EvidenceTypeFile

	_, err := f.svc.Create(context.Background(), in)
	require.ErrorIs(t, err, apperrors.ErrValidation)
	assert.Contains(t, err.Error(), "a file is required for FILE evidence")
}

func TestEvidenceService_CreateLinkWithoutURL(t *testing.T) {
	f := newEvidenceFixture(t)

	in := f.input()
	in.Type = models.EvidenceTypeLink

	_, err := f.svc.Create(context.Background(), in)
	require.ErrorIs(t, err, apperrors.ErrValidation)
	assert.Contains(t, err.Error(), "url is required for LINK evidence")
}

func TestEvidenceService_CreateUnknownProject(t *testing.T) {
	f := newEvidenceFixture(t)

	in := f.input()
	in.ProjectID = uuid.New()

	_, err := f.svc.Create(context.Background(), in)
	require.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestEvidenceService_CreateRemovesFileOnInsertFailure(t *testing.T) {
	f := newEvidenceFixture(t)
	f.evidenceRepo.createErr = errors.New("insert failed")

	in := f.input()
	in.Type = models.EvidenceTypeFile
	in.File = &FileUpload{Reader: strings.NewReader("data"), Name: "x.txt", ContentType: "text/plain"}

	_, err := f.svc.Create(context.Background(), in)
	require.Error(t, err)

	entries, err := os.ReadDir(f.dir)
	require.NoError(t, err)
	assert.Empty(t, entries, "stored file should be removed when the row insert fails")
}

func TestEvidenceService_UpdateKeepsStoredFile(t *testing.T) {
	f := newEvidenceFixture(t)

	in := f.input()
	in.Type = models.EvidenceTypeFile
	in.File = &FileUpload{Reader: strings.NewReader("v1"), Name: "report.txt", ContentType: "text/plain"}
	created, err := f.svc.Create(context.Background(), in)
	require.NoError(t, err)

	upd := f.input()
	upd.Title = "Benchmark results v2"
	upd.Type = models.EvidenceTypeFile
	updated, err := f.svc.Update(context.Background(), created.ID, upd)
	require.NoError(t, err)

	assert.Equal(t, "Benchmark results v2", updated.Title)
	assert.Equal(t, created.FilePath, updated.FilePath)
	assert.Equal(t, created.FileSize, updated.FileSize)
}

func TestEvidenceService_UpdateToTextClearsFileMetadata(t *testing.T) {
	f := newEvidenceFixture(t)

	in := f.input()
	in.Type = models.EvidenceTypeFile
	in.File = &FileUpload{Reader: strings.NewReader("v1"), Name: "report.txt", ContentType: "text/plain"}
	created, err := f.svc.Create(context.Background(), in)
	require.NoError(t, err)

	upd := f.input()
	upd.Type = models.EvidenceTypeText
	updated, err := f.svc.Update(context.Background(), created.ID, upd)
	require.NoError(t, err)

	assert.Empty(t, updated.FilePath)
	assert.Empty(t, updated.FileName)
	assert.Zero(t, updated.FileSize)
}

func TestEvidenceService_UpdateStatus(t *testing.T) {
	f := newEvidenceFixture(t)

	created, err := f.svc.Create(context.Background(), f.input())
	require.NoError(t, err)

	updated, err := f.svc.UpdateStatus(context.Background(), created.ID, models.EvidenceStatusValidated)
	require.NoError(t, err)
	assert.Equal(t, models.EvidenceStatusValidated, updated.Status)

	_, err = f.svc.UpdateStatus(context.Background(), created.ID, "SHREDDED")
	require.ErrorIs(t, err, apperrors.ErrValidation)
}

func TestEvidenceService_DeleteRemovesFile(t *testing.T) {
	f := newEvidenceFixture(t)

	in := f.input()
	in.Type = models.EvidenceTypeFile
	in.File = &FileUpload{Reader: strings.NewReader("data"), Name: "x.txt", ContentType: "text/plain"}
	created, err := f.svc.Create(context.Background(), in)
	require.NoError(t, err)
	path := created.FilePath

	require.NoError(t, f.svc.Delete(context.Background(), created.ID))

	_, err = os.Stat(filepath.Clean(path))
	assert.True(t, os.IsNotExist(err))
	_, err = f.svc.Get(context.Background(), created.ID)
	require.ErrorIs(t, err, apperrors.ErrNotFound)
}
