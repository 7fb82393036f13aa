package models

import (
	"time"

	"github.com/google/uuid"
)

// Type values for evidence. The type decides which fields are required:
// FILE needs an uploaded file, LINK needs a URL, TEXT and IMAGE need neither.
const (
	EvidenceTypeFile  = "FILE"
	EvidenceTypeImage = "IMAGE"
	EvidenceTypeLink  = "LINK"
	EvidenceTypeText  = "TEXT"
)

// Status values for evidence.
const (
	EvidenceStatusPending   = "PENDING"
	EvidenceStatusValidated = "VALIDATED"
	EvidenceStatusRejected  = "REJECTED"
	EvidenceStatusArchived  = "ARCHIVED"
)

// EvidenceTypes lists the accepted type values.
var EvidenceTypes = []string{EvidenceTypeFile, EvidenceTypeImage, EvidenceTypeLink, EvidenceTypeText}

// EvidenceStatuses lists the accepted status values.
var EvidenceStatuses = []string{EvidenceStatusPending, EvidenceStatusValidated, EvidenceStatusRejected, EvidenceStatusArchived}

// Evidence is an attachment supporting an idea: a stored file, an image, an
// external link or a free-text note. File metadata is populated only for
// stored files.
type Evidence struct {
	ID          uuid.UUID  `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description,omitempty"`
	Type        string     `json:"type"`
	Category    string     `json:"category"`
	Status      string     `json:"status"`
	FileName    string     `json:"file_name,omitempty"`
	FilePath    string     `json:"file_path,omitempty"`
	ContentType string     `json:"content_type,omitempty"`
	FileSize    int64      `json:"file_size,omitempty"`
	URL         string     `json:"url,omitempty"`
	Tags        []string   `json:"tags,omitempty"`
	ProjectID   uuid.UUID  `json:"project_id"`
	UploadedBy  uuid.UUID  `json:"uploaded_by"`
	IdeaID      *uuid.UUID `json:"idea_id,omitempty"`
	UploadedAt  time.Time  `json:"uploaded_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}
