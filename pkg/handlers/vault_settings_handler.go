package handlers

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	"github.com/ideahub-inc/ideahub-engine/pkg/models"
	"github.com/ideahub-inc/ideahub-engine/pkg/services"
)

// VaultSettingsRequest is the JSON body for replacing the vault settings.
type VaultSettingsRequest struct {
	Encryption string `json:"encryption"`
	Backup     string `json:"backup"`
}

// VaultEncryptionRequest is the PATCH body for the encryption toggle.
type VaultEncryptionRequest struct {
	Encryption string `json:"encryption"`
}

// VaultBackupRequest is the PATCH body for the backup toggle.
type VaultBackupRequest struct {
	Backup string `json:"backup"`
}

// VaultSettingsHandler handles the singleton vault settings resource.
type VaultSettingsHandler struct {
	vaultService services.VaultSettingsService
	logger       *zap.Logger
}

// NewVaultSettingsHandler creates a new vault settings handler.
func NewVaultSettingsHandler(vaultService services.VaultSettingsService, logger *zap.Logger) *VaultSettingsHandler {
	return &VaultSettingsHandler{
		vaultService: vaultService,
		logger:       logger,
	}
}

// RegisterRoutes registers the vault settings routes on the given mux.
func (h *VaultSettingsHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /api/vault-settings", h.Get)
	mux.HandleFunc("PUT /api/vault-settings", h.Update)
	mux.HandleFunc("PATCH /api/vault-settings/encryption", h.UpdateEncryption)
	mux.HandleFunc("PATCH /api/vault-settings/backup", h.UpdateBackup)
}

// Get handles GET /api/vault-settings
func (h *VaultSettingsHandler) Get(w http.ResponseWriter, r *http.Request) {
	settings, err := h.vaultService.Get(r.Context())
	if err != nil {
		ServiceError(w, h.logger, err, "get_vault_settings_failed")
		return
	}

	if err := WriteJSON(w, http.StatusOK, settings); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}

// Update handles PUT /api/vault-settings
func (h *VaultSettingsHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req VaultSettingsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		if err := ErrorResponse(w, http.StatusBadRequest, "invalid_request", "Invalid request body"); err != nil {
			h.logger.Error("Failed to write error response", zap.Error(err))
		}
		return
	}

	settings, err := h.vaultService.Update(r.Context(), &models.VaultSettings{
		Encryption: req.Encryption,
		Backup:     req.Backup,
	})
	if err != nil {
		ServiceError(w, h.logger, err, "update_vault_settings_failed")
		return
	}

	if err := WriteJSON(w, http.StatusOK, settings); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}

// UpdateEncryption handles PATCH /api/vault-settings/encryption
func (h *VaultSettingsHandler) UpdateEncryption(w http.ResponseWriter, r *http.Request) {
	var req VaultEncryptionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		if err := ErrorResponse(w, http.StatusBadRequest, "invalid_request", "Invalid request body"); err != nil {
			h.logger.Error("Failed to write error response", zap.Error(err))
		}
		return
	}

	settings, err := h.vaultService.UpdateEncryption(r.Context(), req.Encryption)
	if err != nil {
		ServiceError(w, h.logger, err, "update_vault_encryption_failed")
		return
	}

	if err := WriteJSON(w, http.StatusOK, settings); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}

// UpdateBackup handles PATCH /api/vault-settings/backup
func (h *VaultSettingsHandler) UpdateBackup(w http.ResponseWriter, r *http.Request) {
	var req VaultBackupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		if err := ErrorResponse(w, http.StatusBadRequest, "invalid_request", "Invalid request body"); err != nil {
			h.logger.Error("Failed to write error response", zap.Error(err))
		}
		return
	}

	settings, err := h.vaultService.UpdateBackup(r.Context(), req.Backup)
	if err != nil {
		ServiceError(w, h.logger, err, "update_vault_backup_failed")
		return
	}

	if err := WriteJSON(w, http.StatusOK, settings); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}
