package models

import "time"

// Encryption values for vault settings.
const (
	VaultEncryptionEnabled  = "ENABLED"
	VaultEncryptionDisabled = "DISABLED"
)

// Backup values for vault settings.
const (
	VaultBackupActive   = "ACTIVE"
	VaultBackupInactive = "INACTIVE"
)

// VaultEncryptions lists the accepted encryption values.
var VaultEncryptions = []string{VaultEncryptionEnabled, VaultEncryptionDisabled}

// VaultBackups lists the accepted backup values.
var VaultBackups = []string{VaultBackupActive, VaultBackupInactive}

// VaultSettings is the singleton security configuration row. It is created
// lazily with defaults on first read.
type VaultSettings struct {
	Encryption string    `json:"encryption"`
	Backup     string    `json:"backup"`
	UpdatedAt  time.Time `json:"updated_at"`
}
