package models

import "time"

// OwnerSelf is the owner id recorded for files created in the current
// session. A real multi-tenant deployment replaces this sentinel with the
// session identity id.
const OwnerSelf = "self"

// FileKind classifies a file record.
type FileKind string

const (
	KindDocument    FileKind = "document"
	KindSpreadsheet FileKind = "spreadsheet"
	KindImage       FileKind = "image"
	KindOther       FileKind = "other"
)

// Valid reports whether k is one of the known kinds.
func (k FileKind) Valid() bool {
	switch k {
	case KindDocument, KindSpreadsheet, KindImage, KindOther:
		return true
	}
	return false
}

// Extension returns the file extension appended to a record's name at upload.
// Unknown kinds fall back to the plain-text extension.
func (k FileKind) Extension() string {
	switch k {
	case KindDocument:
		return ".pdf"
	case KindSpreadsheet:
		return ".xlsx"
	case KindImage:
		return ".jpg"
	default:
		return ".txt"
	}
}

// Permission is the access level recorded in a share grant.
type Permission string

const (
	PermissionRead  Permission = "read"
	PermissionEdit  Permission = "edit"
	PermissionAdmin Permission = "admin"
)

// Valid reports whether p is one of the known permissions.
func (p Permission) Valid() bool {
	switch p {
	case PermissionRead, PermissionEdit, PermissionAdmin:
		return true
	}
	return false
}

// ShareGrant records one recipient's access to a file. Recipients are unique
// within a single file's share list; re-sharing replaces the grant in place.
type ShareGrant struct {
	Recipient  string
	Permission Permission
}

// FileRecord is one registry entry. IDs are assigned monotonically by the
// registry and never reused within a session. Every record created through
// upload is encrypted at rest; the StorageKey locates the encrypted blob in
// the configured transport backend.
type FileRecord struct {
	ID         int64
	Name       string
	Kind       FileKind
	SizeBytes  int64
	ModifiedAt time.Time
	OwnerID    string
	Shares     []ShareGrant
	Encrypted  bool
	StorageKey string
}

// OwnedBySelf reports whether the record was created in the current session.
func (f *FileRecord) OwnedBySelf() bool { return f.OwnerID == OwnerSelf }

// Clone returns a deep copy, so repository callers can mutate the result
// without touching stored state.
func (f *FileRecord) Clone() *FileRecord {
	c := *f
	if f.Shares != nil {
		c.Shares = append([]ShareGrant(nil), f.Shares...)
	}
	return &c
}
