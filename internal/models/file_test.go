package models

import "testing"

func TestFileKind_Extension(t *testing.T) {
	tests := []struct {
		kind FileKind
		want string
	}{
		{KindDocument, ".pdf"},
		{KindSpreadsheet, ".xlsx"},
		{KindImage, ".jpg"},
		{KindOther, ".txt"},
		{FileKind("bogus"), ".txt"},
	}
	for _, tt := range tests {
		if got := tt.kind.Extension(); got != tt.want {
			t.Errorf("Extension(%q) = %q, want %q", tt.kind, got, tt.want)
		}
	}
}

func TestFileKind_Valid(t *testing.T) {
	if !KindDocument.Valid() || !KindOther.Valid() {
		t.Fatal("known kinds must be valid")
	}
	if FileKind("zip").Valid() {
		t.Fatal("unknown kind must be invalid")
	}
}

func TestFileRecord_Clone(t *testing.T) {
	original := &FileRecord{
		ID:     1,
		Name:   "Report.pdf",
		Shares: []ShareGrant{{Recipient: "a@b.com", Permission: PermissionRead}},
	}

	clone := original.Clone()
	clone.Name = "Changed"
	clone.Shares[0].Permission = PermissionAdmin
	clone.Shares = append(clone.Shares, ShareGrant{Recipient: "c@d.com", Permission: PermissionRead})

	if original.Name != "Report.pdf" {
		t.Fatal("clone must not share the name field")
	}
	if original.Shares[0].Permission != PermissionRead || len(original.Shares) != 1 {
		t.Fatalf("clone must not share the grants slice: %+v", original.Shares)
	}
}
