package collections

import (
	"testing"

	"github.com/google/uuid"
)

func TestValidateScope(t *testing.T) {
	fileID := uuid.New()
	collectionID := uuid.New()

	cases := []struct {
		name    string
		profile VisibilityProfile
		wantErr bool
	}{
		{"file ok", VisibilityProfile{ProfileType: ProfileTypeFile, FileUUID: &fileID}, false},
		{"file missing key", VisibilityProfile{ProfileType: ProfileTypeFile}, true},
		{"file with collection key", VisibilityProfile{ProfileType: ProfileTypeFile, FileUUID: &fileID, CollectionUUID: &collectionID}, true},
		{"collection ok", VisibilityProfile{ProfileType: ProfileTypeCollection, CollectionUUID: &collectionID}, false},
		{"collection missing key", VisibilityProfile{ProfileType: ProfileTypeCollection}, true},
		{"collection with file key", VisibilityProfile{ProfileType: ProfileTypeCollection, CollectionUUID: &collectionID, FileUUID: &fileID}, true},
		{"global ok", VisibilityProfile{ProfileType: ProfileTypeGlobal}, false},
		{"global with file key", VisibilityProfile{ProfileType: ProfileTypeGlobal, FileUUID: &fileID}, true},
		{"unknown type", VisibilityProfile{ProfileType: "LOCAL"}, true},
	}
	for _, tc := range cases {
		err := tc.profile.ValidateScope()
		if tc.wantErr && err == nil {
			t.Fatalf("%s: expected error", tc.name)
		}
		if !tc.wantErr && err != nil {
			t.Fatalf("%s: unexpected error: %v", tc.name, err)
		}
	}
}
