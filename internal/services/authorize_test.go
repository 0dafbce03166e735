package services

import (
	"errors"
	"testing"

	"github.com/Sourav-02121996/project-3-LostNFound/internal/models"
)

func TestAuthorize(t *testing.T) {
	searching := &models.Item{ID: "item-1", OwnerID: "owner", Status: models.StatusSearching}
	claimed := &models.Item{ID: "item-2", OwnerID: "owner", Status: models.StatusClaimed}

	tests := []struct {
		name       string
		item       *models.Item
		requester  string
		patch      models.ItemPatch
		wantScope  Scope
		wantReason string
	}{
		{
			name:      "owner edits any field",
			item:      searching,
			requester: "owner",
			patch:     models.ItemPatch{Name: "Blue backpack", Location: "Library"},
			wantScope: ScopeFull,
		},
		{
			name:      "owner sets status alongside other fields",
			item:      searching,
			requester: "owner",
			patch:     models.ItemPatch{Name: "Backpack", Status: models.StatusClaimed},
			wantScope: ScopeFull,
		},
		{
			name:      "owner claiming own item is a full edit",
			item:      searching,
			requester: "owner",
			patch:     models.ItemPatch{Status: models.StatusClaimed},
			wantScope: ScopeFull,
		},
		{
			name:      "non-owner claims with status only",
			item:      searching,
			requester: "stranger",
			patch:     models.ItemPatch{Status: models.StatusClaimed},
			wantScope: ScopeClaim,
		},
		{
			name:       "non-owner edits without claiming",
			item:       searching,
			requester:  "stranger",
			patch:      models.ItemPatch{Name: "x"},
			wantReason: ReasonNotOwner,
		},
		{
			name:       "non-owner piggybacks edits onto a claim",
			item:       searching,
			requester:  "stranger",
			patch:      models.ItemPatch{Status: models.StatusClaimed, Name: "x"},
			wantReason: ReasonClaimOnly,
		},
		{
			name:       "non-owner clears image alongside a claim",
			item:       searching,
			requester:  "stranger",
			patch:      models.ItemPatch{Status: models.StatusClaimed, ImageSet: true},
			wantReason: ReasonClaimOnly,
		},
		{
			name:       "non-owner re-claims an already claimed item",
			item:       claimed,
			requester:  "stranger",
			patch:      models.ItemPatch{Status: models.StatusClaimed},
			wantReason: ReasonNotOwner,
		},
		{
			name:      "owner edits an already claimed item",
			item:      claimed,
			requester: "owner",
			patch:     models.ItemPatch{Status: models.StatusSearching},
			wantScope: ScopeFull,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			scope, err := Authorize(tt.item, tt.requester, tt.patch)

			if tt.wantReason != "" {
				var fe *ForbiddenError
				if !errors.As(err, &fe) {
					t.Fatalf("expected ForbiddenError, got %v", err)
				}
				if fe.Reason != tt.wantReason {
					t.Errorf("reason = %q, want %q", fe.Reason, tt.wantReason)
				}
				return
			}

			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if scope != tt.wantScope {
				t.Errorf("scope = %v, want %v", scope, tt.wantScope)
			}
		})
	}
}
