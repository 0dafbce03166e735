package models

import (
	"reflect"
	"testing"
)

func TestMissingFields(t *testing.T) {
	tests := []struct {
		name  string
		draft ItemDraft
		want  []string
	}{
		{
			name: "complete draft",
			draft: ItemDraft{
				Name:        "Backpack",
				Location:    "Library",
				Description: "Blue, two pockets",
				Category:    "bags",
				DateFound:   "2026-08-20",
			},
			want: nil,
		},
		{
			name:  "empty draft",
			draft: ItemDraft{},
			want:  []string{"name", "location", "description", "dateFound", "category"},
		},
		{
			name: "whitespace counts as missing",
			draft: ItemDraft{
				Name:        "  ",
				Location:    "Library",
				Description: "desc",
				Category:    "bags",
				DateFound:   "2026-08-20",
			},
			want: []string{"name"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.draft.MissingFields()
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("MissingFields() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestItemPatchFilter(t *testing.T) {
	p := ItemPatch{Name: "  Backpack  ", Location: "   ", Status: " claimed "}.Filter()

	if p.Name != "Backpack" {
		t.Errorf("Name = %q, want trimmed", p.Name)
	}
	if p.Location != "" {
		t.Errorf("Location = %q, want absent after trimming", p.Location)
	}
	if p.Status != "claimed" {
		t.Errorf("Status = %q", p.Status)
	}
}

func TestItemPatchIsEmpty(t *testing.T) {
	if !(ItemPatch{}).IsEmpty() {
		t.Error("zero patch should be empty")
	}
	if (ItemPatch{Status: "claimed"}).IsEmpty() {
		t.Error("patch with status is not empty")
	}
	if (ItemPatch{ImageSet: true}).IsEmpty() {
		t.Error("an explicit image clear is not an empty patch")
	}
}

func TestItemPatchHasNonStatusFields(t *testing.T) {
	if (ItemPatch{Status: "claimed"}).HasNonStatusFields() {
		t.Error("status-only patch has no other fields")
	}
	if !(ItemPatch{Status: "claimed", Name: "x"}).HasNonStatusFields() {
		t.Error("name should count as a non-status field")
	}
	if !(ItemPatch{Status: "claimed", ImageSet: true}).HasNonStatusFields() {
		t.Error("an image change should count as a non-status field")
	}
}
