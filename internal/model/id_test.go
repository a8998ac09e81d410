package model

import (
	"encoding/json"
	"testing"
)

func TestIDUnmarshalJSON(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		input   string
		want    ID
		wantErr bool
	}{
		{name: "string", input: `"abc-1"`, want: "abc-1"},
		{name: "integer", input: `42`, want: "42"},
		{name: "integral float", input: `1.0`, want: "1"},
		{name: "exponent", input: `1e2`, want: "100"},
		{name: "negative integral float", input: `-3.00`, want: "-3"},
		{name: "fraction kept", input: `1.5`, want: "1.5"},
		{name: "null", input: `null`, want: ""},
		{name: "boolean is rejected", input: `true`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var id ID
			err := json.Unmarshal([]byte(tt.input), &id)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error for %s", tt.input)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if id != tt.want {
				t.Errorf("got %q, want %q", id, tt.want)
			}
		})
	}
}

func TestPageDecodesNumericIdentifiers(t *testing.T) {
	t.Parallel()

	data := []byte(`{"id": 7, "path": "en/home", "title": "Home", "locale": "en", "isPublished": true}`)

	var p Page
	if err := json.Unmarshal(data, &p); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.ID != "7" {
		t.Errorf("expected ID 7, got %q", p.ID)
	}

	out, err := json.Marshal(p)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	var back Page
	if err := json.Unmarshal(out, &back); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if back.ID != p.ID {
		t.Errorf("identifier changed after re-encoding: %q", back.ID)
	}
}

func TestNavigationItemIsPublic(t *testing.T) {
	t.Parallel()

	if !(NavigationItem{}).IsPublic() {
		t.Error("item without groups should be public")
	}
	if !(NavigationItem{VisibilityGroups: []ID{}}).IsPublic() {
		t.Error("item with empty groups should be public")
	}
	if (NavigationItem{VisibilityGroups: []ID{"1"}}).IsPublic() {
		t.Error("item with groups should be restricted")
	}
}
