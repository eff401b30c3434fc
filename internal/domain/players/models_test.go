package players

import (
	"encoding/json"
	"reflect"
	"testing"
)

func TestPlayerJSONTags(t *testing.T) {
	type fieldCheck struct {
		name string
		tag  string
	}
	playerType := reflect.TypeOf(Player{})
	fields := []fieldCheck{
		{"ID", "id"},
		{"FirstName", "firstName"},
		{"LastName", "lastName"},
		{"Position", "position"},
		{"JerseyNumber", "jerseyNumber"},
		{"TeamID", "teamId"},
		{"Height", "height"},
		{"Weight", "weight"},
		{"BirthDate", "birthDate"},
		{"PhotoURL", "photoUrl"},
		{"Stats", "stats"},
	}
	for _, fc := range fields {
		f, ok := playerType.FieldByName(fc.name)
		if !ok {
			t.Fatalf("missing field %s", fc.name)
		}
		if tag := f.Tag.Get("json"); tag != fc.tag {
			t.Fatalf("field %s expected tag %s, got %s", fc.name, fc.tag, tag)
		}
	}
}

func TestRosterPlayerFlattensPlayerFields(t *testing.T) {
	rp := RosterPlayer{Player: Player{ID: "1", FirstName: "Jayson"}, Status: RosterStarter}
	raw, err := json.Marshal(rp)
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}
	var decoded map[string]any
	if err := json.Unmarshal(raw, &decoded); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}
	if decoded["id"] != "1" || decoded["firstName"] != "Jayson" || decoded["status"] != "starter" {
		t.Fatalf("expected flattened roster player, got %v", decoded)
	}
}
