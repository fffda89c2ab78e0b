package content

import (
	"encoding/json"
	"reflect"
	"testing"
)

func TestDefaultIsStable(t *testing.T) {
	a, b := Default(), Default()
	if !reflect.DeepEqual(a, b) {
		t.Fatal("two default documents should be deep-equal")
	}
	if len(a.Projects) != 4 {
		t.Fatalf("expected 4 seed projects, got %d", len(a.Projects))
	}
	if len(a.Skills) != 5 {
		t.Fatalf("expected 5 seed skills, got %d", len(a.Skills))
	}
	if a.MyWorks == nil || len(a.MyWorks) != 0 {
		t.Fatalf("expected empty non-nil myWorks, got %#v", a.MyWorks)
	}
	if a.Hero == nil || a.Contact == nil || a.About == nil {
		t.Fatal("singleton sections must always exist")
	}

	a.Projects[0].Name = "changed"
	a.About.Bio = "changed"
	if Default().Projects[0].Name != "MINTAIR" || Default().About.Bio == "changed" {
		t.Fatal("Default must hand out independent copies")
	}
}

func TestDefaultJSONRoundTrip(t *testing.T) {
	doc := Default()
	raw, err := json.Marshal(doc)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var decoded Document
	if err := json.Unmarshal(raw, &decoded); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if !reflect.DeepEqual(doc, decoded) {
		t.Fatalf("round trip mismatch:\n got %#v\nwant %#v", decoded, doc)
	}
}

func TestCloneIsDeep(t *testing.T) {
	doc := Default()
	cp := doc.Clone()
	cp.Projects[1].Name = "X"
	cp.Skills = append(cp.Skills, Skill{ID: "9"})
	cp.Hero.Title = "X"

	if doc.Projects[1].Name == "X" {
		t.Error("project slice shared with clone")
	}
	if len(doc.Skills) != 5 {
		t.Error("skills slice shared with clone")
	}
	if doc.Hero.Title == "X" {
		t.Error("hero pointer shared with clone")
	}
}

func TestNormalizeSeedsAbsentSectionsOnly(t *testing.T) {
	legacy := []byte(`{
		"projects": [{"id": "7", "name": "Legacy", "category": "c", "description": "d", "color": "#000000", "bgGradient": "g", "createdAt": "2024-05-01T00:00:00Z"}],
		"skills": [],
		"about": {"bio": "X", "location": "Dubai", "yearsExperience": "1", "projectsCompleted": "2", "web3Brands": "3"}
	}`)
	var doc Document
	if err := json.Unmarshal(legacy, &doc); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	doc.Normalize()

	if doc.SchemaVersion != CurrentSchemaVersion {
		t.Errorf("SchemaVersion = %d, want %d", doc.SchemaVersion, CurrentSchemaVersion)
	}
	if len(doc.Projects) != 1 || doc.Projects[0].ID != "7" {
		t.Errorf("existing projects must be preserved, got %#v", doc.Projects)
	}
	if doc.Skills == nil || len(doc.Skills) != 0 {
		t.Errorf("present but empty skills must stay empty, got %#v", doc.Skills)
	}
	if doc.About.Bio != "X" {
		t.Errorf("about must be preserved, got %q", doc.About.Bio)
	}
	if doc.MyWorks == nil || doc.Hero == nil || doc.Contact == nil {
		t.Fatal("absent sections must be seeded")
	}
	if *doc.Hero != *Default().Hero {
		t.Errorf("hero should be seeded from defaults, got %#v", doc.Hero)
	}
}

func TestPatchEmptyIsIdentity(t *testing.T) {
	doc := Default()
	p := doc.Projects[0]
	p.ImageURL = "https://img"
	if got := (ProjectPatch{}).Apply(p); got != p {
		t.Errorf("empty project patch changed entity: %#v", got)
	}
	s := doc.Skills[0]
	if got := (SkillPatch{}).Apply(s); got != s {
		t.Errorf("empty skill patch changed entity: %#v", got)
	}
	if got := (AboutPatch{}).Apply(*doc.About); got != *doc.About {
		t.Errorf("empty about patch changed section: %#v", got)
	}
}

func TestPatchReplacesOnlySuppliedFields(t *testing.T) {
	about := About{Bio: "X", Location: "Dubai", YearsExperience: "3+"}
	got := AboutPatch{Location: String("Singapore")}.Apply(about)
	want := About{Bio: "X", Location: "Singapore", YearsExperience: "3+"}
	if got != want {
		t.Errorf("Apply = %#v, want %#v", got, want)
	}

	work := MyWork{ID: "1", Title: "t", Type: WorkFraming, ImageURL: "u", Description: "d"}
	moving := WorkMoving
	got2 := MyWorkPatch{Type: &moving, Description: String("")}.Apply(work)
	if got2.Type != WorkMoving || got2.Description != "" || got2.Title != "t" || got2.ImageURL != "u" {
		t.Errorf("unexpected patched work %#v", got2)
	}
}

func TestEnums(t *testing.T) {
	for _, c := range SkillCategories {
		if _, err := ParseSkillCategory(string(c)); err != nil {
			t.Errorf("ParseSkillCategory(%q): %v", c, err)
		}
	}
	if _, err := ParseSkillCategory("creative"); err == nil {
		t.Error("categories are case sensitive")
	}
	if _, err := ParseWorkType("moving"); err != nil {
		t.Errorf("ParseWorkType(moving): %v", err)
	}
	if _, err := ParseWorkType("still"); err == nil {
		t.Error("expected error for unknown work type")
	}
}
