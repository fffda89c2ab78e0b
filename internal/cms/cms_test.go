package cms

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"reflect"
	"strconv"
	"testing"
	"time"

	"portfolioCMS/internal/content"
	"portfolioCMS/internal/storage"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// countingBackend 记录读写次数，用于校验每次修改的读写次数。
type countingBackend struct {
	*storage.Memory
	gets int
	sets int
}

func (b *countingBackend) Get(ctx context.Context, key string) ([]byte, error) {
	b.gets++
	return b.Memory.Get(ctx, key)
}

func (b *countingBackend) Set(ctx context.Context, key string, value []byte) error {
	b.sets++
	return b.Memory.Set(ctx, key, value)
}

type failingBackend struct{}

func (failingBackend) Get(context.Context, string) ([]byte, error) {
	return nil, errors.New("connection refused")
}

func (failingBackend) Set(context.Context, string, []byte) error {
	return errors.New("connection refused")
}

func newTestStore(t *testing.T, backend storage.Backend, opts ...Option) *Store {
	t.Helper()
	adapter := NewAdapter(backend, content.StorageKey, discardLogger())
	opts = append([]Option{WithLogger(discardLogger())}, opts...)
	return NewStore(adapter, opts...)
}

func rawDocument(t *testing.T, backend storage.Backend) content.Document {
	t.Helper()
	raw, err := backend.Get(context.Background(), content.StorageKey)
	if err != nil {
		t.Fatalf("raw read: %v", err)
	}
	var doc content.Document
	if err := json.Unmarshal(raw, &doc); err != nil {
		t.Fatalf("decode raw: %v", err)
	}
	return doc
}

func TestLoad_WritesDefaultOnFirstRead(t *testing.T) {
	ctx := context.Background()
	backend := storage.NewMemory()
	adapter := NewAdapter(backend, "", discardLogger())

	doc := adapter.Load(ctx)
	if !reflect.DeepEqual(doc, content.Default()) {
		t.Fatalf("first load should equal the default document")
	}
	if got := rawDocument(t, backend); !reflect.DeepEqual(got, content.Default()) {
		t.Fatalf("raw storage should hold the default document after first read")
	}
}

func TestLoad_CorruptValueIsNotOverwritten(t *testing.T) {
	ctx := context.Background()
	backend := storage.NewMemory()
	corrupt := []byte("{not json")
	if err := backend.Set(ctx, content.StorageKey, corrupt); err != nil {
		t.Fatalf("seed corrupt value: %v", err)
	}
	adapter := NewAdapter(backend, content.StorageKey, discardLogger())

	if doc := adapter.Load(ctx); !reflect.DeepEqual(doc, content.Default()) {
		t.Fatalf("corrupt value should load as defaults")
	}
	raw, err := adapter.Raw(ctx)
	if err != nil {
		t.Fatalf("raw: %v", err)
	}
	if string(raw) != string(corrupt) {
		t.Fatalf("corrupt value overwritten: %q", raw)
	}
}

func TestLoad_UnavailableStorageServesDefaults(t *testing.T) {
	ctx := context.Background()
	for name, backend := range map[string]storage.Backend{
		"nil":  nil,
		"noop": storage.Noop{},
	} {
		t.Run(name, func(t *testing.T) {
			adapter := NewAdapter(backend, content.StorageKey, discardLogger())
			if adapter.Available() {
				t.Fatal("adapter should report storage unavailable")
			}
			adapter.Save(ctx, content.Document{})
			if doc := adapter.Load(ctx); !reflect.DeepEqual(doc, content.Default()) {
				t.Fatal("unavailable storage should serve defaults")
			}
			if _, err := adapter.Raw(ctx); !errors.Is(err, storage.ErrNotFound) {
				t.Fatalf("raw err = %v, want ErrNotFound", err)
			}
		})
	}
}

func TestLoad_BackendErrorsAreSwallowed(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t, failingBackend{})

	created := store.AddProject(ctx, content.NewProject{Name: "X"})
	if created.ID == "" {
		t.Fatal("add should still return an entity when persistence fails")
	}
	if doc := store.Document(ctx); len(doc.Projects) != len(content.Default().Projects) {
		t.Fatalf("failed save should not be visible, got %d projects", len(doc.Projects))
	}
}

func TestSaveLoad_RoundTrip(t *testing.T) {
	ctx := context.Background()
	backend := storage.NewMemory()
	store := newTestStore(t, backend)
	store.AddMyWork(ctx, content.NewMyWork{Title: "Reel", Type: content.WorkMoving, ImageURL: "https://cdn/x.mp4"})

	adapter := store.Adapter()
	first := adapter.Load(ctx)
	adapter.Save(ctx, first)
	second := adapter.Load(ctx)
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("save(load()) changed the document\nfirst:  %+v\nsecond: %+v", first, second)
	}
}

func TestLoad_LegacyDocumentSeedsMissingSections(t *testing.T) {
	ctx := context.Background()
	backend := storage.NewMemory()
	legacy := `{"projects":[{"id":"9","name":"Only"}],"skills":[],"about":{"bio":"X","location":"Dubai"}}`
	if err := backend.Set(ctx, content.StorageKey, []byte(legacy)); err != nil {
		t.Fatalf("seed: %v", err)
	}
	doc := NewAdapter(backend, content.StorageKey, discardLogger()).Load(ctx)

	if len(doc.Projects) != 1 || doc.Projects[0].ID != "9" {
		t.Fatalf("present projects must be kept, got %+v", doc.Projects)
	}
	if len(doc.Skills) != 0 {
		t.Fatalf("present empty skills must stay empty, got %d", len(doc.Skills))
	}
	if doc.About.Bio != "X" || doc.About.YearsExperience != "" {
		t.Fatalf("present about must not be merged with defaults, got %+v", doc.About)
	}
	if doc.Hero == nil || doc.Contact == nil || doc.MyWorks == nil {
		t.Fatal("absent sections must be seeded")
	}
	if string(mustRaw(t, backend)) != legacy {
		t.Fatal("load must not rewrite a legacy document")
	}
}

func mustRaw(t *testing.T, backend storage.Backend) []byte {
	t.Helper()
	raw, err := backend.Get(context.Background(), content.StorageKey)
	if err != nil {
		t.Fatalf("raw: %v", err)
	}
	return raw
}

func TestAddProject_AppendsWithIDAndTimestamp(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 3, 4, 5, 6, 7, 0, time.UTC)
	backend := storage.NewMemory()
	store := newTestStore(t, backend, WithClock(func() time.Time { return now }))

	created := store.AddProject(ctx, content.NewProject{
		Name:        "ACME",
		Category:    "Launch",
		Description: "x",
		Color:       "#FFFFFF",
		BgGradient:  "g1",
	})
	if created.ID == "" {
		t.Fatal("id must be set")
	}
	if !created.CreatedAt.Equal(now) {
		t.Fatalf("createdAt = %v, want %v", created.CreatedAt, now)
	}

	projects := rawDocument(t, backend).Projects
	last := projects[len(projects)-1]
	if !reflect.DeepEqual(last, created) {
		t.Fatalf("last project = %+v, want %+v", last, created)
	}
	if len(projects) != len(content.Default().Projects)+1 {
		t.Fatalf("projects = %d", len(projects))
	}
}

func TestAdd_IDsAreUniqueEvenWhenGeneratorRepeats(t *testing.T) {
	ctx := context.Background()
	ids := []string{"1", "2", "1", "7", "7", "8", "9"}
	next := 0
	gen := func() string {
		id := ids[next%len(ids)]
		next++
		return id
	}
	store := newTestStore(t, storage.NewMemory(), WithIDGenerator(gen))

	for i := 0; i < 3; i++ {
		before := store.Document(ctx).Skills
		created := store.AddSkill(ctx, content.NewSkill{Name: "s" + strconv.Itoa(i), Category: content.CategoryCreative})
		for _, s := range before {
			if s.ID == created.ID {
				t.Fatalf("id %q already present before add", created.ID)
			}
		}
	}
}

func TestUpdate_EmptyPatchIsIdentity(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t, storage.NewMemory())
	before := store.Document(ctx)

	for _, p := range before.Projects {
		got, ok := store.UpdateProject(ctx, p.ID, content.ProjectPatch{})
		if !ok || !reflect.DeepEqual(got, p) {
			t.Fatalf("project %s changed by empty patch", p.ID)
		}
	}
	for _, s := range before.Skills {
		got, ok := store.UpdateSkill(ctx, s.ID, content.SkillPatch{})
		if !ok || !reflect.DeepEqual(got, s) {
			t.Fatalf("skill %s changed by empty patch", s.ID)
		}
	}
	store.UpdateHero(ctx, content.HeroPatch{})
	store.UpdateContact(ctx, content.ContactPatch{})
	store.UpdateAbout(ctx, content.AboutPatch{})

	if after := store.Document(ctx); !reflect.DeepEqual(before, after) {
		t.Fatal("empty patches changed the document")
	}
}

func TestUpdate_MergesOnlyGivenFields(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t, storage.NewMemory())

	got, ok := store.UpdateProject(ctx, "3", content.ProjectPatch{Color: content.String("#000000")})
	if !ok {
		t.Fatal("project 3 should exist")
	}
	if got.Color != "#000000" || got.Name != "KOKOPAI" {
		t.Fatalf("unexpected merge result %+v", got)
	}

	store.UpdateAbout(ctx, content.AboutPatch{Bio: content.String("X"), Location: content.String("Dubai")})
	store.UpdateAbout(ctx, content.AboutPatch{Location: content.String("Singapore")})
	about := store.Document(ctx).About
	want := *content.Default().About
	want.Bio, want.Location = "X", "Singapore"
	if *about != want {
		t.Fatalf("about = %+v, want %+v", *about, want)
	}
}

func TestDelete_PreservesOrderAndIsNotResurrectable(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t, storage.NewMemory())

	if !store.DeleteProject(ctx, "2") {
		t.Fatal("delete 2 should report found")
	}
	projects := store.Document(ctx).Projects
	var ids []string
	for _, p := range projects {
		ids = append(ids, p.ID)
	}
	if !reflect.DeepEqual(ids, []string{"1", "3", "4"}) {
		t.Fatalf("ids after delete = %v", ids)
	}

	if _, ok := store.UpdateProject(ctx, "2", content.ProjectPatch{Name: content.String("back")}); ok {
		t.Fatal("deleted project must not be updatable")
	}
	if store.DeleteProject(ctx, "2") {
		t.Fatal("second delete should report not found")
	}
}

func TestMutation_NotFoundPerformsNoWrite(t *testing.T) {
	ctx := context.Background()
	backend := &countingBackend{Memory: storage.NewMemory()}
	store := newTestStore(t, backend)
	store.Document(ctx) // write-on-first-read

	backend.gets, backend.sets = 0, 0
	store.DeleteMyWork(ctx, "missing")
	if backend.gets != 1 || backend.sets != 0 {
		t.Fatalf("not-found delete: gets=%d sets=%d", backend.gets, backend.sets)
	}

	backend.gets, backend.sets = 0, 0
	store.UpdateHero(ctx, content.HeroPatch{Title: content.String("NEW")})
	if backend.gets != 1 || backend.sets != 1 {
		t.Fatalf("update: gets=%d sets=%d", backend.gets, backend.sets)
	}
}

func TestMyWorkLifecycle(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t, storage.NewMemory())

	w := store.AddMyWork(ctx, content.NewMyWork{Title: "Frame", Type: content.WorkFraming, ImageURL: "https://cdn/a.png"})
	moving := content.WorkMoving
	got, ok := store.UpdateMyWork(ctx, w.ID, content.MyWorkPatch{Type: &moving})
	if !ok || got.Type != content.WorkMoving || got.Title != "Frame" {
		t.Fatalf("update my work = %+v, %v", got, ok)
	}
	if !store.DeleteMyWork(ctx, w.ID) {
		t.Fatal("delete should succeed")
	}
	if len(store.Document(ctx).MyWorks) != 0 {
		t.Fatal("my works should be empty again")
	}
}

func TestReset_RestoresDefaults(t *testing.T) {
	ctx := context.Background()
	backend := storage.NewMemory()
	store := newTestStore(t, backend)
	store.DeleteSkill(ctx, "1")
	store.UpdateContact(ctx, content.ContactPatch{Email: content.String("a@b.c")})

	store.Reset(ctx)
	if got := rawDocument(t, backend); !reflect.DeepEqual(got, content.Default()) {
		t.Fatal("reset should persist the default document")
	}
}

func TestWrite_ReportsFailures(t *testing.T) {
	ctx := context.Background()
	if err := NewAdapter(failingBackend{}, "", discardLogger()).Write(ctx, content.Default()); err == nil {
		t.Fatal("backend failure should be returned")
	}
	if err := NewAdapter(storage.Noop{}, "", discardLogger()).Write(ctx, content.Default()); !errors.Is(err, ErrStorageUnavailable) {
		t.Fatalf("unavailable storage err = %v", err)
	}

	backend := storage.NewMemory()
	doc := content.Default()
	doc.Projects = doc.Projects[:1]
	if err := NewAdapter(backend, "", discardLogger()).Write(ctx, doc); err != nil {
		t.Fatalf("write: %v", err)
	}
	if got := rawDocument(t, backend); len(got.Projects) != 1 {
		t.Fatalf("stored projects = %d", len(got.Projects))
	}
}
