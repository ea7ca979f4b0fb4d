package repo

import (
	"context"
	"database/sql"
	"errors"
	"path/filepath"
	"slices"
	"testing"

	"github.com/abdusco/shelf/internal"
	"github.com/abdusco/shelf/internal/db"
)

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	instance, err := db.Open(context.Background(), filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("failed to open database: %v", err)
	}
	t.Cleanup(func() { instance.Close() })
	return instance
}

func TestLinksRepo_CreateAndList(t *testing.T) {
	ctx := context.Background()
	links := NewLinksRepo(openTestDB(t))

	id, err := links.Create(ctx, internal.NewLink{
		URL:     "https://go.dev",
		Title:   "Go",
		Tags:    []string{"lang", "docs"},
		Favicon: "https://go.dev/favicon.ico",
	})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if id == "" {
		t.Fatal("Create() returned empty id")
	}

	got, err := links.ListAll(ctx)
	if err != nil {
		t.Fatalf("ListAll() error = %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("expected 1 link, got %d", len(got))
	}

	link := got[0]
	if link.ID != id {
		t.Errorf("ID = %q, want %q", link.ID, id)
	}
	if link.URL != "https://go.dev" || link.Title != "Go" {
		t.Errorf("unexpected link %+v", link)
	}
	if !slices.Equal(link.Tags, []string{"lang", "docs"}) {
		t.Errorf("Tags = %v, want [lang docs]", link.Tags)
	}
	if link.Favicon != "https://go.dev/favicon.ico" {
		t.Errorf("Favicon = %q", link.Favicon)
	}
	if link.CreatedAt.IsZero() {
		t.Error("CreatedAt is zero")
	}
}

func TestLinksRepo_EmptyTagsAndFavicon(t *testing.T) {
	ctx := context.Background()
	links := NewLinksRepo(openTestDB(t))

	if _, err := links.Create(ctx, internal.NewLink{URL: "https://example.com", Title: "Example"}); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	got, err := links.ListAll(ctx)
	if err != nil {
		t.Fatalf("ListAll() error = %v", err)
	}
	if got[0].Tags == nil || len(got[0].Tags) != 0 {
		t.Errorf("Tags = %#v, want empty non-nil slice", got[0].Tags)
	}
	if got[0].Favicon != "" {
		t.Errorf("Favicon = %q, want empty", got[0].Favicon)
	}
}

func TestLinksRepo_ListOrderAndIdentity(t *testing.T) {
	ctx := context.Background()
	links := NewLinksRepo(openTestDB(t))

	var ids []string
	for _, title := range []string{"a", "b", "c"} {
		id, err := links.Create(ctx, internal.NewLink{URL: "https://" + title + ".test", Title: title, Tags: []string{}})
		if err != nil {
			t.Fatalf("Create(%q) error = %v", title, err)
		}
		ids = append(ids, id)
	}

	got, err := links.ListAll(ctx)
	if err != nil {
		t.Fatalf("ListAll() error = %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("expected 3 links, got %d", len(got))
	}
	for i, link := range got {
		if link.ID != ids[i] {
			t.Errorf("link %d ID = %q, want %q", i, link.ID, ids[i])
		}
	}
	if ids[0] == ids[1] || ids[1] == ids[2] {
		t.Errorf("ids are not unique: %v", ids)
	}
}

func TestLinksRepo_ListEmpty(t *testing.T) {
	got, err := NewLinksRepo(openTestDB(t)).ListAll(context.Background())
	if err != nil {
		t.Fatalf("ListAll() error = %v", err)
	}
	if got == nil || len(got) != 0 {
		t.Errorf("ListAll() = %#v, want empty slice", got)
	}
}

func TestModelsRepo_CreateAndList(t *testing.T) {
	ctx := context.Background()
	models := NewModelsRepo(openTestDB(t))

	empty, err := models.ListAll(ctx)
	if err != nil {
		t.Fatalf("ListAll() error = %v", err)
	}
	if empty == nil || len(empty) != 0 {
		t.Fatalf("ListAll() on empty store = %#v", empty)
	}

	id, err := models.Create(ctx, internal.NewModel{Name: "llama", URL: "http://localhost:11434"})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	got, err := models.ListAll(ctx)
	if err != nil {
		t.Fatalf("ListAll() error = %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("expected 1 model, got %d", len(got))
	}
	if got[0].ID != id || got[0].Name != "llama" || got[0].URL != "http://localhost:11434" {
		t.Errorf("unexpected model %+v", got[0])
	}
}

func TestRepo_StorageErrorPropagates(t *testing.T) {
	instance := openTestDB(t)
	instance.Close()

	_, err := NewModelsRepo(instance).Create(context.Background(), internal.NewModel{Name: "n", URL: "u"})
	if err == nil {
		t.Fatal("expected error on closed database")
	}
	if errors.Is(err, internal.ErrValidation) {
		t.Errorf("storage error classified as validation error: %v", err)
	}
}

func TestTagsScan(t *testing.T) {
	tests := []struct {
		name    string
		value   any
		want    []string
		wantErr bool
	}{
		{name: "string", value: `["a","b"]`, want: []string{"a", "b"}},
		{name: "bytes", value: []byte(`["x"]`), want: []string{"x"}},
		{name: "null column", value: nil, want: []string{}},
		{name: "json null", value: "null", want: []string{}},
		{name: "bad json", value: "[1,", wantErr: true},
		{name: "wrong type", value: int64(3), wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var tags Tags
			err := tags.Scan(tt.value)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Scan() error = %v, wantErr %v", err, tt.wantErr)
			}
			if !tt.wantErr && !slices.Equal([]string(tags), tt.want) {
				t.Errorf("Scan() = %v, want %v", tags, tt.want)
			}
		})
	}
}
