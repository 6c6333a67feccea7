package migration

import (
	"os"
	"path/filepath"
	"testing"
	"testing/fstest"

	"github.com/muhammedarifp/catering-app-temp-sub000/migrations"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSanitizeName(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"add dish tags", "add_dish_tags"},
		{"Add-Dish-Tags", "add_dish_tags"},
		{"ADD_DISH_TAGS", "add_dish_tags"},
		{"add__dish__tags", "add_dish_tags"},
		{"Add Plates 2026", "add_plates_2026"},
		{"   spaces   ", "spaces"},
		{"special!@#$chars", "specialchars"},
		{"trailing_", "trailing"},
		{"_leading", "leading"},
		{"", ""},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, sanitizeName(tt.input))
		})
	}
}

func TestCreateMigration(t *testing.T) {
	dir := t.TempDir()

	first, err := CreateMigration(dir, "add dish tags", "Tags for menu filtering")
	require.NoError(t, err)
	assert.Equal(t, "000001", first.Version)
	assert.Equal(t, filepath.Join(dir, "000001_add_dish_tags.up.sql"), first.UpPath)
	assert.Equal(t, filepath.Join(dir, "000001_add_dish_tags.down.sql"), first.DownPath)

	up, err := os.ReadFile(first.UpPath)
	require.NoError(t, err)
	assert.Contains(t, string(up), "add dish tags")
	assert.Contains(t, string(up), "Tags for menu filtering")

	down, err := os.ReadFile(first.DownPath)
	require.NoError(t, err)
	assert.Contains(t, string(down), "rollback")

	second, err := CreateMigration(dir, "supplier table", "")
	require.NoError(t, err)
	assert.Equal(t, "000002", second.Version)
}

func TestCreateMigration_ContinuesAfterShippedVersions(t *testing.T) {
	tests := []struct {
		name     string
		existing []string
		want     string
	}{
		{name: "single shipped", existing: []string{"000007_seasonal.up.sql"}, want: "000008"},
		{name: "gap uses highest", existing: []string{"000001_init.up.sql", "000001_init.down.sql", "000004_expenses.up.sql"}, want: "000005"},
		{name: "past padding width", existing: []string{"999999_last.up.sql"}, want: "1000000"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			for _, f := range tt.existing {
				require.NoError(t, os.WriteFile(filepath.Join(dir, f), nil, 0o644))
			}

			mf, err := CreateMigration(dir, "next", "")
			require.NoError(t, err)
			assert.Equal(t, tt.want, mf.Version)
			assert.FileExists(t, mf.UpPath)
		})
	}
}

func TestCreateMigration_CreatesDirectory(t *testing.T) {
	nested := filepath.Join(t.TempDir(), "nested", "migrations")

	_, err := CreateMigration(nested, "init", "")
	require.NoError(t, err)

	info, err := os.Stat(nested)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestCreateMigration_RejectsEmptyName(t *testing.T) {
	_, err := CreateMigration(t.TempDir(), "!!!", "")
	assert.Error(t, err)
}

func TestListMigrations(t *testing.T) {
	fsys := fstest.MapFS{
		"000002_create_menu.up.sql":        {},
		"000002_create_menu.down.sql":      {},
		"000001_create_inventory.up.sql":   {},
		"000001_create_inventory.down.sql": {},
		"000003_no_rollback.up.sql":        {},
		"README.md":                        {},
		"notaversion_x.up.sql":             {},
		"subdir.up.sql/keep":               {},
	}

	got, err := ListMigrations(fsys)
	require.NoError(t, err)
	assert.Equal(t, []Entry{
		{Version: 1, Name: "create_inventory", HasDown: true},
		{Version: 2, Name: "create_menu", HasDown: true},
		{Version: 3, Name: "no_rollback"},
	}, got)
}

func TestListMigrations_MissingDirectory(t *testing.T) {
	got, err := ListMigrations(os.DirFS(filepath.Join(t.TempDir(), "absent")))
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestListMigrations_EmbeddedSchema(t *testing.T) {
	got, err := ListMigrations(migrations.FS)
	require.NoError(t, err)
	require.Len(t, got, 3)
	for i, e := range got {
		assert.Equal(t, uint(i+1), e.Version)
		assert.True(t, e.HasDown, e.Name)
	}
}
