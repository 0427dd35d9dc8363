package testutil

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/udisondev/pkmbattle/internal/data"
)

// Fixtures описывает тестовый датасет в testdata.
var Fixtures = struct {
	Generation string

	// Количество строк в каждой таблице
	Creatures int
	Moves     int
	Natures   int

	// Две формы с одним id: по id находится первая
	SharedID        int
	SharedIDFirst   string
	SharedIDAltForm string
}{
	Generation:      "9",
	Creatures:       19,
	Moves:           34,
	Natures:         25,
	SharedID:        6,
	SharedIDFirst:   "Charizard",
	SharedIDAltForm: "Mega Charizard X",
}

// DataDir returns the absolute path of the fixture dataset.
func DataDir() string {
	_, file, _, _ := runtime.Caller(0)
	return filepath.Join(filepath.Dir(file), "testdata")
}

// StoreConfig returns a loader config pointing at dir.
func StoreConfig(dir string) data.Config {
	return data.Config{Dir: dir, Generation: Fixtures.Generation}
}

// LoadStore loads the fixture dataset or fails the test.
func LoadStore(tb testing.TB) *data.Store {
	tb.Helper()

	s, err := data.Load(context.Background(), StoreConfig(DataDir()))
	require.NoError(tb, err, "loading fixture dataset")
	return s
}

// CopyDataset copies the fixtures into a temp dir so a test can break one file.
func CopyDataset(tb testing.TB) string {
	tb.Helper()

	dst := tb.TempDir()
	src := DataDir()
	err := filepath.WalkDir(src, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(src, path)
		if err != nil {
			return err
		}
		target := filepath.Join(dst, rel)
		if d.IsDir() {
			return os.MkdirAll(target, 0o755)
		}
		b, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		return os.WriteFile(target, b, 0o644)
	})
	require.NoError(tb, err, "copying fixture dataset")
	return dst
}

// WriteFile replaces one file of a copied dataset.
func WriteFile(tb testing.TB, dir, rel, content string) {
	tb.Helper()

	path := filepath.Join(dir, rel)
	require.NoError(tb, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(tb, os.WriteFile(path, []byte(content), 0o644))
}
