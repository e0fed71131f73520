package recent

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"testing"

	"github.com/leapstack-labs/leapedit/internal/blob"
	"github.com/leapstack-labs/leapedit/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type maxRecents int

func (m maxRecents) MaxRecents() int { return int(m) }

func newRegistry(t *testing.T) (*Registry, *blob.Store) {
	t.Helper()
	store := blob.NewStore(t.TempDir(), nil)
	r, err := Read(store, testutil.NewTestLogger(t))
	require.NoError(t, err)
	return r, store
}

func TestRead_FirstRunIsEmpty(t *testing.T) {
	r, store := newRegistry(t)

	assert.Equal(t, 0, r.Len())
	assert.Equal(t, filepath.Join(store.Root(), DirName, blob.ArtifactFile), r.ArtifactPath())
}

func TestAdd(t *testing.T) {
	tests := []struct {
		name  string
		limit int
		adds  []string
		want  []string
	}{
		{
			name:  "appends in order",
			limit: 10,
			adds:  []string{"/a", "/b", "/c"},
			want:  []string{"/a", "/b", "/c"},
		},
		{
			name:  "duplicate moves to end",
			limit: 10,
			adds:  []string{"/a", "/b", "/a"},
			want:  []string{"/b", "/a"},
		},
		{
			name:  "same path twice",
			limit: 10,
			adds:  []string{"/a", "/a"},
			want:  []string{"/a"},
		},
		{
			name:  "eviction order",
			limit: 2,
			adds:  []string{"A", "B", "C"},
			want:  []string{"B", "C"},
		},
		{
			name:  "zero limit empties",
			limit: 0,
			adds:  []string{"/a", "/b"},
			want:  nil,
		},
		{
			name:  "negative limit treated as zero",
			limit: -3,
			adds:  []string{"/a"},
			want:  nil,
		},
		{
			name:  "normalized paths dedupe",
			limit: 10,
			adds:  []string{"/src/./main.go", "/src/lib/../main.go"},
			want:  []string{"/src/main.go"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, _ := newRegistry(t)
			for _, p := range tt.adds {
				r.Add(maxRecents(tt.limit), p)
			}
			assert.Equal(t, tt.want, r.Paths())
		})
	}
}

func TestAdd_BoundHoldsForLongSequences(t *testing.T) {
	r, _ := newRegistry(t)
	const limit = 5

	var added []string
	for i := range 40 {
		p := fmt.Sprintf("/file%d", i%8)
		r.Add(maxRecents(limit), p)
		added = slices.DeleteFunc(added, func(s string) bool { return s == p })
		added = append(added, p)

		require.LessOrEqual(t, r.Len(), limit)
	}

	assert.Equal(t, added[len(added)-limit:], r.Paths())
}

func TestWriteRead_RoundTrip(t *testing.T) {
	r, store := newRegistry(t)
	r.Add(maxRecents(3), "/one.txt")
	r.Add(maxRecents(3), "/two.txt")
	r.Write()

	again, err := Read(store, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"/one.txt", "/two.txt"}, again.Paths())
}

func TestWriteRead_EmptiedListStaysEmpty(t *testing.T) {
	r, store := newRegistry(t)
	r.Add(maxRecents(3), "/one.txt")
	r.Write()

	r.Add(maxRecents(0), "/two.txt")
	require.Nil(t, r.Paths())
	r.Write()

	again, err := Read(store, nil)
	require.NoError(t, err)
	assert.Equal(t, 0, again.Len())
	assert.Nil(t, again.Paths())
	assert.Empty(t, slices.Collect(again.Newest()))
}

func TestRead_CorruptArtifactIsEmpty(t *testing.T) {
	store := blob.NewStore(t.TempDir(), nil)
	path, err := store.Path(DirName)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, []byte("not a recents list"), 0o600))

	rec := testutil.NewRecorder()
	r, err := Read(store, rec.Logger())
	require.NoError(t, err)

	assert.Equal(t, 0, r.Len())
	assert.Equal(t, 1, rec.Count(slog.LevelWarn, "corrupt"))
}

func TestRead_StorageUnavailable(t *testing.T) {
	blocker := filepath.Join(t.TempDir(), "file")
	require.NoError(t, os.WriteFile(blocker, nil, 0o600))

	_, err := Read(blob.NewStore(blocker, nil), nil)
	assert.ErrorIs(t, err, blob.ErrStorageUnavailable)
}

func TestIterators(t *testing.T) {
	r, _ := newRegistry(t)
	for _, p := range []string{"/a", "/b", "/c"} {
		r.Add(maxRecents(10), p)
	}

	assert.Equal(t, []string{"/a", "/b", "/c"}, slices.Collect(r.All()))
	assert.Equal(t, []string{"/c", "/b", "/a"}, slices.Collect(r.Newest()))

	var first string
	for p := range r.Newest() {
		first = p
		break
	}
	assert.Equal(t, "/c", first)
}

func TestClear(t *testing.T) {
	r, store := newRegistry(t)
	r.Add(maxRecents(10), "/a")
	r.Write()

	r.Clear()
	r.Write()

	again, err := Read(store, nil)
	require.NoError(t, err)
	assert.Equal(t, 0, again.Len())
}

func TestDisplayName(t *testing.T) {
	tests := []struct {
		path string
		want string
	}{
		{path: "/home/user/notes.md", want: "notes.md"},
		{path: "relative/dir/main.go", want: "main.go"},
		{path: "", want: "Unnamed"},
		{path: "/", want: "Unnamed"},
		{path: "/tmp/\xff\xfe", want: "Invalid Name"},
	}

	for _, tt := range tests {
		t.Run(tt.want+"_"+tt.path, func(t *testing.T) {
			assert.Equal(t, tt.want, DisplayName(tt.path, nil))
		})
	}
}
