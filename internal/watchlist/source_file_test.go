package watchlist

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileSourceLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "watchlist.json")
	payload := `[
		{"name": "Global Terror Front", "type": "organization",
		 "aliases": [" GTF ", "GTF", "", "Global T. Front"],
		 "programs": ["SDN"]},
		{"name": "Jane Doe", "type": "individual"}
	]`
	require.NoError(t, os.WriteFile(path, []byte(payload), 0o600))

	entries, err := NewFileSource(path).Load(context.Background())
	require.NoError(t, err)
	require.Len(t, entries, 2)

	assert.Equal(t, "Global Terror Front", entries[0].Name)
	assert.Equal(t, []string{"GTF", "Global T. Front"}, entries[0].Aliases)
	assert.Equal(t, []string{"SDN"}, entries[0].Programs)
}

func TestFileSourceMissingFile(t *testing.T) {
	_, err := NewFileSource(filepath.Join(t.TempDir(), "absent.json")).Load(context.Background())
	assert.Error(t, err)
}

func TestFileSourceMalformedPayload(t *testing.T) {
	path := filepath.Join(t.TempDir(), "watchlist.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o600))

	_, err := NewFileSource(path).Load(context.Background())
	assert.Error(t, err)
}
