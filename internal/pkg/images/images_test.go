package images

import (
	"encoding/base64"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSaveDataURI(t *testing.T) {
	dir := t.TempDir()
	store := NewStore(dir, "/static/recipes")

	payload := "data:image/png;base64," + base64.StdEncoding.EncodeToString([]byte("fake png bytes"))
	url, err := store.SaveDataURI(payload)
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(url, "/static/recipes/"))
	assert.True(t, strings.HasSuffix(url, ".png"))

	name := strings.TrimPrefix(url, "/static/recipes/")
	data, err := os.ReadFile(filepath.Join(dir, name))
	require.NoError(t, err)
	assert.Equal(t, []byte("fake png bytes"), data)
}

func TestSaveDataURI_JpgNormalizedToJpeg(t *testing.T) {
	store := NewStore(t.TempDir(), "/static/recipes")

	url, err := store.SaveDataURI("data:image/jpg;base64," + base64.StdEncoding.EncodeToString([]byte("x")))
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(url, ".jpeg"))
}

func TestSaveDataURI_Rejects(t *testing.T) {
	store := NewStore(t.TempDir(), "/static/recipes")

	cases := []struct {
		name    string
		payload string
		want    error
	}{
		{"not a data uri", "http://example.com/x.png", ErrInvalidPayload},
		{"missing base64 marker", "data:image/png,abc", ErrInvalidPayload},
		{"empty data", "data:image/png;base64,", ErrInvalidPayload},
		{"bad base64", "data:image/png;base64,!!!!", ErrInvalidPayload},
		{"svg not allowed", "data:image/svg+xml;base64,aGk=", ErrInvalidFormat},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := store.SaveDataURI(tc.payload)
			assert.ErrorIs(t, err, tc.want)
		})
	}
}
