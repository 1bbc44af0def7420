package artifact

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"already normalized", "abcd1234", "abcd1234"},
		{"uppercase", "ABCD1234", "abcd1234"},
		{"0x prefix", "0xabcd1234", "abcd1234"},
		{"0X prefix uppercased", "0XABCD1234", "abcd1234"},
		{"empty", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Normalize(tt.in))
		})
	}
}

func TestResolveNormalizationIdempotence(t *testing.T) {
	r := NewRegistry("/data/models", ".pt")

	variants := []string{"abcd12", "ABCD12", "0xabcd12", "0xABCD12", "0XabCD12"}
	want := r.Resolve("abcd12")
	for _, v := range variants {
		assert.Equal(t, want, r.Resolve(v), "variant %q", v)
		assert.Equal(t, r.Resolve(v), r.Resolve(Normalize(v)), "variant %q", v)
	}
}

func TestResolveLayout(t *testing.T) {
	r := NewRegistry("/data/models", ".pt")
	assert.Equal(t, filepath.Join("/data/models", "abcd12.pt"), r.Resolve("0xABCD12"))

	// Missing dot on the extension is tolerated.
	r2 := NewRegistry("/data/models", "bin")
	assert.Equal(t, filepath.Join("/data/models", "abcd12.bin"), r2.Resolve("abcd12"))

	// Empty extension falls back to the default.
	r3 := NewRegistry("/data/models", "")
	assert.Equal(t, filepath.Join("/data/models", "abcd12.pt"), r3.Resolve("abcd12"))
}

func TestLoad(t *testing.T) {
	root := t.TempDir()
	r := NewRegistry(root, ".pt")

	t.Run("missing file fails", func(t *testing.T) {
		err := r.Load(r.Resolve("deadbeef"))
		require.Error(t, err)
	})

	t.Run("empty file fails", func(t *testing.T) {
		path := r.Resolve("0e0e0e")
		require.NoError(t, os.WriteFile(path, nil, 0o644))
		require.Error(t, r.Load(path))
	})

	t.Run("directory fails", func(t *testing.T) {
		path := r.Resolve("d1d1d1")
		require.NoError(t, os.Mkdir(path, 0o755))
		require.Error(t, r.Load(path))
	})

	t.Run("regular file loads", func(t *testing.T) {
		path := r.Resolve("abcd12")
		require.NoError(t, os.WriteFile(path, []byte("dummy model weights"), 0o644))
		require.NoError(t, r.Load(path))
	})
}
