package confx

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestEnvName(t *testing.T) {
	t.Parallel()

	tests := []struct {
		key  string
		want string
	}{
		{"PlatformApiUrl", "PLATFORM_API_URL"},
		{"BaseAddressUrl", "BASE_ADDRESS_URL"},
		{"BaseURL", "BASE_URL"},
		{"HTTPTimeout", "HTTP_TIMEOUT"},
		{"redis.addr", "REDIS_ADDR"},
		{"Port8080", "PORT8080"},
	}
	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			t.Parallel()
			require.Equal(t, tt.want, EnvName(tt.key))
		})
	}
}

func TestEnv(t *testing.T) {
	t.Parallel()

	env := map[string]string{
		"PLATFORM_API_URL":     "https://api.example.test",
		"APP_BASE_ADDRESS_URL": "https://id.example.test/token",
	}
	lookup := func(k string) (string, bool) {
		v, ok := env[k]
		return v, ok
	}

	v, err := Env{Lookup: lookup}.Value("PlatformApiUrl")
	require.NoError(t, err)
	require.Equal(t, "https://api.example.test", v)

	v, err = Env{Prefix: "APP_", Lookup: lookup}.Value("BaseAddressUrl")
	require.NoError(t, err)
	require.Equal(t, "https://id.example.test/token", v)

	_, err = Env{Lookup: lookup}.Value("BaseAddressUrl")
	require.ErrorIs(t, err, ErrMissingKey)
}

func TestParseYAML(t *testing.T) {
	t.Parallel()

	m, err := ParseYAML([]byte(`
PlatformApiUrl: https://api.example.test
BaseAddressUrl: https://id.example.test/token
redis:
  addr: localhost:6379
  db: 2
`))
	require.NoError(t, err)
	require.Equal(t, "https://api.example.test", m["PlatformApiUrl"])
	require.Equal(t, "localhost:6379", m["redis.addr"])
	require.Equal(t, "2", m["redis.db"])

	_, err = ParseYAML([]byte("PlatformApiUrl: [unclosed"))
	require.Error(t, err)
}

func TestParseYAMLKeepsScalarText(t *testing.T) {
	t.Parallel()

	m, err := ParseYAML([]byte(`
Limit: 1e6
Big: 123456789012345678901234567890
Mask: 0x1F
Port: "08"
Single: 'it''s'
Empty:
hosts: [a.example.test, b.example.test]
`))
	require.NoError(t, err)
	require.Equal(t, Map{
		"Limit":   "1e6",
		"Big":     "123456789012345678901234567890",
		"Mask":    "0x1F",
		"Port":    "08",
		"Single":  "it's",
		"Empty":   "",
		"hosts.0": "a.example.test",
		"hosts.1": "b.example.test",
	}, m)

	_, err = ParseYAML([]byte("- just\n- a list\n"))
	require.Error(t, err)
}

func TestYAMLFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("PlatformApiUrl: https://api.example.test\n"), 0o600))

	m, err := YAMLFile(path)
	require.NoError(t, err)
	v, err := m.Value("PlatformApiUrl")
	require.NoError(t, err)
	require.Equal(t, "https://api.example.test", v)

	_, err = YAMLFile(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
}

func TestChain(t *testing.T) {
	t.Parallel()

	c := Chain{
		Map{"PlatformApiUrl": "from-first"},
		Map{"PlatformApiUrl": "from-second", "BaseAddressUrl": "only-second"},
	}

	v, err := c.Value("PlatformApiUrl")
	require.NoError(t, err)
	require.Equal(t, "from-first", v)

	v, err = c.Value("BaseAddressUrl")
	require.NoError(t, err)
	require.Equal(t, "only-second", v)

	_, err = c.Value("Nope")
	require.ErrorIs(t, err, ErrMissingKey)

}
