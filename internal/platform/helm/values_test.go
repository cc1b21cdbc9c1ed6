package helm

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMerge_LaterMapsWin(t *testing.T) {
	merged := Merge(
		Values{"mode": "standalone", "replicas": 1},
		Values{"replicas": 3},
	)

	assert.Equal(t, "standalone", merged["mode"])
	assert.Equal(t, 3, merged["replicas"])
}

func TestFromYAML_Nested(t *testing.T) {
	parsed, err := FromYAML([]byte("auth:\n  username: hive\n  database: metastore\npersistence:\n  enabled: true\n"))
	require.NoError(t, err)

	auth, ok := parsed["auth"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "hive", auth["username"])
	assert.Equal(t, "metastore", auth["database"])
}

func TestFromYAML_Invalid(t *testing.T) {
	_, err := FromYAML([]byte("\t:::not yaml"))
	assert.Error(t, err)
}
