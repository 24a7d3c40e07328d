// childcare-crm/config/redis_test.go
package config

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestUserCacheKey(t *testing.T) {
	// The auth middleware writes under this key and account changes evict
	// it; the format is shared so the two can never drift apart.
	require.Equal(t, "user:42:data", UserCacheKey(42))
	require.Equal(t, "user:1:data", UserCacheKey(1))
}
