package sqlite

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ai-bridge/backend/pkg/logger"
)

func TestMain(m *testing.M) {
	if err := logger.Init("error", "console", "stdout"); err != nil {
		panic(err)
	}
	os.Exit(m.Run())
}

func newTestClient(t *testing.T) *Client {
	t.Helper()

	client, err := NewClient(filepath.Join(t.TempDir(), "catalog.db"))
	require.NoError(t, err)
	t.Cleanup(func() { client.Close() })

	require.NoError(t, client.InitSchema())
	return client
}

func TestSeedAndListVendors(t *testing.T) {
	ctx := context.Background()
	client := newTestClient(t)

	require.NoError(t, client.SeedVendors(ctx, SeedCatalog()))

	vendors, err := client.ListVendors(ctx)
	require.NoError(t, err)
	require.Len(t, vendors, len(SeedCatalog()))

	// Stable id order.
	for i := 1; i < len(vendors); i++ {
		assert.Less(t, vendors[i-1].ID, vendors[i].ID)
	}

	for _, v := range vendors {
		assert.NotEmpty(t, v.Name)
		assert.NotEmpty(t, v.Industries)
		assert.NotEmpty(t, v.Specialties)
		assert.LessOrEqual(t, v.PriceMin, v.PriceMax)
		assert.GreaterOrEqual(t, v.Rating, 0.0)
		assert.LessOrEqual(t, v.Rating, 5.0)
	}
}

func TestSeedIsIdempotent(t *testing.T) {
	ctx := context.Background()
	client := newTestClient(t)

	require.NoError(t, client.SeedVendors(ctx, SeedCatalog()))
	require.NoError(t, client.SeedVendors(ctx, SeedCatalog()))

	count, err := client.CountVendors(ctx)
	require.NoError(t, err)
	assert.Equal(t, len(SeedCatalog()), count)
}

func TestGetVendor(t *testing.T) {
	ctx := context.Background()
	client := newTestClient(t)
	require.NoError(t, client.SeedVendors(ctx, SeedCatalog()))

	want := SeedCatalog()[0]
	got, err := client.GetVendor(ctx, want.ID)
	require.NoError(t, err)
	assert.Equal(t, want.Name, got.Name)
	assert.Equal(t, want.Industries, got.Industries)
	assert.Equal(t, want.Specialties, got.Specialties)
	assert.Equal(t, want.PriceMin, got.PriceMin)

	_, err = client.GetVendor(ctx, "v-missing")
	assert.ErrorIs(t, err, ErrVendorNotFound)
}

func TestFingerprintStableUntilChange(t *testing.T) {
	ctx := context.Background()
	client := newTestClient(t)
	require.NoError(t, client.SeedVendors(ctx, SeedCatalog()))

	first, err := client.Fingerprint(ctx)
	require.NoError(t, err)
	second, err := client.Fingerprint(ctx)
	require.NoError(t, err)
	assert.Equal(t, first, second)

	empty := newTestClient(t)
	other, err := empty.Fingerprint(ctx)
	require.NoError(t, err)
	assert.NotEqual(t, first, other)
}

func TestSeedEmptyCatalog(t *testing.T) {
	ctx := context.Background()
	client := newTestClient(t)

	require.NoError(t, client.SeedVendors(ctx, nil))

	vendors, err := client.ListVendors(ctx)
	require.NoError(t, err)
	assert.Empty(t, vendors)
}
