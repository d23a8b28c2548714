package salesforce

import (
	"context"
	"errors"
	"testing"

	"github.com/forcelabs/pkglineage/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClient_FetchManagedPackages(t *testing.T) {
	var gotBin string
	var gotArgs []string

	c := NewClient("", "devhub", testutil.NewTestLogger(t))
	c.run = func(_ context.Context, bin string, args ...string) ([]byte, error) {
		gotBin = bin
		gotArgs = args
		return []byte(`{"status": 0, "result": [{"Name": "base", "ContainerOptions": "Managed"}]}`), nil
	}

	managed, err := c.FetchManagedPackages(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"base"}, managed)

	assert.Equal(t, DefaultBin, gotBin)
	assert.Equal(t, []string{"package", "list", "--target-dev-hub", "devhub", "--json"}, gotArgs)
}

func TestClient_FetchVersions(t *testing.T) {
	c := NewClient("sfdx", "devhub", testutil.NewTestLogger(t))

	var gotArgs []string
	c.run = func(_ context.Context, bin string, args ...string) ([]byte, error) {
		gotArgs = args
		assert.Equal(t, "sfdx", bin)
		return []byte(`{"status": 0, "result": []}`), nil
	}

	records, err := c.FetchVersions(context.Background())
	require.NoError(t, err)
	assert.Empty(t, records)
	assert.Equal(t, []string{"package", "version", "list", "--target-dev-hub", "devhub", "--json"}, gotArgs)
}

func TestClient_EnvelopeStatusSurfaces(t *testing.T) {
	c := NewClient("", "devhub", nil)
	c.run = func(_ context.Context, _ string, _ ...string) ([]byte, error) {
		return []byte(`{"status": 1, "message": "expired access token", "result": []}`), nil
	}

	_, err := c.FetchVersions(context.Background())

	var envErr *EnvelopeError
	require.True(t, errors.As(err, &envErr))
	assert.Equal(t, 1, envErr.Status)
}

func TestClient_RunFailure(t *testing.T) {
	c := NewClient("", "devhub", nil)
	c.run = func(_ context.Context, _ string, _ ...string) ([]byte, error) {
		return nil, errors.New("executable not found")
	}

	_, err := c.FetchManagedPackages(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "package list")
}
