package salesforce

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePackageList_ManagedOnly(t *testing.T) {
	doc := []byte(`{
		"status": 0,
		"result": [
			{"Name": "base", "ContainerOptions": "Managed"},
			{"Name": "tools", "ContainerOptions": "Unlocked"},
			{"Name": "jam", "ContainerOptions": "Managed"}
		]
	}`)

	managed, err := ParsePackageList(doc)
	require.NoError(t, err)
	assert.Equal(t, []string{"base", "jam"}, managed)
}

func TestParsePackageList_RecordsObjectShape(t *testing.T) {
	doc := []byte(`{
		"status": 0,
		"result": {"records": [{"Name": "base", "ContainerOptions": "Managed"}]}
	}`)

	managed, err := ParsePackageList(doc)
	require.NoError(t, err)
	assert.Equal(t, []string{"base"}, managed)
}

func TestParsePackageList_NonSuccessStatus(t *testing.T) {
	doc := []byte(`{"status": 1, "message": "no default dev hub", "result": []}`)

	_, err := ParsePackageList(doc)
	require.Error(t, err)

	var envErr *EnvelopeError
	require.True(t, errors.As(err, &envErr))
	assert.Equal(t, 1, envErr.Status)
	assert.Contains(t, envErr.Error(), "no default dev hub")
}

func TestParsePackageList_MalformedJSON(t *testing.T) {
	_, err := ParsePackageList([]byte(`{"status": 0, "result"`))

	var envErr *EnvelopeError
	require.True(t, errors.As(err, &envErr))
}

func TestParseVersionList(t *testing.T) {
	doc := []byte(`{
		"status": 0,
		"result": [
			{
				"Package2Name": "base",
				"Id": "05i000000000001AAA",
				"SubscriberPackageVersionId": "04t000000000001AAA",
				"AncestorId": "N/A",
				"MajorVersion": 1,
				"MinorVersion": 2,
				"PatchVersion": 0,
				"BuildNumber": 3,
				"Name": "Spring release",
				"IsReleased": true
			},
			{
				"Package2Name": "base",
				"Id": "05i000000000002AAA",
				"SubscriberPackageVersionId": "04t000000000002AAA",
				"AncestorId": "04t000000000001AAA",
				"MajorVersion": 1,
				"MinorVersion": 3,
				"PatchVersion": 0,
				"BuildNumber": 1,
				"Name": "Summer release",
				"IsReleased": false
			}
		]
	}`)

	records, err := ParseVersionList(doc)
	require.NoError(t, err)
	require.Len(t, records, 2)

	first := records[0]
	assert.Equal(t, "base", first.Family)
	assert.Equal(t, "04t000000000001AAA", first.SubscriberID)
	assert.Equal(t, "N/A", first.AncestorID)
	assert.True(t, first.IsRoot())
	assert.Equal(t, "1.2.0.3", first.Version.String())
	assert.True(t, first.Released)

	second := records[1]
	assert.Equal(t, "04t000000000001AAA", second.AncestorID)
	assert.False(t, second.IsRoot())
	assert.False(t, second.Released)
}

func TestParseVersionList_NullAncestor(t *testing.T) {
	doc := []byte(`{
		"status": 0,
		"result": [
			{
				"Package2Name": "base",
				"Id": "05i000000000001AAA",
				"SubscriberPackageVersionId": "04t000000000001AAA",
				"AncestorId": null,
				"MajorVersion": 1, "MinorVersion": 0, "PatchVersion": 0, "BuildNumber": 1,
				"Name": "v1", "IsReleased": true
			}
		]
	}`)

	records, err := ParseVersionList(doc)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.True(t, records[0].IsRoot())
}

func TestParseVersionList_EmptyResult(t *testing.T) {
	records, err := ParseVersionList([]byte(`{"status": 0, "result": []}`))
	require.NoError(t, err)
	assert.Empty(t, records)
}
