package salesforce

import (
	"encoding/json"
	"fmt"

	"github.com/forcelabs/pkglineage/internal/release"
)

// ContainerOptions value marking a package as the managed (non-unlocked) kind.
const containerManaged = "Managed"

// EnvelopeError reports a source document that cannot be trusted: malformed
// JSON, a non-success status, or a missing result. Distinct from lineage
// diagnostics; the run cannot proceed on the affected document.
type EnvelopeError struct {
	Doc     string
	Status  int
	Message string
}

func (e *EnvelopeError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("%s document: status %d: %s", e.Doc, e.Status, e.Message)
	}
	return fmt.Sprintf("%s document: status %d", e.Doc, e.Status)
}

// envelope is the Salesforce CLI --json result wrapper. Depending on the
// command, result is either a bare record array or an object with a records
// key.
type envelope struct {
	Status  int             `json:"status"`
	Message string          `json:"message"`
	Result  json.RawMessage `json:"result"`
}

// PackageRecord is one row of the package-list document.
type PackageRecord struct {
	Name             string `json:"Name"`
	ContainerOptions string `json:"ContainerOptions"`
}

// VersionRecord is one row of the version-list document.
type VersionRecord struct {
	Package2Name               string `json:"Package2Name"`
	ID                         string `json:"Id"`
	SubscriberPackageVersionID string `json:"SubscriberPackageVersionId"`
	AncestorID                 string `json:"AncestorId"`
	MajorVersion               int    `json:"MajorVersion"`
	MinorVersion               int    `json:"MinorVersion"`
	PatchVersion               int    `json:"PatchVersion"`
	BuildNumber                int    `json:"BuildNumber"`
	Name                       string `json:"Name"`
	IsReleased                 bool   `json:"IsReleased"`
}

// decodeEnvelope unwraps a CLI result envelope into the given record slice.
func decodeEnvelope(doc string, data []byte, records any) error {
	var env envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return &EnvelopeError{Doc: doc, Message: fmt.Sprintf("malformed envelope: %v", err)}
	}
	if env.Status != 0 {
		return &EnvelopeError{Doc: doc, Status: env.Status, Message: env.Message}
	}
	if len(env.Result) == 0 {
		return &EnvelopeError{Doc: doc, Message: "missing result"}
	}

	if err := json.Unmarshal(env.Result, records); err == nil {
		return nil
	}

	// Query-shaped envelopes nest the rows under a records key.
	var wrapped struct {
		Records json.RawMessage `json:"records"`
	}
	if err := json.Unmarshal(env.Result, &wrapped); err != nil || len(wrapped.Records) == 0 {
		return &EnvelopeError{Doc: doc, Message: "result is neither a record array nor a records object"}
	}
	if err := json.Unmarshal(wrapped.Records, records); err != nil {
		return &EnvelopeError{Doc: doc, Message: fmt.Sprintf("malformed records: %v", err)}
	}
	return nil
}

// ParsePackageList decodes the package-list document and returns the managed
// family names: the Name of every record whose container option is Managed.
func ParsePackageList(data []byte) ([]string, error) {
	var records []PackageRecord
	if err := decodeEnvelope("package list", data, &records); err != nil {
		return nil, err
	}

	var managed []string
	for _, r := range records {
		if r.ContainerOptions == containerManaged {
			managed = append(managed, r.Name)
		}
	}
	return managed, nil
}

// ParseVersionList decodes the version-list document into release records.
func ParseVersionList(data []byte) ([]release.Record, error) {
	var rows []VersionRecord
	if err := decodeEnvelope("version list", data, &rows); err != nil {
		return nil, err
	}

	records := make([]release.Record, 0, len(rows))
	for _, r := range rows {
		records = append(records, release.Record{
			ID:           r.ID,
			SubscriberID: r.SubscriberPackageVersionID,
			AncestorID:   r.AncestorID,
			Family:       r.Package2Name,
			Name:         r.Name,
			Version: release.Version{
				Major: r.MajorVersion,
				Minor: r.MinorVersion,
				Patch: r.PatchVersion,
				Build: r.BuildNumber,
			},
			Released: r.IsReleased,
		})
	}
	return records, nil
}
