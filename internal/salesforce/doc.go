// Package salesforce obtains the two input documents the lineage validator
// consumes: the Dev Hub's package list and its package-version list. Both
// arrive as Salesforce CLI --json result envelopes, either fetched live by
// shelling out to the sf binary or read from files.
package salesforce
