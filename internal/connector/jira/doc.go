// Package jira implements the ticket source: paginated JQL search against
// the Jira REST API and the custom-field catalog lookup.
//
// Structure:
//
//	jira.go  - client, search/count/collate, field catalog
//	types.go - config and API response types
//	stub.go  - in-process stub server for tests
package jira
