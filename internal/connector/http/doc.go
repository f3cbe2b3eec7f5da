// Package http provides the generic HTTP base for REST API sources.
// The Jira ticket source is built on top of it.
//
// Structure:
//
//	client.go - HTTP client with rate limiting and retry
//	auth.go   - Authentication strategies (Basic, Atlassian email:token)
package http
