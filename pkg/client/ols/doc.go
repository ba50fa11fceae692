// Package ols is a client for the assistant service REST API: queries, user feedback,
// the feedback feature flag and the authorization check.
package ols
