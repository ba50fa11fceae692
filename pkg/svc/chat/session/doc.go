// Package session is the chat session engine.
//
// A Session owns the conversation history, the staged attachments, the subject context
// and the per-entry feedback forms, and orchestrates query submission to the assistant
// service. Every submission commits one user entry immediately and exactly one assistant
// entry when the query completes, fails or times out.
//
// All state transitions happen under one mutex. Only the query and the cluster or
// Prometheus lookups of attach actions block, and they do so without holding the lock.
// Each query is tagged with the session epoch it was issued in; starting a new chat bumps
// the epoch so that a late response of the previous conversation is discarded instead of
// being committed into the new one.
package session
