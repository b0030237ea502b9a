// Package asof provides a time-aware research assistant. A user submits a
// query, the assistant optionally augments it with live web search
// snippets, forwards it to a locally hosted language model, and keeps the
// exchange in a per-session chat transcript.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., sqlite/, ollama/, goquery/).
package asof
