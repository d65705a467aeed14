// Package models defines domain types for the dcx mirror tool.
//
// The package contains two categories of types:
//
// 1. Classification tags:
//   - [ContentType] : closed taxonomy of remote resource kinds a local path can represent
//
// 2. Session types:
//   - [Session] : write-once identity of a full grab (node, remote version, tool version)
//   - [SessionRecord] : JSON form of a session written into the tracking directory
//   - [SessionEntry] : journaled session with status and timing, implements [Model]
//
// The Repository[T] interface defines standard CRUD operations for database access.
package models
