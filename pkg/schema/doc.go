// Package schema defines the declarative form definition: the five-level
// content hierarchy (form > card > set > group > field > input) as plain
// YAML-decodable types, plus structural validation. The engine discovers its
// item hierarchy from these definitions; it never reads raw markup.
package schema
