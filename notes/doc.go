// Package notes holds the read-only note collection served as resources and
// the rules for addressing it by URI.
//
// A tree is a *Folder whose entries are folders or notes. Trees are
// immutable once built: NewFolder copies its input, accessors return copies,
// and there is no mutating API. That makes a single tree safe to share
// between any number of concurrent readers.
//
// Reference returns the built-in collection; LoadCatalog builds one from a
// YAML document. Resolve maps simple_resource:// URIs onto entries.
package notes
