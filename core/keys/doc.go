// Package keys builds deterministic, composite cache keys from ordered
// parts, joined with ":".
//
// Literal parts go in via [Builder.Add]; arbitrary values (request
// parameters, option structs) via [Builder.AddHash], which hashes the
// value's canonical JSON form so structurally equal values produce the
// same key segment.
//
//	key := keys.New().
//	    Add("doc").
//	    Add(userID).
//	    AddHash(params).
//	    Build() // "doc:42:a1b2c3d4e5f60718"
//
// The package is pure and stateless; builders are single-use.
package keys
