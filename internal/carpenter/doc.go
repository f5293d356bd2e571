// Package carpenter materializes fully-resolved type descriptors into
// instantiable runtime types.
//
// Rather than generating code, a synthesized type is a Handle: an
// ordered field-name-to-semantic-type table plus a factory producing
// Records, generic key-indexed value containers read through a single
// accessor. The semantic types themselves are cty types, so a handle's
// shape is also available as a cty object type for payload decoding.
//
// Build failures are coarse: a malformed or inconsistent descriptor
// aborts the whole synthesis session. Construction errors are not
// individually recoverable.
package carpenter
