// Package schema defines the type descriptor model: the immutable,
// format-agnostic description of a composite record type that the rest
// of the synthesis pipeline operates on.
//
// A Descriptor is produced once by the extraction layer and then flows
// through the dependency ledger to the carpenter unchanged. Its type
// references distinguish concrete semantic types (resolvable
// immediately) from named references to composites that may not have
// been synthesized yet; the ledger's bookkeeping and the driver's
// scheduling are built entirely on that distinction.
package schema
