// Package registry provides the synthesized type registry: the
// append-only mapping from type name to the runtime handle the
// carpenter produced for it.
//
// One registry covers one synthesis session. The driver writes to it
// as types are built; the deserializer reads from it by name once
// synthesis has progressed far enough. A lookup miss means "not yet
// built", which during single-step driving is an ordinary state.
package registry
