// Package primitives defines declarative transition tables for string-keyed
// machines.
//
// A MachineConfig names a machine, its initial state and a flat list of
// transitions. Pre- and post-action hooks are referenced by name and resolved
// against an ActionMap when the machine is built, so the same table can be
// loaded from YAML or JSON and wired to code at startup.
//
// Core invariants:
// - An (event, from) pair appears at most once, as in the machine registry
// - Every identifier is a non-empty [A-Za-z0-9_.:-] token
package primitives
