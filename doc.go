/*
Package sigwire provides a structural type system for hardware interfaces.

A Signature describes the shape of an interface: named members that are
either bit-shaped ports with a flow direction (In or Out) or nested
signatures, optionally arranged in arrays. An Iface is a concrete
instantiation of a Signature, holding one signal or constant per port
member. Connect checks two or more interfaces for structural
compatibility and pairs their leaves into directed assignments, which
the caller folds into whatever combinational logic it is building.

Checking happens at elaboration time: mismatched widths, conflicting
resets, double drivers and missing members are all reported as
classified errors before a single assignment is emitted.

*/
package sigwire
