// Package toolchain wraps the external C++ compiler used by coppo.
//
// The Compiler client discovers project sources, assembles the compiler
// argument list, and runs the configured binary, classifying non-zero exits
// into errors that carry the compiler diagnostics. Successful builds leave a
// receipt under target/ recording what was built and with which compiler.
package toolchain
