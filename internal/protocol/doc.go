// Package protocol generates cyclic loading histories from named
// structural testing standards.
//
// A protocol is a closed choice of kind (ASCE-41, Modified ATC-24,
// FEMA-461) plus a peak amplitude. Generation is a pure transformation
// from that parameterization to an ordered (time, amplitude) sequence:
//
//	seq, err := protocol.Generate(protocol.NewASCE41(0.02))
//
// The amplitude list starts and ends at zero, and each repetition of a
// level contributes a positive peak followed by its exact negation. The
// time axis is normalized progress in [0, 1], proportional to the
// cumulative absolute amplitude traveled rather than wall-clock time.
//
// Sequences are deterministic and carry no mutable state after
// construction, so independent goroutines may generate them with no
// coordination.
package protocol
