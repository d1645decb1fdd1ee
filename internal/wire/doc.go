// Package wire implements the binary message codec for the avionics link:
// seven tagged variants sharing a one-byte MSG_ID, fixed big-endian byte
// layouts, encode/decode as a bijection. Decoders never panic; malformed
// input always comes back as an *errs.Error of Kind Codec.
package wire
