// Package sgmlstream implements an incremental, push-driven tokenizer for
// SGML-family markup (lenient HTML-like SGML and stricter XML). Callers push
// byte chunks of arbitrary size via Feed; the tokenizer emits a stream of
// lexical events (tags, attributes, entity and character references,
// comments, CDATA sections, processing instructions, directives, and raw
// character data) to a caller-supplied Sink.
//
// The package does no I/O, no DTD validation, no namespace resolution, and no
// character-set transcoding. It is a single-pass, single-threaded scanner: a
// token that straddles a Feed boundary is suspended and resumed on the next
// call without re-scanning the completed prefix.
package sgmlstream
