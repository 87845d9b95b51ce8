// Package parser turns source text into an ir.Program.
//
// Only the eight command characters are significant; everything else is a
// comment. Bracket pairs become nested ir.Loop nodes. Parsing is
// deterministic and has no side effects.
//
// Malformed bracket structure is handled as follows:
//   - A "[" with no matching "]" is always a *ParseError (UNMATCHED_OPEN).
//   - A "]" with no opener ends the program at that character; the rest of
//     the source is ignored and a Warning is reported. In strict mode it is
//     a *ParseError (UNMATCHED_CLOSE) instead.
package parser
