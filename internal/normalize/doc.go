// Package normalize cleans transcript text before it is exported or chunked.
//
// A Normalizer maps spoken variants of domain terms to their canonical
// spelling using a glossary, optionally strips filler words, and collapses
// whitespace. Glossaries are JSON objects of variant to canonical form; a
// default glossary is embedded in the binary. Normalizers are immutable after
// construction and safe for concurrent use.
package normalize
