// Package section encodes and decodes the fixed sections that precede the
// element tree of a map file:
//
//	+--------------------+---------------------+-----------------------------+
//	| header (12 bytes)  | package (varstring) | lookup table                |
//	| 0x0b "CELESTE MAP" |                     | u16 count + count varstring |
//	+--------------------+---------------------+-----------------------------+
//
// The element tree that follows refers to lookup entries by u16 index.
package section
