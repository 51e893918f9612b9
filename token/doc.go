// Package token holds the lexical rules of the Ruby source the encoder
// emits: identifier and constant names, numeric literals and double
// quoted string escaping.
package token
