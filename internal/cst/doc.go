// Package cst defines the concrete syntax tree produced by the parser.
//
// A tree is built from two node kinds only: *Terminal wraps one token and
// *Rule groups the children matched by one grammar rule. The Node interface
// is closed, so consumers traverse trees with a type switch.
package cst
