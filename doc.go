// Package calc implements a calculator for single arithmetic expressions.
//
// An expression is numbers combined with the binary operators + - * / % ^,
// the unary signs + and -, and round brackets. Whitespace is ignored.
// Evaluation happens in three stages: Tokenize classifies the input against a
// fixed registry of token kinds, Parse reduces the tokens to a tree by
// operator precedence, and Eval or EvalPrec computes the tree's value.
//
// "^" binds tightest and groups right to left, so "2^3^2" is 512. The unary
// signs come next, so "-2^2" is -4 and "2^-2" is 0.25. Then come * / %, and
// finally + -, each grouping left to right.
//
// All package-level state is built at initialization and never modified, so
// the package is safe for concurrent use.
package calc
