// Package errors provides structured, coded errors for vtree.
//
// Errors carry a code from a fixed registry, a category, a short message and
// optional detail, suggestion and tree path. Validation errors raised by the
// builder, the renderer and the reconciler in dev mode are all *Error values,
// so callers can match them with errors.As and inspect the code:
//
//	var verr *errors.Error
//	if stderrors.As(err, &verr) && verr.Code == errors.CodeDuplicateKey {
//	    ...
//	}
//
// # Error Categories
//
//   - validation: structural problems in a tree (duplicate keys, reused nodes)
//   - render: failures while building or serializing a tree
//   - config: vtree.json problems
//   - cli: command line usage problems
//
// # Terminal output
//
// Format renders an error for a terminal, using github.com/fatih/color so
// output degrades to plain text when stderr is not a TTY.
package errors
