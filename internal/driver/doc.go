// Package driver runs the validation of a list of paths: it loads each file,
// dispatches it to the HTML or CSS analyzer, converts the service's answer
// into diagnostics and turns every failure into a classified *FileError.
//
// Files are processed one after another in argument order. A failure never
// stops the run; only cancellation of the context does.
package driver
