// Package session holds the shell's process-wide state: the optional handle
// to the loaded uasat library and the Run operation that invokes it.
//
// The handle is absent until the load completes and never transitions back
// to absent. Run checks the handle, invokes the library's single operation
// with the input text verbatim, and reports the result together with the
// elapsed wall-clock time.
package session
