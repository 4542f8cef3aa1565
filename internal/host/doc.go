// Package host implements the process-wide module environment that
// imports are applied to.
//
// A [Host] keeps a global table of loaded modules and of the commands they
// export. It satisfies loader.Executor, so many imports can run against
// the same Host at once; all table access goes through the Host's lock.
package host
