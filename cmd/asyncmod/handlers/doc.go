// Package handlers implements the business logic behind the asyncmod CLI
// commands.
//
// Handlers load configuration, assemble module sources and the module
// host, and render results. Command definitions and flag parsing live in
// the commands package.
package handlers
