// Package manifest defines the module manifest format and its YAML and
// HCL encodings.
package manifest
