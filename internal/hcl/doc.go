// Package hcl provides the HCL implementation of config.Loader. It is
// responsible for file discovery and parsing, and for translating the HCL
// blocks into the format-agnostic config.Model.
package hcl
