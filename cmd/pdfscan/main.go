// Package main provides the entry point for the pdfscan CLI.
//
// pdfscan captures the pages of a PDF open in a browser as numbered
// screenshots. It is meant for documents that can only be viewed behind
// a login: the operator logs in and opens the PDF by hand, pdfscan
// pages through it and saves one image per page.
//
// Usage:
//
//	pdfscan scan [browser-path] [driver-path]
//
// See --help for all available options.
package main

// main is the entry point for pdfscan.
func main() {
	Execute()
}
