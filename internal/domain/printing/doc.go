// Package printing contains the page model used when label sheets are turned
// into printable documents: paper sizes, orientation and page margins.
package printing
