// Package markup builds the small WordprocessingML fragments that the
// document builder has no high-level operation for: hyperlinks and table
// cell borders.
//
// Every constructor is pure. It returns a new value and never touches a
// document; the caller decides where the fragment goes. A hyperlink needs
// the relationship id of its target, so the caller registers the URL with
// the document first and passes the id in.
package markup
