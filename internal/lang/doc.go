// Package lang names the languages the scanner knows and maps editor labels,
// file names and document content onto them.
//
// Label matching is deliberately loose: a display label such as
// "Python (preinstalled)" routes by substring, first match wins. Content
// detection only kicks in when neither the file name nor its extension say
// anything, and is a scored guess rather than a parse.
package lang
