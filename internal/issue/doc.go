// SPDX-License-Identifier: MPL-2.0

// Package issue provides actionable error handling with user-friendly messages.
//
// ActionableError carries the failed operation, the file or keypath involved
// and suggestions for the user. The issue catalog holds Markdown help pages
// for the failures inigrep users run into most, rendered with glamour.
package issue
