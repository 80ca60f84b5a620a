// Package filter selects report rows with expr-lang expressions.
//
// Every key of a row is a variable, so with the "project" and "title"
// columns requested a filter may read:
//
//	duration > 3600
//	hours(duration) >= 2 and includes(title, "review")
//	projectTitle startsWith "Client"
//
// Besides expr's builtins, hours(seconds) converts a duration and
// includes(s, sub) is a case-insensitive substring test. The whole row is
// also bound to "row".
package filter
