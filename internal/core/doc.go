// Package core provides filtering, sorting and target lookup over dialog
// summaries. It works on snapshots and never touches a live stack.
package core
