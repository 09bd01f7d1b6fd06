// Package prompt asks the operator yes/no questions on a line-oriented
// terminal and renders error and tip messages.
package prompt
