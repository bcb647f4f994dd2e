// Package poststats renders the post statistics block and splices it into
// article content.
//
// Filter is the entry point used by the article view, the content filter API
// and the render command: it strips the markup of the content, counts words
// and characters, estimates the reading time and places the block before or
// after the content depending on the operator's options.
package poststats
