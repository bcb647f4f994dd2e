// Package main provides the entry point of poststats.
// poststats shows the word count, character count and estimated reading time
// of an article in a small block placed before or after its content. It runs
// a fiber web service with an admin settings screen and a JSON filter API,
// stores settings and articles with gorm, and doubles as a command line
// filter for single files or fetched pages.
package main
