// Package textstats computes word count, character count and estimated
// reading time for the text content of an HTML article.
package textstats
