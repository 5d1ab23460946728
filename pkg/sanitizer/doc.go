// Package sanitizer cleans user-edited message text with bluemonday.
package sanitizer
