// Package textutil turns free-form video titles into filesystem-safe tokens
// used as default transcript filenames.
package textutil
