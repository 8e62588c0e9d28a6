// Package language normalizes the language codes that appear in ytt config,
// caption track listings, and speech-to-text requests.
//
// Caption tracks report BCP 47 style tags ("en", "en-GB", "pt-BR") while
// users tend to write full names or ISO 639-2 codes. Everything is reduced to
// ISO 639-1 where the code is recognized.
package language
