// Package openai transcribes audio with the OpenAI audio transcription API or
// any server that speaks the same protocol.
//
// Requests ask for verbose_json so the response carries segment timings.
package openai
