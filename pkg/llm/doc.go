// Package llm asks an OpenAI-compatible chat-completions endpoint for a
// presentation outline and returns the raw response text.
//
// The OpenAI adapter makes exactly one call per request, bounded by a fixed
// timeout. Endpoint failures are returned as *ConnectionError. Retrying is an
// opt-in wrapper (WithRetry) around any Client.
package llm
