// Package sanitize cleans text that comes from the model or from users.
//
// Clean and Value strip markup, decode entities, remove manual emphasis
// markers and collapse whitespace. They never fail: if cleaning panics the
// original input is returned unchanged.
//
// Topic validates free-form user input (size limit, UTF-8, control
// characters) before it is embedded in a prompt.
package sanitize
