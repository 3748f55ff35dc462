// Package render turns a domain.Presentation into a PPTX or PDF document.
//
// A slide that cannot be laid out is reported as a *SlideError, logged and
// left out of the document; the remaining slides are still rendered. A
// failure to write the finished document wraps ErrSave and is fatal.
package render
