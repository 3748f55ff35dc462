/*
Package outline turns raw model output into a domain.Presentation.

The pipeline runs in four steps, each a plain function over a Candidate:

	c, err := outline.Extract(raw)        // repair + locate JSON, Tier 1 structure check
	c = outline.Normalize(c)              // theme defaults, content coercion, sanitizing
	err = outline.ValidateSlides(c)       // Tier 2, fail fast on the first bad slide
	p, err := outline.Build(c)            // typed mapping, bad slides skipped and logged

A Candidate is untrusted data and is a distinct type from domain.Presentation:
the only way from one to the other is Build.

Failures are reported as *ExtractionError or *ValidationError; both carry a
Message suitable for end users.
*/
package outline
