/*
Package deckgen turns a topic into a slide deck.

It asks an OpenAI-compatible chat model for a presentation outline, recovers the
JSON object from whatever text the model returns, validates and normalizes it into
a domain.Presentation, and renders that presentation as PPTX or PDF.

# Pipeline

	topic
	  -> llm.Client.Outline         raw model text
	  -> outline.Extract            first candidate object passing the structural check
	  -> outline.Normalize          theme defaults, content coercion, sanitizing
	  -> outline.ValidateSlides     fail-fast per-slide checks
	  -> outline.Build              domain.Presentation
	  -> render.Renderer            .pptx / .pdf bytes

Generator.Generate runs the whole chain. Generator.Prepare re-enters it at the
normalization step for outlines supplied by a client, which are never trusted as
already valid.

# Usage

	client, err := llm.NewOpenAI(ctx, llm.DefaultConfig())
	if err != nil {
		log.Fatal(err)
	}

	gen, err := deckgen.New(client)
	if err != nil {
		log.Fatal(err)
	}

	res, err := gen.Generate(ctx, "The history of the transistor", "academic")
	if err != nil {
		f := deckgen.Classify(err)
		log.Fatalf("%d %s", f.Status, f.Message)
	}

	var buf bytes.Buffer
	if err := gen.Render(ctx, res.Presentation, render.FormatPPTX, &buf); err != nil {
		log.Fatal(err)
	}

# Errors

Every failure is classified by Classify into an HTTP-style status and a message
suitable for end users: extraction and validation failures are 400, an unreachable
or slow model is 503 and everything else is 500.
*/
package deckgen
