/*
Package ports defines the driven ports (interfaces) used by deckgen's adapters.

These interfaces decouple the generation pipeline and its HTTP, CLI and MCP surfaces
from concrete infrastructure.

# Key Interfaces

  - ArtifactStore: Persists rendered decks and serves them back for download.
  - Locker: Provides cross-process locking so cleanup sweeps do not overlap.
*/
package ports
