/*
Package config loads deckgen's configuration.

Values come from three layers, later ones winning: built-in defaults, a YAML file
(deckgen.yaml unless --config names another), and DECKGEN_* environment variables.
The merged map is decoded into Config with mapstructure, so durations may be
written as "90s" or "1h".
*/
package config
