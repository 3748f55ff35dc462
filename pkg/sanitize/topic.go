package sanitize

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
)

var (
	// DefaultMaxTopicSize is 4KB, far above any sensible topic.
	DefaultMaxTopicSize = 4096
	// EnvMaxTopicSize overrides DefaultMaxTopicSize.
	EnvMaxTopicSize = "DECKGEN_MAX_TOPIC_SIZE"
)

var (
	ErrEmptyTopic    = errors.New("topic is required")
	ErrTopicTooLarge = errors.New("topic exceeds maximum allowed size")
	ErrInvalidUTF8   = errors.New("topic contains invalid UTF-8 sequences")
)

// Topic enforces the size limit, validates UTF-8, strips control
// characters and trims the topic. An empty result is an error.
func Topic(input string) (string, error) {
	limit := maxTopicSize()
	if len(input) > limit {
		return "", fmt.Errorf("%w: size=%d limit=%d", ErrTopicTooLarge, len(input), limit)
	}

	if !utf8.ValidString(input) {
		return "", ErrInvalidUTF8
	}

	// ANSI escapes, NUL and BEL would end up in the prompt and the logs.
	clean := strings.Map(func(r rune) rune {
		if unicode.IsControl(r) && !isSafeControl(r) {
			return -1
		}
		return r
	}, input)

	clean = strings.TrimSpace(clean)
	if clean == "" {
		return "", ErrEmptyTopic
	}
	return clean, nil
}

func isSafeControl(r rune) bool {
	return r == '\n' || r == '\t' || r == '\r'
}

func maxTopicSize() int {
	if val := os.Getenv(EnvMaxTopicSize); val != "" {
		if size, err := strconv.Atoi(val); err == nil && size > 0 {
			return size
		}
	}
	return DefaultMaxTopicSize
}
