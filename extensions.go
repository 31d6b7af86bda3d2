package gpx

import (
	"errors"
	"io"
)

// consumeExtensions swallows an <extensions> subtree. Its content is
// arbitrary third-party XML outside the GPX schema, including possibly
// further nested <extensions> elements, so nothing inside is validated
// against a grammar or retained. Structural well-formedness is still
// checked with an explicit stack of pending tag names: a closing tag
// that does not match the most recently opened tag is rejected rather
// than trusting vendor XML to nest correctly.
func consumeExtensions(c *parseContext) error {
	if _, err := c.verifyStartingTag("extensions"); err != nil {
		return err
	}

	stack := []string{"extensions"}
	for {
		ev, err := c.next()
		if errors.Is(err, io.EOF) {
			return &MissingClosingTagError{Parent: "extensions"}
		}
		if err != nil {
			return err
		}

		switch ev.kind {
		case eventStart:
			stack = append(stack, ev.name)
		case eventEnd:
			top := stack[len(stack)-1]
			if ev.name != top {
				return &InvalidClosingTagError{Tag: ev.name, Parent: top}
			}
			stack = stack[:len(stack)-1]
			if len(stack) == 0 {
				return nil
			}
		}
	}
}
