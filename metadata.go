package gpx

import (
	"errors"
	"io"
	"strconv"
)

func ptr[T any](v T) *T { return &v }

// consumeLink reads a <link> element: a required href attribute plus
// optional text and type children.
func consumeLink(c *parseContext) (Link, error) {
	attrs, err := c.verifyStartingTag("link")
	if err != nil {
		return Link{}, err
	}

	href, ok := findAttr(attrs, "href")
	if !ok {
		return Link{}, &MissingAttributeError{Attr: "href", Element: "link"}
	}
	link := Link{Href: href}

	for {
		ev, err := c.peek()
		if errors.Is(err, io.EOF) {
			return Link{}, &MissingClosingTagError{Parent: "link"}
		}
		if err != nil {
			return Link{}, err
		}

		switch ev.kind {
		case eventStart:
			switch ev.name {
			case "text":
				content, err := consumeString(c, "text", false)
				if err != nil {
					return Link{}, err
				}
				link.Text = &content
			case "type":
				content, err := consumeString(c, "type", false)
				if err != nil {
					return Link{}, err
				}
				link.Type = &content
			default:
				return Link{}, &InvalidChildElementError{Child: ev.name, Parent: "link"}
			}
		case eventEnd:
			if ev.name != "link" {
				return Link{}, &InvalidClosingTagError{Tag: ev.name, Parent: "link"}
			}
			c.next()
			return link, nil
		default:
			c.next()
		}
	}
}

// consumeEmail reads an <email> element. Unlike the other compounds it
// has no children at all: id and domain are both attributes and the
// element closes immediately. The two parts are rejoined into a single
// id@domain address.
func consumeEmail(c *parseContext) (string, error) {
	attrs, err := c.verifyStartingTag("email")
	if err != nil {
		return "", err
	}

	id, ok := findAttr(attrs, "id")
	if !ok {
		return "", &MissingAttributeError{Attr: "id", Element: "email"}
	}
	domain, ok := findAttr(attrs, "domain")
	if !ok {
		return "", &MissingAttributeError{Attr: "domain", Element: "email"}
	}

	for {
		ev, err := c.next()
		if errors.Is(err, io.EOF) {
			return "", &MissingClosingTagError{Parent: "email"}
		}
		if err != nil {
			return "", err
		}
		switch ev.kind {
		case eventStart:
			return "", &InvalidChildElementError{Child: ev.name, Parent: "email"}
		case eventEnd:
			if ev.name != "email" {
				return "", &InvalidClosingTagError{Tag: ev.name, Parent: "email"}
			}
			return id + "@" + domain, nil
		}
	}
}

// consumePerson reads a person element. The tag name is a parameter
// because GPX 1.1 spells it <author> inside <metadata>.
func consumePerson(c *parseContext, tag string) (Person, error) {
	if _, err := c.verifyStartingTag(tag); err != nil {
		return Person{}, err
	}

	var person Person
	for {
		ev, err := c.peek()
		if errors.Is(err, io.EOF) {
			return Person{}, &MissingClosingTagError{Parent: tag}
		}
		if err != nil {
			return Person{}, err
		}

		switch ev.kind {
		case eventStart:
			switch ev.name {
			case "name":
				content, err := consumeString(c, "name", false)
				if err != nil {
					return Person{}, err
				}
				person.Name = &content
			case "email":
				email, err := consumeEmail(c)
				if err != nil {
					return Person{}, err
				}
				person.Email = &email
			case "link":
				link, err := consumeLink(c)
				if err != nil {
					return Person{}, err
				}
				person.Link = &link
			default:
				return Person{}, &InvalidChildElementError{Child: ev.name, Parent: tag}
			}
		case eventEnd:
			if ev.name != tag {
				return Person{}, &InvalidClosingTagError{Tag: ev.name, Parent: tag}
			}
			c.next()
			return person, nil
		default:
			c.next()
		}
	}
}

// consumeCopyright reads a <copyright> element: an optional author
// attribute plus optional year and license children.
func consumeCopyright(c *parseContext) (Copyright, error) {
	attrs, err := c.verifyStartingTag("copyright")
	if err != nil {
		return Copyright{}, err
	}

	var copyright Copyright
	if author, ok := findAttr(attrs, "author"); ok {
		copyright.Author = &author
	}

	for {
		ev, err := c.peek()
		if errors.Is(err, io.EOF) {
			return Copyright{}, &MissingClosingTagError{Parent: "copyright"}
		}
		if err != nil {
			return Copyright{}, err
		}

		switch ev.kind {
		case eventStart:
			switch ev.name {
			case "year":
				content, err := consumeString(c, "year", false)
				if err != nil {
					return Copyright{}, err
				}
				year, err := strconv.Atoi(content)
				if err != nil {
					return Copyright{}, &InvalidValueError{Context: "year", Value: content, Err: err}
				}
				copyright.Year = &year
			case "license":
				content, err := consumeString(c, "license", false)
				if err != nil {
					return Copyright{}, err
				}
				copyright.License = &content
			default:
				return Copyright{}, &InvalidChildElementError{Child: ev.name, Parent: "copyright"}
			}
		case eventEnd:
			if ev.name != "copyright" {
				return Copyright{}, &InvalidClosingTagError{Tag: ev.name, Parent: "copyright"}
			}
			c.next()
			return copyright, nil
		default:
			c.next()
		}
	}
}

// consumeMetadata reads a GPX 1.1 <metadata> element. GPX 1.0 has no
// such element; its flattened equivalents are reconciled by the root
// consumer instead.
func consumeMetadata(c *parseContext) (Metadata, error) {
	if _, err := c.verifyStartingTag("metadata"); err != nil {
		return Metadata{}, err
	}

	var metadata Metadata
	var seenExtensions bool
	for {
		ev, err := c.peek()
		if errors.Is(err, io.EOF) {
			return Metadata{}, &MissingClosingTagError{Parent: "metadata"}
		}
		if err != nil {
			return Metadata{}, err
		}

		switch ev.kind {
		case eventStart:
			switch ev.name {
			case "name":
				content, err := consumeString(c, "name", false)
				if err != nil {
					return Metadata{}, err
				}
				metadata.Name = &content
			case "desc":
				content, err := consumeString(c, "desc", true)
				if err != nil {
					return Metadata{}, err
				}
				metadata.Description = &content
			case "author":
				person, err := consumePerson(c, "author")
				if err != nil {
					return Metadata{}, err
				}
				metadata.Author = &person
			case "copyright":
				copyright, err := consumeCopyright(c)
				if err != nil {
					return Metadata{}, err
				}
				metadata.Copyright = &copyright
			case "link":
				link, err := consumeLink(c)
				if err != nil {
					return Metadata{}, err
				}
				metadata.Links = append(metadata.Links, link)
			case "time":
				t, err := consumeTime(c)
				if err != nil {
					return Metadata{}, err
				}
				metadata.Time = &t
			case "keywords":
				content, err := consumeString(c, "keywords", true)
				if err != nil {
					return Metadata{}, err
				}
				metadata.Keywords = &content
			case "bounds":
				bounds, err := consumeBounds(c)
				if err != nil {
					return Metadata{}, err
				}
				metadata.Bounds = &bounds
			case "extensions":
				if seenExtensions {
					return Metadata{}, &TagOpenedTwiceError{Tag: "extensions"}
				}
				seenExtensions = true
				if err := consumeExtensions(c); err != nil {
					return Metadata{}, err
				}
			default:
				return Metadata{}, &InvalidChildElementError{Child: ev.name, Parent: "metadata"}
			}
		case eventEnd:
			if ev.name != "metadata" {
				return Metadata{}, &InvalidClosingTagError{Tag: ev.name, Parent: "metadata"}
			}
			c.next()
			return metadata, nil
		default:
			c.next()
		}
	}
}
