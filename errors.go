package gpx

import "fmt"

// TokenizerError wraps a byte-level XML error reported by the
// underlying tokenizer, keeping it distinguishable from grammar-level
// errors produced by this package.
type TokenizerError struct {
	Err error
}

func (e *TokenizerError) Error() string { return fmt.Sprintf("malformed xml: %v", e.Err) }

func (e *TokenizerError) Unwrap() error { return e.Err }

// InvalidChildElementError reports a child element that is not valid
// inside its parent per the GPX grammar.
type InvalidChildElementError struct {
	Child  string
	Parent string
}

func (e *InvalidChildElementError) Error() string {
	return fmt.Sprintf("invalid child element %q in %s", e.Child, e.Parent)
}

// InvalidClosingTagError reports a closing tag that does not match the
// element being read.
type InvalidClosingTagError struct {
	Tag    string
	Parent string
}

func (e *InvalidClosingTagError) Error() string {
	return fmt.Sprintf("invalid closing tag %q in %s", e.Tag, e.Parent)
}

// MissingClosingTagError reports a stream that ended before the
// element's closing tag was found.
type MissingClosingTagError struct {
	Parent string
}

func (e *MissingClosingTagError) Error() string {
	return fmt.Sprintf("no closing tag for %s", e.Parent)
}

// MissingOpeningTagError reports a stream that ended before the
// expected opening tag was found.
type MissingOpeningTagError struct {
	Parent string
}

func (e *MissingOpeningTagError) Error() string {
	return fmt.Sprintf("no opening tag for %s", e.Parent)
}

// MissingAttributeError reports an element that lacks a required
// attribute.
type MissingAttributeError struct {
	Attr    string
	Element string
}

func (e *MissingAttributeError) Error() string {
	return fmt.Sprintf("element %s lacks required attribute %q", e.Element, e.Attr)
}

// TagOpenedTwiceError reports a tag that may occur at most once but
// was opened a second time.
type TagOpenedTwiceError struct {
	Tag string
}

func (e *TagOpenedTwiceError) Error() string {
	return fmt.Sprintf("tag %q opened twice", e.Tag)
}

// EmptyElementError reports an element with no text content where
// non-empty content was required.
type EmptyElementError struct {
	Tag string
}

func (e *EmptyElementError) Error() string {
	return fmt.Sprintf("no content inside %s", e.Tag)
}

// UnknownVersionError reports a version attribute value that is
// neither "1.0" nor "1.1", or an attempt to write a document whose
// Version is not set. There is no forward-compatibility fallback.
type UnknownVersionError struct {
	Version string
}

func (e *UnknownVersionError) Error() string {
	return fmt.Sprintf("unknown gpx version %q", e.Version)
}

// InvalidValueError reports attribute or text content that could not
// be parsed into its target type.
type InvalidValueError struct {
	Context string // the element or attribute holding the value
	Value   string
	Err     error
}

func (e *InvalidValueError) Error() string {
	return fmt.Sprintf("invalid value %q for %s: %v", e.Value, e.Context, e.Err)
}

func (e *InvalidValueError) Unwrap() error { return e.Err }

// OutOfRangeError reports a numeric value outside its documented
// range, such as a latitude beyond 90 degrees.
type OutOfRangeError struct {
	Field    string
	Value    float64
	Min, Max float64
}

func (e *OutOfRangeError) Error() string {
	return fmt.Sprintf("%s %v out of range [%v, %v]", e.Field, e.Value, e.Min, e.Max)
}

// BoundsOrderError reports a bounds rectangle whose minimum exceeds
// its maximum on the named axis. The input is rejected, never swapped.
type BoundsOrderError struct {
	Axis string // "latitude" or "longitude"
}

func (e *BoundsOrderError) Error() string {
	return fmt.Sprintf("minimum %s larger than maximum %s", e.Axis, e.Axis)
}

// InvalidEmailError reports an email address that cannot be split into
// the id and domain attributes of the <email> element.
type InvalidEmailError struct {
	Address string
	Reason  string
}

func (e *InvalidEmailError) Error() string {
	return fmt.Sprintf("invalid email address %q: %s", e.Address, e.Reason)
}
