package tiddler

import "time"

// bodyState distinguishes the three body states.
type bodyState uint8

const (
	bodyEmpty bodyState = iota
	bodyLoaded
	bodyPending
)

// Body is the tri-state body of a tiddler: loaded text, explicitly empty, or
// pending external load. Modelling the states explicitly keeps "no text yet"
// distinct from "no text at all".
type Body struct {
	state bodyState
	text  string
}

// LoadedBody returns a body holding concrete text.
func LoadedBody(text string) Body { return Body{state: bodyLoaded, text: text} }

// EmptyBody returns an explicitly empty body.
func EmptyBody() Body { return Body{state: bodyEmpty} }

// PendingBody returns a body whose text must be fetched externally before it
// can be read. Requesting text for a pending body through the store fires the
// lazy-load signal.
func PendingBody() Body { return Body{state: bodyPending} }

// IsLoaded reports whether concrete text is present.
func (b Body) IsLoaded() bool { return b.state == bodyLoaded }

// IsEmpty reports whether the body is explicitly empty.
func (b Body) IsEmpty() bool { return b.state == bodyEmpty }

// IsPending reports whether the body awaits an external load.
func (b Body) IsPending() bool { return b.state == bodyPending }

// Text returns the body text, or "" unless the body is loaded.
func (b Body) Text() string {
	if b.state != bodyLoaded {
		return ""
	}
	return b.text
}

// timeLayout is the compact 17-digit stamp used by created/modified fields:
// year, month, day, hour, minute, second, millisecond in UTC.
const timeLayout = "20060102150405.000"

// ParseDate parses a created/modified field value. The zero time and false
// are returned for malformed values.
func ParseDate(s string) (time.Time, bool) {
	if len(s) != 17 {
		return time.Time{}, false
	}
	t, err := time.ParseInLocation(timeLayout, s[:14]+"."+s[14:], time.UTC)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// FormatDate renders a time into created/modified field form.
func FormatDate(t time.Time) string {
	s := t.UTC().Format(timeLayout)
	return s[:14] + s[15:]
}

// Created returns the parsed "created" field, or the zero time.
func (t *Tiddler) Created() time.Time {
	ts, _ := ParseDate(t.fields[FieldCreated])
	return ts
}

// Modified returns the parsed "modified" field, or the zero time.
func (t *Tiddler) Modified() time.Time {
	ts, _ := ParseDate(t.fields[FieldModified])
	return ts
}
