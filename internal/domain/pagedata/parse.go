package pagedata

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"
)

const (
	MaxSections    = 50
	MaxItems       = 100
	MaxStringRunes = 20000
	MaxIDLength    = 64
)

type Issue struct {
	Path    string `json:"path"`
	Message string `json:"message"`
}

func (i Issue) String() string {
	return i.Path + ": " + i.Message
}

// ValidationError carries every problem found in a document.
type ValidationError struct {
	Issues []Issue
}

func (e *ValidationError) Error() string {
	if len(e.Issues) == 1 {
		return "invalid page data: " + e.Issues[0].String()
	}
	parts := make([]string, 0, len(e.Issues))
	for _, i := range e.Issues {
		parts = append(parts, i.String())
	}
	return fmt.Sprintf("invalid page data (%d issues): %s", len(e.Issues), strings.Join(parts, "; "))
}

// Details renders the issues as "path: message" strings.
func (e *ValidationError) Details() []string {
	out := make([]string, 0, len(e.Issues))
	for _, i := range e.Issues {
		out = append(out, i.String())
	}
	return out
}

type issues []Issue

func (is *issues) add(path, format string, args ...any) {
	*is = append(*is, Issue{Path: path, Message: fmt.Sprintf(format, args...)})
}

func (is issues) err() error {
	if len(is) == 0 {
		return nil
	}
	return &ValidationError{Issues: is}
}

// Parse validates raw JSON and normalizes it into a PageData.
func Parse(raw []byte) (PageData, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	var v any
	if err := dec.Decode(&v); err != nil {
		return PageData{}, &ValidationError{Issues: []Issue{{Path: "$", Message: "invalid JSON: " + err.Error()}}}
	}
	if _, err := dec.Token(); err != io.EOF {
		return PageData{}, &ValidationError{Issues: []Issue{{Path: "$", Message: "invalid JSON: trailing data"}}}
	}
	return ParseValue(v)
}

// ParseValue applies the same rules as Parse to an already decoded value
// (the output of json.Unmarshal into an any).
func ParseValue(v any) (PageData, error) {
	var errs issues
	root, ok := v.(map[string]any)
	if !ok {
		errs.add("$", "expected object, got %s", kindOf(v))
		return PageData{}, errs.err()
	}

	var out PageData
	seo := &reader{path: "seo", errs: &errs}
	switch sv := root["seo"].(type) {
	case nil:
	case map[string]any:
		seo.obj = sv
	default:
		errs.add("seo", "expected object, got %s", kindOf(sv))
	}
	out.SEO = SEO{
		Title:       seo.str("title"),
		Description: seo.str("description"),
		OGImage:     seo.str("ogImage"),
	}

	out.Sections = []Section{}
	switch list := root["sections"].(type) {
	case nil:
	case []any:
		if len(list) > MaxSections {
			errs.add("sections", "at most %d sections allowed, got %d", MaxSections, len(list))
		}
		seen := map[string]int{}
		for i, item := range list {
			path := fmt.Sprintf("sections[%d]", i)
			s, ok := parseSection(item, path, &errs)
			if !ok {
				continue
			}
			if prev, dup := seen[s.ID]; dup {
				errs.add(path+".id", "duplicate id %q (also used by sections[%d])", s.ID, prev)
				continue
			}
			seen[s.ID] = i
			out.Sections = append(out.Sections, s)
		}
	default:
		errs.add("sections", "expected array, got %s", kindOf(list))
	}

	if err := errs.err(); err != nil {
		return PageData{}, err
	}
	return out, nil
}

func parseSection(v any, path string, errs *issues) (Section, bool) {
	obj, ok := v.(map[string]any)
	if !ok {
		errs.add(path, "expected object, got %s", kindOf(v))
		return Section{}, false
	}
	r := &reader{obj: obj, path: path, errs: errs}

	var typ SectionType
	switch tv := obj["type"].(type) {
	case nil:
		errs.add(path+".type", "required")
		return Section{}, false
	case string:
		typ = SectionType(strings.TrimSpace(tv))
	default:
		errs.add(path+".type", "expected string, got %s", kindOf(tv))
		return Section{}, false
	}
	body := newBody(typ)
	if body == nil {
		errs.add(path+".type", "unknown section type %q", typ)
		return Section{}, false
	}

	before := len(*errs)
	id := r.str("id")
	if utf8.RuneCountInString(id) > MaxIDLength {
		errs.add(path+".id", "exceeds %d characters", MaxIDLength)
	}
	if id == "" {
		id = NewID(typ)
	}
	body.decode(r)
	if len(*errs) > before {
		return Section{}, false
	}
	return Section{ID: id, Type: typ, Body: body}, true
}

// NewID returns a fresh section id such as "hero-1f3a9c0d".
func NewID(t SectionType) string {
	return string(t) + "-" + strings.ReplaceAll(uuid.NewString(), "-", "")[:8]
}

// reader pulls typed fields out of one JSON object and records problems
// against the object's path.
type reader struct {
	obj  map[string]any
	path string
	errs *issues
}

func (r *reader) field(key string) string {
	if r.path == "" {
		return key
	}
	return r.path + "." + key
}

// str returns the trimmed string at key. Missing and null fields read as "".
func (r *reader) str(key string) string {
	v, ok := r.obj[key]
	if !ok || v == nil {
		return ""
	}
	s, ok := v.(string)
	if !ok {
		r.errs.add(r.field(key), "expected string, got %s", kindOf(v))
		return ""
	}
	s = strings.TrimSpace(s)
	if utf8.RuneCountInString(s) > MaxStringRunes {
		r.errs.add(r.field(key), "exceeds %d characters", MaxStringRunes)
		return ""
	}
	return s
}

// each calls fn with a reader for every object element of the array at key.
func (r *reader) each(key string, fn func(item *reader)) {
	v, ok := r.obj[key]
	if !ok || v == nil {
		return
	}
	list, ok := v.([]any)
	if !ok {
		r.errs.add(r.field(key), "expected array, got %s", kindOf(v))
		return
	}
	if len(list) > MaxItems {
		r.errs.add(r.field(key), "at most %d items allowed, got %d", MaxItems, len(list))
		return
	}
	for i, el := range list {
		path := fmt.Sprintf("%s[%d]", r.field(key), i)
		obj, ok := el.(map[string]any)
		if !ok {
			r.errs.add(path, "expected object, got %s", kindOf(el))
			continue
		}
		fn(&reader{obj: obj, path: path, errs: r.errs})
	}
}

type itemDecoder interface {
	decode(r *reader)
}

// list decodes the array at key into a slice of item records. The result is
// never nil so documents always serialize arrays as [].
func list[T any, P interface {
	*T
	itemDecoder
}](r *reader, key string) []T {
	out := []T{}
	r.each(key, func(item *reader) {
		var v T
		P(&v).decode(item)
		out = append(out, v)
	})
	return out
}

func kindOf(v any) string {
	switch v.(type) {
	case nil:
		return "null"
	case string:
		return "string"
	case bool:
		return "boolean"
	case float64, json.Number:
		return "number"
	case []any:
		return "array"
	case map[string]any:
		return "object"
	}
	return fmt.Sprintf("%T", v)
}
