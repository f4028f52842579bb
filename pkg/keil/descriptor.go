// File: pkg/keil/descriptor.go
package keil

import (
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/net/html/charset"
)

// ErrParse is returned when the descriptor is not well-formed XML.
var ErrParse = errors.New("malformed project descriptor")

// Element names of the descriptor subset that is consumed.
const (
	targetElement      = "Target"
	compilerElement    = "Cads"
	includePathElement = "IncludePath"
	defineElement      = "Define"
)

// Settings holds the raw include paths and defines pooled from every target.
// Values are trimmed and non-empty but not yet deduplicated or normalized.
type Settings struct {
	IncludePaths []string
	Defines      []string
}

// Empty reports whether nothing was collected.
func (s Settings) Empty() bool {
	return len(s.IncludePaths) == 0 && len(s.Defines) == 0
}

// element is a schema-less view of an XML element.
type element struct {
	XMLName  xml.Name
	Text     string    `xml:",chardata"`
	Children []element `xml:",any"`
}

// find returns the first descendant named name in document order.
func (e *element) find(name string) *element {
	for i := range e.Children {
		child := &e.Children[i]
		if child.XMLName.Local == name {
			return child
		}
		if found := child.find(name); found != nil {
			return found
		}
	}
	return nil
}

// findAll returns every descendant named name in document order.
func (e *element) findAll(name string) []*element {
	var found []*element
	for i := range e.Children {
		child := &e.Children[i]
		if child.XMLName.Local == name {
			found = append(found, child)
		}
		found = append(found, child.findAll(name)...)
	}
	return found
}

// ParseFile reads the descriptor at path and extracts its compiler settings.
func ParseFile(path string, logger *zap.Logger) (Settings, error) {
	f, err := os.Open(path)
	if err != nil {
		logger.Error("Failed to open project descriptor", zap.String("descriptor", path), zap.Error(err))
		return Settings{}, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	settings, err := Parse(f, logger)
	if err != nil {
		return Settings{}, fmt.Errorf("%s: %w", path, err)
	}
	logger.Debug("Parsed project descriptor",
		zap.String("descriptor", path),
		zap.Int("includePaths", len(settings.IncludePaths)),
		zap.Int("defines", len(settings.Defines)))
	return settings, nil
}

// Parse decodes a descriptor from r. Targets without a compiler section are
// skipped; a document without any targets yields empty Settings.
// Documents in a declared non-UTF-8 encoding are transcoded.
func Parse(r io.Reader, logger *zap.Logger) (Settings, error) {
	root, err := decodeDocument(r)
	if err != nil {
		return Settings{}, fmt.Errorf("%w: %v", ErrParse, err)
	}

	var settings Settings
	for i, target := range root.findAll(targetElement) {
		cads := target.find(compilerElement)
		if cads == nil {
			logger.Debug("Target has no compiler settings, skipping", zap.Int("target", i))
			continue
		}

		if inc := cads.find(includePathElement); inc != nil {
			settings.IncludePaths = append(settings.IncludePaths, SplitIncludePaths(inc.Text)...)
		}
		if def := cads.find(defineElement); def != nil {
			settings.Defines = append(settings.Defines, SplitDefines(def.Text)...)
		}
	}
	return settings, nil
}

// SplitIncludePaths splits a semicolon separated include path list,
// dropping empty segments.
func SplitIncludePaths(field string) []string {
	var paths []string
	for _, p := range strings.Split(field, ";") {
		if p = strings.TrimSpace(p); p != "" {
			paths = append(paths, p)
		}
	}
	return paths
}

// SplitDefines splits a define list on commas and then on whitespace,
// so "A, B  C,,A" yields A, B, C, A.
func SplitDefines(field string) []string {
	var defines []string
	for _, group := range strings.Split(field, ",") {
		defines = append(defines, strings.Fields(group)...)
	}
	return defines
}

// decodeDocument decodes the single root element of r and rejects anything
// other than comments, processing instructions and whitespace around it.
func decodeDocument(r io.Reader) (*element, error) {
	dec := xml.NewDecoder(r)
	dec.CharsetReader = charset.NewReaderLabel

	var root *element
	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}

		switch t := tok.(type) {
		case xml.StartElement:
			if root != nil {
				return nil, fmt.Errorf("line %d: second root element <%s>", line(dec), t.Name.Local)
			}
			root = &element{}
			if err := dec.DecodeElement(root, &t); err != nil {
				return nil, err
			}
		case xml.EndElement:
			return nil, fmt.Errorf("line %d: unexpected end element </%s>", line(dec), t.Name.Local)
		case xml.CharData:
			if len(bytes.TrimSpace(t)) > 0 {
				return nil, fmt.Errorf("line %d: text outside the root element", line(dec))
			}
		case xml.Directive:
			if root != nil {
				return nil, fmt.Errorf("line %d: directive after the root element", line(dec))
			}
		}
	}

	if root == nil {
		return nil, errors.New("no root element")
	}
	return root, nil
}

func line(dec *xml.Decoder) int {
	l, _ := dec.InputPos()
	return l
}
