package dom

import (
	"bytes"
	"encoding/json"

	"github.com/pkg/errors"
)

// The structured output shape, used symmetrically for export and for
// building nodes from data:
//
//	{"name": "div", "variant": "normal", "attributes": {...}, "children": [...]}
//
// Text children are bare JSON strings, comments are {"comment": "..."}.
// Attribute order survives both directions, so parsing the output of
// MarshalJSON reconstructs an equal tree.

// ParseJSON builds a whole Dom from its structured representation.
func ParseJSON(s string) (*Dom, error) {
	d := New()
	if err := json.Unmarshal([]byte(s), d); err != nil {
		return nil, err
	}
	return d, nil
}

// ParseNodeJSON builds a single node from its structured representation.
func ParseNodeJSON(s string) (Node, error) {
	return unmarshalNode([]byte(s))
}

// ToJSON serializes the tree to its structured representation.
func (d *Dom) ToJSON() (string, error) {
	b, err := json.Marshal(d)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// ToJSONPretty serializes the tree to an indented structured
// representation.
func (d *Dom) ToJSONPretty() (string, error) {
	b, err := json.MarshalIndent(d, "", "  ")
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func (d *Dom) MarshalJSON() ([]byte, error) {
	if len(d.Children) == 0 {
		return []byte("{}"), nil
	}
	children, err := json.Marshal(d.Children)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	buf.WriteString(`{"children":`)
	buf.Write(children)
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func (d *Dom) UnmarshalJSON(data []byte) error {
	var raw struct {
		Children []json.RawMessage `json:"children"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return errors.Wrapf(ErrInvalidInput, "dom: %v", err)
	}
	children, err := unmarshalNodes(raw.Children)
	if err != nil {
		return err
	}
	d.Children = children
	return nil
}

func (t Text) MarshalJSON() ([]byte, error) {
	return json.Marshal(string(t))
}

func (c Comment) MarshalJSON() ([]byte, error) {
	body, err := json.Marshal(string(c))
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	buf.WriteString(`{"comment":`)
	buf.Write(body)
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func (e *Element) MarshalJSON() ([]byte, error) {
	if !ValidName(e.Name) {
		return nil, errors.Wrapf(ErrInvalidInput, "invalid element name %q", e.Name)
	}
	if e.Variant == Void && len(e.Children) > 0 {
		return nil, errors.Wrapf(ErrInvalidInput, "void element <%s> has children", e.Name)
	}
	var buf bytes.Buffer
	buf.WriteString(`{"name":`)
	name, err := json.Marshal(e.Name)
	if err != nil {
		return nil, err
	}
	buf.Write(name)
	buf.WriteString(`,"variant":"`)
	buf.WriteString(e.Variant.String())
	buf.WriteByte('"')
	if e.Attributes.Len() > 0 {
		attrs, err := json.Marshal(e.Attributes)
		if err != nil {
			return nil, err
		}
		buf.WriteString(`,"attributes":`)
		buf.Write(attrs)
	}
	if len(e.Children) > 0 {
		children, err := json.Marshal(e.Children)
		if err != nil {
			return nil, err
		}
		buf.WriteString(`,"children":`)
		buf.Write(children)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func (e *Element) UnmarshalJSON(data []byte) error {
	var raw struct {
		Name     *string           `json:"name"`
		Variant  *string           `json:"variant"`
		Attrs    Attributes        `json:"attributes"`
		Children []json.RawMessage `json:"children"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		if errors.Is(err, ErrInvalidInput) {
			return err
		}
		return errors.Wrapf(ErrInvalidInput, "element: %v", err)
	}
	if raw.Name == nil {
		return errors.Wrap(ErrInvalidInput, "element is missing required field \"name\"")
	}
	if !ValidName(*raw.Name) {
		return errors.Wrapf(ErrInvalidInput, "invalid element name %q", *raw.Name)
	}
	if raw.Variant == nil {
		return errors.Wrap(ErrInvalidInput, "element is missing required field \"variant\"")
	}
	var variant ElementVariant
	switch *raw.Variant {
	case "normal":
		variant = Normal
	case "void":
		variant = Void
	default:
		return errors.Wrapf(ErrInvalidInput, "unknown element variant %q", *raw.Variant)
	}
	children, err := unmarshalNodes(raw.Children)
	if err != nil {
		return err
	}
	if variant == Void && len(children) > 0 {
		return errors.Wrapf(ErrInvalidInput, "void element <%s> cannot have children", *raw.Name)
	}
	e.Name = *raw.Name
	e.Variant = variant
	e.Attributes = raw.Attrs
	e.Children = children
	return nil
}

func (a Attributes) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, k := range a.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		kb, err := json.Marshal(k)
		if err != nil {
			return nil, err
		}
		buf.Write(kb)
		buf.WriteByte(':')
		vb, err := json.Marshal(a.vals[k])
		if err != nil {
			return nil, err
		}
		buf.Write(vb)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON reads an attribute object, preserving the key order of the
// document rather than the randomized order a plain map would give.
func (a *Attributes) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return errors.Wrapf(ErrInvalidInput, "attributes: %v", err)
	}
	if tok != json.Delim('{') {
		return errors.Wrap(ErrInvalidInput, "attributes must be an object")
	}
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return errors.Wrapf(ErrInvalidInput, "attributes: %v", err)
		}
		key, ok := keyTok.(string)
		if !ok {
			return errors.Wrap(ErrInvalidInput, "attribute keys must be strings")
		}
		var value string
		if err := dec.Decode(&value); err != nil {
			return errors.Wrapf(ErrInvalidInput, "attribute %q must have a string value", key)
		}
		a.Set(key, value)
	}
	return nil
}

func unmarshalNodes(raw []json.RawMessage) ([]Node, error) {
	if len(raw) == 0 {
		return nil, nil
	}
	nodes := make([]Node, 0, len(raw))
	for _, r := range raw {
		n, err := unmarshalNode(r)
		if err != nil {
			return nil, err
		}
		nodes = append(nodes, n)
	}
	return nodes, nil
}

func unmarshalNode(data []byte) (Node, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return nil, errors.Wrap(ErrInvalidInput, "empty node")
	}
	switch trimmed[0] {
	case '"':
		var s string
		if err := json.Unmarshal(trimmed, &s); err != nil {
			return nil, errors.Wrapf(ErrInvalidInput, "text node: %v", err)
		}
		return Text(s), nil
	case '{':
		var probe struct {
			Name    *string `json:"name"`
			Comment *string `json:"comment"`
		}
		if err := json.Unmarshal(trimmed, &probe); err != nil {
			return nil, errors.Wrapf(ErrInvalidInput, "node: %v", err)
		}
		if probe.Name != nil {
			e := &Element{}
			if err := e.UnmarshalJSON(trimmed); err != nil {
				return nil, err
			}
			return e, nil
		}
		if probe.Comment != nil {
			return Comment(*probe.Comment), nil
		}
		return nil, errors.Wrap(ErrInvalidInput, "node object needs a \"name\" or \"comment\" field")
	default:
		return nil, errors.Wrapf(ErrInvalidInput, "node must be a string or an object, got %q", trimmed[0])
	}
}
