package calendar

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/tidwall/gjson"
	"gopkg.in/yaml.v3"
)

// DecodeRequest decodes a JSON request document:
//
//	{
//	  "year": 2024, "month": 2, "format": "markdown", "width": "100%",
//	  "date_pattern": "YYYY-MM-DD", "note_pattern": "YYYY-MM-DD",
//	  "data": [{"date": "2024-02-10", "content": "...", "link": "..."}]
//	}
//
// "data" may also hold a query result of the form
// {"successful": true, "value": {"type": "table", "headers": [...], "values": [[...]]}},
// whose first column holds link objects ({"path": ..., "display": ...}).
func DecodeRequest(doc []byte) (Request, error) {
	if !gjson.ValidBytes(doc) {
		return Request{}, fmt.Errorf("%w: malformed JSON", ErrInvalidInput)
	}
	root := gjson.ParseBytes(doc)
	if !root.IsObject() {
		return Request{}, fmt.Errorf("%w: expected an object", ErrInvalidInput)
	}

	format, err := ParseFormat(root.Get("format").String())
	if err != nil {
		return Request{}, err
	}

	req := Request{
		Year:        int(root.Get("year").Int()),
		Month:       int(root.Get("month").Int()),
		Format:      format,
		Width:       root.Get("width").String(),
		DatePattern: root.Get("date_pattern").String(),
		NotePattern: root.Get("note_pattern").String(),
	}

	data := root.Get("data")
	switch {
	case !data.Exists() || data.Type == gjson.Null:
		req.Data = EntryList(nil)
	case isTableResult(data):
		req.Data = decodeTable(data.Get("value"))
	case data.IsObject() && data.Get("successful").Exists() && !data.Get("successful").Bool():
		return Request{}, fmt.Errorf("%w: query failed: %s", ErrInvalidInput, data.Get("error").String())
	case data.IsArray():
		req.Data = decodeEntries(data)
	default:
		return Request{}, fmt.Errorf("%w: data must be a list of entries or a table result", ErrInvalidInput)
	}

	return req, nil
}

// DecodeRequestYAML decodes a YAML request document with the same fields as
// DecodeRequest. Unquoted dates such as "date: 2024-02-10" keep their source
// text.
func DecodeRequestYAML(doc []byte) (Request, error) {
	var root yaml.Node
	if err := yaml.Unmarshal(doc, &root); err != nil {
		return Request{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	v, err := yamlValue(&root)
	if err != nil {
		return Request{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	js, err := json.Marshal(v)
	if err != nil {
		return Request{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	return DecodeRequest(js)
}

// yamlValue converts n into maps, slices and scalars that encoding/json can
// write. Timestamps stay strings.
func yamlValue(n *yaml.Node) (any, error) {
	switch n.Kind {
	case 0:
		return nil, nil
	case yaml.DocumentNode:
		if len(n.Content) == 0 {
			return nil, nil
		}
		return yamlValue(n.Content[0])
	case yaml.AliasNode:
		return yamlValue(n.Alias)
	case yaml.SequenceNode:
		items := make([]any, 0, len(n.Content))
		for _, c := range n.Content {
			v, err := yamlValue(c)
			if err != nil {
				return nil, err
			}
			items = append(items, v)
		}
		return items, nil
	case yaml.MappingNode:
		m := make(map[string]any, len(n.Content)/2)
		for i := 0; i+1 < len(n.Content); i += 2 {
			v, err := yamlValue(n.Content[i+1])
			if err != nil {
				return nil, err
			}
			m[n.Content[i].Value] = v
		}
		return m, nil
	default:
		if n.ShortTag() == "!!timestamp" {
			return n.Value, nil
		}
		var v any
		if err := n.Decode(&v); err != nil {
			return nil, err
		}
		return v, nil
	}
}

func isTableResult(data gjson.Result) bool {
	return data.IsObject() &&
		data.Get("successful").Bool() &&
		data.Get("value.type").String() == "table"
}

func decodeEntries(data gjson.Result) EntryList {
	var entries EntryList
	data.ForEach(func(_, item gjson.Result) bool {
		entries = append(entries, Entry{
			Date:    item.Get("date").String(),
			Content: item.Get("content").String(),
			Link:    item.Get("link").String(),
		})
		return true
	})
	return entries
}

func decodeTable(value gjson.Result) TableResult {
	var t TableResult
	for _, h := range value.Get("headers").Array() {
		t.Headers = append(t.Headers, h.String())
	}
	for _, row := range value.Get("values").Array() {
		var cells []Cell
		for _, c := range row.Array() {
			cells = append(cells, decodeCell(c))
		}
		t.Rows = append(t.Rows, cells)
	}
	return t
}

func decodeCell(r gjson.Result) Cell {
	switch {
	case r.Type == gjson.Null:
		return Cell{}
	case r.IsObject() && r.Get("path").Exists():
		path := r.Get("path").String()
		display := r.Get("display").String()
		if display == "" {
			display = path
		}
		return Cell{Value: display, Path: path}
	case r.IsArray():
		var parts []string
		for _, item := range r.Array() {
			if v := decodeCell(item).Value; v != "" {
				parts = append(parts, v)
			}
		}
		return Cell{Value: strings.Join(parts, ", ")}
	default:
		return Cell{Value: r.String()}
	}
}
