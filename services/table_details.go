package services

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"strings"

	"quotation-backend/models"
)

const rowSeparator = "\n-----------------------------\n\n"

// ParseTableDetails classifies a table-details payload. It never fails:
// anything that is not a recognised JSON shape comes back as DetailsRaw.
func ParseTableDetails(raw string) models.TableDetails {
	details := models.TableDetails{Kind: models.DetailsRaw, Raw: raw}
	if strings.TrimSpace(raw) == "" {
		return details
	}

	var elems []map[string]json.RawMessage
	if err := decodeJSON(raw, &elems); err != nil || elems == nil {
		return details
	}

	sections, err := parseSections(elems)
	switch {
	case err == nil:
		details.Kind = models.DetailsSectioned
		details.Sections = sections
		return details
	case errors.Is(err, errNullSectionItem):
		return details
	}
	if rows, ok := parseRows(elems); ok {
		details.Kind = models.DetailsRowBased
		details.Rows = rows
		return details
	}
	return details
}

var (
	errNotSectioned    = errors.New("not a sectioned payload")
	errNullSectionItem = errors.New("null section item")
)

// parseSections returns errNullSectionItem when a section lists a null item;
// such payloads are kept as raw text rather than tried as rows.
func parseSections(elems []map[string]json.RawMessage) ([]models.DetailSection, error) {
	sections := make([]models.DetailSection, 0, len(elems))
	for _, elem := range elems {
		rawItems, ok := elem["items"]
		if !ok {
			return nil, errNotSectioned
		}
		var items []json.RawMessage
		if err := decodeJSON(string(rawItems), &items); err != nil || items == nil {
			return nil, errNotSectioned
		}

		labels := make([]string, 0, len(items))
		for _, item := range items {
			label, err := itemLabel(item)
			if err != nil {
				return nil, err
			}
			labels = append(labels, label)
		}
		sections = append(sections, models.DetailSection{
			Title: scalarText(elem["title"]),
			Items: labels,
		})
	}
	return sections, nil
}

func parseRows(elems []map[string]json.RawMessage) ([]models.DetailRow, bool) {
	if len(elems) == 0 {
		return nil, false
	}
	rows := make([]models.DetailRow, 0, len(elems))
	for _, elem := range elems {
		if !hasAnyKey(elem, "item", "qty", "price", "total") {
			return nil, false
		}
		rows = append(rows, models.DetailRow{
			Item:  scalarText(elem["item"]),
			Qty:   scalarText(elem["qty"]),
			Price: scalarText(elem["price"]),
			Total: scalarText(elem["total"]),
		})
	}
	return rows, true
}

// itemLabel renders one section item. Objects use the first non-empty of
// name, title and label; arrays have none of those and render empty.
func itemLabel(item json.RawMessage) (string, error) {
	trimmed := bytes.TrimSpace(item)
	switch {
	case bytes.Equal(trimmed, []byte("null")):
		return "", errNullSectionItem
	case len(trimmed) > 0 && trimmed[0] == '[':
		return "", nil
	}

	var obj map[string]json.RawMessage
	if err := decodeJSON(string(trimmed), &obj); err == nil && obj != nil {
		for _, key := range []string{"name", "title", "label"} {
			if label := scalarText(obj[key]); label != "" {
				return label, nil
			}
		}
		return "", nil
	}
	return scalarText(trimmed), nil
}

// scalarText prints a JSON value the way it reads in plain text.
// Missing values and null become "".
func scalarText(v json.RawMessage) string {
	if len(v) == 0 {
		return ""
	}
	var decoded interface{}
	if err := decodeJSON(string(v), &decoded); err != nil {
		return string(v)
	}
	switch val := decoded.(type) {
	case nil:
		return ""
	case string:
		return val
	case json.Number:
		return val.String()
	case bool:
		if val {
			return "true"
		}
		return "false"
	default:
		return string(bytes.TrimSpace(v))
	}
}

func hasAnyKey(m map[string]json.RawMessage, keys ...string) bool {
	for _, k := range keys {
		if _, ok := m[k]; ok {
			return true
		}
	}
	return false
}

func decodeJSON(s string, v interface{}) error {
	dec := json.NewDecoder(strings.NewReader(s))
	dec.UseNumber()
	if err := dec.Decode(v); err != nil {
		return err
	}
	if _, err := dec.Token(); err != io.EOF {
		return errors.New("unexpected data after JSON value")
	}
	return nil
}

// RenderForStorage is the text saved in quotations.table_details and mailed
// to the internal inbox.
func RenderForStorage(d models.TableDetails) string {
	switch d.Kind {
	case models.DetailsSectioned:
		return renderSections(d.Sections)
	case models.DetailsRowBased:
		return renderRows(d.Rows)
	default:
		return commasToNewlines(d.Raw)
	}
}

// RenderForDisplay is the text shown on the dashboard and in the export.
func RenderForDisplay(d models.TableDetails) string {
	if strings.TrimSpace(d.Raw) == "" {
		return "N/A"
	}
	switch d.Kind {
	case models.DetailsRowBased:
		return renderRows(d.Rows)
	case models.DetailsSectioned:
		return renderSections(d.Sections)
	default:
		return commasToNewlines(d.Raw)
	}
}

func FormatTableDetails(raw string) string {
	return RenderForStorage(ParseTableDetails(raw))
}

func FormatTableDetailsForDisplay(stored string) string {
	return RenderForDisplay(ParseTableDetails(stored))
}

func renderSections(sections []models.DetailSection) string {
	lines := make([]string, 0, len(sections))
	for _, s := range sections {
		lines = append(lines, s.Title+": "+strings.Join(s.Items, ", "))
	}
	return strings.Join(lines, "\n")
}

func renderRows(rows []models.DetailRow) string {
	blocks := make([]string, 0, len(rows))
	for _, r := range rows {
		blocks = append(blocks, "Item: "+r.Item+"\nQuantity: "+r.Qty+"\nPrice: "+r.Price+"\nTotal: "+r.Total)
	}
	return strings.Join(blocks, rowSeparator)
}

func commasToNewlines(s string) string {
	return strings.ReplaceAll(s, ",", "\n")
}
