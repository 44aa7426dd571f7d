package eastrenfrewshire

import (
	"bindays-backend/internal/collection"
	"bytes"
	"encoding/json"
	"fmt"
	"time"

	"github.com/araddon/dateparse"
)

var binIcons = collection.IconMap{
	"Grey":  "mdi:trash-can",
	"Brown": "mdi:leaf",
	"Green": "mdi:glass-fragile",
	"Blue":  "mdi:note",
}

type object = map[string]json.RawMessage

// field decodes obj[key] into T, `path` is the dotted path of obj and is
// only used to make errors point at the offending key.
func field[T any](obj object, path, key string) (T, error) {
	var out T
	if path != "" {
		path = path + "." + key
	} else {
		path = key
	}

	raw, ok := obj[key]
	if !ok || bytes.Equal(bytes.TrimSpace(raw), []byte("null")) {
		return out, &SchemaError{Path: path}
	}
	err := json.Unmarshal(raw, &out)
	if err != nil {
		return out, &SchemaError{Path: path, Err: err}
	}
	return out, nil
}

// parseDate parses date text in any common format and returns the calendar
// date it names, as midnight in `loc`.
func parseDate(text string, loc *time.Location) (time.Time, error) {
	t, err := dateparse.ParseIn(text, loc)
	if err != nil {
		return time.Time{}, err
	}
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc), nil
}

// Normalize flattens a payload into one collection per (bin, date) pair.
// Collections are in the order the payload lists them: bins first, then
// the dates of each bin.
func Normalize(payload Payload, loc *time.Location) ([]collection.Collection, error) {
	result := []collection.Collection{}
	if len(payload) == 0 {
		return result, nil
	}

	path := "residualWasteResponse"
	response, err := field[object](object(payload), "", "residualWasteResponse")
	if err != nil {
		return nil, err
	}
	value, err := field[object](response, path, "value")
	if err != nil {
		return nil, err
	}
	path += ".value"
	results, err := field[object](value, path, "collectionResults")
	if err != nil {
		return nil, err
	}
	path += ".collectionResults"
	bins, err := field[[]object](results, path, "binsOrderingArray")
	if err != nil {
		return nil, err
	}
	path += ".binsOrderingArray"

	for i, bin := range bins {
		binPath := fmt.Sprintf("%s[%d]", path, i)

		color, err := field[string](bin, binPath, "color")
		if err != nil {
			return nil, err
		}
		dates, err := field[[]string](bin, binPath, "collectionDates")
		if err != nil {
			return nil, err
		}

		icon := binIcons.Lookup(color)
		for j, text := range dates {
			date, err := parseDate(text, loc)
			if err != nil {
				return nil, &SchemaError{
					Path: fmt.Sprintf("%s.collectionDates[%d]", binPath, j),
					Err:  err,
				}
			}
			result = append(result, collection.Collection{
				Date: date,
				Type: color,
				Icon: icon,
			})
		}
	}

	return result, nil
}
