// util/json.go
// Copyright(c) 2025 evtolsim contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package util

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
)

///////////////////////////////////////////////////////////////////////////
// JSON

// DuplicateJSONKey represents a duplicate key found in JSON.
type DuplicateJSONKey struct {
	Path string // JSON path to the object holding the duplicate (e.g., "profiles.2")
	Key  string
}

// FindDuplicateJSONKeys walks the token stream of data and returns every
// object key that appears more than once in the same object. Invalid JSON
// just ends the walk; UnmarshalJSONBytes reports syntax errors.
func FindDuplicateJSONKeys(data []byte) []DuplicateJSONKey {
	dec := json.NewDecoder(bytes.NewReader(data))
	var dups []DuplicateJSONKey

	var walk func(path []string) error
	walk = func(path []string) error {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		delim, ok := tok.(json.Delim)
		if !ok {
			return nil
		}

		switch delim {
		case '{':
			seen := make(map[string]bool)
			for dec.More() {
				kt, err := dec.Token()
				if err != nil {
					return err
				}
				key, _ := kt.(string)
				if seen[key] {
					dups = append(dups, DuplicateJSONKey{Path: strings.Join(path, "."), Key: key})
				}
				seen[key] = true

				if err := walk(append(path, key)); err != nil {
					return err
				}
			}
		case '[':
			for i := 0; dec.More(); i++ {
				if err := walk(append(path, strconv.Itoa(i))); err != nil {
					return err
				}
			}
		}

		// Consume the closing delimiter.
		_, err = dec.Token()
		return err
	}
	_ = walk(nil)

	return dups
}

// UnmarshalJSONBytes unmarshals b into out, rejecting unknown fields, and
// reports syntax and type errors with line and character positions.
func UnmarshalJSONBytes[T any](b []byte, out *T) error {
	dec := json.NewDecoder(bytes.NewReader(b))
	dec.DisallowUnknownFields()
	err := dec.Decode(out)
	if err == nil {
		return nil
	}

	decodeOffset := func(offset int64) (line, char int) {
		line, char = 1, 1
		for i := 0; i < int(offset) && i < len(b); i++ {
			if b[i] == '\n' {
				line++
				char = 1
			} else {
				char++
			}
		}
		return
	}

	var serr *json.SyntaxError
	var terr *json.UnmarshalTypeError
	switch {
	case errors.As(err, &serr):
		line, char := decodeOffset(serr.Offset)
		return fmt.Errorf("Error at line %d, character %d: %w", line, char, serr)
	case errors.As(err, &terr):
		line, char := decodeOffset(terr.Offset)
		return fmt.Errorf("Error at line %d, character %d: %s value for %s invalid for type %s",
			line, char, terr.Value, terr.Field, terr.Type.String())
	default:
		return err
	}
}

// CheckJSON reports duplicate keys, syntax errors, type mismatches and
// unknown fields in contents with respect to T.
func CheckJSON[T any](contents []byte, e *ErrorLogger) {
	for _, dup := range FindDuplicateJSONKeys(contents) {
		if dup.Path == "" {
			e.ErrorString("duplicate key %q", dup.Key)
		} else {
			e.ErrorString("duplicate key %q in %s", dup.Key, dup.Path)
		}
	}

	var t T
	if err := UnmarshalJSONBytes(contents, &t); err != nil {
		e.Error(err)
	}
}
