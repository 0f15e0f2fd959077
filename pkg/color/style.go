// Copyright 2026 Teradata
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//	http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package color

import (
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"strconv"
	"strings"

	"go.uber.org/zap"
)

// DefaultMaxDepth is the nesting limit DeepConvert applies unless
// overridden with WithMaxDepth.
const DefaultMaxDepth = 32

var (
	// ErrMaxDepth reports a style tree nested deeper than the converter allows.
	ErrMaxDepth = errors.New("style tree exceeds max depth")
	// ErrUnsupportedValue reports a value type the style walk does not know.
	ErrUnsupportedValue = errors.New("unsupported style value")
)

// StyleMap is a style object: keys map to strings, numbers, booleans, nil,
// nested maps or lists of those.
//
// Nested values may be StyleMap or map[string]any (what encoding/json and
// yaml.v3 produce); lists may be []any or []string.
type StyleMap map[string]any

// StyleError locates a problem found while walking a style tree.
type StyleError struct {
	Path string // dotted path, list indices in brackets
	Err  error
}

func (e *StyleError) Error() string {
	return fmt.Sprintf("style %s: %v", e.Path, e.Err)
}

func (e *StyleError) Unwrap() error { return e.Err }

// DeepConvert returns a copy of m with every OKLCH string replaced by its
// converted form. Non-color values are copied unchanged; the input is never
// mutated. Subtrees nested beyond the depth limit are copied without
// conversion, with any reference cycle inside them cut to nil. Unsupported
// types are passed through as-is. Both cases are reported at debug level.
func (c *Converter) DeepConvert(m StyleMap) StyleMap {
	w := styleWalker{conv: c}
	out, _ := w.walkMap(m, "", 0)
	return out
}

// DeepConvertChecked is DeepConvert with strict checking. The first
// malformed OKLCH string, non-finite conversion, over-deep subtree or
// unsupported value aborts the walk with a *StyleError whose Err wraps
// the cause (*MalformedColorError, ErrNonFinite, ErrMaxDepth or
// ErrUnsupportedValue).
func (c *Converter) DeepConvertChecked(m StyleMap) (StyleMap, error) {
	w := styleWalker{conv: c, strict: true}
	return w.walkMap(m, "", 0)
}

type styleWalker struct {
	conv   *Converter
	strict bool
}

func (w *styleWalker) walkMap(m map[string]any, path string, depth int) (StyleMap, error) {
	if m == nil {
		return nil, nil
	}
	out := make(StyleMap, len(m))
	for k, v := range m {
		cv, err := w.walkValue(v, joinKey(path, k), depth+1)
		if err != nil {
			return nil, err
		}
		out[k] = cv
	}
	return out, nil
}

func (w *styleWalker) walkList(list []any, path string, depth int) ([]any, error) {
	if list == nil {
		return nil, nil
	}
	out := make([]any, len(list))
	for i, v := range list {
		cv, err := w.walkValue(v, path+"["+strconv.Itoa(i)+"]", depth+1)
		if err != nil {
			return nil, err
		}
		out[i] = cv
	}
	return out, nil
}

func (w *styleWalker) walkValue(v any, path string, depth int) (any, error) {
	switch tv := v.(type) {
	case string:
		return w.convertString(tv, path)
	case nil, bool, float64, float32, int, int64, int32, uint, uint64, json.Number:
		return tv, nil
	}

	if depth > w.conv.maxDepth {
		if w.strict {
			return nil, &StyleError{Path: path, Err: ErrMaxDepth}
		}
		w.conv.log().Debug("Style subtree beyond max depth copied unconverted",
			zap.String("path", path),
			zap.Int("max_depth", w.conv.maxDepth))
		return w.copyRaw(v, path, make(map[uintptr]bool)), nil
	}

	switch tv := v.(type) {
	case StyleMap:
		return w.walkMap(tv, path, depth)
	case map[string]any:
		out, err := w.walkMap(tv, path, depth)
		if err != nil {
			return nil, err
		}
		if out == nil {
			return tv, nil
		}
		return map[string]any(out), nil
	case []any:
		return w.walkList(tv, path, depth)
	case []string:
		out := make([]string, len(tv))
		for i, s := range tv {
			cs, err := w.convertString(s, path+"["+strconv.Itoa(i)+"]")
			if err != nil {
				return nil, err
			}
			out[i] = cs
		}
		return out, nil
	}

	if w.strict {
		return nil, &StyleError{Path: path, Err: fmt.Errorf("%w: %T", ErrUnsupportedValue, v)}
	}
	w.conv.log().Debug("Unsupported style value passed through",
		zap.String("path", path),
		zap.String("type", fmt.Sprintf("%T", v)))
	return v, nil
}

func (w *styleWalker) convertString(s, path string) (string, error) {
	if !w.strict {
		return w.conv.ConvertIfNeeded(s), nil
	}
	out, err := w.conv.ConvertChecked(s)
	if err != nil {
		return "", &StyleError{Path: path, Err: err}
	}
	return out, nil
}

// copyRaw deep-copies v without converting anything. ancestors holds the
// maps and lists on the current path; a reference back to one becomes nil.
func (w *styleWalker) copyRaw(v any, path string, ancestors map[uintptr]bool) any {
	var id uintptr
	switch tv := v.(type) {
	case StyleMap, map[string]any:
		id = reflect.ValueOf(tv).Pointer()
	case []any:
		if len(tv) > 0 {
			id = reflect.ValueOf(tv).Pointer()
		}
	case []string:
		return append([]string(nil), tv...)
	default:
		return v
	}
	if id != 0 {
		if ancestors[id] {
			w.conv.log().Debug("Style reference cycle cut",
				zap.String("path", path))
			return nil
		}
		ancestors[id] = true
		defer delete(ancestors, id)
	}

	switch tv := v.(type) {
	case StyleMap:
		if tv == nil {
			return tv
		}
		out := make(StyleMap, len(tv))
		for k, e := range tv {
			out[k] = w.copyRaw(e, joinKey(path, k), ancestors)
		}
		return out
	case map[string]any:
		if tv == nil {
			return tv
		}
		out := make(map[string]any, len(tv))
		for k, e := range tv {
			out[k] = w.copyRaw(e, joinKey(path, k), ancestors)
		}
		return out
	default:
		list := v.([]any)
		if list == nil {
			return list
		}
		out := make([]any, len(list))
		for i, e := range list {
			out[i] = w.copyRaw(e, path+"["+strconv.Itoa(i)+"]", ancestors)
		}
		return out
	}
}

func joinKey(path, key string) string {
	if path == "" {
		return key
	}
	var b strings.Builder
	b.Grow(len(path) + 1 + len(key))
	b.WriteString(path)
	b.WriteByte('.')
	b.WriteString(key)
	return b.String()
}
