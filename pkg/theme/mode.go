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

package theme

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownMode is returned when a mode name is not recognized.
var ErrUnknownMode = errors.New("unknown theme mode")

// Mode is the explicit theme selection threaded through the UI. It is never
// inferred from the content of a color token.
type Mode int

const (
	ModeLight Mode = iota
	ModeDark
	ModeComfort
)

// Modes lists every mode in toggle order.
var Modes = []Mode{ModeLight, ModeDark, ModeComfort}

func (m Mode) String() string {
	switch m {
	case ModeLight:
		return "light"
	case ModeDark:
		return "dark"
	case ModeComfort:
		return "comfort"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

// Valid reports whether m is one of the defined modes.
func (m Mode) Valid() bool {
	return m >= ModeLight && m <= ModeComfort
}

// Next returns the mode that follows m in toggle order.
func (m Mode) Next() Mode {
	if !m.Valid() {
		return ModeLight
	}
	return Modes[(int(m)+1)%len(Modes)]
}

// ParseMode maps a case-insensitive name to a Mode.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "light":
		return ModeLight, nil
	case "dark":
		return ModeDark, nil
	case "comfort":
		return ModeComfort, nil
	}
	return ModeLight, fmt.Errorf("%w: %q (want light, dark or comfort)", ErrUnknownMode, s)
}

// MarshalText implements encoding.TextMarshaler.
func (m Mode) MarshalText() ([]byte, error) {
	if !m.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrUnknownMode, int(m))
	}
	return []byte(m.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (m *Mode) UnmarshalText(text []byte) error {
	parsed, err := ParseMode(string(text))
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}
