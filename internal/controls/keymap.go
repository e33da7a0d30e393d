package controls

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// KeyCode is a raw platform key code. Values follow GLFW's key tokens.
type KeyCode int

const (
	KeySpace  KeyCode = 32
	KeyA      KeyCode = 65
	KeyD      KeyCode = 68
	KeyS      KeyCode = 83
	KeyW      KeyCode = 87
	KeyEscape KeyCode = 256
	KeyRight  KeyCode = 262
	KeyLeft   KeyCode = 263
	KeyDown   KeyCode = 264
	KeyUp     KeyCode = 265
)

var namedKeys = map[string]KeyCode{
	"SPACE":  KeySpace,
	"ESCAPE": KeyEscape,
	"ESC":    KeyEscape,
	"RIGHT":  KeyRight,
	"LEFT":   KeyLeft,
	"DOWN":   KeyDown,
	"UP":     KeyUp,
}

// ParseKeyCode resolves a key name ("W", "up", "space") or a raw integer
// code ("87") to a KeyCode.
func ParseKeyCode(name string) (KeyCode, error) {
	s := strings.ToUpper(strings.TrimSpace(name))
	if s == "" {
		return 0, fmt.Errorf("empty key name")
	}
	if code, ok := namedKeys[s]; ok {
		return code, nil
	}
	if len(s) == 1 && (s[0] >= 'A' && s[0] <= 'Z' || s[0] >= '0' && s[0] <= '9') {
		return KeyCode(s[0]), nil
	}
	if n, err := strconv.Atoi(s); err == nil && n >= 0 {
		return KeyCode(n), nil
	}
	return 0, fmt.Errorf("unknown key %q", name)
}

// KeyMap is the fixed lookup table from raw key codes to directions.
type KeyMap map[KeyCode]Direction

// DefaultKeyMap binds WASD and the arrow keys.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		KeyW:     Forward,
		KeyUp:    Forward,
		KeyS:     Backward,
		KeyDown:  Backward,
		KeyA:     TurnLeft,
		KeyLeft:  TurnLeft,
		KeyD:     TurnRight,
		KeyRight: TurnRight,
	}
}

// ParseKeyMap builds a table from direction names to key names. A key bound
// to two directions is rejected, and so is Escape, which closes the window.
func ParseKeyMap(bindings map[string][]string) (KeyMap, error) {
	names := make([]string, 0, len(bindings))
	for name := range bindings {
		names = append(names, name)
	}
	sort.Strings(names)

	km := make(KeyMap)
	for _, name := range names {
		dir, err := ParseDirection(name)
		if err != nil {
			return nil, err
		}
		for _, key := range bindings[name] {
			code, err := ParseKeyCode(key)
			if err != nil {
				return nil, fmt.Errorf("direction %s: %w", dir, err)
			}
			if code == KeyEscape {
				return nil, fmt.Errorf("direction %s: escape is reserved", dir)
			}
			if prev, ok := km[code]; ok && prev != dir {
				return nil, fmt.Errorf("key %q bound to both %s and %s", key, prev, dir)
			}
			km[code] = dir
		}
	}
	return km, nil
}

// Lookup returns the direction bound to code. Unmapped codes report false.
func (km KeyMap) Lookup(code KeyCode) (Direction, bool) {
	dir, ok := km[code]
	if !ok || dir == NoDirection {
		return NoDirection, false
	}
	return dir, true
}
