package options

import (
	"math"
)

// PlatformOptions selects the initialization profile and platform specific
// surface parameters.
type PlatformOptions struct {
	Name string
	MSAA *int // multisample mode forwarded to the native surface (0, 2 or 4)
}

// ContextOptions is the caller supplied, possibly partial, set of context
// creation options. A nil pointer field means the option was not given.
type ContextOptions struct {
	Alpha                           *bool
	Depth                           *bool
	Stencil                         *bool
	Antialias                       *bool
	PremultipliedAlpha              *bool
	PreserveDrawingBuffer           *bool
	PreferLowPowerToHighPerformance *bool
	FailIfMajorPerformanceCaveat    *bool

	Window   any // opaque native window handle
	Platform *PlatformOptions
}

// Bool returns a pointer to v, for filling ContextOptions literals.
func Bool(v bool) *bool { return &v }

// Int returns a pointer to v.
func Int(v int) *int { return &v }

// PlatformName returns the requested platform name or "" when none was given.
func (o *ContextOptions) PlatformName() string {
	if o == nil || o.Platform == nil {
		return ""
	}
	return o.Platform.Name
}

// MSAA returns the requested multisample mode, 0 when none was given.
func (o *ContextOptions) MSAA() int {
	if o == nil || o.Platform == nil || o.Platform.MSAA == nil {
		return 0
	}
	return *o.Platform.MSAA
}

// HasWindow reports whether a native window handle was supplied.
func (o *ContextOptions) HasWindow() bool {
	return o != nil && truthy(o.Window)
}

var flagKeys = map[string]func(o *ContextOptions, v bool){
	"alpha":                           func(o *ContextOptions, v bool) { o.Alpha = &v },
	"depth":                           func(o *ContextOptions, v bool) { o.Depth = &v },
	"stencil":                         func(o *ContextOptions, v bool) { o.Stencil = &v },
	"antialias":                       func(o *ContextOptions, v bool) { o.Antialias = &v },
	"premultipliedAlpha":              func(o *ContextOptions, v bool) { o.PremultipliedAlpha = &v },
	"preserveDrawingBuffer":           func(o *ContextOptions, v bool) { o.PreserveDrawingBuffer = &v },
	"preferLowPowerToHighPerformance": func(o *ContextOptions, v bool) { o.PreferLowPowerToHighPerformance = &v },
	"failIfMajorPerformanceCaveat":    func(o *ContextOptions, v bool) { o.FailIfMajorPerformanceCaveat = &v },
}

// FromMap builds ContextOptions from an option object handed over by the
// script runtime. Flag entries are coerced the way the script would coerce
// them; entries that cannot be coerced are left absent.
func FromMap(m map[string]any) *ContextOptions {
	if m == nil {
		return nil
	}
	o := &ContextOptions{}
	for key, set := range flagKeys {
		raw, ok := m[key]
		if !ok {
			continue
		}
		if v, ok := coerceBool(raw); ok {
			set(o, v)
		}
	}
	if w, ok := m["window"]; ok && truthy(w) {
		o.Window = w
	}
	if p, ok := m["platform"].(map[string]any); ok {
		o.Platform = &PlatformOptions{}
		if name, ok := p["name"].(string); ok {
			o.Platform.Name = name
		}
		if n, ok := coerceInt(p["msaa"]); ok {
			o.Platform.MSAA = &n
		}
	}
	return o
}

func coerceBool(v any) (bool, bool) {
	switch x := v.(type) {
	case bool:
		return x, true
	case int:
		return x != 0, true
	case int32:
		return x != 0, true
	case int64:
		return x != 0, true
	case uint32:
		return x != 0, true
	case float32:
		return x != 0 && !math.IsNaN(float64(x)), true
	case float64:
		return x != 0 && !math.IsNaN(x), true
	case string:
		return x != "", true
	}
	return false, false
}

func coerceInt(v any) (int, bool) {
	switch x := v.(type) {
	case int:
		return x, true
	case int32:
		return int(x), true
	case int64:
		return int(x), true
	case float64:
		if math.IsNaN(x) || math.IsInf(x, 0) {
			return 0, false
		}
		return int(x), true
	}
	return 0, false
}

func truthy(v any) bool {
	if v == nil {
		return false
	}
	if b, ok := coerceBool(v); ok {
		return b
	}
	if p, ok := v.(uintptr); ok {
		return p != 0
	}
	return true
}
