package persist

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log"

	"github.com/ytget/popupbar/internal/model"
)

// Keys of a collection object
const (
	keyWidgets  = "widgets"
	keySettings = "settings"
)

type slotJSON struct {
	Code         string `json:"code"`
	OverlayText  string `json:"Overlay Text"`
	OverlayImage string `json:"Overlay Image"`
}

type settingsJSON struct {
	PiPScale      [2]float64 `json:"PiP Scale"`
	EnlargedScale float64    `json:"Enlarged Scale"`
	EnlargedSize  float64    `json:"Enlarged Size"`
	DisplayTitles *bool      `json:"Display Titles,omitempty"`
	Direction     string     `json:"Direction"`
	DisplayMode   string     `json:"Display Mode"`
	TaskbarSize   float64    `json:"Taskbar Size"`
	Sizes         []int      `json:"sizes,omitempty"`
}

func settingsToJSON(s model.Settings) settingsJSON {
	titles := s.DisplayTitles
	return settingsJSON{
		PiPScale:      s.Scale,
		EnlargedScale: s.EnlargedScale,
		EnlargedSize:  s.EnlargedSize,
		DisplayTitles: &titles,
		Direction:     string(s.Direction),
		DisplayMode:   string(s.DisplayMode),
		TaskbarSize:   s.TaskbarSize,
		Sizes:         s.Sizes,
	}
}

func settingsFromJSON(j settingsJSON) model.Settings {
	s := model.DefaultSettings()
	s.Scale = j.PiPScale
	s.EnlargedScale = j.EnlargedScale
	s.EnlargedSize = j.EnlargedSize
	if j.DisplayTitles != nil {
		s.DisplayTitles = *j.DisplayTitles
	}
	if d, err := model.ParseDirection(j.Direction); err == nil {
		s.Direction = d
	} else if j.Direction != "" {
		log.Printf("Persist: unknown direction %q, using %s", j.Direction, model.DefaultDirection)
	}
	if m, err := model.ParseDisplayMode(j.DisplayMode); err == nil {
		s.DisplayMode = m
	} else if j.DisplayMode != "" {
		log.Printf("Persist: unknown display mode %q, using %s", j.DisplayMode, model.DefaultDisplayMode)
	}
	s.TaskbarSize = j.TaskbarSize
	s.Sizes = j.Sizes
	return s.Normalized()
}

// Encode serializes g with collections and slots in their stored order
func Encode(g *Group) ([]byte, error) {
	var obj objectWriter
	obj.put(SentinelKey, true)
	obj.put(LockedKey, g.Locked)

	for _, name := range g.order {
		c := g.collections[name]

		var widgets objectWriter
		for _, spec := range c.Slots {
			widgets.put(spec.Name, slotJSON{
				Code:         spec.Recipe,
				OverlayText:  spec.OverlayText,
				OverlayImage: spec.OverlayImage,
			})
		}

		var coll objectWriter
		coll.putRaw(keyWidgets, widgets.bytes())
		coll.put(keySettings, settingsToJSON(c.Settings))
		if err := firstErr(widgets.err, coll.err); err != nil {
			return nil, fmt.Errorf("encode collection %q: %w", name, err)
		}
		obj.putRaw(name, coll.bytes())
	}
	if obj.err != nil {
		return nil, fmt.Errorf("encode group %s: %w", g.Path, obj.err)
	}

	var out bytes.Buffer
	if err := json.Indent(&out, obj.bytes(), "", "  "); err != nil {
		return nil, fmt.Errorf("encode group %s: %w", g.Path, err)
	}
	out.WriteByte('\n')
	return out.Bytes(), nil
}

// member is one top-level entry of a group file in document order
type member struct {
	key string
	raw json.RawMessage
}

// Decode parses a group file. Files without the sentinel key are rejected
// with ErrNotGroupFile before any collection is read. Collections that
// cannot be decoded are skipped and the group is marked Damaged.
func Decode(data []byte, path string) (*Group, error) {
	var members []member
	err := readObject(data, func(key string, raw json.RawMessage) error {
		members = append(members, member{key: key, raw: raw})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	if !hasSentinel(members) {
		return nil, fmt.Errorf("decode %s: %w", path, ErrNotGroupFile)
	}

	g := NewGroup(path)
	for _, m := range members {
		switch m.key {
		case SentinelKey:
			continue
		case LockedKey:
			if err := json.Unmarshal(m.raw, &g.Locked); err != nil {
				return nil, fmt.Errorf("decode %s: %s: %w", path, LockedKey, err)
			}
			continue
		}
		c, err := decodeCollection(m.key, m.raw)
		if err != nil {
			log.Printf("Persist: skipping collection in %s: %v", path, err)
			g.Damaged = true
			continue
		}
		if _, dup := g.collections[m.key]; !dup {
			g.order = append(g.order, m.key)
		}
		g.collections[m.key] = c
	}
	return g, nil
}

func hasSentinel(members []member) bool {
	for _, m := range members {
		if m.key != SentinelKey {
			continue
		}
		var ok bool
		return json.Unmarshal(m.raw, &ok) == nil && ok
	}
	return false
}

func decodeCollection(name string, data json.RawMessage) (*Collection, error) {
	c := &Collection{Name: name, Settings: model.DefaultSettings()}
	err := readObject(data, func(key string, raw json.RawMessage) error {
		switch key {
		case keyWidgets:
			return readObject(raw, func(slotName string, rawSlot json.RawMessage) error {
				var s slotJSON
				if err := json.Unmarshal(rawSlot, &s); err != nil {
					return fmt.Errorf("slot %q: %w", slotName, err)
				}
				c.Slots = append(c.Slots, model.SlotSpec{
					Name:         slotName,
					Recipe:       s.Code,
					OverlayText:  s.OverlayText,
					OverlayImage: s.OverlayImage,
				})
				return nil
			})
		case keySettings:
			var s settingsJSON
			if err := json.Unmarshal(raw, &s); err != nil {
				return fmt.Errorf("settings: %w", err)
			}
			c.Settings = settingsFromJSON(s)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("collection %q: %w", name, err)
	}
	return c, nil
}

// readObject calls fn for every member of a JSON object in document order
func readObject(data []byte, fn func(key string, raw json.RawMessage) error) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("expected object, got %v", tok)
	}
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		key, ok := tok.(string)
		if !ok {
			return fmt.Errorf("expected key, got %v", tok)
		}
		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			return fmt.Errorf("value of %q: %w", key, err)
		}
		if err := fn(key, raw); err != nil {
			return err
		}
	}
	if _, err := dec.Token(); err != nil {
		return err
	}
	return nil
}

func firstErr(errs ...error) error {
	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}

// objectWriter builds a JSON object whose members keep insertion order
type objectWriter struct {
	buf bytes.Buffer
	n   int
	err error
}

func (w *objectWriter) put(key string, v any) {
	if w.err != nil {
		return
	}
	raw, err := json.Marshal(v)
	if err != nil {
		w.err = fmt.Errorf("%q: %w", key, err)
		return
	}
	w.putRaw(key, raw)
}

func (w *objectWriter) putRaw(key string, raw []byte) {
	if w.err != nil {
		return
	}
	k, err := json.Marshal(key)
	if err != nil {
		w.err = err
		return
	}
	if w.n == 0 {
		w.buf.WriteByte('{')
	} else {
		w.buf.WriteByte(',')
	}
	w.buf.Write(k)
	w.buf.WriteByte(':')
	w.buf.Write(raw)
	w.n++
}

func (w *objectWriter) bytes() []byte {
	if w.n == 0 {
		return []byte("{}")
	}
	return append(append([]byte(nil), w.buf.Bytes()...), '}')
}
