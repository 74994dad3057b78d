package domain

import (
    "bytes"
    "encoding/json"
)

// Frequency is a counter that remembers first-seen key order, so repeated
// runs over the same issue batch render identical tables. It marshals to a
// plain JSON object in insertion order.
type Frequency struct {
    keys   []string
    counts map[string]int
}

func NewFrequency() *Frequency {
    return &Frequency{counts: map[string]int{}}
}

func (f *Frequency) Add(key string) {
    if _, ok := f.counts[key]; !ok {
        f.keys = append(f.keys, key)
    }
    f.counts[key]++
}

func (f *Frequency) Get(key string) int { return f.counts[key] }

func (f *Frequency) Len() int { return len(f.keys) }

// Keys returns keys in first-seen order.
func (f *Frequency) Keys() []string {
    out := make([]string, len(f.keys))
    copy(out, f.keys)
    return out
}

func (f *Frequency) MarshalJSON() ([]byte, error) {
    buf := &bytes.Buffer{}
    buf.WriteByte('{')
    for i, k := range f.keys {
        if i > 0 {
            buf.WriteByte(',')
        }
        kb, err := json.Marshal(k)
        if err != nil {
            return nil, err
        }
        buf.Write(kb)
        buf.WriteByte(':')
        vb, err := json.Marshal(f.counts[k])
        if err != nil {
            return nil, err
        }
        buf.Write(vb)
    }
    buf.WriteByte('}')
    return buf.Bytes(), nil
}

func (f *Frequency) UnmarshalJSON(data []byte) error {
    m := map[string]int{}
    if err := json.Unmarshal(data, &m); err != nil {
        return err
    }
    dec := json.NewDecoder(bytes.NewReader(data))
    if _, err := dec.Token(); err != nil {
        return err
    }
    f.counts = map[string]int{}
    f.keys = nil
    for dec.More() {
        tok, err := dec.Token()
        if err != nil {
            return err
        }
        key, ok := tok.(string)
        if !ok {
            continue
        }
        var v int
        if err := dec.Decode(&v); err != nil {
            return err
        }
        f.keys = append(f.keys, key)
        f.counts[key] = v
    }
    return nil
}
