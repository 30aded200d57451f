// Package telemetry collects the short key/value lines a program reports each tick.
package telemetry

import (
	"fmt"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cast"
)

// Telemetry is the sink a program writes to. Values are rendered as human readable strings.
type Telemetry interface {
	AddData(key string, value interface{})
}

// AddDataf formats a value and adds it to t.
func AddDataf(t Telemetry, key, format string, args ...interface{}) {
	t.AddData(key, fmt.Sprintf(format, args...))
}

// Entry is one telemetry line.
type Entry struct {
	Key   string
	Value string
}

// Buffer is an in-memory Telemetry that keeps insertion order. Adding an existing key replaces
// its value in place.
type Buffer struct {
	entries []Entry
	index   map[string]int
}

var _ Telemetry = &Buffer{}

// NewBuffer returns an empty buffer.
func NewBuffer() *Buffer {
	return &Buffer{index: map[string]int{}}
}

// AddData implements Telemetry.
func (b *Buffer) AddData(key string, value interface{}) {
	if b.index == nil {
		b.index = map[string]int{}
	}
	str, err := cast.ToStringE(value)
	if err != nil {
		str = fmt.Sprint(value)
	}
	if i, ok := b.index[key]; ok {
		b.entries[i].Value = str
		return
	}
	b.index[key] = len(b.entries)
	b.entries = append(b.entries, Entry{Key: key, Value: str})
}

// Get returns the value for key.
func (b *Buffer) Get(key string) (string, bool) {
	i, ok := b.index[key]
	if !ok {
		return "", false
	}
	return b.entries[i].Value, true
}

// Entries returns a copy of the lines in insertion order.
func (b *Buffer) Entries() []Entry {
	return append([]Entry(nil), b.entries...)
}

// Len returns the number of lines.
func (b *Buffer) Len() int {
	return len(b.entries)
}

// Clear drops every line, as the host does after each flush.
func (b *Buffer) Clear() {
	b.entries = b.entries[:0]
	b.index = map[string]int{}
}

// String prints out a table of every line, with columns of key and value.
func (b *Buffer) String() string {
	t := table.NewWriter()
	t.AppendHeader(table.Row{"Key", "Value"})
	for _, e := range b.entries {
		t.AppendRow(table.Row{e.Key, e.Value})
	}
	return t.Render()
}
