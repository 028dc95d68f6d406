// Package asset writes the map asset and its side tables.
//
// The binary map is read by the game client: a little-endian header, the
// country table and one fixed size record per grid cell, column by column.
package asset

import (
	"bufio"
	"encoding/binary"
	"io"
	"math"

	"github.com/geonext/hexmap/country"
	"github.com/pkg/errors"
)

// NoSample marks a channel value for a cell without geography.
const NoSample uint8 = 255

var ErrMapLayout = errors.New("invalid map layout")

// Map is a dense grid of cell records in column-major order.
type Map struct {
	Width     int
	Height    int
	Channels  int
	Countries []string

	cells []byte
}

// NewMap creates a map whose cells are all absent.
func NewMap(width, height, channels int, countries []string) (*Map, error) {
	switch {
	case width < 0 || width > math.MaxUint16, height < 0 || height > math.MaxUint16:
		return nil, errors.Wrapf(ErrMapLayout, "grid %dx%d does not fit u16", width, height)
	case channels < 0 || channels > math.MaxUint8:
		return nil, errors.Wrapf(ErrMapLayout, "%d channels", channels)
	case len(countries) > country.MaxCountries:
		return nil, errors.Wrapf(country.ErrTooManyCountries, "%d countries", len(countries))
	}
	for _, name := range countries {
		if len(name) > country.MaxNameLen {
			return nil, errors.Wrapf(country.ErrNameTooLong, "%q", name)
		}
	}

	m := &Map{
		Width:     width,
		Height:    height,
		Channels:  channels,
		Countries: countries,
		cells:     make([]byte, width*height*(channels+1)),
	}
	for i := range m.cells {
		if i%(channels+1) == 0 {
			m.cells[i] = country.Unclaimed
		} else {
			m.cells[i] = NoSample
		}
	}
	return m, nil
}

// Index returns the record number of a cell.
func (m *Map) Index(col, row int) int {
	return col*m.Height + row
}

func (m *Map) record(col, row int) []byte {
	n := m.Channels + 1
	i := m.Index(col, row) * n
	return m.cells[i : i+n]
}

// Set stores the country and channel samples of a cell. Missing samples keep
// the NoSample sentinel.
func (m *Map) Set(col, row int, countryIdx uint8, samples []uint8) {
	rec := m.record(col, row)
	rec[0] = countryIdx
	copy(rec[1:], samples)
}

// Cell returns the country index and the channel samples of a cell.
func (m *Map) Cell(col, row int) (uint8, []uint8) {
	rec := m.record(col, row)
	return rec[0], rec[1:]
}

// WriteTo encodes the map.
func (m *Map) WriteTo(w io.Writer) (int64, error) {
	bw := bufio.NewWriter(w)
	cw := &countingWriter{w: bw}

	header := []uint16{uint16(m.Width), uint16(m.Height), uint16(m.Channels)}
	if err := binary.Write(cw, binary.LittleEndian, header); err != nil {
		return cw.n, errors.Wrap(err, "map header")
	}
	table := []byte{uint8(len(m.Countries))}
	for _, name := range m.Countries {
		table = append(table, uint8(len(name)))
		table = append(table, name...)
	}
	if _, err := cw.Write(table); err != nil {
		return cw.n, errors.Wrap(err, "country table")
	}
	if _, err := cw.Write(m.cells); err != nil {
		return cw.n, errors.Wrap(err, "cells")
	}
	return cw.n, bw.Flush()
}

// ReadMap decodes a map written by WriteTo.
func ReadMap(r io.Reader) (*Map, error) {
	br := bufio.NewReader(r)

	var header [3]uint16
	if err := binary.Read(br, binary.LittleEndian, &header); err != nil {
		return nil, errors.Wrap(err, "map header")
	}
	count, err := br.ReadByte()
	if err != nil {
		return nil, errors.Wrap(err, "country count")
	}
	names := make([]string, count)
	for i := range names {
		n, err := br.ReadByte()
		if err != nil {
			return nil, errors.Wrapf(err, "country %d", i)
		}
		buf := make([]byte, n)
		if _, err := io.ReadFull(br, buf); err != nil {
			return nil, errors.Wrapf(err, "country %d", i)
		}
		names[i] = string(buf)
	}

	m, err := NewMap(int(header[0]), int(header[1]), int(header[2]), names)
	if err != nil {
		return nil, err
	}
	if _, err := io.ReadFull(br, m.cells); err != nil {
		return nil, errors.Wrap(err, "cells")
	}
	return m, nil
}

type countingWriter struct {
	w io.Writer
	n int64
}

func (c *countingWriter) Write(p []byte) (int, error) {
	n, err := c.w.Write(p)
	c.n += int64(n)
	return n, err
}
