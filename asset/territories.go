package asset

import (
	"bufio"
	"io"
	"math"

	"github.com/pkg/errors"
)

// Territories is the country ownership of every grid cell in row-major order,
// the compact form the game server keeps in memory.
type Territories struct {
	Width  int
	Owners []uint8
	Names  []string
}

// Run is a stretch of consecutive cells owned by the same country.
type Run struct {
	Count   uint16
	Country uint8
}

// TerritoriesOf extracts the ownership layer of a map.
func TerritoriesOf(m *Map) *Territories {
	t := &Territories{Width: m.Width, Owners: make([]uint8, 0, m.Width*m.Height), Names: m.Countries}
	for row := 0; row < m.Height; row++ {
		for col := 0; col < m.Width; col++ {
			owner, _ := m.Cell(col, row)
			t.Owners = append(t.Owners, owner)
		}
	}
	return t
}

// Runs run-length encodes the owners. Runs longer than a u16 are split.
func (t *Territories) Runs() []Run {
	var runs []Run
	for _, owner := range t.Owners {
		if n := len(runs); n > 0 && runs[n-1].Country == owner && runs[n-1].Count < math.MaxUint16 {
			runs[n-1].Count++
			continue
		}
		runs = append(runs, Run{Count: 1, Country: owner})
	}
	return runs
}

// WriteTerritories encodes the run-length form of t.
func WriteTerritories(w io.Writer, t *Territories) error {
	runs := t.Runs()

	buf := AppendUvarint(nil, uint64(t.Width))
	buf = AppendUvarint(buf, uint64(len(runs)))
	for _, run := range runs {
		buf = AppendUvarint(buf, uint64(run.Count))
		buf = append(buf, run.Country)
	}
	buf = AppendUvarint(buf, uint64(len(t.Names)))
	for _, name := range t.Names {
		buf = AppendUvarint(buf, uint64(len(name)))
		buf = append(buf, name...)
	}
	_, err := w.Write(buf)
	return errors.Wrap(err, "territories")
}

// ReadTerritories decodes the output of WriteTerritories.
func ReadTerritories(r io.Reader) (*Territories, error) {
	br := bufio.NewReader(r)

	width, err := ReadUvarint(br)
	if err != nil {
		return nil, errors.Wrap(err, "territories width")
	}
	nruns, err := ReadUvarint(br)
	if err != nil {
		return nil, errors.Wrap(err, "territories run count")
	}

	t := &Territories{Width: int(width)}
	for i := uint64(0); i < nruns; i++ {
		count, err := ReadUvarint(br)
		if err != nil {
			return nil, errors.Wrapf(err, "run %d", i)
		}
		if count > math.MaxUint16 {
			return nil, errors.Wrapf(ErrVarint, "run %d is %d cells long", i, count)
		}
		owner, err := br.ReadByte()
		if err != nil {
			return nil, errors.Wrapf(err, "run %d", i)
		}
		for ; count > 0; count-- {
			t.Owners = append(t.Owners, owner)
		}
	}

	nnames, err := ReadUvarint(br)
	if err != nil {
		return nil, errors.Wrap(err, "territories name count")
	}
	for i := uint64(0); i < nnames; i++ {
		n, err := ReadUvarint(br)
		if err != nil {
			return nil, errors.Wrapf(err, "name %d", i)
		}
		name := make([]byte, n)
		if _, err := io.ReadFull(br, name); err != nil {
			return nil, errors.Wrapf(err, "name %d", i)
		}
		t.Names = append(t.Names, string(name))
	}
	return t, nil
}
