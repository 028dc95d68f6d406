package hexmap

import "log/slog"

// Report counts the per-cell gaps that did not stop the build.
type Report struct {
	Hexes     int
	Countries int
	// Unclaimed hexes carry a label that is not in the country list.
	Unclaimed int
	// Unfilled samples found no data even after the ring search.
	Unfilled int
	// OutOfDomain samples fell outside a raster projection.
	OutOfDomain int
	// OffMap cells of the grid have no hex. These are expected for oceans.
	OffMap int
}

// LogValue implements slog.LogValuer.
func (r Report) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("hexes", r.Hexes),
		slog.Int("countries", r.Countries),
		slog.Int("unclaimed", r.Unclaimed),
		slog.Int("unfilled", r.Unfilled),
		slog.Int("out_of_domain", r.OutOfDomain),
		slog.Int("off_map", r.OffMap),
	)
}
