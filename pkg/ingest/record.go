package ingest

// Record is a single statistical observation: one row of the source table.
// Value is nil when the source cell was blank or not parseable as a number;
// such rows still name an entity and must not be dropped.
type Record struct {
	Entity    string
	Year      int
	Indicator string
	Series    string
	Value     *float64
}

// ValueOrZero returns the record's numeric value, or 0 when it is absent.
func (r Record) ValueOrZero() float64 {
	if r.Value == nil {
		return 0
	}
	return *r.Value
}

// Float64 returns a pointer to v. Convenience for building records by hand.
func Float64(v float64) *float64 {
	return &v
}
