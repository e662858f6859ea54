// Package synthesis assembles the prioritized recommendation list and the
// formatted case summary from a scored case record. It is a deterministic,
// regenerable aggregation: it never introduces new facts, only reformats
// and ranks fields already on the record, so re-running it on an unchanged
// record produces identical output.
package synthesis
