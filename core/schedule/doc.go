package schedule

// Package schedule implements the rotation scheduling engine. It resolves
// date expressions, enumerates layer activity over a date range, assigns
// rotating people to dates, and aggregates the result into the canonical
// shift sequence consumed by every exporter.
