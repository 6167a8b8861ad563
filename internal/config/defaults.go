// Package config provides configuration loading and defaults for optwatch.
package config

// DefaultConfigDir is the default location for optwatch configuration.
const DefaultConfigDir = "~/.config/optwatch"

// DefaultDBName is the filename for the SQLite database.
const DefaultDBName = "optwatch.db"

// DefaultWorkers bounds the per-pattern generation worker pool.
const DefaultWorkers = 4

// DefaultFloors holds the default pattern filter floors for the
// system-wide prioritized entry point.
var DefaultFloors = Floors{
	MinOccurrence: 3,
	MinSeverity:   3,
	MinConfidence: 0.6,
}

// DefaultMeasure holds the default effectiveness measurement parameters.
var DefaultMeasure = Measure{
	WindowDays: 7,
	MinSamples: 3,
}

// DefaultWatch holds the default watch-mode parameters.
var DefaultWatch = Watch{
	IntervalSeconds: 300,
	CapacityHours:   40,
}

// DefaultOutput holds the default output preferences.
var DefaultOutput = Output{
	Color: true,
	Width: 80,
}
