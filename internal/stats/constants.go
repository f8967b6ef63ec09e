package stats

// HoursInDay is the number of hours in a day (histogram array size).
const HoursInDay = 24

// DefaultHistogramWidth is the default width for histogram bars.
const DefaultHistogramWidth = 40
