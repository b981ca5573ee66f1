// Package metric defines the closed set of tracked Lighthouse metrics and how
// their values are displayed.
package metric

// Key identifies one tracked performance dimension.
type Key string

const (
	// KeyTotal is the overall performance category score.
	KeyTotal Key = "total"
	// KeyLCP is Largest Contentful Paint.
	KeyLCP Key = "lcp"
	// KeyFCP is First Contentful Paint.
	KeyFCP Key = "fcp"
	// KeyFMP is First Meaningful Paint.
	KeyFMP Key = "fmp"
	// KeySI is Speed Index.
	KeySI Key = "si"
	// KeyTBT is Total Blocking Time.
	KeyTBT Key = "tbt"
	// KeyMPF is Max Potential First Input Delay.
	KeyMPF Key = "mpf"
	// KeyCLS is Cumulative Layout Shift.
	KeyCLS Key = "cls"
	// KeySRT is Server Response Time.
	KeySRT Key = "srt"
)

// Class selects how a metric value is rendered.
type Class int

const (
	// ClassRatioPercent renders a [0,1] ratio as a percentage.
	ClassRatioPercent Class = iota
	// ClassDuration renders milliseconds, scaled to seconds from 1000ms.
	ClassDuration
	// ClassRatio2DP renders a unitless value with two decimals.
	ClassRatio2DP
	// ClassDurationNoScore renders like ClassDuration but never carries a sub-score.
	ClassDurationNoScore
)

// Definition describes a single metric.
type Definition struct {
	Key     Key
	Label   string
	AuditID string // empty for the category score
	Class   Class
}

// HasScore reports whether the metric carries a separate [0,1] sub-score.
func (d Definition) HasScore() bool {
	return d.Class == ClassDuration || d.Class == ClassRatio2DP
}

var registry = []Definition{
	{Key: KeyTotal, Label: "Total Score", Class: ClassRatioPercent},
	{Key: KeyLCP, Label: "Largest Contentful Paint", AuditID: "largest-contentful-paint", Class: ClassDuration},
	{Key: KeyFCP, Label: "First Contentful Paint", AuditID: "first-contentful-paint", Class: ClassDuration},
	{Key: KeyFMP, Label: "First Meaningful Paint", AuditID: "first-meaningful-paint", Class: ClassDuration},
	{Key: KeySI, Label: "Speed Index", AuditID: "speed-index", Class: ClassDuration},
	{Key: KeyTBT, Label: "Total Blocking Time", AuditID: "total-blocking-time", Class: ClassDuration},
	{Key: KeyMPF, Label: "Max Potential FID", AuditID: "max-potential-fid", Class: ClassDuration},
	{Key: KeyCLS, Label: "Cumulative Layout Shift", AuditID: "cumulative-layout-shift", Class: ClassRatio2DP},
	{Key: KeySRT, Label: "Server Response Time", AuditID: "server-response-time", Class: ClassDurationNoScore},
}

var byKey = func() map[Key]Definition {
	m := make(map[Key]Definition, len(registry))
	for _, def := range registry {
		m[def.Key] = def
	}

	return m
}()

// Definitions returns every metric in display order.
func Definitions() []Definition {
	out := make([]Definition, len(registry))
	copy(out, registry)

	return out
}

// Keys returns every metric key in display order.
func Keys() []Key {
	keys := make([]Key, len(registry))
	for i, def := range registry {
		keys[i] = def.Key
	}

	return keys
}

// Lookup returns the definition for key. Unknown keys yield a zero Definition
// and false.
func Lookup(key Key) (Definition, bool) {
	def, ok := byKey[key]

	return def, ok
}
