package a

import "time"

type event struct {
	CreatedAt time.Time
	UpdatedAt time.Time
}

func stampLocal(e *event) {
	e.CreatedAt = time.Now() // want "time.Now\\(\\) should be followed by .UTC\\(\\) for timezone consistency"
}

func stampUTC(e *event) {
	e.UpdatedAt = time.Now().UTC()
}

func dtstamp() string {
	return time.Now().UTC().Format("20060102T150405Z")
}

func localHorizon() time.Time {
	t := time.Now() // want "time.Now\\(\\) should be followed by .UTC\\(\\) for timezone consistency"
	return t.AddDate(1, 0, 0)
}

// injectable clocks reference time.Now without calling it
var clock = time.Now

func nolintGeneral() {
	//nolint
	_ = time.Now()
}

func nolintSpecific() {
	_ = time.Now() //nolint:timeutc
}

func nolintOtherLinter() {
	_ = time.Now() //nolint:errcheck // want "time.Now\\(\\) should be followed by .UTC\\(\\) for timezone consistency"
}
