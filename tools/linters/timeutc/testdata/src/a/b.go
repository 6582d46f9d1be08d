package a

import clk "time"

func renamedImport() clk.Time {
	return clk.Now() // want "time.Now\\(\\) should be followed by .UTC\\(\\) for timezone consistency"
}
