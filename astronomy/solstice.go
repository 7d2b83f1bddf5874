// Copyright 2024 cloudeng llc. All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package astronomy

import "github.com/mooncaker816/learnmeeus/v3/solstice"

// December returns the instant of the December (northern winter)
// solstice of year.
func December(year int) int64 {
	return JDEToUnixMilli(solstice.December(year))
}

// June returns the instant of the June (northern summer) solstice of
// year.
func June(year int) int64 {
	return JDEToUnixMilli(solstice.June(year))
}
