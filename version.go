package memo

import _ "embed"

// Version is the version of memo.
//
//go:embed VERSION
var Version string
