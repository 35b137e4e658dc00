package cleangenes

import "io"

var AllGap = allGap

func (res *Result) Summary(w io.Writer, opts *Options) { res.summary(w, opts) }
