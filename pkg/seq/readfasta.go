// Reader for fasta format files.

package seq

import (
	"bytes"
	"fmt"

	"github.com/andrew-torda/clean_genes/pkg/white"
)

// lexer walks over the whole input. A comment runs to the end of its
// line. A sequence runs until a ">" at the start of a line.
type lexer struct {
	input  []byte
	seqgrp *SeqGrp
	cmmt   string
	err    error
}

type stateFn func(*lexer) stateFn

// recordEnd finds the next ">" at the start of a line, or -1.
func recordEnd(b []byte) int {
	if len(b) > 0 && b[0] == cmmtChar {
		return 0
	}
	if i := bytes.Index(b, []byte{'\n', cmmtChar}); i != -1 {
		return i + 1
	}
	return -1
}

// gstart skips white space before the first comment.
func gstart(l *lexer) stateFn {
	i := recordEnd(l.input)
	if i == -1 {
		if len(bytes.TrimSpace(l.input)) != 0 {
			l.err = fmt.Errorf("no '%c' before sequence data", cmmtChar)
		}
		return nil
	}
	if len(bytes.TrimSpace(l.input[:i])) != 0 {
		l.err = fmt.Errorf("text before first '%c'", cmmtChar)
		return nil
	}
	l.input = l.input[i+1:]
	return gcmmt
}

// We are reading a comment
func gcmmt(l *lexer) stateFn {
	var line []byte
	if i := bytes.IndexByte(l.input, '\n'); i == -1 {
		line, l.input = l.input, nil
	} else {
		line, l.input = l.input[:i], l.input[i+1:]
	}
	l.cmmt = string(bytes.TrimRight(line, "\r"))
	return gseq
}

// We are reading a sequence
func gseq(l *lexer) stateFn {
	body := l.input
	next := recordEnd(l.input)
	if next != -1 {
		body = l.input[:next]
	}
	s := make([]byte, len(body))
	copy(s, body)
	white.Remove(&s)
	if len(s) == 0 {
		l.err = fmt.Errorf("zero length sequence after \"%s\"", l.cmmt)
		return nil
	}
	l.seqgrp.seqs = append(l.seqgrp.seqs, Seq{cmmt: l.cmmt, seq: s})
	if next == -1 {
		return nil
	}
	l.input = l.input[next+1:]
	return gcmmt
}

// parse reads everything in b.
func parse(b []byte, seqgrp *SeqGrp) error {
	l := lexer{input: b, seqgrp: seqgrp}
	for state := gstart; state != nil; {
		state = state(&l)
	}
	if l.err != nil {
		return l.err
	}
	if seqgrp.NSeq() == 0 {
		return errNoSeqs
	}
	return nil
}
