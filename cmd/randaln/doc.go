// 31 July 2020

/*
Randaln is for making random coding alignments for testing the code.
Usage:

	randaln [options] fname nseq ncodon

will generate nseq aligned sequences of ncodon codons and write them to
fname ("-" for standard output).

Flags:

	-m n
		point changes per sequence. A change that would make a stop
		codon is dropped.
	-g n
		make n patterns of gaps, each one or two whole codons. Every
		sequence gets one of them or none.
	-s n
		the first n sequences get an extra gap of one or two bases, so
		they are frameshifted.
	-r
		random number seed

All sequences start with ATG, end with TAA and are the same length.
*/
package main
