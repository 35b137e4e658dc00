// 11 Mar 2025

/*
Cleangenes cleans a multiple sequence alignment of protein coding genes.

Usage:

	cleangenes [flags] [infile [outfile]]

It reads an aligned fasta file and
  - scores each of the three reading frames by the conserved stop codons
    in it, and picks the frame with the fewest,
  - optionally trims the alignment to whole codons (--trim) or to the
    start and stop codons most sequences agree on (--orf),
  - flags sequences whose internal stop codons or gap runs, with a length
    that is not a multiple of three, suggest a frameshift,
  - groups sequences by their pattern of interior gaps. Groups smaller
    than --min-group are outliers.

Nothing is removed. The alignment (trimmed if asked for) goes to outfile.
With -r, a csv file gets one line per sequence:

	"id","frame","frameshift","stops","bad gaps","group","outlier"

Columns in the report are counted from 1. A bad gap is written as
start+length.
With -g prefix, every gap group is written to prefix0.fa, prefix1.fa, ...
with the columns that are gaps in all of its members squashed out.

If the two best frames score within --eps of each other, the program
stops and says so. Then look at the alignment and use --frame.

Other genetic codes are chosen by their NCBI number with --table.
*/
package main
