// Package mc converts between instruction sequences and machine-code
// text: one 16 character line of '0' and '1' per instruction word, most
// significant bit first. Blank lines are ignored.
package mc
