// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package directory holds the fixed list of polling units and resolves a polling
unit name to its ward and LGA.

# Loading

The built-in list covers fifteen units across four Jigawa LGAs:

	dir := directory.Default()

A different list can be loaded from a CSV file with a name, lga and ward
header (columns in any order):

	dir, err := directory.LoadFile("units.csv")

# Fallback

Names missing from the directory still resolve. The ward is N/A and the LGA is
the text after the first ", " of the name, or N/A when there is none:

	ward, lga := dir.Locate("PU 099, Sabon Gari") // "N/A", "Sabon Gari"

A nil *Directory behaves like an empty one.
*/
package directory
