// Package catalog holds the in-memory movie catalog and the loader for its comma-delimited backing file.
//
// [Catalog] enforces title uniqueness (exact, case-sensitive) and keeps insertion order for display.
// It never touches disk. [Loader] reads the backing file once to build a [Catalog], and can delete or
// append rows directly in the file; callers keep the two in sync by calling both.
//
// Row layout is described by a [Schema], an ordered list of named columns. [DefaultSchema] matches
//
//	index,title,year,runtime,genre,rating,director
//
// Fields are split with quote-aware CSV rules, so commas inside quoted titles are not separators.
package catalog
