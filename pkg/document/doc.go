// Package document turns a finalized Time & Effort record into a fixed-layout,
// paginated document: positioned, styled text lines grouped into pages, plus a
// tabular summary. Layout follows an A4 page in millimetres. The activities
// description is word-wrapped to the content width and flows onto new pages
// when it reaches the bottom limit; the certification section always starts
// on a new page. Rendering performs no I/O. See pkg/export for writers.
package document
