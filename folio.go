// Package folio extracts structured information from a single web page:
// title, description, content blocks, media, social links and contacts.
// Results are normalized into a canonical ScrapeRecord keyed by source URL.
//
// This package contains domain types, interfaces and the pure extraction
// rules shared by every strategy. Implementations live in subdirectories
// named after their primary dependency (e.g., goquery/, htmlquery/, sqlite/).
package folio
