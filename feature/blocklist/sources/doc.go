// Package sources reads and writes blocklists in the tabular CSV format.
//
// A source is either an http(s) URL or a local file path, holding a CSV
// with a header row. The only required column is "domain"; the optional
// columns are severity, public_comment, private_comment, reject_media,
// reject_reports and obfuscate. Booleans use the vocabulary accepted by
// models.ParseBool. A malformed record aborts processing of the whole
// source (the caller decides whether the run continues with the remaining
// sources).
//
// Writing produces rows sorted by domain ascending, in the fixed column
// order domain, severity, [private_comment,] public_comment, reject_media,
// reject_reports, obfuscate. Entries without a domain are skipped and
// reported, never a crash. Unspecified tri-state fields round-trip as empty
// cells.
package sources
