// Package models defines the domain types shared across the blocklist pipeline.
//
// The central type is BlockEntry, one domain's moderation decision as it moves
// from sources through merging to destination instances. Boolean flags on an
// entry are tri-state pointers so that defaulting rules can tell "the source
// never said" apart from "the source said false".
//
// # Severity Scale
//
// Severity is an ordered scale (noop < silence < suspend). Each level implies
// default values for the reject_media and reject_reports flags, which apply
// whenever a source does not pin those flags explicitly. Values outside the
// scale are a hard error (UnknownSeverityError); they are never coerced.
//
// # Boolean Vocabulary
//
// Blocklist CSV exports carry booleans as strings from a small fixed
// vocabulary (true/t/1/y/yes, false/f/0/n/no, case-insensitive). ParseBool
// rejects anything else.
package models
