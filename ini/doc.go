// Package ini parses and serializes the classic INI config dialect.
//
// `[SECTION]` lines open groups, `Key=Value` lines append fields, and
// `//` comments may appear on any line: a standalone comment line
// attaches to the next field, a trailing comment to its own field.
// Lines before the first section header are held in an implicit
// unnamed leading group so nothing is silently dropped.
//
// Boolean-looking values (0/1, true/false, on/off, yes/no, any case)
// are tagged with a normalized interpretation for presentation; the
// literal text is what serializes. Duplicate section headers are legal
// in the source format: later occurrences merge into the first group
// of that name and surface a DuplicateSectionError warning on the
// Document rather than failing the load.
package ini
