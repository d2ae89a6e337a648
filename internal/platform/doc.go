// Package platform assigns a concrete device platform to every index record.
//
// The index's platform column is sometimes a literal platform name and
// sometimes a pattern that grouped several platform variants under one
// catalog row. Resolution happens in two phases:
//
//  1. [Collect] streams every record once and gathers the literal platform
//     names into an immutable [Set].
//  2. [Set.Resolve] maps each record to exactly one platform. Literal
//     fields resolve to themselves; pattern fields are resolved from the
//     primary template filename by longest-prefix match against the Set,
//     falling back to the first two underscore-separated segments of the
//     filename stem. A filename that itself starts with an alternation
//     group, such as "(a|b)_show_int.textfsm", matches every Set member
//     the group lists. The group only steers resolution and the command
//     key; the stored filename keeps it.
//
// Because the Set is complete and read-only before any record is resolved,
// the result for a record does not depend on where in the index the
// platforms it needs were defined.
//
// # Pattern Detection
//
// [IsPattern] is a character-class heuristic, not a regular-expression
// grammar check. A literal platform name containing one of ( | ) * [ ] . + ?
// is treated as a pattern. Catalog platform names never use those
// characters, so the limitation is accepted rather than worked around.
package platform
