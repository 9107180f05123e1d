// Package fixturesqlite provides the SQLite writer adapter for go-fixtures.
//
// The writer lives outside the core package so the sqlite driver stays an
// opt-in dependency; register it on the converter explicitly:
//
//	writer := fixturesqlite.Writer{}
//	_ = conv.Writers.Register(fixture.FormatSQLite, writer)
//
// By default the writer reproduces the legacy fixture generator exactly:
// every column is declared "text" and insert statements are built by string
// interpolation with values wrapped in double quotes and no escaping. Values
// containing a double-quote character therefore produce malformed SQL or
// corrupted stored data. Set SQLiteOptions.Hardened to switch to quoted
// identifiers and parameter binding instead.
package fixturesqlite
