// Package scaffold generates a mod folder from embedded templates. It powers
// the "modsmith generate" command, producing the folder layout (modinfo.py,
// __init__.py, script/tuning/package placeholders) for a resolved name pair,
// snapshotting any existing output first when backups are enabled.
package scaffold
