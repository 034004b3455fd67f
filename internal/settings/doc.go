// Package settings persists the user preference record at
// ~/.modsmith/settings.json and resolves it for every command. Loading never
// fails: absent keys take per-key defaults, and a file that is malformed or
// fails the embedded JSON Schema reverts the whole record to defaults. Saving
// keeps a .bak copy of the previous file.
package settings
